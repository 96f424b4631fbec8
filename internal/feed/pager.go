// Package feed implements the incremental list-fetch pattern shared by the
// trending feed, the public wishlist view, and the search result tabs: load
// page 1, then grow the list page by page as the user scrolls.
package feed

import (
	"context"
	"log/slog"
	"sync"

	apperrors "github.com/ch1tg/GameTrackr-web/pkg/errors"
)

// Page is one fetched page plus the server's has-more indicator, already
// normalized by the FetchFunc (nextPage != nil, or current page < total
// pages, depending on the resource).
type Page[T any] struct {
	Items   []T
	HasMore bool
}

// FetchFunc loads one page. Query parameters beyond the page number are
// closed over by the instantiating store.
type FetchFunc[T any] func(ctx context.Context, page int) (Page[T], error)

// KeyFunc extracts the identity used for de-duplication across pages.
type KeyFunc[T any, K comparable] func(T) K

// Pager accumulates a paginated list. Page 1 replaces the list wholesale;
// later pages append only items whose key has not been seen, preserving
// server order, so an overlapping page boundary never produces duplicates.
type Pager[T any, K comparable] struct {
	fetch  FetchFunc[T]
	key    KeyFunc[T, K]
	logger *slog.Logger

	mu           sync.Mutex
	items        []T
	seen         map[K]struct{}
	page         int
	hasMore      bool
	loading      bool
	fetchingMore bool
	errMsg       string

	// gen identifies the query identity the accumulated list belongs to.
	// Reset bumps it, so a fetch that resolves after a Reset sees a
	// mismatch and is discarded instead of merging into the new list.
	gen uint64
}

// NewPager creates an empty pager. HasMore starts true so the first load is
// always attempted.
func NewPager[T any, K comparable](fetch FetchFunc[T], key KeyFunc[T, K], logger *slog.Logger) *Pager[T, K] {
	return &Pager[T, K]{
		fetch:   fetch,
		key:     key,
		logger:  logger,
		seen:    make(map[K]struct{}),
		hasMore: true,
	}
}

// Load fetches page 1, replacing the accumulated list on success. A failure
// records a user-facing error message and leaves the list empty. A Load
// while another Load is in flight is a no-op.
func (p *Pager[T, K]) Load(ctx context.Context) {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return
	}
	p.loading = true
	p.errMsg = ""
	gen := p.gen
	p.mu.Unlock()

	page, err := p.fetch(ctx, 1)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		// The pager was reset while this fetch was in flight; the result
		// belongs to the old query identity. The reset already cleared the
		// flags, so leave state alone.
		return
	}
	p.loading = false
	if err != nil {
		p.items = nil
		p.seen = make(map[K]struct{})
		p.errMsg = apperrors.UserMessage(err)
		return
	}

	p.items = make([]T, 0, len(page.Items))
	p.seen = make(map[K]struct{}, len(page.Items))
	p.appendNewLocked(page.Items)
	p.page = 1
	p.hasMore = page.HasMore
}

// LoadMore fetches the next page when no fetch is in flight and more pages
// exist; otherwise it is a no-op. It reports whether a request was issued.
// A continuation failure degrades silently to end-of-list.
func (p *Pager[T, K]) LoadMore(ctx context.Context) bool {
	p.mu.Lock()
	if p.loading || p.fetchingMore || !p.hasMore || p.page == 0 {
		p.mu.Unlock()
		return false
	}
	p.fetchingMore = true
	next := p.page + 1
	gen := p.gen
	p.mu.Unlock()

	page, err := p.fetch(ctx, next)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return true
	}
	p.fetchingMore = false
	if err != nil {
		p.hasMore = false
		p.logger.WarnContext(ctx, "list continuation failed",
			slog.Int("page", next),
			slog.String("error", err.Error()),
		)
		return true
	}

	p.appendNewLocked(page.Items)
	p.page = next
	p.hasMore = page.HasMore
	return true
}

func (p *Pager[T, K]) appendNewLocked(items []T) {
	for _, item := range items {
		k := p.key(item)
		if _, dup := p.seen[k]; dup {
			continue
		}
		p.seen[k] = struct{}{}
		p.items = append(p.items, item)
	}
}

// Reset returns the pager to its initial empty state. Callers reset whenever
// any parameter defining which list this is changes; results from different
// query identities are never merged.
func (p *Pager[T, K]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.items = nil
	p.seen = make(map[K]struct{})
	p.page = 0
	p.hasMore = true
	p.errMsg = ""
	// In-flight fetches now carry a stale generation and will be dropped on
	// resolution, so the flags are cleared here rather than by them.
	p.loading = false
	p.fetchingMore = false
}

// Items returns a copy of the accumulated list.
func (p *Pager[T, K]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// HasMore reports whether another page may exist.
func (p *Pager[T, K]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// IsLoading reports whether a page-1 fetch is in flight.
func (p *Pager[T, K]) IsLoading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// IsFetchingMore reports whether a continuation fetch is in flight.
func (p *Pager[T, K]) IsFetchingMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetchingMore
}

// CurrentPage returns the last successfully served page number, 0 before
// any page has loaded.
func (p *Pager[T, K]) CurrentPage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// Err returns the recorded page-1 error message, empty when none.
func (p *Pager[T, K]) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}
