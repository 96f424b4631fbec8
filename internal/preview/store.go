// Package preview implements the search-as-you-type dropdown: a debounced
// combined search returning a small sample of users and games.
package preview

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ch1tg/GameTrackr-web/internal/domain"
)

const (
	previewUserLimit = 5
	previewGameLimit = 5
)

// Backend is the slice of the API client the preview store uses.
type Backend interface {
	SearchAll(ctx context.Context, q string, userLimit, gameLimit int) (*domain.PreviewResult, error)
}

// Store debounces input and holds the latest preview result. Requests are
// not cancelled once dispatched; instead every dispatch gets a sequence
// number and a resolution older than the newest dispatch is discarded, so a
// slow early response can never overwrite a later one.
type Store struct {
	backend  Backend
	debounce *Debouncer
	logger   *slog.Logger

	mu      sync.Mutex
	term    string
	seq     uint64
	loading bool
	result  domain.PreviewResult
}

// NewStore creates a preview store with the given debounce delay; a
// non-positive delay uses DefaultDelay.
func NewStore(backend Backend, delay time.Duration, logger *slog.Logger) *Store {
	return &Store{
		backend:  backend,
		debounce: NewDebouncer(delay),
		logger:   logger,
	}
}

// Input records a keystroke. Empty input cancels any pending dispatch and
// clears the preview; anything else (re)starts the quiet-period timer.
func (s *Store) Input(ctx context.Context, term string) {
	s.mu.Lock()
	s.term = term
	s.mu.Unlock()

	if term == "" {
		s.debounce.Cancel()
		s.Clear()
		return
	}

	s.debounce.Trigger(func() { s.dispatch(ctx, term) })
}

// Search bypasses the debounce and fires immediately, for callers that have
// already settled on a term (one settled pause per request on the typing
// path is the debouncer's job, not theirs).
func (s *Store) Search(ctx context.Context, term string) {
	s.mu.Lock()
	s.term = term
	s.mu.Unlock()

	if term == "" {
		s.Clear()
		return
	}
	s.dispatch(ctx, term)
}

func (s *Store) dispatch(ctx context.Context, term string) {
	s.mu.Lock()
	if s.term != term {
		// A newer keystroke superseded this dispatch before it fired.
		s.mu.Unlock()
		return
	}
	s.seq++
	mine := s.seq
	s.loading = true
	s.mu.Unlock()

	result, err := s.backend.SearchAll(ctx, term, previewUserLimit, previewGameLimit)

	s.mu.Lock()
	defer s.mu.Unlock()
	if mine != s.seq {
		// A later dispatch exists; this resolution is stale.
		return
	}
	s.loading = false
	if err != nil {
		s.logger.DebugContext(ctx, "preview search failed",
			slog.String("term", term),
			slog.String("error", err.Error()),
		)
		s.result = domain.PreviewResult{}
		return
	}
	s.result = *result
}

// Clear empties the preview, as when the dropdown is dismissed.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = domain.PreviewResult{}
	s.loading = false
}

// Term returns the latest input.
func (s *Store) Term() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}

// IsLoading reports whether the newest dispatch is still unresolved.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Result returns the latest preview result.
func (s *Store) Result() domain.PreviewResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}
