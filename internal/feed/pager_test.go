package feed

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ch1tg/GameTrackr-web/pkg/errors"
)

type item struct {
	ID   int64
	Name string
}

func itemKey(i item) int64 { return i.ID }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// pagesFetch serves canned pages keyed by page number.
func pagesFetch(pages map[int]Page[item]) FetchFunc[item] {
	return func(_ context.Context, page int) (Page[item], error) {
		p, ok := pages[page]
		if !ok {
			return Page[item]{}, apperrors.NotFound("page", "?")
		}
		return p, nil
	}
}

func TestPager_OverlappingPagesDeduplicate(t *testing.T) {
	g1, g2, g3 := item{1, "a"}, item{2, "b"}, item{3, "c"}
	p := NewPager(pagesFetch(map[int]Page[item]{
		1: {Items: []item{g1, g2}, HasMore: true},
		2: {Items: []item{g2, g3}, HasMore: false},
	}), itemKey, discardLogger())

	p.Load(context.Background())
	assert.Equal(t, []item{g1, g2}, p.Items())
	assert.True(t, p.HasMore())
	assert.Equal(t, 1, p.CurrentPage())

	require.True(t, p.LoadMore(context.Background()))
	assert.Equal(t, []item{g1, g2, g3}, p.Items(), "g2 appears once, order preserved")
	assert.False(t, p.HasMore())
	assert.Equal(t, 2, p.CurrentPage())
}

func TestPager_Page1ReplacesWholesale(t *testing.T) {
	fetched := Page[item]{Items: []item{{1, "a"}}, HasMore: true}
	calls := 0
	p := NewPager(func(context.Context, int) (Page[item], error) {
		calls++
		if calls == 2 {
			return Page[item]{Items: []item{{9, "z"}}, HasMore: false}, nil
		}
		return fetched, nil
	}, itemKey, discardLogger())

	p.Load(context.Background())
	p.Load(context.Background())

	assert.Equal(t, []item{{9, "z"}}, p.Items(), "a reload does not merge with previous results")
}

func TestPager_Page1FailureRecordsError(t *testing.T) {
	p := NewPager(func(context.Context, int) (Page[item], error) {
		return Page[item]{}, apperrors.Unreachable(assert.AnError)
	}, itemKey, discardLogger())

	p.Load(context.Background())

	assert.Empty(t, p.Items())
	assert.Equal(t, "the server is not responding", p.Err())
	assert.False(t, p.IsLoading())
}

func TestPager_ContinuationFailureDegradesSilently(t *testing.T) {
	calls := 0
	p := NewPager(func(_ context.Context, page int) (Page[item], error) {
		calls++
		if page == 1 {
			return Page[item]{Items: []item{{1, "a"}}, HasMore: true}, nil
		}
		return Page[item]{}, apperrors.Unreachable(assert.AnError)
	}, itemKey, discardLogger())

	p.Load(context.Background())
	require.True(t, p.LoadMore(context.Background()))

	assert.Equal(t, []item{{1, "a"}}, p.Items(), "accumulated list survives a failed continuation")
	assert.False(t, p.HasMore(), "failed continuation means end of list")
	assert.Empty(t, p.Err(), "continuation failures are not shown inline")

	assert.False(t, p.LoadMore(context.Background()), "no further attempts once has-more is false")
	assert.Equal(t, 2, calls)
}

func TestPager_LoadMoreGatedWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	fetches := make(chan int, 10)
	p := NewPager(func(_ context.Context, page int) (Page[item], error) {
		fetches <- page
		if page > 1 {
			<-release
		}
		return Page[item]{Items: []item{{int64(page), "x"}}, HasMore: true}, nil
	}, itemKey, discardLogger())

	p.Load(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.LoadMore(context.Background())
	}()

	for !p.IsFetchingMore() {
		time.Sleep(time.Millisecond)
	}

	assert.False(t, p.LoadMore(context.Background()), "second trigger while in flight is a no-op")

	close(release)
	wg.Wait()

	close(fetches)
	var pages []int
	for page := range fetches {
		pages = append(pages, page)
	}
	assert.Equal(t, []int{1, 2}, pages)
}

func TestPager_LoadMoreBeforeFirstLoadIsNoop(t *testing.T) {
	p := NewPager(pagesFetch(nil), itemKey, discardLogger())
	assert.False(t, p.LoadMore(context.Background()))
}

func TestPager_ResetRestoresInitialState(t *testing.T) {
	p := NewPager(pagesFetch(map[int]Page[item]{
		1: {Items: []item{{1, "a"}}, HasMore: false},
	}), itemKey, discardLogger())

	p.Load(context.Background())
	require.NotEmpty(t, p.Items())
	require.False(t, p.HasMore())

	p.Reset()

	assert.Empty(t, p.Items())
	assert.True(t, p.HasMore())
	assert.Equal(t, 0, p.CurrentPage())
	assert.Empty(t, p.Err())
}

func TestPager_StaleContinuationDroppedAfterReset(t *testing.T) {
	// The fetch closes over a mutable query, the way the stores close over
	// their current ordering or term.
	var mu sync.Mutex
	lists := map[string]map[int]Page[item]{
		"old": {
			1: {Items: []item{{101, "a"}, {102, "b"}}, HasMore: true},
			2: {Items: []item{{103, "c"}}, HasMore: true},
		},
		"new": {
			1: {Items: []item{{201, "x"}, {202, "y"}}, HasMore: false},
		},
	}
	query := "old"
	release := make(chan struct{})
	p := NewPager(func(_ context.Context, page int) (Page[item], error) {
		mu.Lock()
		q := query
		mu.Unlock()
		if q == "old" && page == 2 {
			<-release
		}
		return lists[q][page], nil
	}, itemKey, discardLogger())

	p.Load(context.Background())
	require.Equal(t, []item{{101, "a"}, {102, "b"}}, p.Items())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.LoadMore(context.Background())
	}()
	for !p.IsFetchingMore() {
		time.Sleep(time.Millisecond)
	}

	// The user switches to a different list while page 2 is in flight.
	mu.Lock()
	query = "new"
	mu.Unlock()
	p.Reset()
	p.Load(context.Background())
	require.Equal(t, []item{{201, "x"}, {202, "y"}}, p.Items())

	close(release)
	wg.Wait()

	assert.Equal(t, []item{{201, "x"}, {202, "y"}}, p.Items(),
		"a continuation of the old list never merges into the new one")
	assert.Equal(t, 1, p.CurrentPage())
	assert.False(t, p.HasMore(), "bookkeeping belongs to the new list")
	assert.False(t, p.IsFetchingMore())
}

func TestPager_StaleLoadDroppedAndNewLoadNotSwallowed(t *testing.T) {
	var mu sync.Mutex
	query := "old"
	release := make(chan struct{})
	p := NewPager(func(context.Context, int) (Page[item], error) {
		mu.Lock()
		q := query
		mu.Unlock()
		if q == "old" {
			<-release
			return Page[item]{Items: []item{{101, "a"}}, HasMore: true}, nil
		}
		return Page[item]{Items: []item{{201, "x"}}, HasMore: false}, nil
	}, itemKey, discardLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Load(context.Background())
	}()
	for !p.IsLoading() {
		time.Sleep(time.Millisecond)
	}

	mu.Lock()
	query = "new"
	mu.Unlock()
	p.Reset()
	p.Load(context.Background())

	close(release)
	wg.Wait()

	assert.Equal(t, []item{{201, "x"}}, p.Items(),
		"the reset makes room for the new load and drops the old resolution")
	assert.False(t, p.IsLoading())
	assert.False(t, p.HasMore())
}

func TestPager_EmptyPage1IsNotAnError(t *testing.T) {
	p := NewPager(pagesFetch(map[int]Page[item]{
		1: {Items: nil, HasMore: false},
	}), itemKey, discardLogger())

	p.Load(context.Background())

	assert.Empty(t, p.Items())
	assert.Empty(t, p.Err())
	assert.False(t, p.HasMore())
}
