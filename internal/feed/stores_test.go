package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ch1tg/GameTrackr-web/internal/domain"
	apperrors "github.com/ch1tg/GameTrackr-web/pkg/errors"
)

type trendingCall struct {
	page               int
	ordering, platform string
}

type fakeTrending struct {
	calls []trendingCall
	fn    func(page int, ordering, platform string) (*domain.TrendingPage, error)
}

func (f *fakeTrending) TrendingGames(_ context.Context, page int, ordering, platform string) (*domain.TrendingPage, error) {
	f.calls = append(f.calls, trendingCall{page, ordering, platform})
	return f.fn(page, ordering, platform)
}

func intPtr(v int) *int { return &v }

func TestTrendingStore_QueryChangeResetsAndReloads(t *testing.T) {
	backend := &fakeTrending{fn: func(page int, ordering, _ string) (*domain.TrendingPage, error) {
		if ordering == domain.OrderingAdded {
			return &domain.TrendingPage{Games: []domain.Game{{ID: 1, Name: "a"}}, NextPage: intPtr(2)}, nil
		}
		return &domain.TrendingPage{Games: []domain.Game{{ID: 2, Name: "b"}}, NextPage: nil}, nil
	}}

	store := NewTrendingStore(backend, discardLogger())
	store.SetQuery(context.Background(), "", "")

	require.Len(t, store.Games(), 1)
	assert.Equal(t, int64(1), store.Games()[0].ID)
	assert.True(t, store.HasMore())

	store.SetQuery(context.Background(), domain.OrderingMetacritic, "187")

	require.Len(t, store.Games(), 1)
	assert.Equal(t, int64(2), store.Games()[0].ID, "results from different queries never merge")
	assert.False(t, store.HasMore())

	last := backend.calls[len(backend.calls)-1]
	assert.Equal(t, trendingCall{1, domain.OrderingMetacritic, "187"}, last, "query change restarts at page 1")
}

func TestTrendingStore_UnchangedQueryIsNoop(t *testing.T) {
	backend := &fakeTrending{fn: func(int, string, string) (*domain.TrendingPage, error) {
		return &domain.TrendingPage{Games: []domain.Game{{ID: 1}}}, nil
	}}

	store := NewTrendingStore(backend, discardLogger())
	store.SetQuery(context.Background(), domain.OrderingAdded, "")
	store.SetQuery(context.Background(), domain.OrderingAdded, "")

	assert.Len(t, backend.calls, 1)
}

func TestTrendingStore_LoadMoreAdvancesPage(t *testing.T) {
	backend := &fakeTrending{fn: func(page int, _, _ string) (*domain.TrendingPage, error) {
		switch page {
		case 1:
			return &domain.TrendingPage{Games: []domain.Game{{ID: 1}}, NextPage: intPtr(2)}, nil
		default:
			return &domain.TrendingPage{Games: []domain.Game{{ID: 2}}, NextPage: nil}, nil
		}
	}}

	store := NewTrendingStore(backend, discardLogger())
	store.SetQuery(context.Background(), "", "")
	require.True(t, store.LoadMore(context.Background()))

	assert.Len(t, store.Games(), 2)
	assert.False(t, store.HasMore())
	assert.False(t, store.LoadMore(context.Background()))
}

type fakeWishlist struct {
	pages map[int]*domain.WishlistPage
}

func (f *fakeWishlist) UserWishlist(_ context.Context, _ string, page, _ int) (*domain.WishlistPage, error) {
	p, ok := f.pages[page]
	if !ok {
		return nil, apperrors.NotFound("page", "?")
	}
	return p, nil
}

func TestWishlistViewStore_PagesThroughPublicWishlist(t *testing.T) {
	backend := &fakeWishlist{pages: map[int]*domain.WishlistPage{
		1: {Games: []domain.Game{{ID: 1}, {ID: 2}}, HasNextPage: true},
		2: {Games: []domain.Game{{ID: 2}, {ID: 3}}, HasNextPage: false},
	}}

	store := NewWishlistViewStore(backend, "alice", discardLogger())
	assert.Equal(t, "alice", store.Username())

	store.Load(context.Background())
	require.True(t, store.LoadMore(context.Background()))

	ids := make([]int64, 0, 3)
	for _, g := range store.Games() {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)
	assert.False(t, store.HasMore())
}

type searchCall struct {
	kind  string
	q     string
	page  int
	limit int
}

type fakeSearch struct {
	calls []searchCall

	allFn   func(q string) (*domain.PreviewResult, error)
	usersFn func(q string, page int) (*domain.UserSearchPage, error)
	gamesFn func(q string, page int) (*domain.GameSearchPage, error)
}

func (f *fakeSearch) SearchAll(_ context.Context, q string, userLimit, gameLimit int) (*domain.PreviewResult, error) {
	f.calls = append(f.calls, searchCall{"all", q, 0, userLimit})
	if f.allFn == nil {
		return &domain.PreviewResult{}, nil
	}
	_ = gameLimit
	return f.allFn(q)
}

func (f *fakeSearch) SearchUsers(_ context.Context, q string, page, limit int) (*domain.UserSearchPage, error) {
	f.calls = append(f.calls, searchCall{"users", q, page, limit})
	return f.usersFn(q, page)
}

func (f *fakeSearch) SearchGames(_ context.Context, q string, page, limit int) (*domain.GameSearchPage, error) {
	f.calls = append(f.calls, searchCall{"games", q, page, limit})
	return f.gamesFn(q, page)
}

func TestSearchStore_AllTabFetchesCombinedSample(t *testing.T) {
	backend := &fakeSearch{allFn: func(q string) (*domain.PreviewResult, error) {
		return &domain.PreviewResult{
			Users: []domain.SearchedUser{{Username: "bob"}},
			Games: []domain.Game{{ID: 1, Name: q}},
		}, nil
	}}

	store := NewSearchStore(backend, discardLogger())
	store.SetQuery(context.Background(), "zelda", TabAll)

	users, games := store.AllResults()
	assert.Len(t, users, 1)
	assert.Len(t, games, 1)

	require.Len(t, backend.calls, 1)
	assert.Equal(t, searchCall{"all", "zelda", 0, searchAllUserLimit}, backend.calls[0])

	assert.False(t, store.LoadMore(context.Background()), "combined tab never paginates")
}

func TestSearchStore_TabChangeResetsResults(t *testing.T) {
	backend := &fakeSearch{
		allFn: func(string) (*domain.PreviewResult, error) {
			return &domain.PreviewResult{Games: []domain.Game{{ID: 1}}}, nil
		},
		usersFn: func(_ string, page int) (*domain.UserSearchPage, error) {
			return &domain.UserSearchPage{
				Users:       []domain.SearchedUser{{Username: "bob"}},
				CurrentPage: page,
				TotalPages:  2,
			}, nil
		},
	}

	store := NewSearchStore(backend, discardLogger())
	store.SetQuery(context.Background(), "bo", TabAll)
	_, games := store.AllResults()
	require.Len(t, games, 1)

	store.SetQuery(context.Background(), "bo", TabUsers)

	_, games = store.AllResults()
	assert.Empty(t, games, "combined results are discarded on tab change")
	assert.Len(t, store.Users(), 1)
	assert.True(t, store.UsersHasMore())

	last := backend.calls[len(backend.calls)-1]
	assert.Equal(t, searchCall{"users", "bo", 1, searchPageSize}, last)
}

func TestSearchStore_TermChangeRestartsActiveTab(t *testing.T) {
	backend := &fakeSearch{gamesFn: func(q string, page int) (*domain.GameSearchPage, error) {
		next := page + 1
		return &domain.GameSearchPage{
			Games:    []domain.Game{{ID: int64(page*100 + len(q)), Name: q}},
			NextPage: &next,
		}, nil
	}}

	store := NewSearchStore(backend, discardLogger())
	store.SetQuery(context.Background(), "dark", TabGames)
	require.True(t, store.LoadMore(context.Background()))
	require.Len(t, store.Games(), 2)

	store.SetQuery(context.Background(), "darker", TabGames)

	assert.Len(t, store.Games(), 1, "term change never merges old pages")
	last := backend.calls[len(backend.calls)-1]
	assert.Equal(t, 1, last.page)
}

func TestSearchStore_EmptyTermClearsWithoutFetching(t *testing.T) {
	backend := &fakeSearch{allFn: func(string) (*domain.PreviewResult, error) {
		return &domain.PreviewResult{Games: []domain.Game{{ID: 1}}}, nil
	}}

	store := NewSearchStore(backend, discardLogger())
	store.SetQuery(context.Background(), "zelda", TabAll)
	calls := len(backend.calls)

	store.SetQuery(context.Background(), "", TabAll)

	_, games := store.AllResults()
	assert.Empty(t, games)
	assert.Len(t, backend.calls, calls, "empty term issues no request")
}

func TestSearchStore_UsersTabEndOfPagination(t *testing.T) {
	backend := &fakeSearch{usersFn: func(_ string, page int) (*domain.UserSearchPage, error) {
		return &domain.UserSearchPage{
			Users:       []domain.SearchedUser{{Username: "only"}},
			CurrentPage: page,
			TotalPages:  1,
		}, nil
	}}

	store := NewSearchStore(backend, discardLogger())
	store.SetQuery(context.Background(), "on", TabUsers)

	assert.False(t, store.UsersHasMore(), "current_page == total_pages means no more pages")
	assert.False(t, store.LoadMore(context.Background()))
}

func TestSearchStore_AllTabErrorRecorded(t *testing.T) {
	backend := &fakeSearch{allFn: func(string) (*domain.PreviewResult, error) {
		return nil, apperrors.Unreachable(assert.AnError)
	}}

	store := NewSearchStore(backend, discardLogger())
	store.SetQuery(context.Background(), "zelda", TabAll)

	assert.Equal(t, "the server is not responding", store.AllErr())
}
