package preview

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ch1tg/GameTrackr-web/internal/domain"
	apperrors "github.com/ch1tg/GameTrackr-web/pkg/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeBackend struct {
	mu    sync.Mutex
	calls []string
	fn    func(q string) (*domain.PreviewResult, error)
}

func (f *fakeBackend) SearchAll(_ context.Context, q string, userLimit, gameLimit int) (*domain.PreviewResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	f.mu.Unlock()
	if userLimit != previewUserLimit || gameLimit != previewGameLimit {
		return nil, apperrors.InvalidInput("unexpected limits")
	}
	if f.fn == nil {
		return &domain.PreviewResult{Games: []domain.Game{{ID: 1, Name: q}}}, nil
	}
	return f.fn(q)
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestInput_FiresOnceAfterQuietPeriod(t *testing.T) {
	backend := &fakeBackend{}
	store := NewStore(backend, 20*time.Millisecond, discardLogger())

	store.Input(context.Background(), "z")
	store.Input(context.Background(), "ze")
	store.Input(context.Background(), "zel")

	waitFor(t, func() bool { return backend.callCount() > 0 })
	time.Sleep(50 * time.Millisecond) // no trailing extra dispatches

	assert.Equal(t, 1, backend.callCount(), "one request per settled pause")
	backend.mu.Lock()
	assert.Equal(t, "zel", backend.calls[0], "only the final input fires")
	backend.mu.Unlock()

	result := store.Result()
	require.Len(t, result.Games, 1)
	assert.Equal(t, "zel", result.Games[0].Name)
}

func TestInput_EmptyCancelsPendingDispatch(t *testing.T) {
	backend := &fakeBackend{}
	store := NewStore(backend, 20*time.Millisecond, discardLogger())

	store.Input(context.Background(), "zel")
	store.Input(context.Background(), "")

	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, 0, backend.callCount(), "cleared input never fires")
	assert.Empty(t, store.Result().Games)
}

func TestDispatch_StaleResolutionDiscarded(t *testing.T) {
	slowDone := make(chan struct{})
	backend := &fakeBackend{fn: func(q string) (*domain.PreviewResult, error) {
		if q == "slow" {
			<-slowDone
		}
		return &domain.PreviewResult{Games: []domain.Game{{ID: 1, Name: q}}}, nil
	}}
	store := NewStore(backend, time.Millisecond, discardLogger())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		store.Search(context.Background(), "slow")
	}()
	waitFor(t, func() bool { return backend.callCount() == 1 })

	// The term moves on while the first request hangs.
	store.Search(context.Background(), "fast")
	waitFor(t, func() bool {
		return len(store.Result().Games) == 1 && store.Result().Games[0].Name == "fast"
	})

	close(slowDone)
	wg.Wait()

	assert.Equal(t, "fast", store.Result().Games[0].Name, "late response must not overwrite a newer one")
}

func TestDispatch_SupersededBeforeFiringIsDropped(t *testing.T) {
	backend := &fakeBackend{}
	store := NewStore(backend, time.Millisecond, discardLogger())

	store.mu.Lock()
	store.term = "newer"
	store.mu.Unlock()

	store.dispatch(context.Background(), "older")

	assert.Equal(t, 0, backend.callCount())
}

func TestDispatch_FailureClearsPreview(t *testing.T) {
	var fail atomic.Bool
	backend := &fakeBackend{fn: func(q string) (*domain.PreviewResult, error) {
		if fail.Load() {
			return nil, apperrors.Unreachable(assert.AnError)
		}
		return &domain.PreviewResult{Games: []domain.Game{{ID: 1, Name: q}}}, nil
	}}
	store := NewStore(backend, time.Millisecond, discardLogger())

	store.Search(context.Background(), "zelda")
	require.NotEmpty(t, store.Result().Games)

	fail.Store(true)
	store.Search(context.Background(), "zeldaa")

	assert.Empty(t, store.Result().Games, "a failed preview shows nothing rather than stale results")
	assert.False(t, store.IsLoading())
}

func TestDebouncer_CancelStopsPending(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(10 * time.Millisecond)

	d.Trigger(func() { fired.Add(1) })
	d.Cancel()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestDebouncer_LastTriggerWins(t *testing.T) {
	var got atomic.Value
	d := NewDebouncer(10 * time.Millisecond)

	d.Trigger(func() { got.Store("first") })
	d.Trigger(func() { got.Store("second") })

	waitFor(t, func() bool { return got.Load() != nil })
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "second", got.Load())
}
