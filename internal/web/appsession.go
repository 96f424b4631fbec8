package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ch1tg/GameTrackr-web/internal/api"
	"github.com/ch1tg/GameTrackr-web/internal/feed"
	"github.com/ch1tg/GameTrackr-web/internal/preview"
	"github.com/ch1tg/GameTrackr-web/internal/session"
)

// SessionCookie is the cookie carrying the browser's app-session id.
const SessionCookie = "gt_session"

// AppSession is all per-browser state: the upstream API client (whose cookie
// jar holds exactly this browser's upstream session), the auth store, and
// the page-lifetime list stores.
type AppSession struct {
	ID       string
	API      *api.Client
	Session  *session.Store
	Trending *feed.TrendingStore
	Search   *feed.SearchStore
	Preview  *preview.Store

	logger *slog.Logger

	mu            sync.Mutex
	wishlistViews map[string]*feed.WishlistViewStore
	lastSeen      time.Time
}

// NewAppSession wires the stores for one browser around a dedicated API
// client.
func NewAppSession(id string, client *api.Client, previewDelay time.Duration, logger *slog.Logger) *AppSession {
	return &AppSession{
		ID:            id,
		API:           client,
		Session:       session.NewStore(client, logger),
		Trending:      feed.NewTrendingStore(client, logger),
		Search:        feed.NewSearchStore(client, logger),
		Preview:       preview.NewStore(client, previewDelay, logger),
		logger:        logger,
		wishlistViews: make(map[string]*feed.WishlistViewStore),
		lastSeen:      time.Now(),
	}
}

// WishlistView returns the list store for one viewed username, creating it
// on first sight. Each username is its own query identity with its own
// pagination.
func (s *AppSession) WishlistView(username string) *feed.WishlistViewStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, ok := s.wishlistViews[username]
	if !ok {
		view = feed.NewWishlistViewStore(s.API, username, s.logger)
		s.wishlistViews[username] = view
	}
	return view
}

func (s *AppSession) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *AppSession) seen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Factory creates the per-browser state for a new app session.
type Factory func(id string) (*AppSession, error)

// Registry tracks live app sessions by id and evicts those idle longer than
// the TTL.
type Registry struct {
	factory Factory
	ttl     time.Duration
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[string]*AppSession

	nowFunc func() time.Time
	done    chan struct{}
}

// NewRegistry creates a registry and starts its eviction janitor. Call
// Close to stop the janitor.
func NewRegistry(factory Factory, ttl time.Duration, logger *slog.Logger) *Registry {
	r := &Registry{
		factory:  factory,
		ttl:      ttl,
		logger:   logger,
		sessions: make(map[string]*AppSession),
		nowFunc:  time.Now,
		done:     make(chan struct{}),
	}
	go r.janitor()
	return r
}

// Get returns the session for id and refreshes its idle timer.
func (r *Registry) Get(id string) (*AppSession, bool) {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	r.mu.Unlock()
	if ok {
		sess.touch(r.nowFunc())
	}
	return sess, ok
}

// Create builds a fresh session under a new uuid.
func (r *Registry) Create() (*AppSession, error) {
	id := uuid.NewString()
	sess, err := r.factory(id)
	if err != nil {
		return nil, err
	}
	sess.touch(r.nowFunc())

	r.mu.Lock()
	r.sessions[id] = sess
	r.mu.Unlock()

	r.logger.Debug("app session created", slog.String("session_id", id))
	return sess, nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close stops the eviction janitor.
func (r *Registry) Close() {
	close(r.done)
}

func (r *Registry) janitor() {
	interval := r.ttl / 4
	if interval > time.Minute {
		interval = time.Minute
	}
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.sweep(r.nowFunc())
		}
	}
}

func (r *Registry) sweep(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, sess := range r.sessions {
		if now.Sub(sess.seen()) > r.ttl {
			delete(r.sessions, id)
			r.logger.Debug("app session expired", slog.String("session_id", id))
		}
	}
}

type sessionCtxKey struct{}

// Ensure resolves or creates the browser's app session, initializes the
// upstream session probe, and stores the AppSession in the request context.
func Ensure(registry *Registry, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			var sess *AppSession

			if cookie, err := req.Cookie(SessionCookie); err == nil {
				sess, _ = registry.Get(cookie.Value)
			}

			if sess == nil {
				created, err := registry.Create()
				if err != nil {
					http.Error(w, "service unavailable", http.StatusServiceUnavailable)
					return
				}
				sess = created
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
			}

			sess.Session.Initialize(req.Context())

			ctx := context.WithValue(req.Context(), sessionCtxKey{}, sess)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// SessionFrom returns the request's AppSession. It panics when Ensure did
// not run, which is a routing mistake, not a runtime condition.
func SessionFrom(ctx context.Context) *AppSession {
	sess, ok := ctx.Value(sessionCtxKey{}).(*AppSession)
	if !ok {
		panic("web: no app session in context")
	}
	return sess
}
