package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/ch1tg/GameTrackr-web/internal/api"
	"github.com/ch1tg/GameTrackr-web/internal/domain"
	apperrors "github.com/ch1tg/GameTrackr-web/pkg/errors"
)

// Backend is the slice of the API client the session store depends on.
type Backend interface {
	Login(ctx context.Context, creds api.Credentials) (*domain.User, error)
	Register(ctx context.Context, reg api.Registration) (*domain.User, error)
	Me(ctx context.Context) (*domain.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*domain.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	DeleteAccount(ctx context.Context, password string) error

	Wishlist(ctx context.Context) ([]domain.WishlistItem, error)
	AddToWishlist(ctx context.Context, rawgGameID int64) (*domain.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, rawgGameID int64) error
	ResetWishlist(ctx context.Context) error
}

// Store holds the signed-in user and their wishlist membership for one
// browser session. All methods are safe for concurrent use.
type Store struct {
	backend Backend
	logger  *slog.Logger

	mu              sync.Mutex
	user            *domain.User
	loading         bool
	wishlist        map[int64]struct{}
	wishlistLoading bool
	pending         map[int64]struct{}
	subscribers     []func()

	initOnce sync.Once
}

// NewStore creates a Store. The store reports loading until Initialize has
// run, so route guards can tell "signed out" from "not yet known".
func NewStore(backend Backend, logger *slog.Logger) *Store {
	return &Store{
		backend:  backend,
		logger:   logger,
		loading:  true,
		wishlist: make(map[int64]struct{}),
		pending:  make(map[int64]struct{}),
	}
}

// Subscribe registers a callback invoked after every state change. Callbacks
// run outside the store lock.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Initialize resolves the current session exactly once. A failed probe means
// signed out, never an error: a fresh browser has no session and that is not
// exceptional.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		user, err := s.backend.Me(ctx)
		if err != nil {
			s.logger.DebugContext(ctx, "no active session", slog.String("reason", err.Error()))
			user = nil
		}

		s.setIdentity(ctx, user)

		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		s.notify()
	})
}

// setIdentity swaps the signed-in user and refetches the wishlist to match.
// A nil user clears the wishlist; a fetch failure degrades to an empty set.
func (s *Store) setIdentity(ctx context.Context, user *domain.User) {
	s.mu.Lock()
	s.user = user
	s.wishlist = make(map[int64]struct{})
	s.pending = make(map[int64]struct{})
	if user == nil {
		s.mu.Unlock()
		return
	}
	s.wishlistLoading = true
	s.mu.Unlock()

	items, err := s.backend.Wishlist(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlistLoading = false
	if s.user == nil || s.user.ID != user.ID {
		// Identity changed again while fetching; drop the stale result.
		return
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to fetch wishlist",
			slog.String("username", user.Username),
			slog.String("error", err.Error()),
		)
		return
	}
	for _, item := range items {
		s.wishlist[item.RawgGameID] = struct{}{}
	}
}

// Login authenticates with either a username or an email address; anything
// containing "@" is treated as an email. A failed attempt clears any local
// user state.
func (s *Store) Login(ctx context.Context, identifier, password string) error {
	creds := api.Credentials{Password: password}
	if strings.Contains(identifier, "@") {
		creds.Email = identifier
	} else {
		creds.Username = identifier
	}

	user, err := s.backend.Login(ctx, creds)
	if err != nil {
		s.setIdentity(ctx, nil)
		s.notify()
		return err
	}

	s.setIdentity(ctx, user)
	s.notify()
	return nil
}

// Register creates an account and signs it in.
func (s *Store) Register(ctx context.Context, username, email, password string) error {
	user, err := s.backend.Register(ctx, api.Registration{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		s.setIdentity(ctx, nil)
		s.notify()
		return err
	}

	s.setIdentity(ctx, user)
	s.notify()
	return nil
}

// Logout clears the local session unconditionally. A server-side failure is
// logged but never keeps the user signed in locally.
func (s *Store) Logout(ctx context.Context) {
	if err := s.backend.Logout(ctx); err != nil {
		s.logger.WarnContext(ctx, "logout request failed", slog.String("error", err.Error()))
	}
	s.setIdentity(ctx, nil)
	s.notify()
}

// UpdateProfile changes username and/or email and adopts the server's
// resulting user record.
func (s *Store) UpdateProfile(ctx context.Context, update api.ProfileUpdate) error {
	s.mu.Lock()
	signedIn := s.user != nil
	s.mu.Unlock()
	if !signedIn {
		return apperrors.Unauthorized("you must be signed in to update your profile")
	}

	user, err := s.backend.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.notify()
	return nil
}

// ChangePassword replaces the account password.
func (s *Store) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	s.mu.Lock()
	signedIn := s.user != nil
	s.mu.Unlock()
	if !signedIn {
		return apperrors.Unauthorized("you must be signed in to change your password")
	}

	return s.backend.ChangePassword(ctx, oldPassword, newPassword)
}

// DeleteAccount permanently removes the account. The confirmation phrase is
// checked locally against the signed-in username before any request is made.
func (s *Store) DeleteAccount(ctx context.Context, confirmation, password string) error {
	s.mu.Lock()
	user := s.user
	s.mu.Unlock()
	if user == nil {
		return apperrors.Unauthorized("you must be signed in to delete your account")
	}
	if confirmation != user.Username {
		return apperrors.InvalidInput("confirmation does not match username")
	}

	if err := s.backend.DeleteAccount(ctx, password); err != nil {
		return err
	}

	s.Logout(ctx)
	return nil
}

// ToggleWishlist adds or removes a game depending on current membership. The
// local set flips only after the server confirms, so a failed call leaves
// membership unchanged. A second toggle for the same game while one is in
// flight is rejected, which also guarantees at most one add request per
// click no matter how fast the user clicks.
func (s *Store) ToggleWishlist(ctx context.Context, rawgGameID int64) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return apperrors.Unauthorized("you must be signed in to manage your wishlist")
	}
	if _, inFlight := s.pending[rawgGameID]; inFlight {
		s.mu.Unlock()
		return apperrors.Conflict("a wishlist update for this game is already in progress")
	}
	_, present := s.wishlist[rawgGameID]
	s.pending[rawgGameID] = struct{}{}
	s.mu.Unlock()

	var err error
	if present {
		err = s.backend.RemoveFromWishlist(ctx, rawgGameID)
	} else {
		_, err = s.backend.AddToWishlist(ctx, rawgGameID)
	}

	s.mu.Lock()
	delete(s.pending, rawgGameID)
	if err == nil {
		if present {
			delete(s.wishlist, rawgGameID)
		} else {
			s.wishlist[rawgGameID] = struct{}{}
		}
	}
	s.mu.Unlock()
	s.notify()

	return err
}

// ResetWishlist clears the entire wishlist after the server confirms.
func (s *Store) ResetWishlist(ctx context.Context) error {
	s.mu.Lock()
	signedIn := s.user != nil
	s.mu.Unlock()
	if !signedIn {
		return apperrors.Unauthorized("you must be signed in to manage your wishlist")
	}

	if err := s.backend.ResetWishlist(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.wishlist = make(map[int64]struct{})
	s.mu.Unlock()
	s.notify()
	return nil
}

// User returns a copy of the signed-in user, or nil when signed out.
func (s *Store) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsLoading reports whether the initial session probe is still unresolved.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// IsWishlistLoading reports whether the wishlist refetch after an identity
// change is still in flight.
func (s *Store) IsWishlistLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlistLoading
}

// WishlistState returns the tri-state membership for one game.
func (s *Store) WishlistState(rawgGameID int64) domain.WishlistState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, inFlight := s.pending[rawgGameID]; inFlight {
		return domain.WishlistPending
	}
	if _, present := s.wishlist[rawgGameID]; present {
		return domain.WishlistPresent
	}
	return domain.WishlistAbsent
}

// WishlistSize returns the number of confirmed wishlist entries.
func (s *Store) WishlistSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.wishlist)
}
