package store

import (
	"context"
	"time"

	"tribex/internal/cache"
	"tribex/internal/gateway"
	"tribex/internal/models"
	"tribex/internal/seed"
)

// CheckSession resolves the current session into a user view model. A missing
// profile row is synthesized from session metadata; any other failure leaves
// the store anonymous. The loading flag is cleared on every path.
func (s *Store) CheckSession(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	sess := s.gw.Auth().Session()
	if sess == nil {
		s.setUser(nil)
		return nil
	}

	var prof profileRow
	err := s.gw.From("profiles").
		Select("*").
		Eq("id", sess.User.ID).
		Single().
		Cached(cache.ProfileKey(sess.User.ID), cache.ProfileTTL).
		Get(ctx, &prof)

	switch {
	case err == nil:
		user := userFromProfile(prof, sess.User.Email)
		s.setUser(&user)
	case models.HasCode(err, "NOT_FOUND"):
		// Profile trigger has not run yet; synthesize from session metadata.
		user := synthesizedUser(sess)
		s.setUser(&user)
	default:
		s.log.LogError(ctx, "check_session", err)
		s.setUser(nil)
	}
	return nil
}

// Login validates credentials and, on success, resolves the session into a
// user. The current user stays unset on failure.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.setLoading(true)
	if _, err := s.gw.Auth().SignInWithPassword(ctx, email, password); err != nil {
		s.setLoading(false)
		s.log.LogError(ctx, "login", err)
		return err
	}
	return s.CheckSession(ctx)
}

// Logout signs out remotely and unconditionally clears the current user and
// the owned-club list.
func (s *Store) Logout(ctx context.Context) error {
	err := s.gw.Auth().SignOut(ctx)

	s.mu.Lock()
	s.currentUser = nil
	s.clubs = nil
	s.mu.Unlock()

	return err
}

// Register creates an account with the display name as profile metadata. It
// does not sign the user in.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	s.setLoading(true)
	defer s.setLoading(false)
	if err := s.gw.Auth().SignUp(ctx, name, email, password); err != nil {
		s.log.LogError(ctx, "register", err)
		return err
	}
	return nil
}

// BindAuthEvents subscribes the store to the gateway's auth event stream:
// sign-in and token refresh re-check the session and reload the owned clubs,
// sign-out clears the state. It returns an unsubscribe function.
func (s *Store) BindAuthEvents() func() {
	return s.gw.Auth().OnAuthStateChange(func(event gateway.AuthEvent, _ *gateway.Session) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		switch event {
		case gateway.EventSignedIn, gateway.EventTokenRefreshed:
			_ = s.CheckSession(ctx)
			_ = s.FetchMyClubs(ctx)
		case gateway.EventSignedOut:
			_ = s.CheckSession(ctx)
		}
	})
}

// synthesizedUser builds a default user from session metadata when no profile
// row exists yet.
func synthesizedUser(sess *gateway.Session) models.User {
	name := "Novo Usuário"
	if v, ok := sess.User.UserMetadata["name"].(string); ok && v != "" {
		name = v
	}
	return models.User{
		ID:     sess.User.ID,
		Name:   name,
		Handle: "@novo",
		Avatar: seed.DefaultAvatar(),
		XP:     0,
		Level:  "Iniciante",
		Coins:  0,
		Email:  sess.User.Email,
	}
}
