package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tribex/internal/gatewaytest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_ResolvesProfile(t *testing.T) {
	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(t.TempDir()))

	user := registerAndLogin(t, s)

	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, "Bronze", user.Level)
	assert.NotEmpty(t, user.Handle)
	assert.False(t, s.IsLoading())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(t.TempDir()))
	ctx := context.Background()

	err := s.Login(ctx, "nobody@example.com", "wrong")
	require.Error(t, err)

	_, ok := s.CurrentUser()
	assert.False(t, ok)
	assert.False(t, s.IsLoading())
}

func TestRegister_DoesNotSignIn(t *testing.T) {
	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(t.TempDir()))
	ctx := context.Background()

	email := fmt.Sprintf("%s@example.com", uuid.NewString()[:8])
	require.NoError(t, s.Register(ctx, "Nova Pessoa", email, "secret-pass"))

	_, ok := s.CurrentUser()
	assert.False(t, ok)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(t.TempDir()))
	ctx := context.Background()

	email := fmt.Sprintf("%s@example.com", uuid.NewString()[:8])
	require.NoError(t, s.Register(ctx, "First", email, "secret-pass"))
	assert.Error(t, s.Register(ctx, "Second", email, "secret-pass"))
}

func TestCheckSession_AnonymousClearsLoading(t *testing.T) {
	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(t.TempDir()))

	require.NoError(t, s.CheckSession(context.Background()))

	_, ok := s.CurrentUser()
	assert.False(t, ok)
	assert.False(t, s.IsLoading())
}

func TestCheckSession_SynthesizesUserWithoutProfile(t *testing.T) {
	srv := gatewaytest.New(t)
	srv.CreateProfileOnSignup = false
	s := newTestStore(t, srv.Config(t.TempDir()))

	user := registerAndLogin(t, s)

	assert.Equal(t, "Test User", user.Name, "name should come from signup metadata")
	assert.Equal(t, "@novo", user.Handle)
	assert.Equal(t, "Iniciante", user.Level)
	assert.Zero(t, user.Coins)
}

func TestLogout_ClearsUserAndClubs(t *testing.T) {
	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(t.TempDir()))
	ctx := context.Background()

	registerAndLogin(t, s)
	_, err := s.AddClub(ctx, newClubFixture("Meu Clube"))
	require.NoError(t, err)
	require.NotEmpty(t, s.Clubs())

	require.NoError(t, s.Logout(ctx))

	_, ok := s.CurrentUser()
	assert.False(t, ok)
	assert.Empty(t, s.Clubs())
}

func TestLogout_ClearsLocallyWhenRemoteFails(t *testing.T) {
	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(t.TempDir()))
	ctx := context.Background()

	registerAndLogin(t, s)
	require.NoError(t, srv.App.Shutdown())

	err := s.Logout(ctx)
	assert.Error(t, err)

	_, ok := s.CurrentUser()
	assert.False(t, ok, "user must be cleared even when the remote call fails")
}

func TestCheckSession_SurvivesRestart(t *testing.T) {
	srv := gatewaytest.New(t)
	cfg := srv.Config(t.TempDir())

	s := newTestStore(t, cfg)
	user := registerAndLogin(t, s)

	// A new gateway and store on the same state directory simulate a fresh
	// process; the persisted session must resolve the same user.
	restarted := newTestStore(t, cfg)
	require.NoError(t, restarted.CheckSession(context.Background()))

	got, ok := restarted.CurrentUser()
	require.True(t, ok, "session must survive a restart")
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Name, got.Name)
}

func TestLogout_DoesNotSurviveRestart(t *testing.T) {
	srv := gatewaytest.New(t)
	cfg := srv.Config(t.TempDir())

	s := newTestStore(t, cfg)
	registerAndLogin(t, s)
	require.NoError(t, s.Logout(context.Background()))

	restarted := newTestStore(t, cfg)
	require.NoError(t, restarted.CheckSession(context.Background()))

	_, ok := restarted.CurrentUser()
	assert.False(t, ok)
}

func TestBindAuthEvents_SignInLoadsSessionAndClubs(t *testing.T) {
	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(t.TempDir()))
	ctx := context.Background()

	unbind := s.BindAuthEvents()
	defer unbind()

	email := fmt.Sprintf("%s@example.com", uuid.NewString()[:8])
	require.NoError(t, s.Register(ctx, "Test User", email, "secret-pass"))

	// Sign in through the gateway directly; the bound handler must populate
	// the store.
	_, err := s.Gateway().Auth().SignInWithPassword(ctx, email, "secret-pass")
	require.NoError(t, err)

	user, ok := s.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Test User", user.Name)
}

func TestBindAuthEvents_TokenRefreshReloadsSessionAndClubs(t *testing.T) {
	srv := gatewaytest.New(t)
	srv.TokenTTL = 2 * time.Second
	club := srv.SeedClub(t, gatewaytest.Club{Name: "Renovado"})

	s := newTestStore(t, srv.Config(t.TempDir()))
	unbind := s.BindAuthEvents()
	defer unbind()

	user := registerAndLogin(t, s)
	ctx := context.Background()
	require.NoError(t, s.FetchAllClubs(ctx))
	_, err := s.JoinClub(ctx, club.ID)
	require.NoError(t, err)

	// Wipe the in-memory state; only the bound refresh handler can rebuild
	// it.
	s.mu.Lock()
	s.currentUser = nil
	s.clubs = nil
	s.mu.Unlock()

	require.Eventually(t, func() bool {
		got, ok := s.CurrentUser()
		return ok && got.ID == user.ID && len(s.Clubs()) == 1
	}, 5*time.Second, 50*time.Millisecond, "token refresh must re-resolve the session and clubs")
}
