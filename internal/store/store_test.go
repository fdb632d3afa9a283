package store

import (
	"context"
	"fmt"
	"testing"

	"tribex/internal/config"
	"tribex/internal/gateway"
	"tribex/internal/gatewaytest"
	"tribex/internal/models"
	"tribex/internal/seed"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, cfg *config.Config) *Store {
	t.Helper()
	gw := gateway.New(cfg)
	t.Cleanup(gw.Auth().Close)
	return New(cfg, gw, seed.Fixed{})
}

// registerAndLogin creates a fresh account on the fixture and signs the store
// in with it.
func registerAndLogin(t *testing.T, s *Store) models.User {
	t.Helper()
	ctx := context.Background()
	email := fmt.Sprintf("%s@example.com", uuid.NewString()[:8])

	require.NoError(t, s.Register(ctx, "Test User", email, "secret-pass"))
	require.NoError(t, s.Login(ctx, email, "secret-pass"))

	user, ok := s.CurrentUser()
	require.True(t, ok, "expected a signed-in user after login")
	return user
}

func TestNew_StartsLoadingAndAnonymous(t *testing.T) {
	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(t.TempDir()))

	assert.True(t, s.IsLoading())
	_, ok := s.CurrentUser()
	assert.False(t, ok)
	assert.Empty(t, s.Posts())
	assert.Empty(t, s.Clubs())
	assert.Equal(t, models.DefaultAppSettings(), s.AppSettings())
}

func TestUpcomingEvents_ComeFromProvider(t *testing.T) {
	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(t.TempDir()))

	events := s.UpcomingEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "ev-1", events[0].ID)
}

func TestRecommendedClubs_FallsBackToDemoClubs(t *testing.T) {
	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(t.TempDir()))

	recs := s.RecommendedClubs()
	require.Len(t, recs, 2)
	assert.Equal(t, "mock-1", recs[0].ID)
	assert.Equal(t, "mock-2", recs[1].ID)
}

func TestRecommendedClubs_CapsAtThree(t *testing.T) {
	srv := gatewaytest.New(t)
	for i := 0; i < 5; i++ {
		srv.SeedClub(t, gatewaytest.Club{Name: fmt.Sprintf("Club %d", i)})
	}

	s := newTestStore(t, srv.Config(t.TempDir()))
	require.NoError(t, s.FetchAllClubs(context.Background()))

	assert.Len(t, s.RecommendedClubs(), 3)
}

func TestAccessors_ReturnCopies(t *testing.T) {
	srv := gatewaytest.New(t)
	srv.SeedPost(t, gatewaytest.Post{UserID: "u1", Content: "hello"})

	s := newTestStore(t, srv.Config(t.TempDir()))
	require.NoError(t, s.FetchPosts(context.Background(), ""))

	posts := s.Posts()
	require.NotEmpty(t, posts)
	posts[0].Content = "mutated"

	assert.NotEqual(t, "mutated", s.Posts()[0].Content)
}

func TestPosts_DetachesEmbeddedAuthorAndClub(t *testing.T) {
	s := newTestStore(t, gatewaytest.UnreachableConfig(t.TempDir()))
	require.NoError(t, s.FetchPosts(context.Background(), ""))

	posts := s.Posts()
	require.NotEmpty(t, posts)
	require.NotNil(t, posts[0].Author)
	require.NotNil(t, posts[0].Club)

	posts[0].Author.Name = "mutated"
	posts[0].Club.Name = "mutated"

	fresh := s.Posts()
	assert.Equal(t, "Admin TriboX", fresh[0].Author.Name)
	assert.Equal(t, "TriboX Oficial", fresh[0].Club.Name)
}

func TestClubs_DetachMembersAndBenefits(t *testing.T) {
	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(t.TempDir()))
	registerAndLogin(t, s)
	ctx := context.Background()

	_, err := s.AddClub(ctx, newClubFixture("Isolado"))
	require.NoError(t, err)
	require.NoError(t, s.FetchAllClubs(ctx))

	clubs := s.Clubs()
	require.NotEmpty(t, clubs)
	require.NotEmpty(t, clubs[0].Members)
	clubs[0].Members[0].Role = models.ClubRoleAdmin
	assert.Equal(t, models.ClubRoleOwner, s.Clubs()[0].Members[0].Role)

	all := s.AllClubs()
	require.NotEmpty(t, all)
	require.NotEmpty(t, all[0].Benefits)
	all[0].Benefits[0] = "mutated"
	assert.NotEqual(t, "mutated", s.AllClubs()[0].Benefits[0])
}
