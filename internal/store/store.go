// Package store is the application state container: session, feed, club,
// wallet, and settings state, with the actions the presentation layer invokes.
// All remote access goes through the gateway; demonstration content comes from
// the seed provider; only the AppSettings slice survives a restart.
package store

import (
	"sync"

	"tribex/internal/config"
	"tribex/internal/gateway"
	"tribex/internal/models"
	"tribex/internal/observability"
	"tribex/internal/seed"
)

// WriteStatus distinguishes a durable remote write from an optimistic
// local-only mutation applied after a remote failure.
type WriteStatus int

const (
	// WriteConfirmed means the remote write succeeded.
	WriteConfirmed WriteStatus = iota
	// WriteLocalOnly means the remote write failed and the mutation exists
	// only in local state.
	WriteLocalOnly
)

// String implements fmt.Stringer.
func (w WriteStatus) String() string {
	if w == WriteLocalOnly {
		return "local-only"
	}
	return "confirmed"
}

// Store holds the process-wide application state.
type Store struct {
	gw       *gateway.Client
	provider seed.Provider
	origin   string
	state    *stateFile
	log      *observability.StoreLogger

	mu             sync.RWMutex
	currentUser    *models.User
	isLoading      bool
	posts          []models.Post
	clubs          []models.Club
	allClubs       []models.Club
	upcomingEvents []models.Event
	appSettings    models.AppSettings
	ownedProducts  map[string]bool
}

// New creates a Store bound to the given gateway. Persisted preferences are
// loaded immediately; everything else starts empty in the loading state.
func New(cfg *config.Config, gw *gateway.Client, provider seed.Provider) *Store {
	s := &Store{
		gw:             gw,
		provider:       provider,
		origin:         cfg.Origin,
		state:          newStateFile(cfg.StateDir),
		log:            observability.NewStoreLogger(),
		isLoading:      true,
		appSettings:    models.DefaultAppSettings(),
		upcomingEvents: provider.UpcomingEvents(),
		ownedProducts:  make(map[string]bool),
	}

	if persisted, err := s.state.load(); err == nil {
		s.appSettings = persisted.AppSettings
	}

	return s
}

// Gateway returns the underlying gateway client.
func (s *Store) Gateway() *gateway.Client {
	return s.gw
}

// CurrentUser returns a copy of the signed-in user, if any.
func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUser == nil {
		return models.User{}, false
	}
	return *s.currentUser, true
}

// IsLoading reports whether the initial session check is still in flight.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

// Posts returns a copy of the feed, detached from store state down to the
// embedded author and club.
func (s *Store) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := make([]models.Post, len(s.posts))
	for i, p := range s.posts {
		posts[i] = clonePost(p)
	}
	return posts
}

// Clubs returns a copy of the owned-club list.
func (s *Store) Clubs() []models.Club {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneClubs(s.clubs)
}

// AllClubs returns a copy of the explore listing.
func (s *Store) AllClubs() []models.Club {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneClubs(s.allClubs)
}

// AppSettings returns the current UI preferences.
func (s *Store) AppSettings() models.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appSettings
}

// UpcomingEvents returns the read-only events shown in the side panel.
func (s *Store) UpcomingEvents() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Event(nil), s.upcomingEvents...)
}

// RecommendedClubs returns up to three clubs to suggest, preferring the
// explore listing and falling back to demonstration clubs.
func (s *Store) RecommendedClubs() []models.Club {
	s.mu.RLock()
	source := cloneClubs(s.allClubs)
	s.mu.RUnlock()

	if len(source) == 0 {
		source = s.provider.DemoClubs()
	}
	if len(source) > 3 {
		source = source[:3]
	}
	return source
}

func clonePost(p models.Post) models.Post {
	if p.Author != nil {
		author := *p.Author
		p.Author = &author
	}
	if p.Club != nil {
		club := *p.Club
		p.Club = &club
	}
	return p
}

func cloneClub(c models.Club) models.Club {
	c.Members = append([]models.ClubMember(nil), c.Members...)
	c.Benefits = append([]string(nil), c.Benefits...)
	return c
}

func cloneClubs(clubs []models.Club) []models.Club {
	out := make([]models.Club, len(clubs))
	for i, c := range clubs {
		out[i] = cloneClub(c)
	}
	return out
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.isLoading = v
	s.mu.Unlock()
}

func (s *Store) setUser(u *models.User) {
	s.mu.Lock()
	s.currentUser = u
	s.mu.Unlock()
}
