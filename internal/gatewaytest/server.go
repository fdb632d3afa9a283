// Package gatewaytest runs an in-process fake of the hosted backend service
// (auth endpoints, table REST endpoints, realtime websocket) so the gateway
// and store can be exercised over real HTTP in tests.
package gatewaytest

import (
	"net"
	"sync"
	"testing"
	"time"

	"tribex/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// AnonKey is the api key the fixture accepts.
const AnonKey = "test-anon-key"

// Server is one running fixture instance.
type Server struct {
	App *fiber.App
	DB  *gorm.DB
	URL string

	// JWTSecret signs the access tokens the fixture issues.
	JWTSecret string
	// TokenTTL is the access token lifetime; shorten it to exercise refresh.
	TokenTTL time.Duration
	// CreateProfileOnSignup simulates the database trigger that creates a
	// profile row for each new account. Disable to test the synthesized-user
	// path.
	CreateProfileOnSignup bool

	hub *hub

	mu            sync.Mutex
	refreshTokens map[string]string // refresh token -> user id
}

// AuthUser is a fixture account row.
type AuthUser struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}

// TableName specifies the table name for GORM.
func (AuthUser) TableName() string { return "auth_users" }

// Profile mirrors the hosted profiles table.
type Profile struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Handle    string
	AvatarURL string
	XP        int
	Level     string
	Coins     int
	IsPremium bool
}

// TableName specifies the table name for GORM.
func (Profile) TableName() string { return "profiles" }

// Post mirrors the hosted posts table.
type Post struct {
	ID            string `gorm:"primaryKey"`
	UserID        string
	ClubID        *string
	Content       string
	ImageURL      string
	CreatedAt     time.Time
	LikesCount    int
	CommentsCount int
}

// TableName specifies the table name for GORM.
func (Post) TableName() string { return "posts" }

// Club mirrors the hosted clubs table.
type Club struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Description string
	ImageURL    string
	CoverURL    string
	Category    string
	Type        string
	IsPremium   bool
	OwnerID     string
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM.
func (Club) TableName() string { return "clubs" }

// ClubMember mirrors the hosted club_members table. The composite primary
// key is the authoritative duplicate-join enforcement.
type ClubMember struct {
	ClubID    string `gorm:"primaryKey;autoIncrement:false"`
	UserID    string `gorm:"primaryKey;autoIncrement:false"`
	Role      string
	CreatedAt time.Time
}

// TableName specifies the table name for GORM.
func (ClubMember) TableName() string { return "club_members" }

// New starts a fixture on a random local port and registers its shutdown
// with the test.
func New(t *testing.T) *Server {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	if err := db.AutoMigrate(&AuthUser{}, &Profile{}, &Post{}, &Club{}, &ClubMember{}); err != nil {
		t.Fatalf("migrate fixture db: %v", err)
	}

	s := &Server{
		DB:                    db,
		JWTSecret:             "gatewaytest-secret",
		TokenTTL:              time.Hour,
		CreateProfileOnSignup: true,
		hub:                   newHub(),
		refreshTokens:         make(map[string]string),
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	s.setupRoutes(app)
	s.App = app

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	go func() { _ = app.Listener(ln) }()
	s.URL = "http://" + ln.Addr().String()

	t.Cleanup(func() { _ = app.Shutdown() })
	return s
}

// Config returns a gateway configuration pointing at this fixture.
func (s *Server) Config(stateDir string) *config.Config {
	return &config.Config{
		GatewayURL:     s.URL,
		GatewayAnonKey: AnonKey,
		Origin:         "http://localhost:5173",
		StateDir:       stateDir,
		Env:            "test",
	}
}

// UnreachableConfig returns a configuration pointing at a closed port, for
// exercising failure paths.
func UnreachableConfig(stateDir string) *config.Config {
	return &config.Config{
		GatewayURL:     "http://127.0.0.1:1",
		GatewayAnonKey: AnonKey,
		Origin:         "http://localhost:5173",
		StateDir:       stateDir,
		Env:            "test",
	}
}

func (s *Server) setupRoutes(app *fiber.App) {
	app.Post("/auth/v1/signup", s.handleSignup)
	app.Post("/auth/v1/token", s.handleToken)
	app.Post("/auth/v1/logout", s.handleLogout)

	rest := app.Group("/rest/v1", s.requireAPIKey)
	rest.Get("/:table", s.handleSelect)
	rest.Post("/:table", s.handleInsert)

	s.setupRealtime(app)
}

func (s *Server) requireAPIKey(c *fiber.Ctx) error {
	if c.Get("apikey") == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No API key found in request"})
	}
	return c.Next()
}

// SeedClub inserts a club row directly.
func (s *Server) SeedClub(t *testing.T, club Club) Club {
	t.Helper()
	if club.ID == "" {
		club.ID = uuid.NewString()
	}
	if club.Type == "" {
		club.Type = "public"
	}
	club.CreatedAt = time.Now()
	if err := s.DB.Create(&club).Error; err != nil {
		t.Fatalf("seed club: %v", err)
	}
	return club
}

// SeedPost inserts a post row directly.
func (s *Server) SeedPost(t *testing.T, post Post) Post {
	t.Helper()
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	if err := s.DB.Create(&post).Error; err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}
