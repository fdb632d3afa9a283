package gateway

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"tribex/internal/observability"

	"github.com/golang-jwt/jwt/v5"
)

// AuthEvent identifies a change in authentication state.
type AuthEvent string

const (
	// EventSignedIn fires after a successful password sign-in.
	EventSignedIn AuthEvent = "SIGNED_IN"
	// EventTokenRefreshed fires after a successful background token refresh.
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
	// EventSignedOut fires after sign-out or a failed refresh.
	EventSignedOut AuthEvent = "SIGNED_OUT"
)

// refreshLeeway is how long before expiry the access token is refreshed.
const refreshLeeway = 30 * time.Second

// SessionUser is the session-scoped view of the authenticated account.
type SessionUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// Session holds the tokens and account identity returned by the auth service.
type Session struct {
	AccessToken  string      `json:"access_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	RefreshToken string      `json:"refresh_token"`
	User         SessionUser `json:"user"`
	ExpiresAt    time.Time   `json:"-"`
}

// Auth manages the session lifecycle against the service's auth endpoints.
// The session is persisted under STATE_DIR so it survives a process exit.
type Auth struct {
	c    *Client
	file *sessionFile

	mu           sync.Mutex
	session      *Session
	refreshTimer *time.Timer
	handlers     map[int]func(AuthEvent, *Session)
	nextHandler  int
}

func newAuth(c *Client, stateDir string) *Auth {
	a := &Auth{
		c:        c,
		file:     newSessionFile(stateDir),
		handlers: make(map[int]func(AuthEvent, *Session)),
	}

	if sess, err := a.file.load(); err == nil && sess != nil {
		if time.Until(sess.ExpiresAt) > refreshLeeway {
			a.install(sess)
		} else {
			// The stored access token is expired or about to be; trade the
			// refresh token before anything uses the session.
			a.session = sess
			a.refresh()
		}
	}
	return a
}

// SignUp creates an account with the display name stored as profile metadata.
// It does not establish a session.
func (a *Auth) SignUp(ctx context.Context, name, email, password string) error {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     map[string]any{"name": name},
	}
	status, err := a.c.do(ctx, http.MethodPost, "/auth/v1/signup", nil, nil, body, nil)
	a.c.log.LogRequest(ctx, http.MethodPost, "auth.signup", status)
	return err
}

// SignInWithPassword validates credentials and establishes a session.
func (a *Auth) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	q := url.Values{"grant_type": {"password"}}

	var sess Session
	status, err := a.c.do(ctx, http.MethodPost, "/auth/v1/token", q, nil, body, &sess)
	a.c.log.LogRequest(ctx, http.MethodPost, "auth.token", status)
	if err != nil {
		return nil, err
	}

	a.install(&sess)
	a.emit(EventSignedIn, &sess)
	return &sess, nil
}

// SignOut revokes the session remotely and clears it locally. The local
// session is cleared even when the remote call fails.
func (a *Auth) SignOut(ctx context.Context) error {
	status, err := a.c.do(ctx, http.MethodPost, "/auth/v1/logout", nil, nil, nil, nil)
	a.c.log.LogRequest(ctx, http.MethodPost, "auth.logout", status)

	a.clear()
	a.emit(EventSignedOut, nil)
	return err
}

// Session returns a copy of the current session, or nil when anonymous.
func (a *Auth) Session() *Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil
	}
	copied := *a.session
	return &copied
}

// OnAuthStateChange registers a handler for auth events and returns an
// unsubscribe function. Handlers run synchronously, outside the auth lock.
func (a *Auth) OnAuthStateChange(fn func(AuthEvent, *Session)) func() {
	a.mu.Lock()
	id := a.nextHandler
	a.nextHandler++
	a.handlers[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.handlers, id)
		a.mu.Unlock()
	}
}

// Close stops the background refresh timer.
func (a *Auth) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.refreshTimer != nil {
		a.refreshTimer.Stop()
		a.refreshTimer = nil
	}
}

// install stores the session, persists it, and schedules the background
// refresh.
func (a *Auth) install(sess *Session) {
	sess.ExpiresAt = sessionExpiry(sess)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = sess
	if err := a.file.save(sess); err != nil {
		a.c.log.LogError(context.Background(), "PUT", "auth.session", err)
	}
	if a.refreshTimer != nil {
		a.refreshTimer.Stop()
	}
	wait := time.Until(sess.ExpiresAt) - refreshLeeway
	if wait < time.Second {
		wait = time.Second
	}
	a.refreshTimer = time.AfterFunc(wait, a.refresh)
}

func (a *Auth) clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = nil
	a.file.remove()
	if a.refreshTimer != nil {
		a.refreshTimer.Stop()
		a.refreshTimer = nil
	}
}

// refresh exchanges the refresh token for a new session. A failed refresh is
// treated as a sign-out, matching the service's own event stream.
func (a *Auth) refresh() {
	a.mu.Lock()
	if a.session == nil {
		a.mu.Unlock()
		return
	}
	refreshToken := a.session.RefreshToken
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	body := map[string]string{"refresh_token": refreshToken}
	q := url.Values{"grant_type": {"refresh_token"}}

	var sess Session
	status, err := a.c.do(ctx, http.MethodPost, "/auth/v1/token", q, nil, body, &sess)
	a.c.log.LogRequest(ctx, http.MethodPost, "auth.token", status)
	if err != nil {
		a.c.log.LogError(ctx, http.MethodPost, "auth.token", err)
		a.clear()
		a.emit(EventSignedOut, nil)
		return
	}

	a.install(&sess)
	a.emit(EventTokenRefreshed, &sess)
}

// emit delivers an event to all registered handlers, outside the lock.
func (a *Auth) emit(event AuthEvent, sess *Session) {
	a.mu.Lock()
	fns := make([]func(AuthEvent, *Session), 0, len(a.handlers))
	for _, fn := range a.handlers {
		fns = append(fns, fn)
	}
	a.mu.Unlock()

	observability.AuthEvents.WithLabelValues(string(event)).Inc()
	a.c.log.LogAuthEvent(context.Background(), string(event))
	for _, fn := range fns {
		fn(event, sess)
	}
}

// sessionExpiry derives the access token expiry, preferring the token's exp
// claim over the advertised expires_in.
func sessionExpiry(sess *Session) time.Time {
	parser := jwt.NewParser()
	var claims jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(sess.AccessToken, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(time.Duration(sess.ExpiresIn) * time.Second)
}
