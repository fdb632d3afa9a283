// Package routes resolves the application's navigation surface against the
// current session state: public routes, the authenticated route group, and
// the catch-all redirect.
package routes

import "strings"

// SessionState is the authentication state a route decision depends on.
type SessionState int

const (
	// SessionLoading means the initial session check has not completed.
	SessionLoading SessionState = iota
	// SessionAnonymous means no user is signed in.
	SessionAnonymous
	// SessionAuthenticated means a user is signed in.
	SessionAuthenticated
)

// Decision is the outcome of resolving a path.
type Decision struct {
	Allow      bool
	RedirectTo string
	// Pending is true while the session state is still loading; the caller
	// should hold rendering rather than redirect.
	Pending bool
}

var publicPaths = map[string]bool{
	"/":         true,
	"/login":    true,
	"/register": true,
}

var appSubpaths = map[string]bool{
	"":              true,
	"explore":       true,
	"wallet":        true,
	"marketplace":   true,
	"settings":      true,
	"clubs":         true,
	"events":        true,
	"messages":      true,
	"notifications": true,
}

// Resolve decides whether the session may view path, or where it should be
// sent instead. Public routes bounce authenticated users into the app;
// protected routes bounce anonymous users to login; unknown paths fall back
// to the landing page.
func Resolve(path string, state SessionState) Decision {
	if state == SessionLoading {
		return Decision{Pending: true}
	}

	if publicPaths[path] {
		if state == SessionAuthenticated {
			return Decision{RedirectTo: "/app"}
		}
		return Decision{Allow: true}
	}

	if isAppPath(path) {
		if state != SessionAuthenticated {
			return Decision{RedirectTo: "/login"}
		}
		return Decision{Allow: true}
	}

	return Decision{RedirectTo: "/"}
}

func isAppPath(path string) bool {
	if path == "/app" {
		return true
	}
	rest, ok := strings.CutPrefix(path, "/app/")
	if !ok {
		return false
	}
	head, tail, _ := strings.Cut(rest, "/")
	if !appSubpaths[head] {
		return false
	}
	// Club detail pages are /app/clubs/<id>; other sections take no suffix.
	if tail != "" && head != "clubs" {
		return false
	}
	return true
}
