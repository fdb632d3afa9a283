package gateway

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// sessionFileName sits next to the store's state file under STATE_DIR. The
// store persists preferences only; the session is the gateway's to keep.
const sessionFileName = "tribox-session.json"

// sessionRecord is the on-disk shape of a session. The expiry is stored
// explicitly because Session derives it from the access token on install.
type sessionRecord struct {
	Session
	StoredExpiresAt time.Time `json:"expires_at"`
}

type sessionFile struct {
	path string
}

func newSessionFile(dir string) *sessionFile {
	if dir == "" {
		dir = "."
	}
	return &sessionFile{path: filepath.Join(dir, sessionFileName)}
}

// load reads the persisted session, returning nil when none exists or the
// file is unusable.
func (f *sessionFile) load() (*Session, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var rec sessionRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, err
	}
	if rec.AccessToken == "" || rec.RefreshToken == "" {
		return nil, nil
	}

	sess := rec.Session
	sess.ExpiresAt = rec.StoredExpiresAt
	return &sess, nil
}

// save writes the session synchronously. Tokens grant account access, so the
// file is owner-readable only.
func (f *sessionFile) save(sess *Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(sessionRecord{Session: *sess, StoredExpiresAt: sess.ExpiresAt}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, b, 0o600)
}

// remove deletes the persisted session, if any.
func (f *sessionFile) remove() {
	_ = os.Remove(f.path)
}
