package store

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const inviteTokenLen = 16

// GenerateInviteLink derives an opaque invite URL for a club. The token
// encodes the club id, the current time, and a random value, truncated to a
// fixed length. Nothing registers or validates these tokens server-side.
func (s *Store) GenerateInviteLink(clubID string) string {
	raw := fmt.Sprintf("%s-%d-%s", clubID, time.Now().UnixNano(), uuid.NewString())
	sum := sha256.Sum256([]byte(raw))
	token := base64.RawURLEncoding.EncodeToString(sum[:])[:inviteTokenLen]
	return s.origin + "/join/" + token
}
