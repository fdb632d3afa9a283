package store

import (
	"strings"
	"testing"

	"tribex/internal/gatewaytest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInviteLink(t *testing.T) {
	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(t.TempDir()))

	link := s.GenerateInviteLink("club-123")
	require.True(t, strings.HasPrefix(link, "http://localhost:5173/join/"), link)

	token := strings.TrimPrefix(link, "http://localhost:5173/join/")
	assert.Len(t, token, inviteTokenLen)
	assert.NotContains(t, token, "club-123", "the token must not expose the club id")
}

func TestGenerateInviteLink_TokensDiffer(t *testing.T) {
	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(t.TempDir()))

	first := s.GenerateInviteLink("club-123")
	second := s.GenerateInviteLink("club-123")

	assert.NotEqual(t, first, second, "repeated invites for one club must differ")
}
