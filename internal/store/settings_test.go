package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"tribex/internal/gatewaytest"
	"tribex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateAppSettings_MergesPatch(t *testing.T) {
	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(t.TempDir()))

	theme := models.ThemeLight
	require.NoError(t, s.UpdateAppSettings(models.AppSettingsPatch{Theme: &theme}))

	settings := s.AppSettings()
	assert.Equal(t, models.ThemeLight, settings.Theme)
	assert.Equal(t, "pt-PT", settings.Language, "untouched fields keep their value")
	assert.Equal(t, "EUR", settings.Currency)
}

func TestAppSettings_SurviveRestart(t *testing.T) {
	srv := gatewaytest.New(t)
	stateDir := t.TempDir()

	s := newTestStore(t, srv.Config(stateDir))
	lang := "en-US"
	motion := true
	require.NoError(t, s.UpdateAppSettings(models.AppSettingsPatch{
		Language:      &lang,
		ReducedMotion: &motion,
	}))

	// A new store on the same state directory simulates a restart.
	restarted := newTestStore(t, srv.Config(stateDir))
	settings := restarted.AppSettings()
	assert.Equal(t, "en-US", settings.Language)
	assert.True(t, settings.ReducedMotion)
	assert.Equal(t, models.ThemeDark, settings.Theme)
}

func TestPersistence_OnlyAppSettingsWritten(t *testing.T) {
	srv := gatewaytest.New(t)
	stateDir := t.TempDir()

	s := newTestStore(t, srv.Config(stateDir))
	registerAndLogin(t, s)
	s.AddCoins(999)

	lang := "en-US"
	require.NoError(t, s.UpdateAppSettings(models.AppSettingsPatch{Language: &lang}))

	b, err := os.ReadFile(filepath.Join(stateDir, "tribox-storage.json"))
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Contains(t, raw, "appSettings")
	assert.Len(t, raw, 1, "session and wallet state must never enter the store's state file")

	// The wallet balance is volatile: a restarted store rebuilds the user
	// from the gateway session and the coin delta is gone.
	restarted := newTestStore(t, srv.Config(stateDir))
	require.NoError(t, restarted.CheckSession(context.Background()))
	user, ok := restarted.CurrentUser()
	require.True(t, ok)
	assert.Zero(t, user.Coins)
}

func TestStateFile_CorruptFallsBackToDefaults(t *testing.T) {
	stateDir := t.TempDir()
	path := filepath.Join(stateDir, "tribox-storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	srv := gatewaytest.New(t)
	s := newTestStore(t, srv.Config(stateDir))

	assert.Equal(t, models.DefaultAppSettings(), s.AppSettings())
}
