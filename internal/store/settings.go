package store

import "tribex/internal/models"

// UpdateAppSettings merges a preferences patch and writes the persisted
// slice synchronously. AppSettings is the only state surviving a restart.
func (s *Store) UpdateAppSettings(patch models.AppSettingsPatch) error {
	s.mu.Lock()
	if patch.Language != nil {
		s.appSettings.Language = *patch.Language
	}
	if patch.Currency != nil {
		s.appSettings.Currency = *patch.Currency
	}
	if patch.Theme != nil {
		s.appSettings.Theme = *patch.Theme
	}
	if patch.ReducedMotion != nil {
		s.appSettings.ReducedMotion = *patch.ReducedMotion
	}
	snapshot := s.appSettings
	s.mu.Unlock()

	return s.state.save(persistedState{AppSettings: snapshot})
}
