package models

// Theme is the UI color scheme preference.
type Theme string

const (
	// ThemeDark is the default dark scheme.
	ThemeDark Theme = "dark"
	// ThemeLight is the light scheme.
	ThemeLight Theme = "light"
)

// AppSettings holds user-level UI preferences. This is the only state slice
// that survives a process restart.
type AppSettings struct {
	Language      string `json:"language"`
	Currency      string `json:"currency"`
	Theme         Theme  `json:"theme"`
	ReducedMotion bool   `json:"reducedMotion"`
}

// DefaultAppSettings returns the preferences applied before any persisted
// state is loaded.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Language:      "pt-PT",
		Currency:      "EUR",
		Theme:         ThemeDark,
		ReducedMotion: false,
	}
}

// AppSettingsPatch is a partial update over AppSettings; nil fields are left
// untouched.
type AppSettingsPatch struct {
	Language      *string `json:"language,omitempty"`
	Currency      *string `json:"currency,omitempty"`
	Theme         *Theme  `json:"theme,omitempty"`
	ReducedMotion *bool   `json:"reducedMotion,omitempty"`
}

// ClubSettingsPatch is a partial update over ClubSettings.
type ClubSettingsPatch struct {
	AllowMemberPosts  *bool   `json:"allowMemberPosts,omitempty"`
	RequireApproval   *bool   `json:"requireApproval,omitempty"`
	IsPrivate         *bool   `json:"isPrivate,omitempty"`
	SubscriptionPrice *int    `json:"subscriptionPrice,omitempty"`
	Currency          *string `json:"currency,omitempty"`
}
