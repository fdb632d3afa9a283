package store

import (
	"time"

	"tribex/internal/models"
	"tribex/internal/seed"
)

// Wire row shapes returned by the hosted service's tables, distinct from the
// view models the presentation layer consumes.

type profileRow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Handle    string `json:"handle"`
	AvatarURL string `json:"avatar_url"`
	XP        int    `json:"xp"`
	Level     string `json:"level"`
	Coins     int    `json:"coins"`
	IsPremium bool   `json:"is_premium"`
}

type clubRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	CoverURL    string `json:"cover_url"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	IsPremium   bool   `json:"is_premium"`
	OwnerID     string `json:"owner_id"`
}

type membershipRow struct {
	Role string   `json:"role"`
	Club *clubRow `json:"clubs"`
}

// userFromProfile maps a profile row to the User view model, defaulting the
// fields the profile trigger may not have filled yet.
func userFromProfile(p profileRow, email string) models.User {
	u := models.User{
		ID:        p.ID,
		Name:      p.Name,
		Handle:    p.Handle,
		Avatar:    p.AvatarURL,
		XP:        p.XP,
		Level:     p.Level,
		Coins:     p.Coins,
		IsPremium: p.IsPremium,
		Email:     email,
	}
	if u.Name == "" {
		u.Name = "Usuário"
	}
	if u.Handle == "" {
		id := p.ID
		if len(id) > 4 {
			id = id[:4]
		}
		u.Handle = "@user" + id
	}
	if u.Avatar == "" {
		u.Avatar = seed.DefaultAvatar()
	}
	if u.Level == "" {
		u.Level = "Bronze"
	}
	return u
}

// clubFromRow maps a club row to the Club view model with display defaults.
func clubFromRow(row clubRow) models.Club {
	c := models.Club{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Image:       row.ImageURL,
		CoverImage:  row.CoverURL,
		Category:    row.Category,
		IsPremium:   row.IsPremium,
		Type:        models.ClubType(row.Type),
		OwnerID:     row.OwnerID,
		Settings:    models.DefaultClubSettings(),
		Members:     []models.ClubMember{},
	}
	if c.Image == "" {
		c.Image = seed.DefaultAvatar()
	}
	if c.CoverImage == "" {
		c.CoverImage = seed.DefaultCover()
	}
	if c.Category == "" {
		c.Category = "Geral"
	}
	if c.Type == "" {
		c.Type = models.ClubTypePublic
	}
	return c
}

func selfMember(user models.User, role models.ClubRole) []models.ClubMember {
	return []models.ClubMember{
		{UserID: user.ID, User: user, Role: role, JoinedAt: time.Now()},
	}
}
