package seed

import (
	"time"

	"tribex/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Factories generate randomized fixtures for tests and local development.

// FakeUser builds a plausible user view model.
func FakeUser() models.User {
	name := gofakeit.Name()
	return models.User{
		ID:     uuid.NewString(),
		Name:   name,
		Handle: "@" + gofakeit.Username(),
		Avatar: defaultAvatar,
		XP:     gofakeit.Number(0, 5000),
		Level:  gofakeit.RandomString([]string{"Bronze", "Prata", "Ouro", "Platina"}),
		Coins:  gofakeit.Number(0, 10000),
		Email:  gofakeit.Email(),
	}
}

// FakePost builds a plausible feed post authored by the given user.
func FakePost(author models.User) models.Post {
	return models.Post{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		Content:   gofakeit.Sentence(12),
		CreatedAt: time.Now().Add(-time.Duration(gofakeit.Number(1, 72)) * time.Hour),
		Author:    &models.PostAuthor{Name: author.Name, AvatarURL: author.Avatar},
	}
}

// FakeClub builds a plausible public club owned by the given user.
func FakeClub(owner models.User) models.Club {
	return models.Club{
		ID:           uuid.NewString(),
		Name:         gofakeit.Company(),
		Description:  gofakeit.Sentence(8),
		MembersCount: 1,
		Image:        defaultAvatar,
		CoverImage:   DefaultCover(),
		Category:     gofakeit.RandomString([]string{"Tech", "Business", "Arte", "Desporto"}),
		Type:         models.ClubTypePublic,
		Settings:     models.DefaultClubSettings(),
		OwnerID:      owner.ID,
		Members: []models.ClubMember{
			{UserID: owner.ID, User: owner, Role: models.ClubRoleOwner, JoinedAt: time.Now()},
		},
	}
}
