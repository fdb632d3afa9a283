// Package seed supplies the demonstration content shown when the hosted
// service returns nothing usable. It is the only source of non-remote data in
// the application.
package seed

import (
	"time"

	"tribex/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Provider yields empty-state content. The store consults it only when a
// fetch fails with an empty local cache, or when the explore listing comes
// back empty.
type Provider interface {
	DemoFeed() []models.Post
	DemoClubs() []models.Club
	MemberCountPlaceholder() int
	Products() []models.Product
	CoinPackages() []models.CoinPackage
	UpcomingEvents() []models.Event
}

// Fixed is the default Provider carrying the deterministic launch content.
type Fixed struct{}

var _ Provider = Fixed{}

// DemoFeed returns the single welcome post used when the feed cannot be
// fetched and nothing is cached.
func (Fixed) DemoFeed() []models.Post {
	return []models.Post{
		{
			ID:            "1",
			UserID:        "user1",
			Content:       "Bem-vindos ao TriboX! Estamos muito felizes em lançar esta plataforma.",
			CreatedAt:     time.Now(),
			LikesCount:    12,
			CommentsCount: 4,
			Author:        &models.PostAuthor{Name: "Admin TriboX", AvatarURL: defaultAvatar},
			Club:          &models.PostClub{Name: "TriboX Oficial"},
		},
	}
}

// DemoClubs returns the two clubs shown on the explore page when the listing
// is empty or unreachable.
func (Fixed) DemoClubs() []models.Club {
	return []models.Club{
		{
			ID:           "mock-1",
			Name:         "React Developers",
			Description:  "A maior comunidade de React do Brasil e Portugal.",
			MembersCount: 1250,
			Image:        defaultAvatar,
			CoverImage:   "https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=800&auto=format&fit=crop&q=60",
			Category:     "Tech",
			IsPremium:    false,
			Type:         models.ClubTypePublic,
			Settings:     models.DefaultClubSettings(),
			Members:      []models.ClubMember{},
			Benefits:     []string{"Vagas de emprego", "Mentoria", "Live Coding"},
		},
		{
			ID:           "mock-2",
			Name:         "Clube dos Investidores",
			Description:  "Dicas diárias sobre ações, cripto e mercado financeiro.",
			MembersCount: 890,
			Image:        "https://images.unsplash.com/photo-1611974765270-ca1258634369?w=800&auto=format&fit=crop&q=60",
			CoverImage:   "https://images.unsplash.com/photo-1590283603385-17ffb3a7f29f?w=800&auto=format&fit=crop&q=60",
			Category:     "Business",
			IsPremium:    true,
			Type:         models.ClubTypePaid,
			Settings: models.ClubSettings{
				AllowMemberPosts:  false,
				RequireApproval:   true,
				IsPrivate:         true,
				SubscriptionPrice: 29,
				Currency:          "EUR",
			},
			Members:  []models.ClubMember{},
			Benefits: []string{"Sinais de trade", "Carteira recomendada", "Análise semanal"},
		},
	}
}

// MemberCountPlaceholder returns the randomized member count shown for clubs
// whose real count is not loaded.
func (Fixed) MemberCountPlaceholder() int {
	return gofakeit.Number(1, 500)
}

// Products returns the marketplace catalog of digital goods.
func (Fixed) Products() []models.Product {
	return []models.Product{
		{ID: "prod-1", Title: "Curso React Avançado", Author: "Devs React", Type: models.ProductTypeCourse, Price: 2500, Rating: 4.8,
			Image: "https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=800&auto=format&fit=crop&q=60"},
		{ID: "prod-2", Title: "Guia de Sobrevivência", Author: "Os Aventureiros", Type: models.ProductTypeEbook, Price: 500, Rating: 4.5,
			Image: "https://images.unsplash.com/photo-1504280390367-361c6d9f38f4?w=800&auto=format&fit=crop&q=60"},
		{ID: "prod-3", Title: "Pack de Presets Lightroom", Author: "Pintores Digitais", Type: models.ProductTypeAsset, Price: 1200, Rating: 4.9,
			Image: "https://images.unsplash.com/photo-1513364776144-60967b0f800f?w=800&auto=format&fit=crop&q=60"},
		{ID: "prod-4", Title: "Podcast Exclusivo: Tech Trends", Author: "Tech Insider", Type: models.ProductTypeAudio, Price: 300, Rating: 4.7,
			Image: "https://images.unsplash.com/photo-1478737270239-2f02b77ac6d5?w=800&auto=format&fit=crop&q=60"},
	}
}

// CoinPackages returns the wallet's purchasable coin bundles.
func (Fixed) CoinPackages() []models.CoinPackage {
	return []models.CoinPackage{
		{Amount: 500, Price: "5,00 €"},
		{Amount: 1000, Price: "9,00 €", Bonus: "10%"},
		{Amount: 2000, Price: "17,00 €", Bonus: "15%"},
		{Amount: 5000, Price: "40,00 €", Bonus: "20%"},
	}
}

// UpcomingEvents returns the read-only events shown in the side panel.
func (Fixed) UpcomingEvents() []models.Event {
	return []models.Event{
		{ID: "ev-1", Title: "Live Coding: React Server Components", Date: "2026-09-12", ClubName: "React Developers",
			Image: "https://images.unsplash.com/photo-1633356122544-f134324a6cee?w=800&auto=format&fit=crop&q=60"},
		{ID: "ev-2", Title: "Análise Semanal de Mercado", Date: "2026-09-15", ClubName: "Clube dos Investidores",
			Image: "https://images.unsplash.com/photo-1590283603385-17ffb3a7f29f?w=800&auto=format&fit=crop&q=60"},
	}
}

const defaultAvatar = "https://github.com/shadcn.png"

// DefaultAvatar is the avatar applied to profiles without one.
func DefaultAvatar() string {
	return defaultAvatar
}

// DefaultCover is the cover image applied to clubs without one.
func DefaultCover() string {
	return "https://images.unsplash.com/photo-1522071820081-009f0129c71c?w=800&auto=format&fit=crop&q=60"
}
