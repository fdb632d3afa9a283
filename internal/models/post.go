package models

import "time"

// PostAuthor carries the denormalized author fields embedded in a feed row.
type PostAuthor struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// PostClub carries the denormalized club name embedded in a feed row.
type PostClub struct {
	Name string `json:"name"`
}

// Post is a feed item. The shape mirrors the posts table joined with the
// author profile and club display fields; counters are display-only and never
// incremented locally.
type Post struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	ClubID        string      `json:"club_id,omitempty"`
	Content       string      `json:"content"`
	ImageURL      string      `json:"image_url,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	LikesCount    int         `json:"likes_count"`
	CommentsCount int         `json:"comments_count"`
	Author        *PostAuthor `json:"profiles,omitempty"`
	Club          *PostClub   `json:"clubs,omitempty"`
}
