package models

import "time"

// ClubType defines a club's visibility.
type ClubType string

const (
	// ClubTypePublic is a club anyone can browse and join.
	ClubTypePublic ClubType = "public"
	// ClubTypePrivate is an invite/approval gated club.
	ClubTypePrivate ClubType = "private"
	// ClubTypePaid is a club gated behind a subscription.
	ClubTypePaid ClubType = "paid"
)

// ClubRole defines a member's role in a club.
type ClubRole string

const (
	// ClubRoleOwner is the club owner role.
	ClubRoleOwner ClubRole = "owner"
	// ClubRoleAdmin is the club administrator role.
	ClubRoleAdmin ClubRole = "admin"
	// ClubRoleModerator is the club moderator role.
	ClubRoleModerator ClubRole = "moderator"
	// ClubRoleMember is the default member role.
	ClubRoleMember ClubRole = "member"
)

// ClubSettings is the per-club policy embedded in a Club.
type ClubSettings struct {
	AllowMemberPosts  bool   `json:"allowMemberPosts"`
	RequireApproval   bool   `json:"requireApproval"`
	IsPrivate         bool   `json:"isPrivate"`
	SubscriptionPrice int    `json:"subscriptionPrice"`
	Currency          string `json:"currency"`
}

// DefaultClubSettings returns the settings applied to clubs whose persisted
// settings are not loaded.
func DefaultClubSettings() ClubSettings {
	return ClubSettings{
		AllowMemberPosts:  true,
		RequireApproval:   false,
		IsPrivate:         false,
		SubscriptionPrice: 0,
		Currency:          "EUR",
	}
}

// ClubMember maps a user to a club and tracks role.
type ClubMember struct {
	UserID   string    `json:"userId"`
	User     User      `json:"user"`
	Role     ClubRole  `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Club represents a community space.
type Club struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	MembersCount int          `json:"membersCount"`
	Image        string       `json:"image"`
	CoverImage   string       `json:"coverImage"`
	Category     string       `json:"category"`
	IsPremium    bool         `json:"isPremium"`
	Type         ClubType     `json:"type"`
	Settings     ClubSettings `json:"settings"`
	Members      []ClubMember `json:"members"`
	OwnerID      string       `json:"owner_id,omitempty"`
	Benefits     []string     `json:"benefits,omitempty"`
}

// NewClub holds the caller-supplied fields for club creation.
type NewClub struct {
	Name        string
	Description string
	Category    string
	Type        ClubType
	Image       string
}
