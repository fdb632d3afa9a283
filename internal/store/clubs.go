package store

import (
	"context"

	"tribex/internal/cache"
	"tribex/internal/models"
	"tribex/internal/observability"
)

var exploreBenefits = []string{"Acesso ao chat", "Conteúdos exclusivos", "Networking"}

// FetchMyClubs replaces the owned-club list from the membership table. It is
// a no-op when anonymous, and retains the previous list on failure or when
// the result is empty.
func (s *Store) FetchMyClubs(ctx context.Context) error {
	user, ok := s.CurrentUser()
	if !ok {
		return nil
	}

	var rows []membershipRow
	err := s.gw.From("club_members").
		Select("role,clubs(id,name,description,image_url,cover_url,category,type,is_premium,owner_id)").
		Eq("user_id", user.ID).
		Get(ctx, &rows)
	if err != nil {
		s.log.LogError(ctx, "fetch_my_clubs", err)
		return nil
	}
	if len(rows) == 0 {
		return nil
	}

	clubs := make([]models.Club, 0, len(rows))
	for _, row := range rows {
		if row.Club == nil {
			continue
		}
		club := clubFromRow(*row.Club)
		club.MembersCount = 1
		club.Members = selfMember(user, models.ClubRole(row.Role))
		clubs = append(clubs, club)
	}

	s.mu.Lock()
	s.clubs = clubs
	s.mu.Unlock()
	return nil
}

// FetchAllClubs replaces the explore listing with up to 50 public clubs.
// An empty or failing result is replaced by the demonstration clubs.
func (s *Store) FetchAllClubs(ctx context.Context) error {
	var rows []clubRow
	err := s.gw.From("clubs").
		Select("*").
		Eq("type", string(models.ClubTypePublic)).
		Limit(50).
		Cached(cache.PublicClubsKey(), cache.ClubsTTL).
		Get(ctx, &rows)

	if err != nil || len(rows) == 0 {
		s.mu.Lock()
		s.allClubs = s.provider.DemoClubs()
		s.mu.Unlock()

		observability.StoreFallbacks.WithLabelValues("fetch_all_clubs").Inc()
		s.log.LogFallback(ctx, "fetch_all_clubs", err)
		return nil
	}

	clubs := make([]models.Club, 0, len(rows))
	for _, row := range rows {
		club := clubFromRow(row)
		club.MembersCount = s.provider.MemberCountPlaceholder()
		club.Benefits = exploreBenefits
		clubs = append(clubs, club)
	}

	s.mu.Lock()
	s.allClubs = clubs
	s.mu.Unlock()
	return nil
}

// AddClub creates a club owned by the current user and records the owner
// membership. The two inserts are not transactional: a failed membership
// insert leaves the created club row behind.
func (s *Store) AddClub(ctx context.Context, nc models.NewClub) (models.Club, error) {
	user, ok := s.CurrentUser()
	if !ok {
		return models.Club{}, models.ErrNotAuthenticated
	}

	row := map[string]any{
		"name":        nc.Name,
		"description": nc.Description,
		"category":    nc.Category,
		"type":        string(nc.Type),
		"image_url":   nc.Image,
		"owner_id":    user.ID,
	}

	var created clubRow
	if err := s.gw.From("clubs").Insert(ctx, row, &created); err != nil {
		s.log.LogError(ctx, "add_club", err)
		return models.Club{}, err
	}

	member := map[string]any{
		"club_id": created.ID,
		"user_id": user.ID,
		"role":    string(models.ClubRoleOwner),
	}
	if err := s.gw.From("club_members").Insert(ctx, member, nil); err != nil {
		s.log.LogError(ctx, "add_club", err)
		return models.Club{}, err
	}

	cache.Invalidate(ctx, cache.PublicClubsKey())
	_ = s.FetchMyClubs(ctx)

	club := clubFromRow(created)
	club.MembersCount = 1
	club.Members = selfMember(user, models.ClubRoleOwner)
	return club, nil
}

// JoinClub adds the current user to a club as a member. Duplicate joins are
// rejected from the local cache first, and a unique violation from the
// service maps to the same error. On remote failure the club is appended
// locally from the explore cache so the UI stays responsive.
func (s *Store) JoinClub(ctx context.Context, clubID string) (WriteStatus, error) {
	user, ok := s.CurrentUser()
	if !ok {
		return WriteConfirmed, models.ErrNotAuthenticated
	}

	s.mu.RLock()
	already := clubIn(s.clubs, clubID)
	s.mu.RUnlock()
	if already {
		return WriteConfirmed, models.ErrAlreadyMember
	}

	member := map[string]any{
		"club_id": clubID,
		"user_id": user.ID,
		"role":    string(models.ClubRoleMember),
	}
	err := s.gw.From("club_members").Insert(ctx, member, nil)
	if err == nil {
		_ = s.FetchMyClubs(ctx)
		s.appendFromExplore(clubID, user)
		return WriteConfirmed, nil
	}

	if models.HasCode(err, "CONFLICT") {
		// The authoritative store already holds this membership.
		return WriteConfirmed, models.ErrAlreadyMember
	}

	if s.appendFromExplore(clubID, user) {
		observability.StoreFallbacks.WithLabelValues("join_club").Inc()
		s.log.LogFallback(ctx, "join_club", err)
		return WriteLocalOnly, nil
	}

	s.log.LogError(ctx, "join_club", err)
	return WriteConfirmed, err
}

// GetClubByID looks the club up in the owned list first, then the explore
// listing.
func (s *Store) GetClubByID(id string) (models.Club, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clubs {
		if c.ID == id {
			return cloneClub(c), true
		}
	}
	for _, c := range s.allClubs {
		if c.ID == id {
			return cloneClub(c), true
		}
	}
	return models.Club{}, false
}

// UpdateClubSettings merges a settings patch into the matching owned club.
// Local-only: the change does not persist remotely.
func (s *Store) UpdateClubSettings(clubID string, patch models.ClubSettingsPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clubs {
		if s.clubs[i].ID != clubID {
			continue
		}
		applySettingsPatch(&s.clubs[i].Settings, patch)
		return
	}
}

// UpdateMemberRole changes a member's role in the matching owned club.
// Local-only, like UpdateClubSettings.
func (s *Store) UpdateMemberRole(clubID, userID string, role models.ClubRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clubs {
		if s.clubs[i].ID != clubID {
			continue
		}
		for j := range s.clubs[i].Members {
			if s.clubs[i].Members[j].UserID == userID {
				s.clubs[i].Members[j].Role = role
			}
		}
		return
	}
}

// appendFromExplore copies the club out of the explore cache into the owned
// list with a single-member snapshot. It reports whether the club is present
// in the owned list afterwards, and never duplicates an existing entry.
func (s *Store) appendFromExplore(clubID string, user models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if clubIn(s.clubs, clubID) {
		return true
	}
	for _, c := range s.allClubs {
		if c.ID != clubID {
			continue
		}
		joined := c
		joined.Members = selfMember(user, models.ClubRoleMember)
		s.clubs = append(s.clubs, joined)
		return true
	}
	return false
}

func clubIn(clubs []models.Club, id string) bool {
	for _, c := range clubs {
		if c.ID == id {
			return true
		}
	}
	return false
}

func applySettingsPatch(dst *models.ClubSettings, patch models.ClubSettingsPatch) {
	if patch.AllowMemberPosts != nil {
		dst.AllowMemberPosts = *patch.AllowMemberPosts
	}
	if patch.RequireApproval != nil {
		dst.RequireApproval = *patch.RequireApproval
	}
	if patch.IsPrivate != nil {
		dst.IsPrivate = *patch.IsPrivate
	}
	if patch.SubscriptionPrice != nil {
		dst.SubscriptionPrice = *patch.SubscriptionPrice
	}
	if patch.Currency != nil {
		dst.Currency = *patch.Currency
	}
}
