package gatewaytest

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var identPattern = regexp.MustCompile(`^[a-z_]+$`)

// selectSpec is the parsed form of a PostgREST select parameter; the fixture
// only honors the embedded resources the SDK actually requests.
type selectSpec struct {
	embedProfiles bool
	embedClubs    bool
}

func parseSelect(sel string) selectSpec {
	return selectSpec{
		embedProfiles: strings.Contains(sel, "profiles("),
		embedClubs:    strings.Contains(sel, "clubs("),
	}
}

func wantsSingleObject(c *fiber.Ctx) bool {
	return strings.Contains(c.Get("Accept"), "vnd.pgrst.object")
}

func (s *Server) handleSelect(c *fiber.Ctx) error {
	table := c.Params("table")
	spec := parseSelect(c.Query("select"))

	q, err := s.scopedQuery(table, c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var rows []fiber.Map
	switch table {
	case "profiles":
		var profiles []Profile
		if err := q.Find(&profiles).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		for _, p := range profiles {
			rows = append(rows, profileMap(p))
		}
	case "posts":
		var posts []Post
		if err := q.Find(&posts).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		for _, p := range posts {
			rows = append(rows, s.postMap(p, spec))
		}
	case "clubs":
		var clubs []Club
		if err := q.Find(&clubs).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		for _, cl := range clubs {
			rows = append(rows, clubMap(cl))
		}
	case "club_members":
		var members []ClubMember
		if err := q.Find(&members).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		for _, m := range members {
			rows = append(rows, s.memberMap(m, spec))
		}
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "relation \"" + table + "\" does not exist"})
	}

	if wantsSingleObject(c) {
		if len(rows) == 0 {
			return c.Status(fiber.StatusNotAcceptable).JSON(fiber.Map{
				"code":    "PGRST116",
				"message": "JSON object requested, multiple (or no) rows returned",
			})
		}
		return c.JSON(rows[0])
	}
	if rows == nil {
		rows = []fiber.Map{}
	}
	return c.JSON(rows)
}

// scopedQuery applies the eq filters, order, and limit from the request.
func (s *Server) scopedQuery(table string, c *fiber.Ctx) (*gorm.DB, error) {
	q := s.DB.Table(table)

	for key, val := range c.Queries() {
		if key == "select" || key == "order" || key == "limit" {
			continue
		}
		if !identPattern.MatchString(key) || !strings.HasPrefix(val, "eq.") {
			continue
		}
		q = q.Where(key+" = ?", strings.TrimPrefix(val, "eq."))
	}

	if order := c.Query("order"); order != "" {
		col, dir, _ := strings.Cut(order, ".")
		if identPattern.MatchString(col) {
			if dir == "desc" {
				q = q.Order(col + " DESC")
			} else {
				q = q.Order(col + " ASC")
			}
		}
	}

	if lim := c.Query("limit"); lim != "" {
		n, err := strconv.Atoi(lim)
		if err != nil || n < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid limit")
		}
		q = q.Limit(n)
	}

	return q, nil
}

func (s *Server) handleInsert(c *fiber.Ctx) error {
	table := c.Params("table")

	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid request body"})
	}

	var row fiber.Map
	switch table {
	case "posts":
		post := Post{
			ID:            uuid.NewString(),
			UserID:        strVal(body, "user_id"),
			Content:       strVal(body, "content"),
			ImageURL:      strVal(body, "image_url"),
			CreatedAt:     time.Now(),
			LikesCount:    intVal(body, "likes_count"),
			CommentsCount: intVal(body, "comments_count"),
		}
		if clubID := strVal(body, "club_id"); clubID != "" {
			post.ClubID = &clubID
		}
		if err := s.DB.Create(&post).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		row = s.postMap(post, selectSpec{embedProfiles: true, embedClubs: true})
		s.hub.broadcast("table:posts", "INSERT", row)
	case "clubs":
		club := Club{
			ID:          uuid.NewString(),
			Name:        strVal(body, "name"),
			Description: strVal(body, "description"),
			ImageURL:    strVal(body, "image_url"),
			CoverURL:    strVal(body, "cover_url"),
			Category:    strVal(body, "category"),
			Type:        strVal(body, "type"),
			OwnerID:     strVal(body, "owner_id"),
			CreatedAt:   time.Now(),
		}
		if club.Type == "" {
			club.Type = "public"
		}
		if err := s.DB.Create(&club).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		row = clubMap(club)
	case "club_members":
		member := ClubMember{
			ClubID:    strVal(body, "club_id"),
			UserID:    strVal(body, "user_id"),
			Role:      strVal(body, "role"),
			CreatedAt: time.Now(),
		}
		var count int64
		s.DB.Model(&ClubMember{}).
			Where("club_id = ? AND user_id = ?", member.ClubID, member.UserID).
			Count(&count)
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"code":    "23505",
				"message": `duplicate key value violates unique constraint "club_members_pkey"`,
			})
		}
		if err := s.DB.Create(&member).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		row = s.memberMap(member, selectSpec{})
	case "profiles":
		profile := Profile{
			ID:        strVal(body, "id"),
			Name:      strVal(body, "name"),
			Handle:    strVal(body, "handle"),
			AvatarURL: strVal(body, "avatar_url"),
			XP:        intVal(body, "xp"),
			Level:     strVal(body, "level"),
			Coins:     intVal(body, "coins"),
		}
		if err := s.DB.Create(&profile).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		row = profileMap(profile)
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "relation \"" + table + "\" does not exist"})
	}

	if wantsSingleObject(c) {
		return c.Status(fiber.StatusCreated).JSON(row)
	}
	return c.Status(fiber.StatusCreated).JSON([]fiber.Map{row})
}

func profileMap(p Profile) fiber.Map {
	return fiber.Map{
		"id":         p.ID,
		"name":       p.Name,
		"handle":     p.Handle,
		"avatar_url": p.AvatarURL,
		"xp":         p.XP,
		"level":      p.Level,
		"coins":      p.Coins,
		"is_premium": p.IsPremium,
	}
}

func (s *Server) postMap(p Post, spec selectSpec) fiber.Map {
	row := fiber.Map{
		"id":             p.ID,
		"user_id":        p.UserID,
		"content":        p.Content,
		"image_url":      p.ImageURL,
		"created_at":     p.CreatedAt.Format(time.RFC3339Nano),
		"likes_count":    p.LikesCount,
		"comments_count": p.CommentsCount,
	}
	if p.ClubID != nil {
		row["club_id"] = *p.ClubID
	}
	if spec.embedProfiles {
		var profile Profile
		if err := s.DB.First(&profile, "id = ?", p.UserID).Error; err == nil {
			row["profiles"] = fiber.Map{"name": profile.Name, "avatar_url": profile.AvatarURL}
		}
	}
	if spec.embedClubs && p.ClubID != nil {
		var club Club
		if err := s.DB.First(&club, "id = ?", *p.ClubID).Error; err == nil {
			row["clubs"] = fiber.Map{"name": club.Name}
		}
	}
	return row
}

func clubMap(c Club) fiber.Map {
	return fiber.Map{
		"id":          c.ID,
		"name":        c.Name,
		"description": c.Description,
		"image_url":   c.ImageURL,
		"cover_url":   c.CoverURL,
		"category":    c.Category,
		"type":        c.Type,
		"is_premium":  c.IsPremium,
		"owner_id":    c.OwnerID,
	}
}

func (s *Server) memberMap(m ClubMember, spec selectSpec) fiber.Map {
	row := fiber.Map{
		"club_id":    m.ClubID,
		"user_id":    m.UserID,
		"role":       m.Role,
		"created_at": m.CreatedAt.Format(time.RFC3339Nano),
	}
	if spec.embedClubs {
		var club Club
		if err := s.DB.First(&club, "id = ?", m.ClubID).Error; err == nil {
			row["clubs"] = clubMap(club)
		}
	}
	return row
}

func strVal(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func intVal(m map[string]any, key string) int {
	if v, ok := m[key].(float64); ok {
		return int(v)
	}
	return 0
}
