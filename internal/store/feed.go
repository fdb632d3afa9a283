package store

import (
	"context"
	"encoding/json"
	"time"

	"tribex/internal/models"
	"tribex/internal/observability"

	"github.com/google/uuid"
)

// FetchPosts loads the feed in descending creation order, optionally scoped
// to a club. On failure the existing feed is retained; if nothing is cached
// yet, the demonstration post is seeded instead. Failures are never surfaced.
func (s *Store) FetchPosts(ctx context.Context, clubID string) error {
	q := s.gw.From("posts").
		Select("*,profiles(name,avatar_url),clubs(name)").
		Order("created_at", true)
	if clubID != "" {
		q = q.Eq("club_id", clubID)
	}

	var rows []models.Post
	if err := q.Get(ctx, &rows); err != nil {
		s.mu.Lock()
		empty := len(s.posts) == 0
		if empty {
			s.posts = s.provider.DemoFeed()
		}
		s.mu.Unlock()

		if empty {
			observability.StoreFallbacks.WithLabelValues("fetch_posts").Inc()
			s.log.LogFallback(ctx, "fetch_posts", err)
		}
		return nil
	}

	s.mu.Lock()
	s.posts = rows
	s.mu.Unlock()
	return nil
}

// CreatePost publishes a post. On remote failure the post is synthesized
// locally with a random id and prepended to the feed; the returned
// WriteStatus tells durable success apart from the local fallback.
func (s *Store) CreatePost(ctx context.Context, content, imageURL, clubID string) (models.Post, WriteStatus, error) {
	user, ok := s.CurrentUser()
	if !ok {
		return models.Post{}, WriteConfirmed, models.ErrNotAuthenticated
	}

	row := map[string]any{
		"user_id":        user.ID,
		"content":        content,
		"likes_count":    0,
		"comments_count": 0,
	}
	if clubID != "" {
		row["club_id"] = clubID
	}
	if imageURL != "" {
		row["image_url"] = imageURL
	}

	var created models.Post
	if err := s.gw.From("posts").Insert(ctx, row, &created); err != nil {
		local := models.Post{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			ClubID:    clubID,
			Content:   content,
			ImageURL:  imageURL,
			CreatedAt: time.Now(),
			Author:    &models.PostAuthor{Name: user.Name, AvatarURL: user.Avatar},
		}
		if clubID != "" {
			local.Club = &models.PostClub{Name: "Clube"}
		}

		s.mu.Lock()
		s.posts = append([]models.Post{local}, s.posts...)
		s.mu.Unlock()

		observability.StoreFallbacks.WithLabelValues("create_post").Inc()
		s.log.LogFallback(ctx, "create_post", err)
		return local, WriteLocalOnly, nil
	}

	_ = s.FetchPosts(ctx, clubID)
	return created, WriteConfirmed, nil
}

// SubscribeFeed wires realtime post inserts into the feed: new posts are
// prepended, de-duplicated by id. The subscription ends when ctx is done.
func (s *Store) SubscribeFeed(ctx context.Context) error {
	return s.gw.Realtime().Subscribe(ctx, "posts", func(event string, record json.RawMessage) {
		if event != "INSERT" {
			return
		}
		var post models.Post
		if err := json.Unmarshal(record, &post); err != nil || post.ID == "" {
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		for _, existing := range s.posts {
			if existing.ID == post.ID {
				return
			}
		}
		s.posts = append([]models.Post{post}, s.posts...)
	})
}
