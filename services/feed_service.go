package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go-pacha/models"
	"go-pacha/storage"
	"go-pacha/utils/errors"
)

// FeedService overlays a user's likes and comments onto the static seed feed.
type FeedService struct {
	overlays localCollection[map[string]models.FeedInteraction]
	now      func() time.Time
}

func NewFeedService(store storage.Store) *FeedService {
	return &FeedService{
		overlays: newLocalCollection[map[string]models.FeedInteraction](store, feedCollection),
		now:      time.Now,
	}
}

func (s *FeedService) Overlay(ctx context.Context, userID int) (map[string]models.FeedInteraction, error) {
	overlay, err := s.overlays.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if overlay == nil {
		overlay = map[string]models.FeedInteraction{}
	}
	return overlay, nil
}

// update applies fn to post's entry, seeding the entry from the post on first touch.
func (s *FeedService) update(ctx context.Context, userID int, post models.FeedPost, fn func(*models.FeedInteraction)) (models.FeedInteraction, error) {
	s.overlays.mu.Lock()
	defer s.overlays.mu.Unlock()

	overlay, err := s.Overlay(ctx, userID)
	if err != nil {
		return models.FeedInteraction{}, err
	}
	entry, ok := overlay[post.ID]
	if !ok {
		entry = models.FeedInteraction{Liked: post.Liked, Likes: post.Likes, Comentarios: []models.Comentario{}}
	}
	fn(&entry)
	overlay[post.ID] = entry
	if err := s.overlays.save(ctx, userID, overlay); err != nil {
		return models.FeedInteraction{}, err
	}
	return entry, nil
}

// ToggleLike flips the like on post and adjusts its count.
func (s *FeedService) ToggleLike(ctx context.Context, userID int, post models.FeedPost) (models.FeedInteraction, error) {
	return s.update(ctx, userID, post, func(e *models.FeedInteraction) {
		e.Liked = !e.Liked
		if e.Liked {
			e.Likes++
		} else if e.Likes > 0 {
			e.Likes--
		}
	})
}

// AddComment appends a comment to post.
func (s *FeedService) AddComment(ctx context.Context, userID int, post models.FeedPost, author, text string) (models.Comentario, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comentario{}, errors.ErrInvalidInput
	}
	c := models.Comentario{
		ID:        uuid.New().String(),
		Autor:     author,
		Texto:     text,
		Timestamp: s.now().UTC(),
	}
	_, err := s.update(ctx, userID, post, func(e *models.FeedInteraction) {
		e.Comentarios = append(e.Comentarios, c)
	})
	if err != nil {
		return models.Comentario{}, err
	}
	return c, nil
}

// MergeFeed applies overlay to seed without modifying seed.
func MergeFeed(seed []models.FeedPost, overlay map[string]models.FeedInteraction) []models.FeedPost {
	out := make([]models.FeedPost, 0, len(seed))
	for _, post := range seed {
		merged := post
		if entry, ok := overlay[post.ID]; ok {
			merged.Liked = entry.Liked
			merged.Likes = entry.Likes
			merged.Comentarios = append(append([]models.Comentario{}, post.Comentarios...), entry.Comentarios...)
		}
		out = append(out, merged)
	}
	return out
}
