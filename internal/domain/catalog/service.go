package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ugrvsvs/my-osteo-app/internal/platform/apperr"
)

type Service struct {
	videos     VideoRepository
	categories CategoryRepository
}

func NewService(videos VideoRepository, categories CategoryRepository) *Service {
	return &Service{videos: videos, categories: categories}
}

// -- Videos --

func (s *Service) CreateVideo(ctx context.Context, v *Video) error {
	if strings.TrimSpace(v.Title) == "" {
		return apperr.Validation("title", "title is required")
	}
	if strings.TrimSpace(v.URL) == "" {
		return apperr.Validation("url", "url is required")
	}
	return s.videos.Create(ctx, v)
}

func (s *Service) GetVideo(ctx context.Context, id uuid.UUID) (*Video, error) {
	return s.videos.GetByID(ctx, id)
}

func (s *Service) ListVideos(ctx context.Context, filter VideoFilter, limit, offset int) ([]*Video, int, error) {
	return s.videos.List(ctx, filter, limit, offset)
}

// ListVideosByIDs returns the videos whose ids exist in the catalog.
// Unknown ids are silently absent from the result.
func (s *Service) ListVideosByIDs(ctx context.Context, ids []uuid.UUID) ([]*Video, error) {
	return s.videos.ListByIDs(ctx, ids)
}

func (s *Service) UpdateVideo(ctx context.Context, v *Video) error {
	if strings.TrimSpace(v.Title) == "" {
		return apperr.Validation("title", "title is required")
	}
	if strings.TrimSpace(v.URL) == "" {
		return apperr.Validation("url", "url is required")
	}
	return s.videos.Update(ctx, v)
}

// DeleteVideo removes a video. Plan entries and template entries that
// reference it are cascade-removed by the store.
func (s *Service) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	return s.videos.Delete(ctx, id)
}

// -- Categories --

func (s *Service) CreateCategory(ctx context.Context, c *Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperr.Validation("name", "name is required")
	}
	return s.categories.Create(ctx, c)
}

func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) UpdateCategory(ctx context.Context, c *Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperr.Validation("name", "name is required")
	}
	return s.categories.Update(ctx, c)
}

func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categories.Delete(ctx, id)
}
