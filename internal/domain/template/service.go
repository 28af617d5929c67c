package template

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ugrvsvs/my-osteo-app/internal/domain/catalog"
	"github.com/ugrvsvs/my-osteo-app/internal/domain/plan"
	"github.com/ugrvsvs/my-osteo-app/internal/platform/apperr"
)

// VideoReader is the slice of the catalog service templates need.
type VideoReader interface {
	ListVideosByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Video, error)
}

type Service struct {
	templates Repository
	videos    VideoReader
	runTx     plan.TxRunner
}

func NewService(templates Repository, videos VideoReader, runTx plan.TxRunner) *Service {
	return &Service{templates: templates, videos: videos, runTx: runTx}
}

func (s *Service) validateVideoIDs(ctx context.Context, ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return apperr.Validation("video_ids", "duplicate video id: "+id.String())
		}
		seen[id] = true
	}

	videos, err := s.videos.ListVideosByIDs(ctx, ids)
	if err != nil {
		return err
	}
	found := make(map[uuid.UUID]bool, len(videos))
	for _, v := range videos {
		found[v.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return apperr.Validation("video_ids", "video does not exist: "+id.String())
		}
	}
	return nil
}

// Create stores a template together with its ordered exercise list in
// one transaction.
func (s *Service) Create(ctx context.Context, t *Template, videoIDs []uuid.UUID) (*Detail, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return nil, apperr.Validation("name", "name is required")
	}
	if err := s.validateVideoIDs(ctx, videoIDs); err != nil {
		return nil, err
	}

	err := s.runTx(ctx, func(ctx context.Context) error {
		if err := s.templates.Create(ctx, t); err != nil {
			return err
		}
		for i, id := range videoIDs {
			if err := s.templates.InsertExercise(ctx, t.ID, id, i); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, t)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, t)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Detail, int, error) {
	templates, total, err := s.templates.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	details := make([]*Detail, 0, len(templates))
	for _, t := range templates {
		d, err := s.detail(ctx, t)
		if err != nil {
			return nil, 0, err
		}
		details = append(details, d)
	}
	return details, total, nil
}

// Update replaces a template's metadata and its whole exercise list
// atomically, mirroring plan replace semantics.
func (s *Service) Update(ctx context.Context, id uuid.UUID, name string, description *string, videoIDs []uuid.UUID) (*Detail, error) {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name", "name is required")
	}
	if err := s.validateVideoIDs(ctx, videoIDs); err != nil {
		return nil, err
	}

	t.Name = name
	t.Description = description

	err = s.runTx(ctx, func(ctx context.Context) error {
		if err := s.templates.Update(ctx, t); err != nil {
			return err
		}
		if err := s.templates.DeleteExercises(ctx, id); err != nil {
			return err
		}
		for i, vid := range videoIDs {
			if err := s.templates.InsertExercise(ctx, id, vid, i); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.templates.Delete(ctx, id)
}

// Expand merges a template's exercises into an existing plan without
// persisting anything. Videos already in the plan are skipped; new ones
// are appended in template order. Expanding twice adds nothing the
// second time.
func (s *Service) Expand(ctx context.Context, templateID uuid.UUID, existing []plan.ReplaceItem) (merged []plan.ReplaceItem, added, skipped int, err error) {
	if _, err = s.templates.GetByID(ctx, templateID); err != nil {
		return nil, 0, 0, err
	}
	ids, err := s.templates.ListExerciseIDs(ctx, templateID)
	if err != nil {
		return nil, 0, 0, err
	}

	present := make(map[uuid.UUID]bool, len(existing))
	merged = append(merged, existing...)
	for _, item := range existing {
		present[item.VideoID] = true
	}
	for _, id := range ids {
		if present[id] {
			skipped++
			continue
		}
		present[id] = true
		merged = append(merged, plan.ReplaceItem{VideoID: id})
		added++
	}
	return merged, added, skipped, nil
}

func (s *Service) detail(ctx context.Context, t *Template) (*Detail, error) {
	ids, err := s.templates.ListExerciseIDs(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	videos, err := s.videos.ListVideosByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	exercises := make([]catalog.Video, 0, len(ids))
	for _, id := range ids {
		if v := byID[id]; v != nil {
			exercises = append(exercises, *v)
		}
	}
	return &Detail{Template: *t, Exercises: exercises}, nil
}
