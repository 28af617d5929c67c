package template

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *Template) error
	GetByID(ctx context.Context, id uuid.UUID) (*Template, error)
	List(ctx context.Context, limit, offset int) ([]*Template, int, error)
	Update(ctx context.Context, t *Template) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListExerciseIDs(ctx context.Context, templateID uuid.UUID) ([]uuid.UUID, error)
	DeleteExercises(ctx context.Context, templateID uuid.UUID) error
	InsertExercise(ctx context.Context, templateID, videoID uuid.UUID, order int) error
}
