package catalog

import (
	"context"

	"github.com/google/uuid"
)

type VideoRepository interface {
	Create(ctx context.Context, v *Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*Video, error)
	List(ctx context.Context, filter VideoFilter, limit, offset int) ([]*Video, int, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Video, error)
	Update(ctx context.Context, v *Video) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
