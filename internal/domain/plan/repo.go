package plan

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Assignment, error)
	DeleteForPatient(ctx context.Context, patientID uuid.UUID) error
	Insert(ctx context.Context, a *Assignment) error
}
