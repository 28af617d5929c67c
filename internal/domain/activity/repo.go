package activity

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	AggregateByPatient(ctx context.Context, patientID uuid.UUID) ([]*Aggregate, error)
}
