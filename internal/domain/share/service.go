package share

import (
	"context"

	"github.com/google/uuid"

	"github.com/ugrvsvs/my-osteo-app/internal/domain/patient"
	"github.com/ugrvsvs/my-osteo-app/internal/domain/plan"
	"github.com/ugrvsvs/my-osteo-app/internal/platform/apperr"
)

// PatientResolver is the slice of the patient service the share view needs.
type PatientResolver interface {
	GetByShareToken(ctx context.Context, token string) (*patient.Patient, error)
}

// PlanReader is the slice of the plan service the share view needs.
type PlanReader interface {
	Get(ctx context.Context, patientID uuid.UUID) ([]*plan.Entry, error)
}

type Service struct {
	patients PatientResolver
	plans    PlanReader
}

func NewService(patients PatientResolver, plans PlanReader) *Service {
	return &Service{patients: patients, plans: plans}
}

// Resolve looks up a share token and returns the patient's plan as a
// read-only view. Every failure, including a token that never existed,
// collapses into the same not found error so the endpoint does not
// confirm which tokens are live.
func (s *Service) Resolve(ctx context.Context, token string) (*View, error) {
	if token == "" {
		return nil, apperr.NotFound("share link")
	}
	p, err := s.patients.GetByShareToken(ctx, token)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("share link")
		}
		return nil, err
	}
	entries, err := s.plans.Get(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &View{
		PatientName: p.Name,
		AvatarURL:   p.AvatarURL,
		Exercises:   entries,
	}, nil
}
