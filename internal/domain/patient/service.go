package patient

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ugrvsvs/my-osteo-app/internal/platform/apperr"
)

type Service struct {
	patients Repository
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

// Create registers a patient. The avatar and share token are derived
// server-side; any client-supplied values are ignored.
func (s *Service) Create(ctx context.Context, p *Patient) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	if p.Name == "" {
		return apperr.Validation("name", "name is required")
	}
	if p.Email == "" {
		return apperr.Validation("email", "email is required")
	}
	if !strings.Contains(p.Email, "@") {
		return apperr.Validation("email", "email is malformed")
	}

	p.AvatarURL = AvatarURLFor(p.Email)
	p.ShareToken = NewShareToken()
	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) GetByShareToken(ctx context.Context, token string) (*Patient, error) {
	return s.patients.GetByShareToken(ctx, token)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*ListItem, int, error) {
	return s.patients.List(ctx, limit, offset)
}

// Update changes a patient's name or email. The share token is stable
// for the lifetime of the patient and cannot be changed here.
func (s *Service) Update(ctx context.Context, id uuid.UUID, name, email string) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" {
		return nil, apperr.Validation("name", "name is required")
	}
	if email == "" {
		return nil, apperr.Validation("email", "email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperr.Validation("email", "email is malformed")
	}

	p.Name = name
	if email != p.Email {
		p.Email = email
		p.AvatarURL = AvatarURLFor(email)
	}
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the patient along with their plan and activity history.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}
