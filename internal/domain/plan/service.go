package plan

import (
	"context"

	"github.com/google/uuid"

	"github.com/ugrvsvs/my-osteo-app/internal/domain/catalog"
	"github.com/ugrvsvs/my-osteo-app/internal/domain/patient"
	"github.com/ugrvsvs/my-osteo-app/internal/platform/apperr"
)

// PatientReader is the slice of the patient service the plan needs.
type PatientReader interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// VideoReader is the slice of the catalog service the plan needs.
type VideoReader interface {
	ListVideosByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Video, error)
}

// TxRunner executes fn inside a single transaction.
type TxRunner func(ctx context.Context, fn func(context.Context) error) error

type Service struct {
	assignments Repository
	patients    PatientReader
	videos      VideoReader
	runTx       TxRunner
}

func NewService(assignments Repository, patients PatientReader, videos VideoReader, runTx TxRunner) *Service {
	return &Service{
		assignments: assignments,
		patients:    patients,
		videos:      videos,
		runTx:       runTx,
	}
}

// Get returns the patient's ordered plan joined with live video detail.
// An empty plan is a valid empty slice, not an error.
func (s *Service) Get(ctx context.Context, patientID uuid.UUID) ([]*Entry, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, assignments)
}

// Replace atomically swaps the patient's whole plan for the given
// ordered list. Position in the input becomes the display order. The
// previous plan survives any validation or storage failure untouched.
func (s *Service) Replace(ctx context.Context, patientID uuid.UUID, items []ReplaceItem) ([]*Entry, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if seen[item.VideoID] {
			return nil, apperr.Validation("video_id", "duplicate video id: "+item.VideoID.String())
		}
		seen[item.VideoID] = true
		ids = append(ids, item.VideoID)
	}

	videos, err := s.videos.ListVideosByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	for _, id := range ids {
		if byID[id] == nil {
			return nil, apperr.Validation("video_id", "video does not exist: "+id.String())
		}
	}

	err = s.runTx(ctx, func(ctx context.Context) error {
		if err := s.assignments.DeleteForPatient(ctx, patientID); err != nil {
			return err
		}
		for i, item := range items {
			a := &Assignment{
				PatientID:        patientID,
				VideoID:          item.VideoID,
				DisplayOrder:     i,
				Sets:             item.Sets,
				Reps:             item.Reps,
				DurationOverride: item.DurationOverride,
				Comment:          item.Comment,
			}
			if err := s.assignments.Insert(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(items))
	for i, item := range items {
		entries = append(entries, &Entry{
			Order:            i,
			Video:            *byID[item.VideoID],
			Sets:             item.Sets,
			Reps:             item.Reps,
			DurationOverride: item.DurationOverride,
			Comment:          item.Comment,
		})
	}
	return entries, nil
}

// project joins assignments with current catalog detail, keeping the
// stored order.
func (s *Service) project(ctx context.Context, assignments []*Assignment) ([]*Entry, error) {
	ids := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.VideoID)
	}
	videos, err := s.videos.ListVideosByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	entries := make([]*Entry, 0, len(assignments))
	for _, a := range assignments {
		v := byID[a.VideoID]
		if v == nil {
			continue
		}
		entries = append(entries, &Entry{
			Order:            a.DisplayOrder,
			Video:            *v,
			Sets:             a.Sets,
			Reps:             a.Reps,
			DurationOverride: a.DurationOverride,
			Comment:          a.Comment,
		})
	}
	return entries, nil
}
