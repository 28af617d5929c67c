package activity

import (
	"context"

	"github.com/google/uuid"

	"github.com/ugrvsvs/my-osteo-app/internal/domain/catalog"
	"github.com/ugrvsvs/my-osteo-app/internal/domain/patient"
	"github.com/ugrvsvs/my-osteo-app/internal/platform/apperr"
)

// PatientReader is the slice of the patient service activity needs.
type PatientReader interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// VideoReader is the slice of the catalog service activity needs.
type VideoReader interface {
	ListVideosByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Video, error)
}

type Service struct {
	entries  Repository
	patients PatientReader
	videos   VideoReader
}

func NewService(entries Repository, patients PatientReader, videos VideoReader) *Service {
	return &Service{entries: entries, patients: patients, videos: videos}
}

// Record appends one viewing event. The video is not checked against
// the catalog; an open of a since-deleted video is still a fact worth
// keeping. Duplicate calls append duplicate events by design.
func (s *Service) Record(ctx context.Context, patientID, videoID uuid.UUID, action string) error {
	if action == "" {
		action = ActionOpened
	}
	if action != ActionOpened && action != ActionCompleted {
		return apperr.Validation("action", "action must be \"opened\" or \"completed\"")
	}
	if patientID == uuid.Nil {
		return apperr.Validation("patient_id", "patient_id is required")
	}
	if videoID == uuid.Nil {
		return apperr.Validation("video_id", "video_id is required")
	}
	return s.entries.Insert(ctx, &Entry{PatientID: patientID, VideoID: videoID, Action: action})
}

// Summarize returns the per-video open counts for one patient, joined
// with live catalog detail. Aggregates for videos no longer in the
// catalog are dropped; last_activity still reflects every row.
func (s *Service) Summarize(ctx context.Context, patientID uuid.UUID) (*Summary, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}

	aggregates, err := s.entries.AggregateByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(aggregates))
	for _, a := range aggregates {
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

	summary := &Summary{PatientID: patientID, Items: []*SummaryItem{}}
	for _, a := range aggregates {
		if summary.LastActivity == nil || a.LastOpened.After(*summary.LastActivity) {
			last := a.LastOpened
			summary.LastActivity = &last
		}
		v := byID[a.VideoID]
		if v == nil {
			continue
		}
		summary.Items = append(summary.Items, &SummaryItem{
			Video:       *v,
			Count:       a.Count,
			FirstOpened: a.FirstOpened,
			LastOpened:  a.LastOpened,
		})
	}
	return summary, nil
}
