package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ugrvsvs/my-osteo-app/internal/domain/activity"
	"github.com/ugrvsvs/my-osteo-app/internal/domain/catalog"
	"github.com/ugrvsvs/my-osteo-app/internal/domain/patient"
	"github.com/ugrvsvs/my-osteo-app/internal/platform/apperr"
	"github.com/ugrvsvs/my-osteo-app/internal/platform/suggest"
	"github.com/ugrvsvs/my-osteo-app/pkg/pagination"
)

// Gateway abstracts the model provider. *suggest.Client satisfies it.
type Gateway interface {
	SuggestExercises(ctx context.Context, prompt string, catalog []suggest.CatalogEntry) ([]suggest.Suggestion, error)
	SummarizeActivity(ctx context.Context, patientName string, lines []suggest.ActivityLine) (string, error)
}

// CatalogReader is the slice of the catalog service the assistant needs.
type CatalogReader interface {
	ListVideos(ctx context.Context, filter catalog.VideoFilter, limit, offset int) ([]*catalog.Video, int, error)
}

// PatientReader is the slice of the patient service the assistant needs.
type PatientReader interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// ActivityReader is the slice of the activity service the assistant needs.
type ActivityReader interface {
	Summarize(ctx context.Context, patientID uuid.UUID) (*activity.Summary, error)
}

// Suggestion pairs a catalog video with the model's stated reason for
// recommending it. Only videos present in the live catalog appear here.
type Suggestion struct {
	Video  catalog.Video `json:"video"`
	Reason string        `json:"reason"`
}

type Service struct {
	gateway  Gateway
	videos   CatalogReader
	patients PatientReader
	activity ActivityReader
}

func NewService(gateway Gateway, videos CatalogReader, patients PatientReader, activityReader ActivityReader) *Service {
	return &Service{gateway: gateway, videos: videos, patients: patients, activity: activityReader}
}

// Suggest asks the model which catalog videos fit a free-text condition
// description. The model only ever sees ids from the live catalog, and
// anything it returns outside that set is dropped before the response
// leaves the service. An empty result is a valid answer.
func (s *Service) Suggest(ctx context.Context, prompt string) ([]*Suggestion, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, apperr.Validation("prompt", "prompt is required")
	}

	videos, err := s.listAllVideos(ctx)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return []*Suggestion{}, nil
	}

	entries := make([]suggest.CatalogEntry, 0, len(videos))
	byID := make(map[string]*catalog.Video, len(videos))
	for _, v := range videos {
		byID[v.ID.String()] = v
		entries = append(entries, suggest.CatalogEntry{
			ID:          v.ID.String(),
			Title:       v.Title,
			Description: deref(v.Description),
			Zone:        deref(v.Zone),
			Level:       deref(v.Level),
		})
	}

	raw, err := s.gateway.SuggestExercises(ctx, prompt, entries)
	if err != nil {
		return nil, apperr.Upstream("suggestion provider failed", err)
	}

	out := make([]*Suggestion, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, sg := range raw {
		v, ok := byID[sg.VideoID]
		if !ok || seen[sg.VideoID] {
			continue
		}
		seen[sg.VideoID] = true
		out = append(out, &Suggestion{Video: *v, Reason: sg.Reason})
	}
	return out, nil
}

// Summarize asks the model for a prose summary of a patient's viewing
// history. The patient lookup doubles as the existence check.
func (s *Service) Summarize(ctx context.Context, patientID uuid.UUID) (string, error) {
	p, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return "", err
	}
	summary, err := s.activity.Summarize(ctx, patientID)
	if err != nil {
		return "", err
	}

	lines := make([]suggest.ActivityLine, 0, len(summary.Items))
	for _, item := range summary.Items {
		lines = append(lines, suggest.ActivityLine{
			VideoTitle: item.Video.Title,
			OpenCount:  item.Count,
			LastOpened: item.LastOpened.Format(time.RFC3339),
		})
	}

	text, err := s.gateway.SummarizeActivity(ctx, p.Name, lines)
	if err != nil {
		return "", apperr.Upstream("summary provider failed", err)
	}
	return text, nil
}

func (s *Service) listAllVideos(ctx context.Context) ([]*catalog.Video, error) {
	var all []*catalog.Video
	offset := 0
	for {
		page, total, err := s.videos.ListVideos(ctx, catalog.VideoFilter{}, pagination.MaxLimit, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		offset += len(page)
		if len(page) == 0 || offset >= total {
			return all, nil
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
