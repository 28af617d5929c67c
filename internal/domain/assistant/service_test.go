package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ugrvsvs/my-osteo-app/internal/domain/activity"
	"github.com/ugrvsvs/my-osteo-app/internal/domain/catalog"
	"github.com/ugrvsvs/my-osteo-app/internal/domain/patient"
	"github.com/ugrvsvs/my-osteo-app/internal/platform/apperr"
	"github.com/ugrvsvs/my-osteo-app/internal/platform/suggest"
)

type mockGateway struct {
	suggestions []suggest.Suggestion
	summary     string
	err         error

	gotPrompt  string
	gotCatalog []suggest.CatalogEntry
	gotName    string
	gotLines   []suggest.ActivityLine
	calls      int
}

func (m *mockGateway) SuggestExercises(_ context.Context, prompt string, entries []suggest.CatalogEntry) ([]suggest.Suggestion, error) {
	m.calls++
	m.gotPrompt = prompt
	m.gotCatalog = entries
	return m.suggestions, m.err
}

func (m *mockGateway) SummarizeActivity(_ context.Context, name string, lines []suggest.ActivityLine) (string, error) {
	m.calls++
	m.gotName = name
	m.gotLines = lines
	return m.summary, m.err
}

type mockCatalog struct {
	videos []*catalog.Video
}

func (m *mockCatalog) ListVideos(_ context.Context, _ catalog.VideoFilter, limit, offset int) ([]*catalog.Video, int, error) {
	if offset >= len(m.videos) {
		return nil, len(m.videos), nil
	}
	end := offset + limit
	if end > len(m.videos) {
		end = len(m.videos)
	}
	return m.videos[offset:end], len(m.videos), nil
}

type mockPatients struct {
	byID map[uuid.UUID]*patient.Patient
}

func (m *mockPatients) Get(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, apperr.NotFound("patient")
	}
	return p, nil
}

type mockActivity struct {
	byPatient map[uuid.UUID]*activity.Summary
}

func (m *mockActivity) Summarize(_ context.Context, patientID uuid.UUID) (*activity.Summary, error) {
	s, ok := m.byPatient[patientID]
	if !ok {
		return &activity.Summary{PatientID: patientID, Items: []*activity.SummaryItem{}}, nil
	}
	return s, nil
}

func newTestService() (*Service, *mockGateway, *mockCatalog, *mockPatients, *mockActivity) {
	gw := &mockGateway{}
	videos := &mockCatalog{}
	patients := &mockPatients{byID: map[uuid.UUID]*patient.Patient{}}
	acts := &mockActivity{byPatient: map[uuid.UUID]*activity.Summary{}}
	return NewService(gw, videos, patients, acts), gw, videos, patients, acts
}

func addVideo(c *mockCatalog, title string) *catalog.Video {
	v := &catalog.Video{ID: uuid.New(), Title: title, URL: "https://videos.example.com/" + title}
	c.videos = append(c.videos, v)
	return v
}

func TestSuggest(t *testing.T) {
	svc, gw, videos, _, _ := newTestService()
	v1 := addVideo(videos, "neck-stretch")
	v2 := addVideo(videos, "shoulder-roll")

	gw.suggestions = []suggest.Suggestion{
		{VideoID: v2.ID.String(), Reason: "targets the shoulder girdle"},
		{VideoID: v1.ID.String(), Reason: "gentle starting point"},
	}

	got, err := svc.Suggest(context.Background(), "stiff shoulder after desk work")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}
	if got[0].Video.ID != v2.ID || got[0].Reason != "targets the shoulder girdle" {
		t.Errorf("unexpected first suggestion: %+v", got[0])
	}
	if len(gw.gotCatalog) != 2 {
		t.Errorf("expected full catalog sent to the gateway, got %d entries", len(gw.gotCatalog))
	}
}

func TestSuggest_DropsVideosOutsideCatalog(t *testing.T) {
	svc, gw, videos, _, _ := newTestService()
	v := addVideo(videos, "neck-stretch")

	gw.suggestions = []suggest.Suggestion{
		{VideoID: uuid.NewString(), Reason: "hallucinated"},
		{VideoID: v.ID.String(), Reason: "real"},
		{VideoID: "not-even-a-uuid", Reason: "garbage"},
	}

	got, err := svc.Suggest(context.Background(), "sore neck")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 1 || got[0].Video.ID != v.ID {
		t.Fatalf("expected only the catalog video to survive, got %+v", got)
	}
}

func TestSuggest_DeduplicatesRepeatedIDs(t *testing.T) {
	svc, gw, videos, _, _ := newTestService()
	v := addVideo(videos, "neck-stretch")

	gw.suggestions = []suggest.Suggestion{
		{VideoID: v.ID.String(), Reason: "first"},
		{VideoID: v.ID.String(), Reason: "again"},
	}

	got, err := svc.Suggest(context.Background(), "sore neck")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 1 || got[0].Reason != "first" {
		t.Fatalf("expected first occurrence kept, got %+v", got)
	}
}

func TestSuggest_EmptyPrompt(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.Suggest(context.Background(), "   ")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSuggest_EmptyCatalogSkipsGateway(t *testing.T) {
	svc, gw, _, _, _ := newTestService()

	got, err := svc.Suggest(context.Background(), "sore neck")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no suggestions, got %d", len(got))
	}
	if gw.calls != 0 {
		t.Errorf("gateway should not be called with an empty catalog")
	}
}

func TestSuggest_GatewayFailure(t *testing.T) {
	svc, gw, videos, _, _ := newTestService()
	addVideo(videos, "neck-stretch")
	gw.err = errors.New("rate limited")

	_, err := svc.Suggest(context.Background(), "sore neck")
	if apperr.KindOf(err) != apperr.KindUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	svc, gw, _, patients, acts := newTestService()

	pid := uuid.New()
	patients.byID[pid] = &patient.Patient{ID: pid, Name: "Jean Dupont"}

	last := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)
	acts.byPatient[pid] = &activity.Summary{
		PatientID: pid,
		Items: []*activity.SummaryItem{
			{Video: catalog.Video{Title: "neck-stretch"}, Count: 4, LastOpened: last},
		},
		LastActivity: &last,
	}
	gw.summary = "Jean has been consistent with the neck program."

	text, err := svc.Summarize(context.Background(), pid)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if text != gw.summary {
		t.Errorf("expected gateway text passed through, got %q", text)
	}
	if gw.gotName != "Jean Dupont" {
		t.Errorf("expected patient name forwarded, got %q", gw.gotName)
	}
	if len(gw.gotLines) != 1 || gw.gotLines[0].OpenCount != 4 {
		t.Fatalf("unexpected lines: %+v", gw.gotLines)
	}
	if gw.gotLines[0].LastOpened != last.Format(time.RFC3339) {
		t.Errorf("expected RFC3339 timestamp, got %q", gw.gotLines[0].LastOpened)
	}
}

func TestSummarize_UnknownPatient(t *testing.T) {
	svc, gw, _, _, _ := newTestService()

	_, err := svc.Summarize(context.Background(), uuid.New())
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if gw.calls != 0 {
		t.Errorf("gateway should not be called for an unknown patient")
	}
}

func TestSummarize_GatewayFailure(t *testing.T) {
	svc, gw, _, patients, _ := newTestService()

	pid := uuid.New()
	patients.byID[pid] = &patient.Patient{ID: pid, Name: "Jean Dupont"}
	gw.err = errors.New("timeout")

	_, err := svc.Summarize(context.Background(), pid)
	if apperr.KindOf(err) != apperr.KindUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
