package template

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ugrvsvs/my-osteo-app/internal/domain/catalog"
	"github.com/ugrvsvs/my-osteo-app/internal/domain/plan"
	"github.com/ugrvsvs/my-osteo-app/internal/platform/apperr"
)

type mockPlans struct {
	entries map[uuid.UUID][]*plan.Entry
}

func (m *mockPlans) Get(_ context.Context, patientID uuid.UUID) ([]*plan.Entry, error) {
	entries, ok := m.entries[patientID]
	if !ok {
		return nil, apperr.NotFound("patient")
	}
	return entries, nil
}

func TestHandler_CreateAndGet(t *testing.T) {
	svc, _, ids := newTestTemplate(2)
	h := NewHandler(svc, &mockPlans{})
	e := echo.New()

	body := fmt.Sprintf(`{"name":"Back basics","video_ids":[%q,%q]}`, ids[0], ids[1])
	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var d Detail
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(d.Exercises) != 2 {
		t.Errorf("expected 2 exercises, got %d", len(d.Exercises))
	}
}

func TestHandler_Create_Conflict(t *testing.T) {
	svc, _, ids := newTestTemplate(1)
	h := NewHandler(svc, &mockPlans{})
	e := echo.New()

	body := fmt.Sprintf(`{"name":"Back basics","video_ids":[%q]}`, ids[0])
	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/templates", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestHandler_Expand(t *testing.T) {
	svc, _, ids := newTestTemplate(2)
	e := echo.New()

	d, err := svc.Create(context.Background(), &Template{Name: "Back basics"}, ids)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	patientID := uuid.New()
	plans := &mockPlans{entries: map[uuid.UUID][]*plan.Entry{
		patientID: {{Order: 0, Video: catalog.Video{ID: ids[0]}}},
	}}
	h := NewHandler(svc, plans)

	body := fmt.Sprintf(`{"template_id":%q}`, d.ID)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/patients/:id/plan/expand-template")
	c.SetParamNames("id")
	c.SetParamValues(patientID.String())

	if err := h.Expand(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Exercises []plan.ReplaceItem `json:"exercises"`
		Added     int                `json:"added"`
		Skipped   int                `json:"skipped"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Added != 1 || resp.Skipped != 1 {
		t.Errorf("expected added=1 skipped=1, got %+v", resp)
	}
	if len(resp.Exercises) != 2 {
		t.Errorf("expected 2 merged exercises, got %d", len(resp.Exercises))
	}
}

func TestHandler_Expand_MissingTemplateID(t *testing.T) {
	svc, _, _ := newTestTemplate(0)
	h := NewHandler(svc, &mockPlans{})
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/patients/:id/plan/expand-template")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.Expand(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestHandler_Expand_UnknownPatient(t *testing.T) {
	svc, _, ids := newTestTemplate(1)
	e := echo.New()

	d, err := svc.Create(context.Background(), &Template{Name: "Back basics"}, ids)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	h := NewHandler(svc, &mockPlans{})

	body := fmt.Sprintf(`{"template_id":%q}`, d.ID)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/patients/:id/plan/expand-template")
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	if err := h.Expand(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
