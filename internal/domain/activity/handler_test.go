package activity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func TestHandler_Record(t *testing.T) {
	svc, repo, patients, videos := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	pid := addPatient(patients)
	vid := addVideo(videos, "neck-stretch")

	body := `{"patient_id":"` + pid.String() + `","video_id":"` + vid.String() + `"}`
	req, rec := jsonRequest(http.MethodPost, "/api/v1/activity", body)
	c := e.NewContext(req, rec)

	if err := h.record(c); err != nil {
		t.Fatalf("record: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 stored entry, got %d", len(repo.entries))
	}
}

func TestHandler_Record_UnknownAction(t *testing.T) {
	svc, _, patients, videos := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	pid := addPatient(patients)
	vid := addVideo(videos, "neck-stretch")

	body := `{"patient_id":"` + pid.String() + `","video_id":"` + vid.String() + `","action":"paused"}`
	req, rec := jsonRequest(http.MethodPost, "/api/v1/activity", body)
	c := e.NewContext(req, rec)

	if err := h.record(c); err != nil {
		t.Fatalf("record: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_Record_BadBody(t *testing.T) {
	svc, _, _, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/api/v1/activity", `{"patient_id":`)
	c := e.NewContext(req, rec)

	err := h.record(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestHandler_Summarize(t *testing.T) {
	svc, repo, patients, videos := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	pid := addPatient(patients)
	vid := addVideo(videos, "neck-stretch")
	repo.entries = append(repo.entries, &Entry{
		ID: uuid.New(), PatientID: pid, VideoID: vid,
		Action: ActionOpened, OccurredAt: time.Now(),
	})

	req, rec := jsonRequest(http.MethodGet, "/api/v1/patients/"+pid.String()+"/activity", "")
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/patients/:id/activity")
	c.SetParamNames("id")
	c.SetParamValues(pid.String())

	if err := h.summarize(c); err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Count != 1 {
		t.Fatalf("unexpected summary: %+v", got)
	}
}

func TestHandler_Summarize_UnknownPatient(t *testing.T) {
	svc, _, _, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	id := uuid.New()
	req, rec := jsonRequest(http.MethodGet, "/api/v1/patients/"+id.String()+"/activity", "")
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/patients/:id/activity")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	if err := h.summarize(c); err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
