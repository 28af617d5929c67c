package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ugrvsvs/my-osteo-app/internal/platform/apperr"
)

// -- Mock Repositories --

type mockVideoRepo struct {
	videos map[uuid.UUID]*Video
}

func newMockVideoRepo() *mockVideoRepo {
	return &mockVideoRepo{videos: make(map[uuid.UUID]*Video)}
}

func (m *mockVideoRepo) Create(_ context.Context, v *Video) error {
	v.ID = uuid.New()
	v.CreatedAt = time.Now()
	v.UpdatedAt = time.Now()
	m.videos[v.ID] = v
	return nil
}

func (m *mockVideoRepo) GetByID(_ context.Context, id uuid.UUID) (*Video, error) {
	v, ok := m.videos[id]
	if !ok {
		return nil, apperr.NotFound("video")
	}
	return v, nil
}

func (m *mockVideoRepo) List(_ context.Context, filter VideoFilter, limit, offset int) ([]*Video, int, error) {
	var result []*Video
	for _, v := range m.videos {
		if filter.Zone != "" && (v.Zone == nil || *v.Zone != filter.Zone) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(v.Title), strings.ToLower(filter.Search)) {
			continue
		}
		result = append(result, v)
	}
	total := len(result)
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockVideoRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*Video, error) {
	var result []*Video
	for _, id := range ids {
		if v, ok := m.videos[id]; ok {
			result = append(result, v)
		}
	}
	return result, nil
}

func (m *mockVideoRepo) Update(_ context.Context, v *Video) error {
	if _, ok := m.videos[v.ID]; !ok {
		return apperr.NotFound("video")
	}
	m.videos[v.ID] = v
	return nil
}

func (m *mockVideoRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.videos[id]; !ok {
		return apperr.NotFound("video")
	}
	delete(m.videos, id)
	return nil
}

type mockCategoryRepo struct {
	categories map[uuid.UUID]*Category
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[uuid.UUID]*Category)}
}

func (m *mockCategoryRepo) Create(_ context.Context, c *Category) error {
	for _, existing := range m.categories {
		if existing.Name == c.Name {
			return apperr.Conflict("category name already in use")
		}
	}
	c.ID = uuid.New()
	m.categories[c.ID] = c
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, apperr.NotFound("category")
	}
	return c, nil
}

func (m *mockCategoryRepo) List(_ context.Context) ([]*Category, error) {
	var result []*Category
	for _, c := range m.categories {
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCategoryRepo) Update(_ context.Context, c *Category) error {
	if _, ok := m.categories[c.ID]; !ok {
		return apperr.NotFound("category")
	}
	m.categories[c.ID] = c
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.categories[id]; !ok {
		return apperr.NotFound("category")
	}
	delete(m.categories, id)
	return nil
}

func newTestService() (*Service, *mockVideoRepo, *mockCategoryRepo) {
	videos := newMockVideoRepo()
	categories := newMockCategoryRepo()
	return NewService(videos, categories), videos, categories
}

// -- Video Tests --

func TestCreateVideo(t *testing.T) {
	svc, _, _ := newTestService()

	v := &Video{Title: "Cat-cow stretch", URL: "https://videos.example.com/cat-cow"}
	if err := svc.CreateVideo(context.Background(), v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestCreateVideo_MissingTitle(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.CreateVideo(context.Background(), &Video{URL: "https://videos.example.com/x"})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateVideo_MissingURL(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.CreateVideo(context.Background(), &Video{Title: "Cat-cow stretch"})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetVideo_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetVideo(context.Background(), uuid.New())
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateVideo(t *testing.T) {
	svc, _, _ := newTestService()

	v := &Video{Title: "Cat-cow stretch", URL: "https://videos.example.com/cat-cow"}
	if err := svc.CreateVideo(context.Background(), v); err != nil {
		t.Fatalf("create: %v", err)
	}

	v.Title = "Cat-cow stretch (slow)"
	if err := svc.UpdateVideo(context.Background(), v); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.GetVideo(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Cat-cow stretch (slow)" {
		t.Errorf("unexpected title: %s", got.Title)
	}
}

func TestDeleteVideo(t *testing.T) {
	svc, _, _ := newTestService()

	v := &Video{Title: "Cat-cow stretch", URL: "https://videos.example.com/cat-cow"}
	if err := svc.CreateVideo(context.Background(), v); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DeleteVideo(context.Background(), v.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetVideo(context.Background(), v.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestListVideosByIDs_SkipsUnknown(t *testing.T) {
	svc, _, _ := newTestService()

	v := &Video{Title: "Cat-cow stretch", URL: "https://videos.example.com/cat-cow"}
	if err := svc.CreateVideo(context.Background(), v); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.ListVideosByIDs(context.Background(), []uuid.UUID{v.ID, uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != v.ID {
		t.Errorf("unexpected result: %v", got)
	}
}

// -- Category Tests --

func TestCreateCategory(t *testing.T) {
	svc, _, _ := newTestService()

	cat := &Category{Name: "Mobility"}
	if err := svc.CreateCategory(context.Background(), cat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestCreateCategory_EmptyName(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.CreateCategory(context.Background(), &Category{Name: "  "})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	svc, _, _ := newTestService()

	if err := svc.CreateCategory(context.Background(), &Category{Name: "Mobility"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := svc.CreateCategory(context.Background(), &Category{Name: "Mobility"})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDeleteCategory_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	if err := svc.DeleteCategory(context.Background(), uuid.New()); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
