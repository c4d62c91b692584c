package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/linkroom/linkroom-api/internal/core/domain"
	"github.com/linkroom/linkroom-api/internal/core/ports"
)

type stubJobService struct {
	postFn   func(ctx context.Context, input ports.PostJobInput) (*ports.PostJobResult, error)
	ingestFn func(ctx context.Context, input ports.IngestJobInput) (*ports.IngestJobResult, error)
	listFn   func(ctx context.Context, input ports.ListJobsInput) (*ports.ListJobsResult, error)
}

func (s *stubJobService) PostJob(ctx context.Context, input ports.PostJobInput) (*ports.PostJobResult, error) {
	return s.postFn(ctx, input)
}

func (s *stubJobService) AdminPostJob(ctx context.Context, input ports.PostJobInput) (*ports.PostJobResult, error) {
	return s.postFn(ctx, input)
}

func (s *stubJobService) GetJob(context.Context, string) (*domain.Job, error) {
	return nil, domain.ErrJobNotFound
}

func (s *stubJobService) ListJobs(ctx context.Context, input ports.ListJobsInput) (*ports.ListJobsResult, error) {
	return s.listFn(ctx, input)
}

func (s *stubJobService) TrackView(context.Context, string) error { return nil }

func (s *stubJobService) IngestJob(ctx context.Context, input ports.IngestJobInput) (*ports.IngestJobResult, error) {
	return s.ingestFn(ctx, input)
}

func (s *stubJobService) ExpireJobs(context.Context, time.Time, time.Duration) (int64, error) {
	return 2, nil
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, role string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("user_id", "u-1")
	c.Set("role", role)
	c.Set("org_id", "org-1")
	c.Set("email", "u@example.com")
	return c
}

func TestJobHandler_Post_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubJobService{
		postFn: func(_ context.Context, input ports.PostJobInput) (*ports.PostJobResult, error) {
			if input.ActorID != "u-1" || input.ActorRole != domain.RoleEmployer || input.ActorOrgID != "org-1" {
				t.Fatalf("actor fields must come from claims: %+v", input)
			}
			if input.Title != "Backend Engineer" {
				t.Fatalf("unexpected title: %q", input.Title)
			}
			return &ports.PostJobResult{ID: "job-1"}, nil
		},
	}
	handler := NewJobHandler(stub, 45*24*time.Hour)

	body := strings.NewReader(`{"title":"Backend Engineer","description":"Build the thing","job_type":"full_time"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/jobs", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, domain.RoleEmployer)

	if err := handler.Post(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["id"] != "job-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestJobHandler_Post_MissingClaims(t *testing.T) {
	e := newTestEcho()
	handler := NewJobHandler(&stubJobService{}, 45*24*time.Hour)

	body := strings.NewReader(`{"title":"Backend Engineer","description":"x"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/jobs", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Post(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestJobHandler_Post_NoCreditsPropagates(t *testing.T) {
	e := newTestEcho()
	stub := &stubJobService{
		postFn: func(_ context.Context, _ ports.PostJobInput) (*ports.PostJobResult, error) {
			return nil, domain.ErrNoCredits
		},
	}
	handler := NewJobHandler(stub, 45*24*time.Hour)

	body := strings.NewReader(`{"title":"Backend Engineer","description":"x"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/jobs", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, domain.RoleEmployer)

	if err := handler.Post(c); !errors.Is(err, domain.ErrNoCredits) {
		t.Fatalf("expected ErrNoCredits to propagate, got %v", err)
	}
}

func TestJobHandler_Ingest_StatusByOutcome(t *testing.T) {
	e := newTestEcho()
	created := true
	stub := &stubJobService{
		ingestFn: func(_ context.Context, input ports.IngestJobInput) (*ports.IngestJobResult, error) {
			if input.SourceURL == "" {
				t.Fatal("source url must be forwarded")
			}
			return &ports.IngestJobResult{ID: "job-9", Created: created}, nil
		},
	}
	handler := NewJobHandler(stub, 45*24*time.Hour)

	send := func() *httptest.ResponseRecorder {
		body := strings.NewReader(`{"source_url":"https://boards.example.com/jobs/42","title":"Data Engineer","description":"Pipelines"}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/ingest/jobs", body)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		if err := handler.Ingest(e.NewContext(req, rec)); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec
	}

	if rec := send(); rec.Code != http.StatusCreated {
		t.Fatalf("first ingest: expected 201, got %d", rec.Code)
	}
	created = false
	if rec := send(); rec.Code != http.StatusOK {
		t.Fatalf("repeat ingest: expected 200, got %d", rec.Code)
	}
}

func TestJobHandler_List_ForwardsFilters(t *testing.T) {
	e := newTestEcho()
	stub := &stubJobService{
		listFn: func(_ context.Context, input ports.ListJobsInput) (*ports.ListJobsResult, error) {
			if input.JobType != "full_time" || input.Search != "go" || input.Page != 2 || input.Limit != 10 {
				t.Fatalf("filters not forwarded: %+v", input)
			}
			return &ports.ListJobsResult{
				Items:      []*domain.Job{{ID: "job-1", Title: "Go Engineer", Status: domain.JobStatusPublished}},
				Total:      11,
				Page:       2,
				Limit:      10,
				TotalPages: 2,
			}, nil
		},
	}
	handler := NewJobHandler(stub, 45*24*time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/v1/jobs?job_type=full_time&search=go&page=2&limit=10", nil)
	rec := httptest.NewRecorder()
	if err := handler.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	pagination, ok := resp["pagination"].(map[string]any)
	if !ok || pagination["total"] != float64(11) || pagination["total_pages"] != float64(2) {
		t.Fatalf("unexpected pagination: %+v", resp)
	}
}

func TestJobHandler_Expire(t *testing.T) {
	e := newTestEcho()
	handler := NewJobHandler(&stubJobService{}, 45*24*time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/expire-jobs", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, domain.RoleAdmin)

	if err := handler.Expire(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["hidden"] != float64(2) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
