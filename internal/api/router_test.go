package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/linkroom/linkroom-api/internal/core/domain"
	"github.com/linkroom/linkroom-api/internal/core/ports"
)

type routerJobService struct {
	trackedViews int
}

func (s *routerJobService) PostJob(context.Context, ports.PostJobInput) (*ports.PostJobResult, error) {
	return &ports.PostJobResult{ID: "job-1"}, nil
}

func (s *routerJobService) AdminPostJob(context.Context, ports.PostJobInput) (*ports.PostJobResult, error) {
	return &ports.PostJobResult{ID: "job-1"}, nil
}

func (s *routerJobService) GetJob(context.Context, string) (*domain.Job, error) {
	return &domain.Job{ID: "job-1", Status: domain.JobStatusPublished}, nil
}

func (s *routerJobService) ListJobs(context.Context, ports.ListJobsInput) (*ports.ListJobsResult, error) {
	return &ports.ListJobsResult{Page: 1, Limit: 20}, nil
}

func (s *routerJobService) TrackView(context.Context, string) error {
	s.trackedViews++
	return nil
}

func (s *routerJobService) IngestJob(context.Context, ports.IngestJobInput) (*ports.IngestJobResult, error) {
	return &ports.IngestJobResult{ID: "job-1", Created: true}, nil
}

func (s *routerJobService) ExpireJobs(context.Context, time.Time, time.Duration) (int64, error) {
	return 0, nil
}

type routerPaymentService struct {
	createCalls int
	verifyCalls int
}

func (s *routerPaymentService) CreatePayment(context.Context, ports.CreatePaymentInput) (*ports.CreatePaymentResult, error) {
	s.createCalls++
	return &ports.CreatePaymentResult{Reference: "ref-1"}, nil
}

func (s *routerPaymentService) VerifyPayment(context.Context, ports.VerifyPaymentInput) (*ports.VerifyPaymentResult, error) {
	s.verifyCalls++
	return &ports.VerifyPaymentResult{Success: true, Settlement: &domain.Settlement{ID: "set-1"}}, nil
}

const routerSecret = "router-test-secret"

func signedToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u-1",
		"email":   "u@example.com",
		"role":    role,
		"org_id":  "org-1",
	})
	signed, err := token.SignedString([]byte(routerSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func routerFixture() (*routerJobService, *routerPaymentService, http.Handler) {
	// NewRouter registers metrics collectors into the default registry;
	// reset it so the fixture can be built once per test without a
	// duplicate-registration panic.
	registry := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	jobs := &routerJobService{}
	payments := &routerPaymentService{}
	e := NewRouter(Deps{
		JWTSecret:    routerSecret,
		JobRetention: 45 * 24 * time.Hour,
		Logger:       zerolog.Nop(),
		Jobs:         jobs,
		Payments:     payments,
	})
	return jobs, payments, e
}

func TestRouter_TrackViewRequiresAuth(t *testing.T) {
	jobs, _, e := routerFixture()

	req := httptest.NewRequest(http.MethodPost, "/v1/jobs/job-1/view", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous view, got %d", rec.Code)
	}
	if jobs.trackedViews != 0 {
		t.Fatalf("view recorded for anonymous caller")
	}
}

func TestRouter_TrackViewWithToken(t *testing.T) {
	jobs, _, e := routerFixture()

	req := httptest.NewRequest(http.MethodPost, "/v1/jobs/job-1/view", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, domain.RoleJobSeeker))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if jobs.trackedViews != 1 {
		t.Fatalf("expected one recorded view, got %d", jobs.trackedViews)
	}
}

func TestRouter_VerifyPaymentAllowsAnyRole(t *testing.T) {
	_, payments, e := routerFixture()

	req := httptest.NewRequest(http.MethodGet, "/v1/payments/verify/ref-1", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, domain.RoleJobSeeker))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for job seeker verify, got %d", rec.Code)
	}
	if payments.verifyCalls != 1 {
		t.Fatalf("expected verify to reach the service, got %d calls", payments.verifyCalls)
	}
}

func TestRouter_CreatePaymentRestrictedToEmployers(t *testing.T) {
	_, payments, e := routerFixture()

	req := httptest.NewRequest(http.MethodPost, "/v1/payments", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, domain.RoleJobSeeker))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for job seeker initiation, got %d", rec.Code)
	}
	if payments.createCalls != 0 {
		t.Fatalf("initiation reached the service for a forbidden role")
	}
}
