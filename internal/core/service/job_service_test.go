package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/linkroom/linkroom-api/internal/core/domain"
	"github.com/linkroom/linkroom-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	refunds  int
	grants   int
}

func newStubAccountRepo(accounts ...*domain.Account) *stubAccountRepo {
	r := &stubAccountRepo{accounts: make(map[string]*domain.Account)}
	for _, a := range accounts {
		clone := *a
		r.accounts[a.ID] = &clone
	}
	return r
}

func (r *stubAccountRepo) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Email == a.Email {
			return nil, domain.ErrAccountExists
		}
	}
	clone := *a
	clone.ID = fmt.Sprintf("acc-%d", len(r.accounts)+1)
	r.accounts[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) UpdateOrgID(_ context.Context, id, orgID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.OrgID = orgID
	return nil
}

// ConsumeToken mirrors the conditional Mongo update: the decrement commits
// only when the stored balance still equals observed.
func (r *stubAccountRepo) ConsumeToken(_ context.Context, id string, observed int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if a.Tokens != observed || a.Tokens <= 0 {
		return domain.ErrCreditConflict
	}
	a.Tokens--
	return nil
}

func (r *stubAccountRepo) RefundToken(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Tokens++
	r.refunds++
	return nil
}

func (r *stubAccountRepo) GrantTokens(_ context.Context, id string, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Tokens += n
	r.grants++
	return nil
}

func (r *stubAccountRepo) tokens(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts[id].Tokens
}

type stubJobRepo struct {
	mu        sync.Mutex
	jobs      map[string]*domain.Job
	nextID    int
	createErr error // if set, Create returns this error
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.Job)}
}

func (r *stubJobRepo) Create(_ context.Context, j *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	j.ID = fmt.Sprintf("job-%d", r.nextID)
	clone := *j
	r.jobs[j.ID] = &clone
	return nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) List(_ context.Context, f ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Job
	for _, j := range r.jobs {
		if j.Hidden || j.Status != domain.JobStatusPublished {
			continue
		}
		if f.JobType != "" && j.JobType != f.JobType {
			continue
		}
		if f.RemoteType != "" && j.RemoteType != f.RemoteType {
			continue
		}
		if f.Search != "" {
			titleMatch := strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Search))
			companyMatch := strings.Contains(strings.ToLower(j.CompanyName), strings.ToLower(f.Search))
			if !titleMatch && !companyMatch {
				continue
			}
		}
		clone := *j
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubJobRepo) ListPublished(ctx context.Context) ([]*domain.Job, error) {
	items, _, err := r.List(ctx, ports.ListJobsFilter{})
	return items, err
}

func (r *stubJobRepo) IncrementViewCount(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	j.ViewCount++
	return nil
}

func (r *stubJobRepo) UpsertBySourceHash(_ context.Context, j *domain.Job) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.jobs {
		if existing.SourceHash == j.SourceHash {
			j.ID = existing.ID
			existing.Title = j.Title
			existing.Description = j.Description
			existing.CompanyName = j.CompanyName
			existing.UpdatedAt = j.UpdatedAt
			return false, nil
		}
	}
	r.nextID++
	j.ID = fmt.Sprintf("job-%d", r.nextID)
	clone := *j
	r.jobs[j.ID] = &clone
	return true, nil
}

// HideStale applies the same filter the real Mongo repo uses.
func (r *stubJobRepo) HideStale(_ context.Context, cutoff, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, j := range r.jobs {
		if j.Hidden {
			continue
		}
		expired := j.ExpiresAt != nil && j.ExpiresAt.Before(now)
		if j.CreatedAt.Before(cutoff) || expired {
			j.Hidden = true
			at := now
			j.HiddenAt = &at
			n++
		}
	}
	return n, nil
}

func (r *stubJobRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func employerAccount(id string, tokens int) *domain.Account {
	return &domain.Account{ID: id, Email: id + "@example.com", Role: domain.RoleEmployer, OrgID: "org-1", Tokens: tokens}
}

func postInput(actorID, role string) ports.PostJobInput {
	return ports.PostJobInput{
		ActorID:     actorID,
		ActorRole:   role,
		Title:       "Backend Engineer",
		Description: "Build the thing",
	}
}

// ---------------------------------------------------------------------------
// PostJob tests
// ---------------------------------------------------------------------------

func TestJobService_PostJob_ConsumesCredit(t *testing.T) {
	accounts := newStubAccountRepo(employerAccount("emp-1", 1))
	jobs := newStubJobRepo()
	svc := NewJobService(accounts, jobs, discardLogger)

	result, err := svc.PostJob(context.Background(), postInput("emp-1", domain.RoleEmployer))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID == "" {
		t.Fatal("expected a job id")
	}
	if got := accounts.tokens("emp-1"); got != 0 {
		t.Fatalf("expected balance 0 after post, got %d", got)
	}

	job, err := jobs.FindByID(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("job not stored: %v", err)
	}
	if job.IsAdminPost {
		t.Fatal("employer post must not be ad-eligible")
	}
	if job.Status != domain.JobStatusPublished {
		t.Fatalf("expected published job, got %s", job.Status)
	}
	if job.CompanyName != defaultEmployerCompany {
		t.Fatalf("expected default company name, got %q", job.CompanyName)
	}
}

func TestJobService_PostJob_ZeroBalance(t *testing.T) {
	accounts := newStubAccountRepo(employerAccount("emp-1", 0))
	jobs := newStubJobRepo()
	svc := NewJobService(accounts, jobs, discardLogger)

	_, err := svc.PostJob(context.Background(), postInput("emp-1", domain.RoleEmployer))
	if !errors.Is(err, domain.ErrNoCredits) {
		t.Fatalf("expected ErrNoCredits, got %v", err)
	}
	if jobs.count() != 0 {
		t.Fatal("no job must be created on zero balance")
	}
	if got := accounts.tokens("emp-1"); got != 0 {
		t.Fatalf("balance must stay 0, got %d", got)
	}
}

func TestJobService_PostJob_ExactlyNPosts(t *testing.T) {
	const n = 3
	accounts := newStubAccountRepo(employerAccount("emp-1", n))
	jobs := newStubJobRepo()
	svc := NewJobService(accounts, jobs, discardLogger)

	for i := 0; i < n; i++ {
		if _, err := svc.PostJob(context.Background(), postInput("emp-1", domain.RoleEmployer)); err != nil {
			t.Fatalf("post %d failed: %v", i+1, err)
		}
	}

	_, err := svc.PostJob(context.Background(), postInput("emp-1", domain.RoleEmployer))
	if !errors.Is(err, domain.ErrNoCredits) {
		t.Fatalf("post %d: expected ErrNoCredits, got %v", n+1, err)
	}
	if jobs.count() != n {
		t.Fatalf("expected exactly %d jobs, got %d", n, jobs.count())
	}
}

func TestJobService_PostJob_ConcurrentSingleCredit(t *testing.T) {
	accounts := newStubAccountRepo(employerAccount("emp-1", 1))
	jobs := newStubJobRepo()
	svc := NewJobService(accounts, jobs, discardLogger)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.PostJob(context.Background(), postInput("emp-1", domain.RoleEmployer))
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one success, got %d (errors: %v)", successes, results)
	}
	if jobs.count() != 1 {
		t.Fatalf("expected exactly one job, got %d", jobs.count())
	}
	if got := accounts.tokens("emp-1"); got != 0 {
		t.Fatalf("expected balance 0, got %d", got)
	}
}

func TestJobService_PostJob_RefundsOnCreateFailure(t *testing.T) {
	accounts := newStubAccountRepo(employerAccount("emp-1", 2))
	jobs := newStubJobRepo()
	jobs.createErr = errors.New("insert failed")
	svc := NewJobService(accounts, jobs, discardLogger)

	_, err := svc.PostJob(context.Background(), postInput("emp-1", domain.RoleEmployer))
	if err == nil {
		t.Fatal("expected error from failed create")
	}
	if got := accounts.tokens("emp-1"); got != 2 {
		t.Fatalf("credit must be refunded, balance = %d", got)
	}
	if accounts.refunds != 1 {
		t.Fatalf("expected one refund, got %d", accounts.refunds)
	}
}

func TestJobService_PostJob_RoleChecks(t *testing.T) {
	accounts := newStubAccountRepo(employerAccount("emp-1", 5))
	svc := NewJobService(accounts, newStubJobRepo(), discardLogger)

	if _, err := svc.PostJob(context.Background(), postInput("", domain.RoleEmployer)); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.PostJob(context.Background(), postInput("emp-1", domain.RoleJobSeeker)); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	in := postInput("emp-1", domain.RoleEmployer)
	in.Title = ""
	if _, err := svc.PostJob(context.Background(), in); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// AdminPostJob tests
// ---------------------------------------------------------------------------

func TestJobService_AdminPostJob_NoBalanceMutation(t *testing.T) {
	admin := &domain.Account{ID: "adm-1", Email: "adm@example.com", Role: domain.RoleAdmin, Tokens: 0}
	accounts := newStubAccountRepo(admin)
	jobs := newStubJobRepo()
	svc := NewJobService(accounts, jobs, discardLogger)

	result, err := svc.AdminPostJob(context.Background(), postInput("adm-1", domain.RoleAdmin))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	job, _ := jobs.FindByID(context.Background(), result.ID)
	if !job.IsAdminPost {
		t.Fatal("admin post must be ad-eligible")
	}
	if job.CompanyName != defaultAdminCompany {
		t.Fatalf("expected default admin company, got %q", job.CompanyName)
	}
	if got := accounts.tokens("adm-1"); got != 0 {
		t.Fatalf("admin post must not touch the balance, got %d", got)
	}
}

func TestJobService_AdminPostJob_RequiresAdmin(t *testing.T) {
	accounts := newStubAccountRepo(employerAccount("emp-1", 5))
	svc := NewJobService(accounts, newStubJobRepo(), discardLogger)

	if _, err := svc.AdminPostJob(context.Background(), postInput("emp-1", domain.RoleEmployer)); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// IngestJob tests
// ---------------------------------------------------------------------------

func TestJobService_IngestJob_UpsertsByURL(t *testing.T) {
	jobs := newStubJobRepo()
	svc := NewJobService(newStubAccountRepo(), jobs, discardLogger)

	in := ports.IngestJobInput{
		SourceURL:   "https://boards.example.com/jobs/42",
		Title:       "Data Engineer",
		Description: "Pipelines",
		CompanyName: "Acme",
	}

	first, err := svc.IngestJob(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Created {
		t.Fatal("first ingestion should create")
	}

	in.Title = "Senior Data Engineer"
	second, err := svc.IngestJob(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Created {
		t.Fatal("repeat ingestion of the same URL must update, not create")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same job id, got %s and %s", first.ID, second.ID)
	}
	if jobs.count() != 1 {
		t.Fatalf("expected one job, got %d", jobs.count())
	}

	job, _ := jobs.FindByID(context.Background(), first.ID)
	if job.Title != "Senior Data Engineer" {
		t.Fatalf("update not applied, title = %q", job.Title)
	}
}

func TestJobService_IngestJob_RequiresSourceURL(t *testing.T) {
	svc := NewJobService(newStubAccountRepo(), newStubJobRepo(), discardLogger)

	_, err := svc.IngestJob(context.Background(), ports.IngestJobInput{Title: "x", Description: "y"})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ExpireJobs tests
// ---------------------------------------------------------------------------

func TestJobService_ExpireJobs_Idempotent(t *testing.T) {
	jobs := newStubJobRepo()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	retention := 45 * 24 * time.Hour

	seed := func(created time.Time, expires *time.Time) {
		r := jobs
		r.mu.Lock()
		r.nextID++
		id := fmt.Sprintf("job-%d", r.nextID)
		r.jobs[id] = &domain.Job{ID: id, Status: domain.JobStatusPublished, CreatedAt: created, ExpiresAt: expires}
		r.mu.Unlock()
	}

	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)
	seed(now.Add(-60*24*time.Hour), nil)    // stale by age
	seed(now.Add(-10*24*time.Hour), &past)  // explicitly expired
	seed(now.Add(-10*24*time.Hour), &future) // fresh
	seed(now.Add(-time.Hour), nil)          // fresh

	svc := NewJobService(newStubAccountRepo(), jobs, discardLogger)

	hidden, err := svc.ExpireJobs(context.Background(), now, retention)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hidden != 2 {
		t.Fatalf("expected 2 jobs hidden, got %d", hidden)
	}

	again, err := svc.ExpireJobs(context.Background(), now, retention)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != 0 {
		t.Fatalf("second sweep must hide nothing, got %d", again)
	}
}

// ---------------------------------------------------------------------------
// TrackView / GetJob tests
// ---------------------------------------------------------------------------

func TestJobService_TrackView(t *testing.T) {
	jobs := newStubJobRepo()
	svc := NewJobService(newStubAccountRepo(), jobs, discardLogger)

	job := &domain.Job{Status: domain.JobStatusPublished, CreatedAt: time.Now()}
	_ = jobs.Create(context.Background(), job)

	if err := svc.TrackView(context.Background(), job.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.TrackView(context.Background(), job.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := jobs.FindByID(context.Background(), job.ID)
	if stored.ViewCount != 2 {
		t.Fatalf("expected view count 2, got %d", stored.ViewCount)
	}

	if err := svc.TrackView(context.Background(), "missing"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestJobService_GetJob_HiddenIsNotFound(t *testing.T) {
	jobs := newStubJobRepo()
	svc := NewJobService(newStubAccountRepo(), jobs, discardLogger)

	job := &domain.Job{Status: domain.JobStatusPublished, Hidden: true, CreatedAt: time.Now()}
	_ = jobs.Create(context.Background(), job)

	if _, err := svc.GetJob(context.Background(), job.ID); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for hidden job, got %v", err)
	}
}
