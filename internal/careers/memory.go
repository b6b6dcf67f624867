package careers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage is the transient fallback backend. It behaves like the other
// implementations but discards everything on restart.
type MemoryStorage struct {
	mu           sync.RWMutex
	jobs         map[string]Job
	jobOrder     []string
	applications map[string]Application
	appOrder     []string
	now          func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		jobs:         make(map[string]Job),
		applications: make(map[string]Application),
		now:          time.Now,
	}
}

// SetClock overrides the wall clock, for tests that pin the submission day.
func (s *MemoryStorage) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now != nil {
		s.now = now
	}
}

func (s *MemoryStorage) GetAllJobs(ctx context.Context) ([]Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Job, 0, len(s.jobOrder))
	for _, id := range s.jobOrder {
		out = append(out, cloneJob(s.jobs[id]))
	}
	return out, nil
}

func (s *MemoryStorage) GetActiveJobs(ctx context.Context) ([]Job, error) {
	all, err := s.GetAllJobs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Job, 0, len(all))
	for _, job := range all {
		if job.IsActive {
			out = append(out, job)
		}
	}
	return out, nil
}

func (s *MemoryStorage) GetJob(ctx context.Context, id string) (*Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := cloneJob(job)
	return &copied, nil
}

func (s *MemoryStorage) CreateJob(ctx context.Context, data NewJob) (*Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	job := Job{
		ID:             uuid.NewString(),
		Title:          data.Title,
		Department:     data.Department,
		Type:           data.Type,
		Level:          data.Level,
		Location:       data.Location,
		Description:    data.Description,
		Requirements:   append([]string(nil), data.Requirements...),
		ApplicationURL: data.ApplicationURL,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.jobs[job.ID] = job
	s.jobOrder = append(s.jobOrder, job.ID)
	copied := cloneJob(job)
	return &copied, nil
}

func (s *MemoryStorage) UpdateJob(ctx context.Context, id string, update JobUpdate) (*Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	update.Apply(&job, s.now().UTC())
	s.jobs[id] = job
	copied := cloneJob(job)
	return &copied, nil
}

func (s *MemoryStorage) DeleteJob(ctx context.Context, id string) error {
	inactive := false
	_, err := s.UpdateJob(ctx, id, JobUpdate{IsActive: &inactive})
	return err
}

func (s *MemoryStorage) SearchJobs(ctx context.Context, keyword string) ([]Job, error) {
	active, err := s.GetActiveJobs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Job, 0, len(active))
	for _, job := range active {
		if job.Matches(keyword) {
			out = append(out, job)
		}
	}
	return out, nil
}

func (s *MemoryStorage) GetAllApplications(ctx context.Context) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Application, 0, len(s.appOrder))
	for _, id := range s.appOrder {
		out = append(out, s.applications[id])
	}
	return out, nil
}

func (s *MemoryStorage) GetApplicationsForJob(ctx context.Context, jobID string) ([]Application, error) {
	all, err := s.GetAllApplications(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Application, 0, len(all))
	for _, app := range all {
		if app.JobID == jobID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (s *MemoryStorage) GetApplication(ctx context.Context, id string) (*Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.applications[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := app
	return &copied, nil
}

func (s *MemoryStorage) CreateApplication(ctx context.Context, data NewApplication) (*Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	app := Application{
		ID:                 NextApplicationID(now, s.appOrder),
		JobID:              data.JobID,
		FirstName:          data.FirstName,
		LastName:           data.LastName,
		Email:              data.Email,
		Phone:              data.Phone,
		ResumeURL:          data.ResumeURL,
		CanTravel:          data.CanTravel,
		CurrentSalary:      data.CurrentSalary,
		ExpectedSalary:     data.ExpectedSalary,
		Motivation:         data.Motivation,
		JobSpecificAnswers: data.JobSpecificAnswers,
		Status:             StatusPending,
		AppliedAt:          now,
		UpdatedAt:          now,
	}
	s.applications[app.ID] = app
	s.appOrder = append(s.appOrder, app.ID)
	copied := app
	return &copied, nil
}

func (s *MemoryStorage) UpdateApplicationStatus(ctx context.Context, id, status, notes string) (*Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.applications[id]
	if !ok {
		return nil, ErrNotFound
	}
	app.Status = status
	if notes != "" {
		app.Notes = notes
	}
	app.UpdatedAt = s.now().UTC()
	s.applications[id] = app
	copied := app
	return &copied, nil
}

func (s *MemoryStorage) Diagnostics(ctx context.Context) (Diagnostics, error) {
	if err := ctx.Err(); err != nil {
		return Diagnostics{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Diagnostics{
		Backend:          "memory",
		JobCount:         len(s.jobs),
		ApplicationCount: len(s.applications),
	}, nil
}

func cloneJob(job Job) Job {
	job.Requirements = append([]string(nil), job.Requirements...)
	return job
}
