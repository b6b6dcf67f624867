package careers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PGStorage is the Postgres backend. Requirements are stored JSON-encoded in
// a text column so the row shape stays aligned with the sheet layout.
type PGStorage struct {
	db  *sql.DB
	now func() time.Time
}

func NewPGStorage(db *sql.DB) *PGStorage {
	return &PGStorage{db: db, now: time.Now}
}

// SetClock overrides the wall clock, for tests that pin the submission day.
func (s *PGStorage) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

const jobColumns = `id, title, department, type, level, location, description,
	requirements, application_url, is_active, created_at, updated_at`

const applicationColumns = `id, job_id, first_name, last_name, email, phone,
	resume_url, can_travel, current_salary, expected_salary, motivation,
	job_specific_answers, status, notes, applied_at, updated_at`

func (s *PGStorage) GetAllJobs(ctx context.Context) ([]Job, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (s *PGStorage) GetActiveJobs(ctx context.Context) ([]Job, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE is_active = TRUE ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list active jobs: %w", err)
	}
	defer rows.Close()
	return scanJobs(rows)
}

func (s *PGStorage) GetJob(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

func (s *PGStorage) CreateJob(ctx context.Context, data NewJob) (*Job, error) {
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
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (`+jobColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		job.ID, job.Title, job.Department, job.Type, job.Level, job.Location,
		job.Description, encodeRequirements(job.Requirements),
		nullable(job.ApplicationURL), job.IsActive, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return &job, nil
}

func (s *PGStorage) UpdateJob(ctx context.Context, id string, update JobUpdate) (*Job, error) {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(job, s.now().UTC())
	_, err = s.db.ExecContext(ctx,
		`UPDATE jobs SET title = $2, department = $3, type = $4, level = $5,
		 location = $6, description = $7, requirements = $8,
		 application_url = $9, is_active = $10, updated_at = $11
		 WHERE id = $1`,
		job.ID, job.Title, job.Department, job.Type, job.Level, job.Location,
		job.Description, encodeRequirements(job.Requirements),
		nullable(job.ApplicationURL), job.IsActive, job.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

func (s *PGStorage) DeleteJob(ctx context.Context, id string) error {
	inactive := false
	_, err := s.UpdateJob(ctx, id, JobUpdate{IsActive: &inactive})
	return err
}

func (s *PGStorage) SearchJobs(ctx context.Context, keyword string) ([]Job, error) {
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

func (s *PGStorage) GetAllApplications(ctx context.Context) ([]Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications ORDER BY applied_at`)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (s *PGStorage) GetApplicationsForJob(ctx context.Context, jobID string) ([]Application, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY applied_at`,
		jobID)
	if err != nil {
		return nil, fmt.Errorf("list applications for job: %w", err)
	}
	defer rows.Close()
	return scanApplications(rows)
}

func (s *PGStorage) GetApplication(ctx context.Context, id string) (*Application, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

func (s *PGStorage) CreateApplication(ctx context.Context, data NewApplication) (*Application, error) {
	now := s.now().UTC()

	// Same date-prefix counting scheme as the sheet backend, so ids stay
	// uniform across backends.
	prefix := now.Format("20060102")
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE id LIKE $1`, prefix+"-%").Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("count today's applications: %w", err)
	}

	app := Application{
		ID:                 fmt.Sprintf("%s-%03d", prefix, count+1),
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
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO applications (`+applicationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		app.ID, app.JobID, app.FirstName, app.LastName, app.Email,
		nullable(app.Phone), nullable(app.ResumeURL), nullable(app.CanTravel),
		nullable(app.CurrentSalary), nullable(app.ExpectedSalary),
		nullable(app.Motivation), nullable(app.JobSpecificAnswers),
		app.Status, nullable(app.Notes), app.AppliedAt, app.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return &app, nil
}

func (s *PGStorage) UpdateApplicationStatus(ctx context.Context, id, status, notes string) (*Application, error) {
	app, err := s.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	app.Status = status
	if notes != "" {
		app.Notes = notes
	}
	app.UpdatedAt = s.now().UTC()
	_, err = s.db.ExecContext(ctx,
		`UPDATE applications SET status = $2, notes = $3, updated_at = $4 WHERE id = $1`,
		app.ID, app.Status, nullable(app.Notes), app.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}
	return app, nil
}

func (s *PGStorage) Diagnostics(ctx context.Context) (Diagnostics, error) {
	diag := Diagnostics{Backend: "postgres"}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&diag.JobCount); err != nil {
		return Diagnostics{}, fmt.Errorf("count jobs: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&diag.ApplicationCount); err != nil {
		return Diagnostics{}, fmt.Errorf("count applications: %w", err)
	}
	return diag, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(r rowScanner) (*Job, error) {
	var (
		job      Job
		reqs     string
		level    sql.NullString
		applyURL sql.NullString
	)
	err := r.Scan(&job.ID, &job.Title, &job.Department, &job.Type, &level,
		&job.Location, &job.Description, &reqs, &applyURL, &job.IsActive,
		&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}
	job.Level = level.String
	job.ApplicationURL = applyURL.String
	job.Requirements = decodeRequirements(reqs)
	return &job, nil
}

func scanJobs(rows *sql.Rows) ([]Job, error) {
	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jobs: %w", err)
	}
	return out, nil
}

func scanApplication(r rowScanner) (*Application, error) {
	var (
		app                                        Application
		phone, resumeURL, canTravel, currentSalary sql.NullString
		expectedSalary, motivation, answers, notes sql.NullString
	)
	err := r.Scan(&app.ID, &app.JobID, &app.FirstName, &app.LastName,
		&app.Email, &phone, &resumeURL, &canTravel, &currentSalary,
		&expectedSalary, &motivation, &answers, &app.Status, &notes,
		&app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}
	app.Phone = phone.String
	app.ResumeURL = resumeURL.String
	app.CanTravel = canTravel.String
	app.CurrentSalary = currentSalary.String
	app.ExpectedSalary = expectedSalary.String
	app.Motivation = motivation.String
	app.JobSpecificAnswers = answers.String
	app.Notes = notes.String
	return &app, nil
}

func scanApplications(rows *sql.Rows) ([]Application, error) {
	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return out, nil
}

func encodeRequirements(reqs []string) string {
	if reqs == nil {
		reqs = []string{}
	}
	b, err := json.Marshal(reqs)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeRequirements(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
