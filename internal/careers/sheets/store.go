package sheets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"careers-backend/internal/careers"
	"careers-backend/internal/shared/telemetry"
)

// rangeAPI is the slice of Client the store needs. Tests substitute an
// in-memory grid.
type rangeAPI interface {
	ReadRange(ctx context.Context, rangeSpec string) ([][]string, error)
	AppendRows(ctx context.Context, rangeSpec string, rows [][]string) error
	UpdateRange(ctx context.Context, rangeSpec string, rows [][]string) error
}

// Store maps the careers data model onto three spreadsheet regions. All
// writes target explicit row numbers computed from current row counts;
// blind appends are avoided because they can duplicate headers when two
// processes bootstrap the schema at once. Writes within this process are
// serialized to keep the count-then-write steps consistent locally; cross
// process races remain possible and accepted.
type Store struct {
	api rangeAPI
	now func() time.Time

	writeMu sync.Mutex

	structMu    sync.Mutex
	structReady bool
}

func NewStore(client *Client) *Store {
	return &Store{api: client, now: time.Now}
}

func newStoreWithAPI(api rangeAPI, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{api: api, now: now}
}

func (s *Store) GetAllJobs(ctx context.Context) ([]careers.Job, error) {
	if err := s.ensureStructure(ctx); err != nil {
		return nil, err
	}
	rows, err := s.api.ReadRange(ctx, jobsDataRange)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	out := make([]careers.Job, 0, len(rows))
	for _, row := range rows {
		if cell(row, 0) == "" {
			continue
		}
		out = append(out, decodeJobRow(row, now))
	}
	return out, nil
}

func (s *Store) GetActiveJobs(ctx context.Context) ([]careers.Job, error) {
	all, err := s.GetAllJobs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]careers.Job, 0, len(all))
	for _, job := range all {
		if job.IsActive {
			out = append(out, job)
		}
	}
	return out, nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*careers.Job, error) {
	job, _, err := s.findJob(ctx, id)
	return job, err
}

func (s *Store) findJob(ctx context.Context, id string) (*careers.Job, int, error) {
	all, err := s.GetAllJobs(ctx)
	if err != nil {
		return nil, 0, err
	}
	for i, job := range all {
		if job.ID == id {
			found := job
			return &found, i + 2, nil
		}
	}
	return nil, 0, careers.ErrNotFound
}

func (s *Store) CreateJob(ctx context.Context, data careers.NewJob) (*careers.Job, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	existing, err := s.GetAllJobs(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	job := careers.Job{
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
	rowNum := len(existing) + 2
	target := fmt.Sprintf("Jobs!A%d:L%d", rowNum, rowNum)
	if err := s.api.UpdateRange(ctx, target, [][]string{encodeJobRow(job)}); err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *Store) UpdateJob(ctx context.Context, id string, update careers.JobUpdate) (*careers.Job, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.updateJobLocked(ctx, id, update)
}

func (s *Store) updateJobLocked(ctx context.Context, id string, update careers.JobUpdate) (*careers.Job, error) {
	job, rowNum, err := s.findJob(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(job, s.now().UTC())
	target := fmt.Sprintf("Jobs!A%d:L%d", rowNum, rowNum)
	if err := s.api.UpdateRange(ctx, target, [][]string{encodeJobRow(*job)}); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	inactive := false
	_, err := s.UpdateJob(ctx, id, careers.JobUpdate{IsActive: &inactive})
	return err
}

func (s *Store) SearchJobs(ctx context.Context, keyword string) ([]careers.Job, error) {
	active, err := s.GetActiveJobs(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]careers.Job, 0, len(active))
	for _, job := range active {
		if job.Matches(keyword) {
			out = append(out, job)
		}
	}
	return out, nil
}

func (s *Store) GetAllApplications(ctx context.Context) ([]careers.Application, error) {
	if err := s.ensureStructure(ctx); err != nil {
		return nil, err
	}
	rows, err := s.api.ReadRange(ctx, applicationsDataRange)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	out := make([]careers.Application, 0, len(rows))
	for _, row := range rows {
		if cell(row, 0) == "" {
			continue
		}
		out = append(out, decodeApplicationRow(row, now))
	}
	return out, nil
}

func (s *Store) GetApplicationsForJob(ctx context.Context, jobID string) ([]careers.Application, error) {
	all, err := s.GetAllApplications(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]careers.Application, 0, len(all))
	for _, app := range all {
		if app.JobID == jobID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (s *Store) GetApplication(ctx context.Context, id string) (*careers.Application, error) {
	app, _, err := s.findApplication(ctx, id)
	return app, err
}

func (s *Store) findApplication(ctx context.Context, id string) (*careers.Application, int, error) {
	all, err := s.GetAllApplications(ctx)
	if err != nil {
		return nil, 0, err
	}
	for i, app := range all {
		if app.ID == id {
			found := app
			return &found, i + 2, nil
		}
	}
	return nil, 0, careers.ErrNotFound
}

// CreateApplication writes the core row, then expands job-specific answers
// into the wide projection. Projection failure does not roll back the core
// row; it surfaces as *careers.PartialWriteError alongside the record.
func (s *Store) CreateApplication(ctx context.Context, data careers.NewApplication) (*careers.Application, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	existing, err := s.GetAllApplications(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(existing))
	for _, app := range existing {
		ids = append(ids, app.ID)
	}

	now := s.now().UTC()
	app := careers.Application{
		ID:                 careers.NextApplicationID(now, ids),
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
		Status:             careers.StatusPending,
		AppliedAt:          now,
		UpdatedAt:          now,
	}

	// The core row stores an empty answers cell; the answers live in the
	// wide projection keyed by application id.
	rowCopy := app
	rowCopy.JobSpecificAnswers = ""
	rowNum := len(existing) + 2
	target := fmt.Sprintf("Applications!A%d:P%d", rowNum, rowNum)
	if err := s.api.UpdateRange(ctx, target, [][]string{encodeApplicationRow(rowCopy)}); err != nil {
		return nil, err
	}

	if app.JobSpecificAnswers != "" {
		if err := s.expandAnswers(ctx, app); err != nil {
			telemetry.Warn("sheets.answers_projection_failed", map[string]any{
				"application_id": app.ID,
				"error":          err.Error(),
			})
			return &app, &careers.PartialWriteError{ApplicationID: app.ID, Err: err}
		}
	}
	return &app, nil
}

// expandAnswers appends one wide row per application: four fixed cells then
// one answer per QuestionN column, in the order the form produced them.
func (s *Store) expandAnswers(ctx context.Context, app careers.Application) error {
	pairs, err := careers.ParseAnswers(app.JobSpecificAnswers)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return nil
	}

	jobTitle := "Unknown Job"
	if job, _, err := s.findJob(ctx, app.JobID); err == nil {
		jobTitle = job.Title
	}

	if _, err := s.ensureAnswersHeader(ctx, len(pairs)); err != nil {
		return err
	}

	idColumn, err := s.api.ReadRange(ctx, answersIDColumnRange)
	if err != nil {
		return err
	}
	rowNum := len(idColumn) + 1

	row := []string{app.ID, jobTitle, app.ApplicantName(), app.JobID}
	for _, pair := range pairs {
		row = append(row, pair.Answer)
	}
	target := fmt.Sprintf("JobSpecificAnswers!A%d:%s%d", rowNum, columnLetter(len(row)), rowNum)
	return s.api.UpdateRange(ctx, target, [][]string{row})
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id, status, notes string) (*careers.Application, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	app, rowNum, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	app.Status = status
	if notes != "" {
		app.Notes = notes
	}
	app.UpdatedAt = s.now().UTC()

	rowCopy := *app
	rowCopy.JobSpecificAnswers = ""
	target := fmt.Sprintf("Applications!A%d:P%d", rowNum, rowNum)
	if err := s.api.UpdateRange(ctx, target, [][]string{encodeApplicationRow(rowCopy)}); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *Store) Diagnostics(ctx context.Context) (careers.Diagnostics, error) {
	jobs, err := s.GetAllJobs(ctx)
	if err != nil {
		return careers.Diagnostics{}, err
	}
	apps, err := s.GetAllApplications(ctx)
	if err != nil {
		return careers.Diagnostics{}, err
	}
	return careers.Diagnostics{
		Backend:          "sheets",
		JobCount:         len(jobs),
		ApplicationCount: len(apps),
	}, nil
}

// columnLetter converts a 1-based column index to its A1 notation letters.
func columnLetter(n int) string {
	letters := ""
	for n > 0 {
		n--
		letters = string(rune('A'+n%26)) + letters
		n /= 26
	}
	return letters
}
