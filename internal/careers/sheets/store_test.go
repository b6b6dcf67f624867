package sheets

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"careers-backend/internal/careers"
)

// fakeSheet is an in-memory grid implementing rangeAPI. Rows are 1-indexed
// in A1 notation; index 0 of a sheet's slice is row 1.
type fakeSheet struct {
	mu         sync.Mutex
	sheets     map[string][][]string
	failUpdate string
}

func newFakeSheet() *fakeSheet {
	return &fakeSheet{sheets: make(map[string][][]string)}
}

var refPattern = regexp.MustCompile(`^([A-Z]+)(\d*):([A-Z]+)(\d*)$`)

func (f *fakeSheet) ReadRange(_ context.Context, spec string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(spec, "!", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("bad range spec %q", spec)
	}
	name, ref := parts[0], parts[1]
	rows := f.sheets[name]

	if ref == "1:1" {
		if len(rows) == 0 || len(rows[0]) == 0 {
			return nil, nil
		}
		return [][]string{append([]string(nil), rows[0]...)}, nil
	}

	m := refPattern.FindStringSubmatch(ref)
	if m == nil {
		return nil, fmt.Errorf("unsupported range %q", ref)
	}

	// Whole-column read, e.g. A:A.
	if m[2] == "" {
		var out [][]string
		for _, row := range rows {
			if len(row) == 0 {
				continue
			}
			out = append(out, []string{row[0]})
		}
		return out, nil
	}

	start, _ := strconv.Atoi(m[2])
	end, _ := strconv.Atoi(m[4])
	var out [][]string
	for i := start; i <= end && i <= len(rows); i++ {
		row := rows[i-1]
		if len(row) == 0 {
			continue
		}
		out = append(out, append([]string(nil), row...))
	}
	return out, nil
}

func (f *fakeSheet) AppendRows(_ context.Context, spec string, data [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	parts := strings.SplitN(spec, "!", 2)
	name := parts[0]
	for _, row := range data {
		f.sheets[name] = append(f.sheets[name], append([]string(nil), row...))
	}
	return nil
}

func (f *fakeSheet) UpdateRange(_ context.Context, spec string, data [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failUpdate != "" && strings.Contains(spec, f.failUpdate) {
		return errors.New("injected update failure")
	}

	parts := strings.SplitN(spec, "!", 2)
	if len(parts) != 2 {
		return fmt.Errorf("bad range spec %q", spec)
	}
	name, ref := parts[0], parts[1]

	start := 1
	if ref != "1:1" {
		m := refPattern.FindStringSubmatch(ref)
		if m == nil || m[2] == "" {
			return fmt.Errorf("unsupported update range %q", ref)
		}
		start, _ = strconv.Atoi(m[2])
	}

	rows := f.sheets[name]
	for i, rowData := range data {
		idx := start + i - 1
		for len(rows) <= idx {
			rows = append(rows, nil)
		}
		rows[idx] = append([]string(nil), rowData...)
	}
	f.sheets[name] = rows
	return nil
}

func (f *fakeSheet) row(name string, n int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.sheets[name]
	if n > len(rows) {
		return nil
	}
	return append([]string(nil), rows[n-1]...)
}

func (f *fakeSheet) rowCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sheets[name])
}

func testClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var day = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func seededStore(fake *fakeSheet, now func() time.Time) *Store {
	if len(fake.sheets["Jobs"]) == 0 {
		fake.sheets["Jobs"] = [][]string{append([]string(nil), jobsHeader...)}
	}
	return newStoreWithAPI(fake, now)
}

func TestBootstrapIdempotent(t *testing.T) {
	fake := newFakeSheet()
	ctx := context.Background()

	first := newStoreWithAPI(fake, testClock(day))
	if _, err := first.GetAllJobs(ctx); err != nil {
		t.Fatalf("first boot: %v", err)
	}

	jobsBefore := fake.row("Jobs", 1)
	appsBefore := fake.row("Applications", 1)
	answersBefore := fake.row("JobSpecificAnswers", 1)

	// Second process boot against the same sheet.
	second := newStoreWithAPI(fake, testClock(day))
	if _, err := second.GetAllJobs(ctx); err != nil {
		t.Fatalf("second boot: %v", err)
	}

	if !headerMatches(fake.row("Jobs", 1), jobsBefore) ||
		!headerMatches(fake.row("Applications", 1), appsBefore) ||
		!headerMatches(fake.row("JobSpecificAnswers", 1), answersBefore) {
		t.Fatalf("headers changed across boots")
	}
	if fake.rowCount("Jobs") != 1 || fake.rowCount("Applications") != 1 {
		t.Fatalf("bootstrap must not add data rows")
	}
	if !headerMatches(jobsBefore, jobsHeader) {
		t.Fatalf("jobs header wrong: %v", jobsBefore)
	}
	if len(appsBefore) != 16 {
		t.Fatalf("applications header must have 16 columns, got %d", len(appsBefore))
	}
}

func TestBootstrapRepairsMalformedHeader(t *testing.T) {
	fake := newFakeSheet()
	fake.sheets["Jobs"] = [][]string{{"garbage", "header"}}

	store := newStoreWithAPI(fake, testClock(day))
	if _, err := store.GetAllJobs(context.Background()); err != nil {
		t.Fatalf("boot: %v", err)
	}
	if !headerMatches(fake.row("Jobs", 1), jobsHeader) {
		t.Fatalf("malformed header must be rewritten, got %v", fake.row("Jobs", 1))
	}
}

func TestCreateJobWritesNextFreeRow(t *testing.T) {
	fake := newFakeSheet()
	store := newStoreWithAPI(fake, testClock(day))
	ctx := context.Background()

	job, err := store.CreateJob(ctx, careers.NewJob{
		Title: "Content Writer", Department: "Editorial", Type: "Full-time",
		Location: "Mumbai", Description: "Write reviews.",
		Requirements: []string{"English fluency"},
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if fake.rowCount("Jobs") != 2 {
		t.Fatalf("expected header + one data row, got %d", fake.rowCount("Jobs"))
	}

	got, err := store.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.Title != "Content Writer" || !got.IsActive {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	second, _ := store.CreateJob(ctx, careers.NewJob{
		Title: "Video Editor", Department: "Production", Type: "Full-time",
		Location: "Mumbai", Description: "Cut videos.",
	})
	row := fake.row("Jobs", 3)
	if row == nil || row[0] != second.ID {
		t.Fatalf("second job must land on row 3, got %v", row)
	}
}

func TestDeleteJobIsSoft(t *testing.T) {
	fake := newFakeSheet()
	store := newStoreWithAPI(fake, testClock(day))
	ctx := context.Background()

	job, _ := store.CreateJob(ctx, careers.NewJob{
		Title: "Editor", Department: "Editorial", Type: "Full-time",
		Location: "Mumbai", Description: "x",
	})
	if err := store.DeleteJob(ctx, job.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := store.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatalf("deleted job must still be readable: %v", err)
	}
	if got.IsActive {
		t.Fatalf("deleted job must be inactive")
	}
	active, _ := store.GetActiveJobs(ctx)
	if len(active) != 0 {
		t.Fatalf("inactive job leaked into active list")
	}
	if fake.rowCount("Jobs") != 2 {
		t.Fatalf("soft delete must not remove the row")
	}
}

func TestSubmitWithAnswersProjection(t *testing.T) {
	fake := newFakeSheet()
	fake.sheets["Jobs"] = [][]string{
		append([]string(nil), jobsHeader...),
		encodeJobRow(careers.Job{
			ID: "job1", Title: "Content Writer", Department: "Editorial",
			Type: "Full-time", Location: "Mumbai", IsActive: true,
			Requirements: []string{}, CreatedAt: day, UpdatedAt: day,
		}),
	}
	store := newStoreWithAPI(fake, testClock(day))
	ctx := context.Background()

	app, err := store.CreateApplication(ctx, careers.NewApplication{
		JobID:              "job1",
		FirstName:          "Asha",
		LastName:           "Rao",
		Email:              "asha@example.com",
		JobSpecificAnswers: `{"Why us?":"Passion"}`,
	})
	if err != nil {
		t.Fatalf("create application: %v", err)
	}
	if app.ID != "20250601-001" {
		t.Fatalf("first submission of the day must be -001, got %q", app.ID)
	}
	if app.Status != careers.StatusPending {
		t.Fatalf("expected pending status, got %q", app.Status)
	}

	coreRow := fake.row("Applications", 2)
	if coreRow[0] != app.ID {
		t.Fatalf("core row not written: %v", coreRow)
	}
	if coreRow[11] != "" {
		t.Fatalf("core row answers cell must stay empty, got %q", coreRow[11])
	}

	header := fake.row("JobSpecificAnswers", 1)
	wantHeader := append(append([]string(nil), answersBaseHeader...), "Question1")
	if !headerMatches(header, wantHeader) {
		t.Fatalf("answers header: got %v, want %v", header, wantHeader)
	}
	answerRow := fake.row("JobSpecificAnswers", 2)
	want := []string{"20250601-001", "Content Writer", "Asha Rao", "job1", "Passion"}
	if !headerMatches(answerRow, want) {
		t.Fatalf("answers row: got %v, want %v", answerRow, want)
	}
}

func TestSequentialIDsSameDay(t *testing.T) {
	fake := newFakeSheet()
	store := seededStore(fake, testClock(day))
	ctx := context.Background()

	first, err := store.CreateApplication(ctx, careers.NewApplication{
		JobID: "job1", FirstName: "Asha", LastName: "Rao", Email: "a@x.com",
	})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := store.CreateApplication(ctx, careers.NewApplication{
		JobID: "job1", FirstName: "Ravi", LastName: "Shah", Email: "r@x.com",
	})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.ID != "20250601-001" || second.ID != "20250601-002" {
		t.Fatalf("ids must be sequential, got %q and %q", first.ID, second.ID)
	}
	if fake.row("Applications", 3)[0] != second.ID {
		t.Fatalf("second application must land on row 3")
	}
}

func TestQuestionColumnsGrowOnly(t *testing.T) {
	fake := newFakeSheet()
	store := seededStore(fake, testClock(day))
	ctx := context.Background()

	_, err := store.CreateApplication(ctx, careers.NewApplication{
		JobID: "job1", FirstName: "A", LastName: "B", Email: "a@x.com",
		JobSpecificAnswers: `{"q1":"1","q2":"2","q3":"3"}`,
	})
	if err != nil {
		t.Fatalf("three answers: %v", err)
	}
	headerAfterThree := fake.row("JobSpecificAnswers", 1)
	if len(headerAfterThree) != len(answersBaseHeader)+3 {
		t.Fatalf("expected 3 question columns, got header %v", headerAfterThree)
	}

	_, err = store.CreateApplication(ctx, careers.NewApplication{
		JobID: "job1", FirstName: "C", LastName: "D", Email: "c@x.com",
		JobSpecificAnswers: `{"q1":"only"}`,
	})
	if err != nil {
		t.Fatalf("one answer: %v", err)
	}
	headerAfterOne := fake.row("JobSpecificAnswers", 1)
	if !headerMatches(headerAfterOne, headerAfterThree) {
		t.Fatalf("question columns must never shrink: %v", headerAfterOne)
	}
	if fake.row("JobSpecificAnswers", 3)[4] != "only" {
		t.Fatalf("second answers row misplaced: %v", fake.row("JobSpecificAnswers", 3))
	}
}

func TestAnswersProjectionUnknownJobTitle(t *testing.T) {
	fake := newFakeSheet()
	store := seededStore(fake, testClock(day))

	_, err := store.CreateApplication(context.Background(), careers.NewApplication{
		JobID: "ghost", FirstName: "Asha", LastName: "Rao", Email: "a@x.com",
		JobSpecificAnswers: `{"Why us?":"Passion"}`,
	})
	if err != nil {
		t.Fatalf("create application: %v", err)
	}

	row := fake.row("JobSpecificAnswers", 2)
	if row[1] != "Unknown Job" {
		t.Fatalf("unresolvable job must project the Unknown Job placeholder, got %q", row[1])
	}
}

func TestAnswersProjectionFailureIsPartial(t *testing.T) {
	fake := newFakeSheet()
	store := seededStore(fake, testClock(day))
	ctx := context.Background()

	// Fail only the wide-row write; the header range does not match.
	fake.failUpdate = "JobSpecificAnswers!A"

	app, err := store.CreateApplication(ctx, careers.NewApplication{
		JobID: "job1", FirstName: "Asha", LastName: "Rao", Email: "a@x.com",
		JobSpecificAnswers: `{"Why us?":"Passion"}`,
	})
	var partial *careers.PartialWriteError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialWriteError, got %v", err)
	}
	if app == nil || app.ID != "20250601-001" {
		t.Fatalf("core record must still be returned, got %+v", app)
	}
	if fake.row("Applications", 2)[0] != app.ID {
		t.Fatalf("core row must survive projection failure")
	}
}

func TestUpdateApplicationStatusOnSheet(t *testing.T) {
	fake := newFakeSheet()
	current := day
	store := seededStore(fake, func() time.Time { return current })
	ctx := context.Background()

	app, err := store.CreateApplication(ctx, careers.NewApplication{
		JobID: "job1", FirstName: "Asha", LastName: "Rao", Email: "a@x.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	current = day.Add(time.Hour)
	updated, err := store.UpdateApplicationStatus(ctx, app.ID, careers.StatusInterviewed, "Strong candidate")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != careers.StatusInterviewed || updated.Notes != "Strong candidate" {
		t.Fatalf("update not applied: %+v", updated)
	}

	got, err := store.GetApplication(ctx, app.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != careers.StatusInterviewed || got.Notes != "Strong candidate" {
		t.Fatalf("update not persisted: %+v", got)
	}
	if !got.UpdatedAt.After(got.AppliedAt) {
		t.Fatalf("updatedAt %v must be after appliedAt %v", got.UpdatedAt, got.AppliedAt)
	}
}

func TestMalformedRowDoesNotAbortScan(t *testing.T) {
	fake := newFakeSheet()
	fake.sheets["Jobs"] = [][]string{
		append([]string(nil), jobsHeader...),
		{"job1", "Only Two Cells"},
		encodeJobRow(careers.Job{
			ID: "job2", Title: "Complete", IsActive: true,
			Requirements: []string{}, CreatedAt: day, UpdatedAt: day,
		}),
	}
	store := newStoreWithAPI(fake, testClock(day))

	jobs, err := store.GetAllJobs(context.Background())
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("short row must not abort the scan, got %d jobs", len(jobs))
	}
	if jobs[0].Title != "Only Two Cells" || !jobs[0].CreatedAt.Equal(day) {
		t.Fatalf("short row not defaulted: %+v", jobs[0])
	}
}

func TestNotFoundErrors(t *testing.T) {
	fake := newFakeSheet()
	store := newStoreWithAPI(fake, testClock(day))
	ctx := context.Background()

	if _, err := store.GetJob(ctx, "missing"); !errors.Is(err, careers.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetApplication(ctx, "missing"); !errors.Is(err, careers.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
