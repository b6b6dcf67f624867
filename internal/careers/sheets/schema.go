package sheets

import (
	"context"
	"fmt"
)

const (
	jobsDataRange         = "Jobs!A2:L1000"
	jobsHeaderRange       = "Jobs!A1:L1"
	applicationsDataRange = "Applications!A2:P1000"
	applicationsHeaderRng = "Applications!A1:P1"
	answersHeaderRange    = "JobSpecificAnswers!1:1"
	answersIDColumnRange  = "JobSpecificAnswers!A:A"
)

var jobsHeader = []string{
	"ID", "Title", "Department", "Type", "Level", "Location",
	"Description", "Requirements", "ApplicationURL", "IsActive",
	"CreatedAt", "UpdatedAt",
}

var applicationsHeader = []string{
	"ID", "JobID", "FirstName", "LastName", "Email", "Phone",
	"ResumeURL", "CanTravelToNaviMumbai", "CurrentSalary", "ExpectedSalary",
	"WhyMotorOctane", "JobSpecificAnswers", "Status", "Notes",
	"AppliedAt", "UpdatedAt",
}

var answersBaseHeader = []string{"ApplicationID", "JobTitle", "ApplicantName", "JobID"}

// ensureStructure writes the canonical header rows for any region whose
// header row is missing or the wrong shape. Idempotent: a correct header is
// left untouched, so repeated boots never duplicate or reorder columns.
func (s *Store) ensureStructure(ctx context.Context) error {
	s.structMu.Lock()
	defer s.structMu.Unlock()
	if s.structReady {
		return nil
	}

	if err := s.ensureHeader(ctx, jobsHeaderRange, jobsHeader); err != nil {
		return err
	}
	if err := s.ensureHeader(ctx, applicationsHeaderRng, applicationsHeader); err != nil {
		return err
	}
	if _, err := s.ensureAnswersHeader(ctx, 0); err != nil {
		return err
	}

	s.structReady = true
	return nil
}

func (s *Store) ensureHeader(ctx context.Context, headerRange string, want []string) error {
	rows, err := s.api.ReadRange(ctx, headerRange)
	if err != nil {
		return err
	}
	if len(rows) > 0 && headerMatches(rows[0], want) {
		return nil
	}
	return s.api.UpdateRange(ctx, headerRange, [][]string{want})
}

// ensureAnswersHeader guarantees the answers region header exists with at
// least questionCount QuestionN columns. Growth only: existing columns are
// never removed, and extending happens via an in-place row 1 update so a
// concurrent bootstrap cannot produce a second header row.
func (s *Store) ensureAnswersHeader(ctx context.Context, questionCount int) ([]string, error) {
	rows, err := s.api.ReadRange(ctx, answersHeaderRange)
	if err != nil {
		return nil, err
	}

	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}
	// A header that does not start with the four fixed columns is treated
	// as absent and rewritten fresh.
	if !headerMatches(firstN(header, len(answersBaseHeader)), answersBaseHeader) {
		header = append([]string(nil), answersBaseHeader...)
	}

	existing := len(header) - len(answersBaseHeader)
	if existing < 0 {
		existing = 0
	}
	if questionCount <= existing && len(rows) > 0 && headerMatches(firstN(rows[0], len(header)), header) {
		return header, nil
	}
	for i := existing; i < questionCount; i++ {
		header = append(header, fmt.Sprintf("Question%d", i+1))
	}
	if err := s.api.UpdateRange(ctx, answersHeaderRange, [][]string{header}); err != nil {
		return nil, err
	}
	return header, nil
}

func headerMatches(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func firstN(row []string, n int) []string {
	if len(row) < n {
		return row
	}
	return row[:n]
}
