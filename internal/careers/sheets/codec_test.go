package sheets

import (
	"testing"
	"time"

	"careers-backend/internal/careers"
)

func TestJobRowRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	job := careers.Job{
		ID:             "job1",
		Title:          "Content Writer",
		Department:     "Editorial",
		Type:           "Full-time",
		Level:          "Mid",
		Location:       "Mumbai",
		Description:    "Write reviews.",
		Requirements:   []string{"English fluency", "2+ years"},
		ApplicationURL: "https://example.com/apply",
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	row := encodeJobRow(job)
	if len(row) != 12 {
		t.Fatalf("jobs region is 12 columns, got %d", len(row))
	}
	decoded := decodeJobRow(row, time.Now())

	if decoded.ID != job.ID || decoded.Title != job.Title || decoded.IsActive != job.IsActive {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
	if len(decoded.Requirements) != 2 ||
		decoded.Requirements[0] != "English fluency" ||
		decoded.Requirements[1] != "2+ years" {
		t.Fatalf("requirements order not preserved: %v", decoded.Requirements)
	}
	if !decoded.CreatedAt.Equal(now) || !decoded.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps not preserved: %v / %v", decoded.CreatedAt, decoded.UpdatedAt)
	}
}

func TestJobRowEmptyRequirements(t *testing.T) {
	job := careers.Job{ID: "j", Requirements: []string{}}
	row := encodeJobRow(job)
	if row[7] != "[]" {
		t.Fatalf("empty list must encode as [], got %q", row[7])
	}
	decoded := decodeJobRow(row, time.Now())
	if decoded.Requirements == nil || len(decoded.Requirements) != 0 {
		t.Fatalf("expected empty list back, got %v", decoded.Requirements)
	}
}

func TestDecodeJobRowShortRow(t *testing.T) {
	fallback := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	decoded := decodeJobRow([]string{"job1", "Title"}, fallback)
	if decoded.ID != "job1" || decoded.Title != "Title" {
		t.Fatalf("leading cells lost: %+v", decoded)
	}
	if decoded.IsActive {
		t.Fatalf("missing isActive cell must decode false")
	}
	if len(decoded.Requirements) != 0 {
		t.Fatalf("missing requirements must decode empty, got %v", decoded.Requirements)
	}
	if !decoded.CreatedAt.Equal(fallback) || !decoded.UpdatedAt.Equal(fallback) {
		t.Fatalf("missing timestamps must fall back to now")
	}
}

func TestDecodeBoolExactMatch(t *testing.T) {
	cases := map[string]bool{
		"TRUE":  true,
		"true":  false,
		"True":  false,
		"FALSE": false,
		"yes":   false,
		"1":     false,
		"":      false,
	}
	for in, want := range cases {
		if got := decodeBool(in); got != want {
			t.Fatalf("decodeBool(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestDecodeTimeFallback(t *testing.T) {
	fallback := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := decodeTime("", fallback); !got.Equal(fallback) {
		t.Fatalf("empty timestamp must fall back, got %v", got)
	}
	if got := decodeTime("yesterday", fallback); !got.Equal(fallback) {
		t.Fatalf("unparseable timestamp must fall back, got %v", got)
	}
	stamp := time.Date(2025, 5, 30, 12, 30, 0, 0, time.UTC)
	if got := decodeTime(encodeTime(stamp), fallback); !got.Equal(stamp) {
		t.Fatalf("valid timestamp must decode, got %v", got)
	}
}

func TestApplicationRowRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	app := careers.Application{
		ID:         "20250601-001",
		JobID:      "job1",
		FirstName:  "Asha",
		LastName:   "Rao",
		Email:      "asha@example.com",
		CanTravel:  "yes",
		Motivation: "Cars.",
		Status:     careers.StatusPending,
		AppliedAt:  now,
		UpdatedAt:  now,
	}
	row := encodeApplicationRow(app)
	if len(row) != 16 {
		t.Fatalf("applications region is 16 columns, got %d", len(row))
	}
	decoded := decodeApplicationRow(row, time.Now())
	if decoded.ID != app.ID || decoded.Email != app.Email || decoded.Status != app.Status {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
	if !decoded.AppliedAt.Equal(now) {
		t.Fatalf("appliedAt not preserved: %v", decoded.AppliedAt)
	}
}

func TestColumnLetter(t *testing.T) {
	cases := map[int]string{1: "A", 4: "D", 5: "E", 26: "Z", 27: "AA", 52: "AZ", 53: "BA"}
	for n, want := range cases {
		if got := columnLetter(n); got != want {
			t.Fatalf("columnLetter(%d) = %q, want %q", n, got, want)
		}
	}
}
