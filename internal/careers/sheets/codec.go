package sheets

import (
	"encoding/json"
	"time"

	"careers-backend/internal/careers"
)

// Row codecs map domain records to fixed-order cell arrays. Reads are
// tolerant: short rows fill missing trailing cells with defaults so one
// malformed row cannot abort a full-table scan.

func encodeJobRow(j careers.Job) []string {
	return []string{
		j.ID,
		j.Title,
		j.Department,
		j.Type,
		j.Level,
		j.Location,
		j.Description,
		encodeList(j.Requirements),
		j.ApplicationURL,
		encodeBool(j.IsActive),
		encodeTime(j.CreatedAt),
		encodeTime(j.UpdatedAt),
	}
}

func decodeJobRow(row []string, now time.Time) careers.Job {
	return careers.Job{
		ID:             cell(row, 0),
		Title:          cell(row, 1),
		Department:     cell(row, 2),
		Type:           cell(row, 3),
		Level:          cell(row, 4),
		Location:       cell(row, 5),
		Description:    cell(row, 6),
		Requirements:   decodeList(cell(row, 7)),
		ApplicationURL: cell(row, 8),
		IsActive:       decodeBool(cell(row, 9)),
		CreatedAt:      decodeTime(cell(row, 10), now),
		UpdatedAt:      decodeTime(cell(row, 11), now),
	}
}

func encodeApplicationRow(a careers.Application) []string {
	return []string{
		a.ID,
		a.JobID,
		a.FirstName,
		a.LastName,
		a.Email,
		a.Phone,
		a.ResumeURL,
		a.CanTravel,
		a.CurrentSalary,
		a.ExpectedSalary,
		a.Motivation,
		a.JobSpecificAnswers,
		a.Status,
		a.Notes,
		encodeTime(a.AppliedAt),
		encodeTime(a.UpdatedAt),
	}
}

func decodeApplicationRow(row []string, now time.Time) careers.Application {
	return careers.Application{
		ID:                 cell(row, 0),
		JobID:              cell(row, 1),
		FirstName:          cell(row, 2),
		LastName:           cell(row, 3),
		Email:              cell(row, 4),
		Phone:              cell(row, 5),
		ResumeURL:          cell(row, 6),
		CanTravel:          cell(row, 7),
		CurrentSalary:      cell(row, 8),
		ExpectedSalary:     cell(row, 9),
		Motivation:         cell(row, 10),
		JobSpecificAnswers: cell(row, 11),
		Status:             cell(row, 12),
		Notes:              cell(row, 13),
		AppliedAt:          decodeTime(cell(row, 14), now),
		UpdatedAt:          decodeTime(cell(row, 15), now),
	}
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeList(raw string) []string {
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

func encodeBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// decodeBool matches the exact uppercase literal only. Any other value,
// including "true", decodes to false.
func decodeBool(s string) bool {
	return s == "TRUE"
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func decodeTime(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fallback
	}
	return t.UTC()
}
