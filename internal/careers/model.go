package careers

import (
	"fmt"
	"strings"
	"time"
)

// Application status values. Stored as free text; callers are not required
// to stick to this list.
const (
	StatusPending     = "pending"
	StatusReviewing   = "reviewing"
	StatusInterviewed = "interviewed"
	StatusRejected    = "rejected"
	StatusHired       = "hired"
)

// Job is a posted position. IsActive=false is a soft delete; rows are never
// physically removed from any backend.
type Job struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Department     string    `json:"department"`
	Type           string    `json:"type"`
	Level          string    `json:"level,omitempty"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	Requirements   []string  `json:"requirements"`
	ApplicationURL string    `json:"applicationUrl,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewJob carries the caller-supplied fields for job creation.
type NewJob struct {
	Title          string
	Department     string
	Type           string
	Level          string
	Location       string
	Description    string
	Requirements   []string
	ApplicationURL string
}

// JobUpdate applies merge semantics: nil fields keep their prior values.
type JobUpdate struct {
	Title          *string
	Department     *string
	Type           *string
	Level          *string
	Location       *string
	Description    *string
	Requirements   *[]string
	ApplicationURL *string
	IsActive       *bool
}

// Apply merges the update into job and bumps UpdatedAt.
func (u JobUpdate) Apply(job *Job, now time.Time) {
	if u.Title != nil {
		job.Title = *u.Title
	}
	if u.Department != nil {
		job.Department = *u.Department
	}
	if u.Type != nil {
		job.Type = *u.Type
	}
	if u.Level != nil {
		job.Level = *u.Level
	}
	if u.Location != nil {
		job.Location = *u.Location
	}
	if u.Description != nil {
		job.Description = *u.Description
	}
	if u.Requirements != nil {
		job.Requirements = append([]string(nil), (*u.Requirements)...)
	}
	if u.ApplicationURL != nil {
		job.ApplicationURL = *u.ApplicationURL
	}
	if u.IsActive != nil {
		job.IsActive = *u.IsActive
	}
	job.UpdatedAt = now
}

// Matches reports whether the job matches a case-insensitive keyword search
// over title, description, department and requirements.
func (j Job) Matches(keyword string) bool {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return false
	}
	if strings.Contains(strings.ToLower(j.Title), needle) ||
		strings.Contains(strings.ToLower(j.Description), needle) ||
		strings.Contains(strings.ToLower(j.Department), needle) {
		return true
	}
	for _, req := range j.Requirements {
		if strings.Contains(strings.ToLower(req), needle) {
			return true
		}
	}
	return false
}

// Application is a candidate submission against one job.
type Application struct {
	ID                 string    `json:"id"`
	JobID              string    `json:"jobId"`
	FirstName          string    `json:"firstName"`
	LastName           string    `json:"lastName"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	ResumeURL          string    `json:"resumeUrl,omitempty"`
	CanTravel          string    `json:"canTravel,omitempty"`
	CurrentSalary      string    `json:"currentSalary,omitempty"`
	ExpectedSalary     string    `json:"expectedSalary,omitempty"`
	Motivation         string    `json:"motivation,omitempty"`
	JobSpecificAnswers string    `json:"jobSpecificAnswers,omitempty"`
	Status             string    `json:"status"`
	Notes              string    `json:"notes,omitempty"`
	AppliedAt          time.Time `json:"appliedAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ApplicantName is the denormalized full name used in the answers projection.
func (a Application) ApplicantName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// NewApplication carries the caller-supplied fields for submission. ResumeURL
// is resolved by the upload boundary before the storage layer sees it.
type NewApplication struct {
	JobID              string
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	ResumeURL          string
	CanTravel          string
	CurrentSalary      string
	ExpectedSalary     string
	Motivation         string
	JobSpecificAnswers string
}

// NextApplicationID computes the per-day sequence id YYYYMMDD-NNN by counting
// existing ids that share today's date prefix. Gaps from prior failures are
// not refilled, and the count-then-write step is not atomic across processes.
func NextApplicationID(now time.Time, existingIDs []string) string {
	prefix := now.Format("20060102")
	count := 0
	for _, id := range existingIDs {
		if strings.HasPrefix(id, prefix+"-") {
			count++
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, count+1)
}
