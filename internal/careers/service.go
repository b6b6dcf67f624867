package careers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"careers-backend/internal/shared/storage/object"
	"careers-backend/internal/shared/telemetry"
	"careers-backend/internal/shared/util"
	"careers-backend/internal/uploads"
)

// ResumeUpload is an uploaded file as received from the multipart boundary.
type ResumeUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Service orchestrates the application pipeline on top of whichever storage
// backend was selected at boot.
type Service struct {
	store          Storage
	files          object.Store
	maxResumeBytes int64
}

func NewService(store Storage, files object.Store, maxResumeBytes int64) *Service {
	return &Service{store: store, files: files, maxResumeBytes: maxResumeBytes}
}

func (s *Service) ListJobs(ctx context.Context, activeOnly bool) ([]Job, error) {
	if activeOnly {
		return s.store.GetActiveJobs(ctx)
	}
	return s.store.GetAllJobs(ctx)
}

func (s *Service) SearchJobs(ctx context.Context, keyword string) ([]Job, error) {
	return s.store.SearchJobs(ctx, keyword)
}

func (s *Service) GetJob(ctx context.Context, id string) (*Job, error) {
	return s.store.GetJob(ctx, id)
}

func (s *Service) CreateJob(ctx context.Context, data NewJob) (*Job, error) {
	return s.store.CreateJob(ctx, data)
}

func (s *Service) UpdateJob(ctx context.Context, id string, update JobUpdate) (*Job, error) {
	return s.store.UpdateJob(ctx, id, update)
}

func (s *Service) DeleteJob(ctx context.Context, id string) error {
	return s.store.DeleteJob(ctx, id)
}

func (s *Service) ListApplications(ctx context.Context, jobID string) ([]Application, error) {
	if jobID != "" {
		return s.store.GetApplicationsForJob(ctx, jobID)
	}
	return s.store.GetAllApplications(ctx)
}

func (s *Service) GetApplication(ctx context.Context, id string) (*Application, error) {
	return s.store.GetApplication(ctx, id)
}

// SubmitApplication runs the ingestion pipeline: validate the resume if one
// was uploaded, persist it, then create the application record. A failed
// answers projection is logged and swallowed; the core record is
// authoritative.
func (s *Service) SubmitApplication(ctx context.Context, data NewApplication, resume *ResumeUpload) (*Application, error) {
	if resume != nil {
		url, err := s.storeResume(ctx, resume)
		if err != nil {
			return nil, err
		}
		data.ResumeURL = url
	}

	app, err := s.store.CreateApplication(ctx, data)
	if err != nil {
		var partial *PartialWriteError
		if errors.As(err, &partial) && app != nil {
			telemetry.Warn("application.answers_projection_failed", map[string]any{
				"application_id": partial.ApplicationID,
				"error":          partial.Err.Error(),
			})
			return app, nil
		}
		return nil, err
	}

	telemetry.Info("application.created", map[string]any{
		"application_id": app.ID,
		"job_id":         app.JobID,
	})
	return app, nil
}

func (s *Service) storeResume(ctx context.Context, resume *ResumeUpload) (string, error) {
	err := uploads.ValidateResume(uploads.Resume{
		FileName:    resume.FileName,
		ContentType: resume.ContentType,
		Size:        resume.Size,
	}, s.maxResumeBytes)
	if err != nil {
		return "", err
	}

	clean, err := util.SanitizeFileName(resume.FileName)
	if err != nil {
		return "", &uploads.ValidationError{
			Code:    uploads.ReasonFileName,
			Message: "file name contains invalid characters",
		}
	}
	key := uuid.NewString() + "_" + strings.ReplaceAll(clean, " ", "_")
	stored, err := s.files.Put(ctx, key, resume.Reader, resume.Size, resume.ContentType)
	if err != nil {
		return "", fmt.Errorf("store resume: %w", err)
	}
	return "/api/files/" + stored, nil
}

func (s *Service) UpdateApplicationStatus(ctx context.Context, id, status, notes string) (*Application, error) {
	return s.store.UpdateApplicationStatus(ctx, id, status, notes)
}

// OpenResume streams a stored resume back to the download endpoint.
func (s *Service) OpenResume(ctx context.Context, key string) (*object.Object, error) {
	return s.files.Get(ctx, key)
}

func (s *Service) Diagnostics(ctx context.Context) (Diagnostics, error) {
	return s.store.Diagnostics(ctx)
}
