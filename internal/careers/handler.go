package careers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"careers-backend/internal/shared/server/respond"
	"careers-backend/internal/shared/storage/object"
	"careers-backend/internal/uploads"
)

// CredentialPresence reports which credentials were set at boot, without
// exposing any values. Shown on the health endpoint to debug
// misconfiguration.
type CredentialPresence struct {
	SheetID             bool `json:"googleSheetId"`
	ServiceAccountEmail bool `json:"googleServiceAccountEmail"`
	PrivateKey          bool `json:"googlePrivateKey"`
	DatabaseURL         bool `json:"databaseUrl"`
}

type Handler struct {
	svc   *Service
	creds CredentialPresence
}

func NewHandler(svc *Service, creds CredentialPresence) *Handler {
	return &Handler{svc: svc, creds: creds}
}

func (h *Handler) ListJobs(c *gin.Context) {
	activeOnly := true
	if raw := c.Query("all"); raw != "" {
		if all, err := strconv.ParseBool(raw); err == nil && all {
			activeOnly = false
		}
	}
	jobs, err := h.svc.ListJobs(c.Request.Context(), activeOnly)
	if err != nil {
		h.storageError(c, err)
		return
	}
	respond.OK(c, jobs)
}

func (h *Handler) SearchJobs(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "keyword query parameter is required", nil)
		return
	}
	jobs, err := h.svc.SearchJobs(c.Request.Context(), keyword)
	if err != nil {
		h.storageError(c, err)
		return
	}
	respond.OK(c, jobs)
}

func (h *Handler) GetJob(c *gin.Context) {
	id := c.Param("id")
	c.Set("jobId", id)
	job, err := h.svc.GetJob(c.Request.Context(), id)
	if err != nil {
		h.storageError(c, err)
		return
	}
	respond.OK(c, job)
}

func (h *Handler) CreateJob(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid job payload", err.Error())
		return
	}
	job, err := h.svc.CreateJob(c.Request.Context(), req.toNewJob())
	if err != nil {
		h.storageError(c, err)
		return
	}
	c.Set("jobId", job.ID)
	respond.JSON(c, http.StatusCreated, job)
}

func (h *Handler) UpdateJob(c *gin.Context) {
	id := c.Param("id")
	c.Set("jobId", id)
	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid job payload", err.Error())
		return
	}
	job, err := h.svc.UpdateJob(c.Request.Context(), id, req.toUpdate())
	if err != nil {
		h.storageError(c, err)
		return
	}
	respond.OK(c, job)
}

func (h *Handler) DeleteJob(c *gin.Context) {
	id := c.Param("id")
	c.Set("jobId", id)
	if err := h.svc.DeleteJob(c.Request.Context(), id); err != nil {
		h.storageError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListApplications(c *gin.Context) {
	apps, err := h.svc.ListApplications(c.Request.Context(), "")
	if err != nil {
		h.storageError(c, err)
		return
	}
	respond.OK(c, apps)
}

func (h *Handler) ListApplicationsForJob(c *gin.Context) {
	jobID := c.Param("jobId")
	c.Set("jobId", jobID)
	apps, err := h.svc.ListApplications(c.Request.Context(), jobID)
	if err != nil {
		h.storageError(c, err)
		return
	}
	respond.OK(c, apps)
}

func (h *Handler) GetApplication(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)
	app, err := h.svc.GetApplication(c.Request.Context(), id)
	if err != nil {
		h.storageError(c, err)
		return
	}
	respond.OK(c, app)
}

// SubmitApplication accepts a multipart form with an optional "resume" file.
func (h *Handler) SubmitApplication(c *gin.Context) {
	data := NewApplication{
		JobID:              c.PostForm("jobId"),
		FirstName:          c.PostForm("firstName"),
		LastName:           c.PostForm("lastName"),
		Email:              c.PostForm("email"),
		Phone:              c.PostForm("phone"),
		CanTravel:          c.PostForm("canTravelToNaviMumbai"),
		CurrentSalary:      c.PostForm("currentSalary"),
		ExpectedSalary:     c.PostForm("expectedSalary"),
		Motivation:         c.PostForm("whyMotorOctane"),
		JobSpecificAnswers: c.PostForm("jobSpecificAnswers"),
	}
	if data.JobID == "" || data.FirstName == "" || data.LastName == "" || data.Email == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error",
			"jobId, firstName, lastName and email are required", nil)
		return
	}

	var resume *ResumeUpload
	fileHeader, err := c.FormFile("resume")
	if err == nil && fileHeader != nil {
		f, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "Could not read uploaded file", nil)
			return
		}
		defer f.Close()
		resume = &ResumeUpload{
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Reader:      f,
		}
	}

	app, err := h.svc.SubmitApplication(c.Request.Context(), data, resume)
	if err != nil {
		var verr *uploads.ValidationError
		if errors.As(err, &verr) {
			respond.Error(c, http.StatusBadRequest, verr.Code, verr.Message, nil)
			return
		}
		h.storageError(c, err)
		return
	}
	c.Set("applicationId", app.ID)
	respond.JSON(c, http.StatusCreated, app)
}

func (h *Handler) UpdateApplicationStatus(c *gin.Context) {
	id := c.Param("id")
	c.Set("applicationId", id)
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid status payload", err.Error())
		return
	}
	app, err := h.svc.UpdateApplicationStatus(c.Request.Context(), id, req.Status, req.Notes)
	if err != nil {
		h.storageError(c, err)
		return
	}
	respond.OK(c, app)
}

// DownloadResume streams a stored resume file. The route uses a wildcard
// parameter, so the key arrives with a leading slash.
func (h *Handler) DownloadResume(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	obj, err := h.svc.OpenResume(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "File not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Could not open file", nil)
		return
	}
	defer obj.Reader.Close()

	c.Header("Content-Type", obj.ContentType)
	c.Header("Content-Length", strconv.FormatInt(obj.Size, 10))
	c.Status(http.StatusOK)
	io.Copy(c.Writer, obj.Reader)
}

// Health reports the active backend, row counts and which credentials were
// present at boot. Values are never included.
func (h *Handler) Health(c *gin.Context) {
	diag, err := h.svc.Diagnostics(c.Request.Context())
	if err != nil {
		respond.JSON(c, http.StatusOK, gin.H{
			"status":      "degraded",
			"error":       "storage diagnostics unavailable",
			"credentials": h.creds,
		})
		return
	}
	respond.OK(c, gin.H{
		"status":      "ok",
		"storage":     diag,
		"credentials": h.creds,
	})
}

func (h *Handler) storageError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "Record not found", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error",
		"Storage is temporarily unavailable, please try again later",
		gin.H{"requestId": c.GetString("requestId")})
}
