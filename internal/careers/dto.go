package careers

type createJobRequest struct {
	Title          string   `json:"title" binding:"required"`
	Department     string   `json:"department" binding:"required"`
	Type           string   `json:"type" binding:"required"`
	Level          string   `json:"level"`
	Location       string   `json:"location" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	Requirements   []string `json:"requirements"`
	ApplicationURL string   `json:"applicationUrl"`
}

func (r createJobRequest) toNewJob() NewJob {
	return NewJob{
		Title:          r.Title,
		Department:     r.Department,
		Type:           r.Type,
		Level:          r.Level,
		Location:       r.Location,
		Description:    r.Description,
		Requirements:   r.Requirements,
		ApplicationURL: r.ApplicationURL,
	}
}

type updateJobRequest struct {
	Title          *string   `json:"title"`
	Department     *string   `json:"department"`
	Type           *string   `json:"type"`
	Level          *string   `json:"level"`
	Location       *string   `json:"location"`
	Description    *string   `json:"description"`
	Requirements   *[]string `json:"requirements"`
	ApplicationURL *string   `json:"applicationUrl"`
	IsActive       *bool     `json:"isActive"`
}

func (r updateJobRequest) toUpdate() JobUpdate {
	return JobUpdate{
		Title:          r.Title,
		Department:     r.Department,
		Type:           r.Type,
		Level:          r.Level,
		Location:       r.Location,
		Description:    r.Description,
		Requirements:   r.Requirements,
		ApplicationURL: r.ApplicationURL,
		IsActive:       r.IsActive,
	}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}
