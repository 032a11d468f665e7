package application

type SubmitRequest struct {
	JobPostID   string `json:"job_post_id" binding:"required,uuid"`
	ResumeID    string `json:"resume_id" binding:"required,uuid"`
	CoverLetter string `json:"cover_letter" binding:"max=5000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BulkUpdateStatusRequest struct {
	ApplicationIDs []string `json:"application_ids" binding:"required,min=1,dive,uuid"`
	Status         string   `json:"status" binding:"required"`
}

type SearchApplicationsRequest struct {
	Keyword string `form:"keyword"`
	Page    int    `form:"page"`
	Size    int    `form:"page_size"`
}

// JobSummary is the slice of a job post both audiences may see on an
// application.
type JobSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CompanyName  string `json:"company_name,omitempty"`
	CompanyLogo  string `json:"company_logo,omitempty"`
	Location     string `json:"location,omitempty"`
	AppliedCount int    `json:"applied_count"`
	JobType      string `json:"job_type,omitempty"`
	JobLevel     string `json:"job_level,omitempty"`
}

// ApplicantSummary is the whitelisted identity an employer sees. Nothing
// beyond these four fields ever leaves the projection.
type ApplicantSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar,omitempty"`
	Role     string `json:"role"`
}

// ApplicationResponse is the seeker projection. The employer projection is
// the same struct with Applicant populated; both come out of one builder so
// the views cannot drift apart.
type ApplicationResponse struct {
	ID          string            `json:"id"`
	Status      string            `json:"status"`
	CoverLetter string            `json:"cover_letter,omitempty"`
	ResumeID    string            `json:"resume_id"`
	Job         JobSummary        `json:"job"`
	Applicant   *ApplicantSummary `json:"applicant,omitempty"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
}

// BulkUpdateResult reports every id in the request: ids that transitioned and
// ids that failed with their reason. One bad id never blocks the rest.
type BulkUpdateResult struct {
	Updated []string          `json:"updated"`
	Failed  map[string]string `json:"failed,omitempty"`
}
