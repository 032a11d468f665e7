package jobpost

type CreateJobPostRequest struct {
	Title              string   `json:"title" binding:"required,max=255"`
	Description        string   `json:"description"`
	Requirements       string   `json:"requirements"`
	Benefits           string   `json:"benefits"`
	Location           string   `json:"location"`
	WorkingTime        string   `json:"working_time"`
	Salary             string   `json:"salary"`
	ExperienceRequired string   `json:"experience_required"`
	Deadline           string   `json:"deadline" binding:"required"`
	HiringQuota        int      `json:"hiring_quota" binding:"omitempty,min=1"`
	JobTypeID          string   `json:"job_type_id" binding:"required,uuid"`
	JobLevelID         string   `json:"job_level_id" binding:"required,uuid"`
	SkillIDs           []string `json:"skill_ids" binding:"omitempty,dive,uuid"`
}

type UpdateJobPostRequest struct {
	Title              string   `json:"title" binding:"omitempty,max=255"`
	Description        string   `json:"description"`
	Requirements       string   `json:"requirements"`
	Benefits           string   `json:"benefits"`
	Location           string   `json:"location"`
	WorkingTime        string   `json:"working_time"`
	Salary             string   `json:"salary"`
	ExperienceRequired string   `json:"experience_required"`
	Deadline           string   `json:"deadline"`
	HiringQuota        int      `json:"hiring_quota" binding:"omitempty,min=1"`
	JobTypeID          string   `json:"job_type_id" binding:"omitempty,uuid"`
	JobLevelID         string   `json:"job_level_id" binding:"omitempty,uuid"`
	SkillIDs           []string `json:"skill_ids" binding:"omitempty,dive,uuid"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SearchRequest carries every filter the search endpoint accepts. Absent
// fields are wildcards, not "match nothing".
type SearchRequest struct {
	Keyword     string   `json:"keyword"`
	Location    string   `json:"location"`
	JobTypeIDs  []string `json:"job_type_ids" binding:"omitempty,dive,uuid"`
	JobLevelIDs []string `json:"job_level_ids" binding:"omitempty,dive,uuid"`
	SkillIDs    []string `json:"skill_ids" binding:"omitempty,dive,uuid"`
	CompanyID   string   `json:"company_id" binding:"omitempty,uuid"`
	Salary      string   `json:"salary"`
	Experience  string   `json:"experience"`

	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir" binding:"omitempty,oneof=asc desc"`
	Page    int    `json:"page" binding:"omitempty,min=1"`
	Size    int    `json:"size" binding:"omitempty,min=1,max=100"`
}

type SkillResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type JobPostResponse struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description,omitempty"`
	Requirements       string          `json:"requirements,omitempty"`
	Benefits           string          `json:"benefits,omitempty"`
	Location           string          `json:"location,omitempty"`
	WorkingTime        string          `json:"working_time,omitempty"`
	Salary             string          `json:"salary,omitempty"`
	ExperienceRequired string          `json:"experience_required,omitempty"`
	Deadline           string          `json:"deadline"`
	AppliedCount       int             `json:"applied_count"`
	HiringQuota        int             `json:"hiring_quota"`
	Status             string          `json:"status"`
	CompanyID          string          `json:"company_id"`
	CompanyName        string          `json:"company_name,omitempty"`
	CompanyLogo        string          `json:"company_logo,omitempty"`
	JobType            string          `json:"job_type,omitempty"`
	JobLevel           string          `json:"job_level,omitempty"`
	Skills             []SkillResponse `json:"skills,omitempty"`
	CreatedAt          string          `json:"created_at"`
}
