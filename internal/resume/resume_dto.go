package resume

type UpdateResumeRequest struct {
	ResumeName string `json:"resume_name" binding:"required,max=255"`
}

type ResumeResponse struct {
	ID         string `json:"id"`
	ResumeName string `json:"resume_name"`
	FilePath   string `json:"file_path"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
