package recommend

type RecommendRequest struct {
	ResumeID        string  `json:"resume_id" binding:"required,uuid"`
	TopK            int     `json:"top_k"`
	MinScore        float64 `json:"min_score"`
	Location        string  `json:"location"`
	JobType         string  `json:"job_type"`
	ExperienceLevel string  `json:"experience_level"`
}

type RecommendationResponse struct {
	JobPostID     string   `json:"job_post_id"`
	Title         string   `json:"title"`
	CompanyName   string   `json:"company_name"`
	CompanyLogo   string   `json:"company_logo,omitempty"`
	Location      string   `json:"location"`
	Salary        string   `json:"salary,omitempty"`
	OverallScore  float64  `json:"overall_score"`
	Scores        Scores   `json:"scores"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Reasons       []string `json:"reasons,omitempty"`
}

type Scores struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Semantic   float64 `json:"semantic"`
	Location   float64 `json:"location"`
}

type RecommendationListResponse struct {
	Recommendations  []RecommendationResponse `json:"recommendations"`
	JobsAnalyzed     int                      `json:"jobs_analyzed"`
	ProcessingTimeMs float64                  `json:"processing_time_ms"`
}

// ScreeningResponse is the employer-facing verdict for one CV against one
// posting. Decision is PASS, FAIL, or REVIEW.
type ScreeningResponse struct {
	JobPostID         string   `json:"job_post_id"`
	JobTitle          string   `json:"job_title"`
	CompanyName       string   `json:"company_name"`
	Decision          string   `json:"decision"`
	OverallScore      float64  `json:"overall_score"`
	MatchingPoints    []string `json:"matching_points"`
	NotMatchingPoints []string `json:"not_matching_points"`
	Recommendation    string   `json:"recommendation,omitempty"`
}
