package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	recommenderrors "topcv/internal/recommend/errors"

	"go.uber.org/zap"
)

// Client talks to the external CV-matching service. Matching itself is an
// opaque scoring oracle on the other side of the wire; this side only ships
// the CV and the candidate jobs over and reshapes what comes back.
type Client interface {
	Match(ctx context.Context, req MatchRequest) (*MatchResponse, error)
	Screen(ctx context.Context, req ScreenRequest) (*ScreenResult, error)
	SyncJob(ctx context.Context, job ScreeningJob) error
}

type MatchRequest struct {
	CVFilePath string       `json:"cv_file_path,omitempty"`
	CVContent  string       `json:"cv_content,omitempty"`
	JobList    []JobData    `json:"job_list"`
	TopK       int          `json:"top_k"`
	MinScore   float64      `json:"min_score"`
	Filters    MatchFilters `json:"filters"`
}

type MatchFilters struct {
	Location        string `json:"location,omitempty"`
	JobType         string `json:"job_type,omitempty"`
	ExperienceLevel string `json:"experience_level,omitempty"`
}

type JobData struct {
	JobID              string   `json:"job_id"`
	JobTitle           string   `json:"job_title"`
	Company            string   `json:"company"`
	CompanyLogo        string   `json:"company_logo,omitempty"`
	Location           string   `json:"location"`
	JobType            string   `json:"job_type"`
	RequiredSkills     []string `json:"required_skills"`
	JobDescription     string   `json:"job_description"`
	Salary             string   `json:"salary,omitempty"`
	WorkingTime        string   `json:"working_time,omitempty"`
	ExperienceRequired string   `json:"experience_required,omitempty"`
}

type MatchResponse struct {
	Success           bool       `json:"success"`
	Message           string     `json:"message"`
	Recommendations   []JobMatch `json:"recommendations"`
	TotalJobsAnalyzed int        `json:"total_jobs_analyzed"`
	ProcessingTimeMs  float64    `json:"processing_time_ms"`
}

type JobMatch struct {
	JobData               JobData         `json:"job_data"`
	OverallScore          float64         `json:"overall_score"`
	MatchingDetails       MatchingDetails `json:"matching_details"`
	RecommendationReasons []string        `json:"recommendation_reasons"`
}

type MatchingDetails struct {
	SkillsScore     float64  `json:"skills_score"`
	ExperienceScore float64  `json:"experience_score"`
	SemanticScore   float64  `json:"semantic_score"`
	LocationScore   float64  `json:"location_score"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
}

// ScreenRequest scores one CV against one posting. The screener keeps its own
// copy of the posting, so SyncJob runs first.
type ScreenRequest struct {
	JobID    string
	FileName string
	CV       io.Reader
}

type ScreeningJob struct {
	JobID              string `json:"job_id"`
	JobTitle           string `json:"job_title"`
	CompanyName        string `json:"company_name"`
	Description        string `json:"description"`
	Requirements       string `json:"requirements"`
	CoreSkills         string `json:"core_skills"`
	ExperienceRequired string `json:"experience_required"`
	Location           string `json:"location"`
	Benefits           string `json:"benefits"`
}

type ScreenResult struct {
	Success           bool     `json:"success"`
	CandidateDecision string   `json:"candidate_decision"`
	OverallScore      float64  `json:"overall_score"`
	MatchingPoints    []string `json:"matching_points"`
	NotMatchingPoints []string `json:"not_matching_points"`
	Recommendation    string   `json:"recommendation"`
	JobID             string   `json:"job_id"`
	JobTitle          string   `json:"job_title"`
	CompanyName       string   `json:"company_name"`
	Message           string   `json:"message"`
}

type httpClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, logger ...*zap.Logger) Client {
	l := zap.L().Named("recommend.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recommend.client")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &httpClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  l,
	}
}

func (c *httpClient) Match(ctx context.Context, req MatchRequest) (*MatchResponse, error) {
	if c.baseURL == "" {
		return nil, recommenderrors.ErrMatcherUnavailable
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode match request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recommend", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create match request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Warn("matcher request failed", zap.Error(err))
		return nil, recommenderrors.ErrMatcherUnavailable
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, recommenderrors.ErrMatcherUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("matcher returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", payload),
		)
		return nil, recommenderrors.ErrMatcherUnavailable
	}

	var parsed MatchResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("decode match response: %w", err)
	}
	if !parsed.Success {
		c.logger.Warn("matcher reported failure", zap.String("message", parsed.Message))
		return nil, recommenderrors.ErrMatcherUnavailable
	}
	return &parsed, nil
}

func (c *httpClient) Screen(ctx context.Context, req ScreenRequest) (*ScreenResult, error) {
	if c.baseURL == "" {
		return nil, recommenderrors.ErrMatcherUnavailable
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("cv_file", req.FileName)
	if err != nil {
		return nil, fmt.Errorf("encode screening request: %w", err)
	}
	if _, err := io.Copy(part, req.CV); err != nil {
		return nil, fmt.Errorf("encode screening request: %w", err)
	}
	if err := mw.WriteField("job_id", req.JobID); err != nil {
		return nil, fmt.Errorf("encode screening request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("encode screening request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/screening/apply-job", &body)
	if err != nil {
		return nil, fmt.Errorf("create screening request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Warn("screener request failed", zap.Error(err))
		return nil, recommenderrors.ErrMatcherUnavailable
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, recommenderrors.ErrMatcherUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("screener returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", payload),
		)
		return nil, recommenderrors.ErrMatcherUnavailable
	}

	var parsed ScreenResult
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("decode screening response: %w", err)
	}
	if !parsed.Success {
		c.logger.Warn("screener reported failure", zap.String("message", parsed.Message))
		return nil, recommenderrors.ErrMatcherUnavailable
	}
	return &parsed, nil
}

func (c *httpClient) SyncJob(ctx context.Context, job ScreeningJob) error {
	if c.baseURL == "" {
		return recommenderrors.ErrMatcherUnavailable
	}

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job sync: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/jobs/sync-from-backend", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create job sync request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("job sync request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("job sync returned status %d", resp.StatusCode)
	}
	return nil
}
