package recommend

import (
	"context"
	"errors"
	"io"
	"strings"

	"topcv/internal/jobpost"
	jobposterrors "topcv/internal/jobpost/errors"
	recommenderrors "topcv/internal/recommend/errors"
	"topcv/internal/resume"
	resumeerrors "topcv/internal/resume/errors"
	"topcv/internal/user"
	usererrors "topcv/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// matchingJobLimit caps how many active posts get shipped to the matcher per
// request.
const matchingJobLimit = 200

const (
	defaultTopK     = 10
	defaultMinScore = 0.3
)

//go:generate mockgen -source=recommend_service.go -destination=mock/recommend_service_mock.go -package=mock
type Service interface {
	Recommend(ctx context.Context, userID string, req RecommendRequest) (RecommendationListResponse, error)
	ScreenCV(ctx context.Context, actorID, role, jobID, fileName string, cv io.Reader) (ScreeningResponse, error)
}

type service struct {
	client   Client
	resumes  resume.Repository
	jobPosts jobpost.Repository
	logger   *zap.Logger
}

func NewService(client Client, resumes resume.Repository, jobPosts jobpost.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("recommend.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recommend.service")
	}
	return &service{
		client:   client,
		resumes:  resumes,
		jobPosts: jobPosts,
		logger:   l,
	}
}

// Recommend ships the caller's resume plus the current active posts to the
// matching service and reshapes the ranked result. Read-only: a matcher
// failure surfaces as UPSTREAM_UNAVAILABLE and nothing stored changes.
func (s *service) Recommend(ctx context.Context, userID string, req RecommendRequest) (RecommendationListResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return RecommendationListResponse{}, usererrors.ErrInvalidUserID
	}
	resumeID, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return RecommendationListResponse{}, resumeerrors.ErrResumeNotFound
	}

	res, err := s.resumes.FindByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecommendationListResponse{}, resumeerrors.ErrResumeNotFound
		}
		return RecommendationListResponse{}, err
	}
	if res.UserID != uid {
		return RecommendationListResponse{}, resumeerrors.ErrNotResumeOwner
	}

	jobs, err := s.jobPosts.FindActiveForMatching(ctx, matchingJobLimit)
	if err != nil {
		return RecommendationListResponse{}, err
	}
	if len(jobs) == 0 {
		return RecommendationListResponse{}, recommenderrors.ErrNoActiveJobPosts
	}

	topK := req.TopK
	if topK <= 0 {
		topK = defaultTopK
	}
	minScore := req.MinScore
	if minScore <= 0 {
		minScore = defaultMinScore
	}

	matchReq := MatchRequest{
		CVFilePath: res.FilePath,
		JobList:    buildJobList(jobs),
		TopK:       topK,
		MinScore:   minScore,
		Filters: MatchFilters{
			Location:        req.Location,
			JobType:         req.JobType,
			ExperienceLevel: req.ExperienceLevel,
		},
	}

	matched, err := s.client.Match(ctx, matchReq)
	if err != nil {
		return RecommendationListResponse{}, err
	}

	s.logger.Info("recommendations served",
		zap.String("user_id", userID),
		zap.Int("jobs_analyzed", matched.TotalJobsAnalyzed),
		zap.Int("matches", len(matched.Recommendations)),
	)

	return RecommendationListResponse{
		Recommendations:  buildRecommendations(matched.Recommendations),
		JobsAnalyzed:     matched.TotalJobsAnalyzed,
		ProcessingTimeMs: matched.ProcessingTimeMs,
	}, nil
}

// ScreenCV scores one uploaded CV against one of the employer's postings.
// The screener keeps its own copy of posting data, so the posting is synced
// over first; a sync failure is logged and screening proceeds on whatever
// copy the screener already holds.
func (s *service) ScreenCV(ctx context.Context, actorID, role, jobID, fileName string, cv io.Reader) (ScreeningResponse, error) {
	jid, err := uuid.Parse(jobID)
	if err != nil {
		return ScreeningResponse{}, jobposterrors.ErrJobPostNotFound
	}

	job, err := s.jobPosts.FindByID(ctx, jid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScreeningResponse{}, jobposterrors.ErrJobPostNotFound
		}
		return ScreeningResponse{}, err
	}
	if role != user.RoleAdmin && job.Company.UserID.String() != actorID {
		return ScreeningResponse{}, jobposterrors.ErrNotJobPostOwner
	}

	if err := s.client.SyncJob(ctx, buildScreeningJob(job)); err != nil {
		s.logger.Warn("job sync before screening failed",
			zap.String("job_post_id", jobID),
			zap.Error(err),
		)
	}

	result, err := s.client.Screen(ctx, ScreenRequest{JobID: jobID, FileName: fileName, CV: cv})
	if err != nil {
		return ScreeningResponse{}, err
	}

	s.logger.Info("cv screened",
		zap.String("job_post_id", jobID),
		zap.String("decision", result.CandidateDecision),
		zap.Float64("overall_score", result.OverallScore),
	)

	return ScreeningResponse{
		JobPostID:         job.ID.String(),
		JobTitle:          job.Title,
		CompanyName:       job.Company.Name,
		Decision:          result.CandidateDecision,
		OverallScore:      result.OverallScore,
		MatchingPoints:    result.MatchingPoints,
		NotMatchingPoints: result.NotMatchingPoints,
		Recommendation:    result.Recommendation,
	}, nil
}

func buildScreeningJob(job *jobpost.JobPost) ScreeningJob {
	skills := make([]string, len(job.Skills))
	for i, skill := range job.Skills {
		skills[i] = skill.Name
	}
	return ScreeningJob{
		JobID:              job.ID.String(),
		JobTitle:           job.Title,
		CompanyName:        job.Company.Name,
		Description:        job.Description,
		Requirements:       job.Requirements,
		CoreSkills:         strings.Join(skills, ", "),
		ExperienceRequired: job.ExperienceRequired,
		Location:           job.Location,
		Benefits:           job.Benefits,
	}
}

func buildJobList(jobs []jobpost.JobPost) []JobData {
	list := make([]JobData, len(jobs))
	for i, job := range jobs {
		skills := make([]string, len(job.Skills))
		for j, skill := range job.Skills {
			skills[j] = skill.Name
		}
		list[i] = JobData{
			JobID:              job.ID.String(),
			JobTitle:           job.Title,
			Company:            job.Company.Name,
			CompanyLogo:        job.Company.Logo,
			Location:           job.Location,
			JobType:            job.JobType.Name,
			RequiredSkills:     skills,
			JobDescription:     job.Description,
			Salary:             job.Salary,
			WorkingTime:        job.WorkingTime,
			ExperienceRequired: job.ExperienceRequired,
		}
	}
	return list
}

func buildRecommendations(matches []JobMatch) []RecommendationResponse {
	resp := make([]RecommendationResponse, len(matches))
	for i, m := range matches {
		resp[i] = RecommendationResponse{
			JobPostID:    m.JobData.JobID,
			Title:        m.JobData.JobTitle,
			CompanyName:  m.JobData.Company,
			CompanyLogo:  m.JobData.CompanyLogo,
			Location:     m.JobData.Location,
			Salary:       m.JobData.Salary,
			OverallScore: m.OverallScore,
			Scores: Scores{
				Skills:     m.MatchingDetails.SkillsScore,
				Experience: m.MatchingDetails.ExperienceScore,
				Semantic:   m.MatchingDetails.SemanticScore,
				Location:   m.MatchingDetails.LocationScore,
			},
			MatchedSkills: m.MatchingDetails.MatchedSkills,
			MissingSkills: m.MatchingDetails.MissingSkills,
			Reasons:       m.RecommendationReasons,
		}
	}
	return resp
}
