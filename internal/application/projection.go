package application

import "time"

// buildResponse is the single projection builder for both audiences. The
// employer view is exactly the seeker view plus the applicant identity;
// withApplicant is the only switch, so the two views cannot drift.
func buildResponse(a Application, withApplicant bool) ApplicationResponse {
	resp := ApplicationResponse{
		ID:          a.ID.String(),
		Status:      a.Status,
		CoverLetter: a.CoverLetter,
		ResumeID:    a.ResumeID.String(),
		Job: JobSummary{
			ID:           a.JobPostID.String(),
			Title:        a.JobPost.Title,
			CompanyName:  a.JobPost.Company.Name,
			CompanyLogo:  a.JobPost.Company.Logo,
			Location:     a.JobPost.Location,
			AppliedCount: a.JobPost.AppliedCount,
			JobType:      a.JobPost.JobType.Name,
			JobLevel:     a.JobPost.JobLevel.Name,
		},
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}

	if withApplicant {
		resp.Applicant = &ApplicantSummary{
			ID:       a.ApplicantID.String(),
			FullName: a.Applicant.FullName,
			Avatar:   a.Applicant.Avatar,
			Role:     a.Applicant.Role,
		}
	}

	return resp
}

func buildListResponse(apps []Application, withApplicant bool) []ApplicationResponse {
	resp := make([]ApplicationResponse, len(apps))
	for i, a := range apps {
		resp[i] = buildResponse(a, withApplicant)
	}
	return resp
}
