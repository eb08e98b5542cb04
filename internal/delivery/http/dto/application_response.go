package dto

import (
	"time"

	"talent-admin/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID             uuid.UUID  `json:"id"`
	ApplicantID    uuid.UUID  `json:"applicantId"`
	JobID          uuid.UUID  `json:"jobId"`
	JobTitle       string     `json:"jobTitle"`
	Company        *string    `json:"company"`
	CompanyID      *uuid.UUID `json:"companyId"`
	ApplicantName  string     `json:"applicantName"`
	ApplicantEmail *string    `json:"applicantEmail"`
	Status         string     `json:"status"`
	CoverLetter    *string    `json:"coverLetter"`
	PortfolioLinks []string   `json:"portfolioLinks"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func NewApplicationResponse(d application.Detail) ApplicationResponse {
	links := d.PortfolioLinks
	if links == nil {
		links = []string{}
	}
	return ApplicationResponse{
		ID:             d.ID,
		ApplicantID:    d.ApplicantID,
		JobID:          d.JobID,
		JobTitle:       d.JobTitle,
		Company:        d.Company,
		CompanyID:      d.CompanyID,
		ApplicantName:  d.ApplicantName,
		ApplicantEmail: d.ApplicantEmail,
		Status:         string(d.Status),
		CoverLetter:    d.CoverLetter,
		PortfolioLinks: links,
		CreatedAt:      d.CreatedAt,
	}
}

func NewApplicationResponses(items []application.Detail) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, d := range items {
		out = append(out, NewApplicationResponse(d))
	}
	return out
}
