package dto

import (
	"time"

	"talent-admin/internal/domain/application"
	"talent-admin/internal/domain/job"
	"talent-admin/internal/usecase"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description"`
	Deadline        *string    `json:"deadline"`
	Company         *string    `json:"company"`
	JobType         *string    `json:"jobType"`
	ExperienceLevel *string    `json:"experienceLevel"`
	WorkingHours    *string    `json:"workingHours"`
	Location        *string    `json:"location"`
	Salary          *string    `json:"salary"`
	MaxApplicants   *int       `json:"maxApplicants"`
	ApplyLink       *string    `json:"applyLink"`
	CompanyID       *uuid.UUID `json:"companyId"`
	EmployerID      *uuid.UUID `json:"employerId"`
	Status          *string    `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// JobDetailResponse is a job with the applications made to it.
type JobDetailResponse struct {
	JobResponse
	Applications      []ApplicationResponse `json:"applications"`
	ApplicationCounts map[string]int        `json:"applicationCounts"`
}

type JobStatusCountsResponse struct {
	All    int `json:"all"`
	Active int `json:"active"`
	Closed int `json:"closed"`
	Draft  int `json:"draft"`
}

type JobListResponse struct {
	Items  []JobDetailResponse     `json:"items"`
	Counts JobStatusCountsResponse `json:"counts"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func NewJobResponse(j job.Job) JobResponse {
	var status *string
	if j.Status != nil {
		s := string(*j.Status)
		status = &s
	}
	return JobResponse{
		ID:              j.ID,
		Title:           j.Title,
		Description:     j.Description,
		Deadline:        j.Deadline,
		Company:         j.Company,
		JobType:         j.JobType,
		ExperienceLevel: j.ExperienceLevel,
		WorkingHours:    j.WorkingHours,
		Location:        j.Location,
		Salary:          j.Salary,
		MaxApplicants:   j.MaxApplicants,
		ApplyLink:       j.ApplyLink,
		CompanyID:       j.CompanyID,
		EmployerID:      j.EmployerID,
		Status:          status,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func NewJobDetailResponse(j usecase.JobWithApplications) JobDetailResponse {
	return JobDetailResponse{
		JobResponse:       NewJobResponse(j.Job),
		Applications:      NewApplicationResponses(j.Applications),
		ApplicationCounts: statusCounts(j.ApplicationCounts),
	}
}

func NewJobListResponse(l usecase.JobList) JobListResponse {
	items := make([]JobDetailResponse, 0, len(l.Items))
	for _, it := range l.Items {
		items = append(items, NewJobDetailResponse(it))
	}
	return JobListResponse{
		Items: items,
		Counts: JobStatusCountsResponse{
			All:    l.Counts.All,
			Active: l.Counts.Active,
			Closed: l.Counts.Closed,
			Draft:  l.Counts.Draft,
		},
	}
}

func statusCounts(c application.StatusCounts) map[string]int {
	out := make(map[string]int, len(application.Statuses))
	for _, s := range application.Statuses {
		out[string(s)] = c[s]
	}
	return out
}
