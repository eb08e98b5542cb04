package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"talent-admin/internal/domain/application"
	"talent-admin/internal/domain/company"
	"talent-admin/internal/domain/freelancer"
	"talent-admin/internal/domain/job"

	"github.com/google/uuid"
)

// timestamp accepts both timestamptz and timestamp-without-zone renderings
// returned by PostgREST.
type timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, layout := range timestampLayouts {
		if v, err := time.Parse(layout, raw); err == nil {
			t.Time = v.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", raw)
}

type employerRow struct {
	ID                  uuid.UUID  `json:"id"`
	Name                *string    `json:"name"`
	UserID              *uuid.UUID `json:"user_id"`
	TIN                 *string    `json:"tin"`
	PhoneNumber         *string    `json:"phone_number"`
	Email               *string    `json:"email"`
	Address             *string    `json:"address"`
	Country             *string    `json:"country"`
	BusinessLicence     *string    `json:"business_licence"`
	EstablishedDate     *string    `json:"established_date"`
	BusinessDescription *string    `json:"business_description"`
	Website             *string    `json:"website"`
	IsOwner             *bool      `json:"is_owner"`
	IsVerified          *bool      `json:"is_verified"`
	RequestVerify       *bool      `json:"request_verify"`
	HiringRate          *int       `json:"hiring_rate"`
	CreatedAt           timestamp  `json:"created_at"`
	UpdatedAt           timestamp  `json:"updated_at"`
}

func (r employerRow) toDomain() company.Company {
	c := company.Company{
		ID:                  r.ID,
		UserID:              r.UserID,
		TIN:                 r.TIN,
		PhoneNumber:         r.PhoneNumber,
		Email:               r.Email,
		Address:             r.Address,
		Country:             r.Country,
		BusinessLicence:     r.BusinessLicence,
		EstablishedDate:     r.EstablishedDate,
		BusinessDescription: r.BusinessDescription,
		Website:             r.Website,
		IsOwner:             r.IsOwner,
		IsVerified:          r.IsVerified,
		RequestVerify:       r.RequestVerify != nil && *r.RequestVerify,
		HiringRate:          r.HiringRate,
		CreatedAt:           r.CreatedAt.Time,
		UpdatedAt:           r.UpdatedAt.Time,
	}
	if r.Name != nil {
		c.Name = *r.Name
	}
	return c
}

type jobRow struct {
	ID              uuid.UUID  `json:"id"`
	JobTitle        *string    `json:"job_title"`
	Description     *string    `json:"description"`
	Deadline        *string    `json:"deadline"`
	Company         *string    `json:"company"`
	JobType         *string    `json:"job_type"`
	ExperienceLevel *string    `json:"experience_level"`
	WorkingHours    *string    `json:"working_hours"`
	Location        *string    `json:"location"`
	Salary          *string    `json:"salary"`
	MaxApplicants   *int       `json:"max_applicants"`
	ApplyLink       *string    `json:"apply_link"`
	CompanyID       *uuid.UUID `json:"company_id"`
	EmployerID      *uuid.UUID `json:"employer_id"`
	Status          *string    `json:"status"`
	CreatedAt       timestamp  `json:"created_at"`
	UpdatedAt       timestamp  `json:"updated_at"`
}

func (r jobRow) toDomain() job.Job {
	j := job.Job{
		ID:              r.ID,
		Description:     r.Description,
		Deadline:        r.Deadline,
		Company:         r.Company,
		JobType:         r.JobType,
		ExperienceLevel: r.ExperienceLevel,
		WorkingHours:    r.WorkingHours,
		Location:        r.Location,
		Salary:          r.Salary,
		MaxApplicants:   r.MaxApplicants,
		ApplyLink:       r.ApplyLink,
		CompanyID:       r.CompanyID,
		EmployerID:      r.EmployerID,
		CreatedAt:       r.CreatedAt.Time,
		UpdatedAt:       r.UpdatedAt.Time,
	}
	if r.JobTitle != nil {
		j.Title = *r.JobTitle
	}
	if r.Status != nil {
		s := job.Status(*r.Status)
		j.Status = &s
	}
	if j.UpdatedAt.IsZero() {
		j.UpdatedAt = j.CreatedAt
	}
	return j
}

// applicationRow carries the embedded jobs and freelancers resources; either
// is null when the referenced row is gone.
type applicationRow struct {
	ID             uuid.UUID      `json:"id"`
	ApplicantID    uuid.UUID      `json:"applicant_id"`
	JobID          uuid.UUID      `json:"job_id"`
	Status         *string        `json:"status"`
	CoverLater     *string        `json:"cover_later"`
	ProtfolioLinks []string       `json:"protfolio_links"`
	CreatedAt      timestamp      `json:"created_at"`
	Job            *jobRow        `json:"jobs"`
	Applicant      *freelancerRow `json:"freelancers"`
}

func (r applicationRow) toDetail() application.Detail {
	j, f := r.Job, r.Applicant
	d := application.Detail{
		ID:             r.ID,
		ApplicantID:    r.ApplicantID,
		JobID:          r.JobID,
		JobTitle:       application.UnknownJobTitle,
		Status:         application.Normalize(r.Status),
		CoverLetter:    r.CoverLater,
		PortfolioLinks: r.ProtfolioLinks,
		CreatedAt:      r.CreatedAt.Time,
	}
	if j != nil {
		if j.JobTitle != nil && *j.JobTitle != "" {
			d.JobTitle = *j.JobTitle
		}
		d.Company = j.Company
		d.CompanyID = j.CompanyID
	}
	var title, email *string
	if f != nil {
		title, email = f.ProfessionalTitle, f.Email
	}
	d.ApplicantName = application.ApplicantDisplayName(title, email)
	d.ApplicantEmail = email
	return d
}

type freelancerRow struct {
	ID                uuid.UUID                   `json:"id"`
	UserID            *uuid.UUID                  `json:"user_id"`
	FirstName         *string                     `json:"first_name"`
	LastName          *string                     `json:"last_name"`
	FullName          *string                     `json:"full_name"`
	Email             *string                     `json:"email"`
	Gender            *string                     `json:"gender"`
	Age               *int                        `json:"age"`
	Location          *string                     `json:"location"`
	LinkedInURL       *string                     `json:"linkedin_url"`
	GithubURL         *string                     `json:"github_url"`
	PortfolioLinks    []freelancer.PortfolioLink  `json:"portfolio_links"`
	ProfessionalTitle *string                     `json:"professional_title"`
	About             *string                     `json:"about"`
	ProfileImage      *string                     `json:"profile_image"`
	ProfileCompletion *int                        `json:"profile_completion"`
	Services          []string                    `json:"services"`
	Skills            []freelancer.Skill          `json:"skills"`
	WorkExperiences   []freelancer.WorkExperience `json:"work_experiences"`
	Education         []freelancer.Education      `json:"education"`
	Certifications    []freelancer.Certification  `json:"certifications"`
	Languages         []freelancer.Language       `json:"languages"`
	CreatedAt         timestamp                   `json:"created_at"`
	UpdatedAt         timestamp                   `json:"updated_at"`
}

func (r freelancerRow) toDomain() freelancer.Freelancer {
	f := freelancer.Freelancer{
		ID:                r.ID,
		UserID:            r.UserID,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		FullName:          r.FullName,
		Email:             r.Email,
		Gender:            r.Gender,
		Age:               r.Age,
		Location:          r.Location,
		LinkedInURL:       r.LinkedInURL,
		GithubURL:         r.GithubURL,
		PortfolioLinks:    r.PortfolioLinks,
		ProfessionalTitle: r.ProfessionalTitle,
		About:             r.About,
		ProfileImage:      r.ProfileImage,
		ProfileCompletion: r.ProfileCompletion,
		Services:          r.Services,
		Skills:            r.Skills,
		WorkExperiences:   r.WorkExperiences,
		Education:         r.Education,
		Certifications:    r.Certifications,
		Languages:         r.Languages,
		CreatedAt:         r.CreatedAt.Time,
		UpdatedAt:         r.UpdatedAt.Time,
	}
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = f.CreatedAt
	}
	return f
}
