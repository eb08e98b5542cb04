package dto

import (
	"time"

	"talent-admin/internal/domain/freelancer"
	"talent-admin/internal/usecase"

	"github.com/google/uuid"
)

type FreelancerResponse struct {
	ID                uuid.UUID                   `json:"id"`
	UserID            *uuid.UUID                  `json:"userId"`
	DisplayName       string                      `json:"displayName"`
	FirstName         *string                     `json:"firstName"`
	LastName          *string                     `json:"lastName"`
	FullName          *string                     `json:"fullName"`
	Email             *string                     `json:"email"`
	Gender            *string                     `json:"gender"`
	Age               *int                        `json:"age"`
	Location          *string                     `json:"location"`
	LinkedInURL       *string                     `json:"linkedinUrl"`
	GithubURL         *string                     `json:"githubUrl"`
	PortfolioLinks    []freelancer.PortfolioLink  `json:"portfolioLinks"`
	ProfessionalTitle *string                     `json:"professionalTitle"`
	About             *string                     `json:"about"`
	ProfileImage      *string                     `json:"profileImage"`
	ProfileCompletion int                         `json:"profileCompletion"`
	Services          []string                    `json:"services"`
	Skills            []freelancer.Skill          `json:"skills"`
	WorkExperiences   []freelancer.WorkExperience `json:"workExperiences"`
	Education         []freelancer.Education      `json:"education"`
	Certifications    []freelancer.Certification  `json:"certifications"`
	Languages         []freelancer.Language       `json:"languages"`
	CreatedAt         time.Time                   `json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`
}

type FreelancerListResponse struct {
	Items     []FreelancerResponse `json:"items"`
	Total     int                  `json:"total"`
	Filtered  int                  `json:"filtered"`
	Locations []string             `json:"locations"`
}

func NewFreelancerResponse(f freelancer.Freelancer) FreelancerResponse {
	return FreelancerResponse{
		ID:                f.ID,
		UserID:            f.UserID,
		DisplayName:       f.DisplayName(),
		FirstName:         f.FirstName,
		LastName:          f.LastName,
		FullName:          f.FullName,
		Email:             f.Email,
		Gender:            f.Gender,
		Age:               f.Age,
		Location:          f.Location,
		LinkedInURL:       f.LinkedInURL,
		GithubURL:         f.GithubURL,
		PortfolioLinks:    f.PortfolioLinks,
		ProfessionalTitle: f.ProfessionalTitle,
		About:             f.About,
		ProfileImage:      f.ProfileImage,
		ProfileCompletion: f.Completion(),
		Services:          f.Services,
		Skills:            f.Skills,
		WorkExperiences:   f.WorkExperiences,
		Education:         f.Education,
		Certifications:    f.Certifications,
		Languages:         f.Languages,
		CreatedAt:         f.CreatedAt,
		UpdatedAt:         f.UpdatedAt,
	}
}

func NewFreelancerListResponse(l usecase.FreelancerList) FreelancerListResponse {
	items := make([]FreelancerResponse, 0, len(l.Items))
	for _, f := range l.Items {
		items = append(items, NewFreelancerResponse(f))
	}
	locations := l.Locations
	if locations == nil {
		locations = []string{}
	}
	return FreelancerListResponse{
		Items:     items,
		Total:     l.Total,
		Filtered:  l.Filtered,
		Locations: locations,
	}
}
