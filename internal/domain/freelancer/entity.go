package freelancer

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Freelancer struct {
	ID                uuid.UUID
	UserID            *uuid.UUID
	FirstName         *string
	LastName          *string
	FullName          *string
	Email             *string
	Gender            *string
	Age               *int
	Location          *string
	LinkedInURL       *string
	GithubURL         *string
	PortfolioLinks    []PortfolioLink
	ProfessionalTitle *string
	About             *string
	ProfileImage      *string
	ProfileCompletion *int
	Services          []string
	Skills            []Skill
	WorkExperiences   []WorkExperience
	Education         []Education
	Certifications    []Certification
	Languages         []Language
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DisplayName is full_name when present, otherwise "first last" trimmed.
func (f Freelancer) DisplayName() string {
	if f.FullName != nil && strings.TrimSpace(*f.FullName) != "" {
		return *f.FullName
	}
	first, last := "", ""
	if f.FirstName != nil {
		first = *f.FirstName
	}
	if f.LastName != nil {
		last = *f.LastName
	}
	return strings.TrimSpace(first + " " + last)
}

func (f Freelancer) Completion() int {
	if f.ProfileCompletion == nil {
		return 0
	}
	return *f.ProfileCompletion
}

type Skill struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type WorkExperience struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Type         string   `json:"type"`
	Location     string   `json:"location"`
	StartDate    string   `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	Technologies []string `json:"technologies"`
	Description  string   `json:"description"`
}

type Education struct {
	Institution string  `json:"institution"`
	Field       string  `json:"field"`
	Degree      *string `json:"degree"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Coursework  *string `json:"coursework"`
}

type Certification struct {
	Name      string  `json:"name"`
	Issuer    string  `json:"issuer"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// PortfolioLink is stored either as a bare URL string or as an object.
type PortfolioLink struct {
	Link         string   `json:"link"`
	Description  *string  `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

func (p *PortfolioLink) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = PortfolioLink{Link: s}
		return nil
	}
	type plain PortfolioLink
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = PortfolioLink(v)
	return nil
}
