package seeder

import (
	"fmt"
	"os"
	"strings"
	"time"

	"talent-admin/internal/domain/application"
	"talent-admin/internal/domain/job"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Fixtures is a YAML document of rows to load into an empty or existing
// database. Ids are fixed so a fixture file can be re-applied.
type Fixtures struct {
	Employers    []EmployerFixture    `yaml:"employers"`
	Jobs         []JobFixture         `yaml:"jobs"`
	Freelancers  []FreelancerFixture  `yaml:"freelancers"`
	Applications []ApplicationFixture `yaml:"applications"`
}

type EmployerFixture struct {
	ID              string  `yaml:"id"`
	Name            string  `yaml:"name"`
	Email           *string `yaml:"email"`
	Country         *string `yaml:"country"`
	Website         *string `yaml:"website"`
	EstablishedDate *string `yaml:"established_date"`
	IsVerified      *bool   `yaml:"is_verified"`
	RequestVerify   bool    `yaml:"request_verify"`
	CreatedAt       string  `yaml:"created_at"` // YYYY-MM-DD or RFC3339
}

type JobFixture struct {
	ID        string  `yaml:"id"`
	Title     string  `yaml:"title"`
	CompanyID *string `yaml:"company_id"`
	Company   *string `yaml:"company"`
	Location  *string `yaml:"location"`
	JobType   *string `yaml:"job_type"`
	Status    *string `yaml:"status"`
	CreatedAt string  `yaml:"created_at"`
}

type FreelancerFixture struct {
	ID                string         `yaml:"id"`
	FirstName         *string        `yaml:"first_name"`
	LastName          *string        `yaml:"last_name"`
	Email             *string        `yaml:"email"`
	Location          *string        `yaml:"location"`
	ProfessionalTitle *string        `yaml:"professional_title"`
	ProfileCompletion *int           `yaml:"profile_completion"`
	Services          []string       `yaml:"services"`
	Skills            []SkillFixture `yaml:"skills"`
	CreatedAt         string         `yaml:"created_at"`
}

type SkillFixture struct {
	Name  string `yaml:"name" json:"name"`
	Level string `yaml:"level" json:"level"`
}

type ApplicationFixture struct {
	ID             string   `yaml:"id"`
	JobID          string   `yaml:"job_id"`
	ApplicantID    string   `yaml:"applicant_id"`
	Status         *string  `yaml:"status"`
	CoverLetter    *string  `yaml:"cover_letter"`
	PortfolioLinks []string `yaml:"portfolio_links"`
	CreatedAt      string   `yaml:"created_at"`
}

func LoadFixtures(path string) (*Fixtures, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(b)
}

func ParseFixtures(b []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks ids, statuses, timestamps and that every reference points
// at a row in the same document.
func (f *Fixtures) Validate() error {
	employers := map[string]struct{}{}
	for i, e := range f.Employers {
		if err := checkID("employers", i, e.ID); err != nil {
			return err
		}
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("employers[%d]: name is required", i)
		}
		if _, err := parseFixtureTime(e.CreatedAt); err != nil {
			return fmt.Errorf("employers[%d]: %w", i, err)
		}
		employers[e.ID] = struct{}{}
	}

	jobs := map[string]struct{}{}
	for i, j := range f.Jobs {
		if err := checkID("jobs", i, j.ID); err != nil {
			return err
		}
		if strings.TrimSpace(j.Title) == "" {
			return fmt.Errorf("jobs[%d]: title is required", i)
		}
		if j.CompanyID != nil {
			if _, ok := employers[*j.CompanyID]; !ok {
				return fmt.Errorf("jobs[%d]: unknown company_id %s", i, *j.CompanyID)
			}
		}
		if j.Status != nil && !job.Status(*j.Status).Valid() {
			return fmt.Errorf("jobs[%d]: invalid status %q", i, *j.Status)
		}
		if _, err := parseFixtureTime(j.CreatedAt); err != nil {
			return fmt.Errorf("jobs[%d]: %w", i, err)
		}
		jobs[j.ID] = struct{}{}
	}

	freelancers := map[string]struct{}{}
	for i, fl := range f.Freelancers {
		if err := checkID("freelancers", i, fl.ID); err != nil {
			return err
		}
		if fl.ProfileCompletion != nil && (*fl.ProfileCompletion < 0 || *fl.ProfileCompletion > 100) {
			return fmt.Errorf("freelancers[%d]: profile_completion out of range", i)
		}
		if _, err := parseFixtureTime(fl.CreatedAt); err != nil {
			return fmt.Errorf("freelancers[%d]: %w", i, err)
		}
		freelancers[fl.ID] = struct{}{}
	}

	for i, a := range f.Applications {
		if err := checkID("applications", i, a.ID); err != nil {
			return err
		}
		if _, ok := jobs[a.JobID]; !ok {
			return fmt.Errorf("applications[%d]: unknown job_id %s", i, a.JobID)
		}
		if _, ok := freelancers[a.ApplicantID]; !ok {
			return fmt.Errorf("applications[%d]: unknown applicant_id %s", i, a.ApplicantID)
		}
		if a.Status != nil && !application.Status(*a.Status).Valid() {
			return fmt.Errorf("applications[%d]: invalid status %q", i, *a.Status)
		}
		if _, err := parseFixtureTime(a.CreatedAt); err != nil {
			return fmt.Errorf("applications[%d]: %w", i, err)
		}
	}
	return nil
}

func checkID(section string, i int, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s[%d]: invalid id %q", section, i, id)
	}
	return nil
}

// parseFixtureTime accepts YYYY-MM-DD or RFC3339. Empty means now.
func parseFixtureTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid created_at %q", s)
	}
	return t, nil
}
