package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"talent-admin/internal/database"
)

// fixtureColumns lists what Apply writes per table, checked before any
// row is touched.
var fixtureColumns = map[string][]string{
	"employers":    {"id", "name", "email", "country", "website", "established_date", "is_verified", "request_verify", "hiring_rate", "created_at", "updated_at"},
	"jobs":         {"id", "job_title", "company_id", "company", "location", "job_type", "status", "created_at"},
	"freelancers":  {"id", "first_name", "last_name", "email", "location", "professional_title", "profile_completion", "services", "skills", "created_at"},
	"applications": {"id", "job_id", "applicant_id", "status", "cover_later", "protfolio_links", "created_at"},
}

// Loader upserts fixture documents. Rows are keyed by id, so applying the
// same document twice leaves one copy.
type Loader struct {
	db     database.DB
	logger *log.Logger
}

func NewLoader(db database.DB, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{db: db, logger: logger}
}

// Apply writes f in a single transaction in dependency order.
func (l *Loader) Apply(ctx context.Context, f *Fixtures) error {
	if l == nil || l.db == nil {
		return fmt.Errorf("seeder: nil db")
	}
	if f == nil {
		return fmt.Errorf("seeder: nil fixtures")
	}
	if err := CheckColumns(ctx, l.db, fixtureColumns); err != nil {
		return err
	}

	start := time.Now()
	err := database.WithTx(ctx, l.db, func(tx database.Tx) error {
		steps := []func(context.Context, database.Tx, *Fixtures) error{
			upsertEmployers,
			upsertJobs,
			upsertFreelancers,
			upsertApplications,
		}
		for _, step := range steps {
			if err := step(ctx, tx, f); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.logger.Printf("[Seeder] applied employers=%d jobs=%d freelancers=%d applications=%d duration=%s",
		len(f.Employers), len(f.Jobs), len(f.Freelancers), len(f.Applications), time.Since(start))
	return nil
}

func upsertEmployers(ctx context.Context, tx database.Tx, f *Fixtures) error {
	for _, e := range f.Employers {
		created, _ := parseFixtureTime(e.CreatedAt)
		_, err := tx.Exec(ctx,
			`INSERT INTO employers (id, name, email, country, website, established_date, is_verified, request_verify, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, $9, $9)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email, country = EXCLUDED.country,
				website = EXCLUDED.website, established_date = EXCLUDED.established_date,
				is_verified = EXCLUDED.is_verified, request_verify = EXCLUDED.request_verify`,
			e.ID, e.Name, e.Email, e.Country, e.Website, e.EstablishedDate, e.IsVerified, e.RequestVerify, created,
		)
		if err != nil {
			return fmt.Errorf("employer %s: %w", e.ID, err)
		}
	}
	return nil
}

func upsertJobs(ctx context.Context, tx database.Tx, f *Fixtures) error {
	for _, j := range f.Jobs {
		created, _ := parseFixtureTime(j.CreatedAt)
		_, err := tx.Exec(ctx,
			`INSERT INTO jobs (id, job_title, company_id, company, location, job_type, status, created_at)
			VALUES ($1, $2, $3::uuid, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET job_title = EXCLUDED.job_title, company_id = EXCLUDED.company_id,
				company = EXCLUDED.company, location = EXCLUDED.location, job_type = EXCLUDED.job_type,
				status = EXCLUDED.status`,
			j.ID, j.Title, j.CompanyID, j.Company, j.Location, j.JobType, j.Status, created,
		)
		if err != nil {
			return fmt.Errorf("job %s: %w", j.ID, err)
		}
	}
	return nil
}

func upsertFreelancers(ctx context.Context, tx database.Tx, f *Fixtures) error {
	for _, fl := range f.Freelancers {
		created, _ := parseFixtureTime(fl.CreatedAt)
		skills, err := json.Marshal(fl.Skills)
		if err != nil {
			return fmt.Errorf("freelancer %s skills: %w", fl.ID, err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO freelancers (id, first_name, last_name, email, location, professional_title, profile_completion, services, skills, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10)
			ON CONFLICT (id) DO UPDATE SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
				email = EXCLUDED.email, location = EXCLUDED.location, professional_title = EXCLUDED.professional_title,
				profile_completion = EXCLUDED.profile_completion, services = EXCLUDED.services, skills = EXCLUDED.skills`,
			fl.ID, fl.FirstName, fl.LastName, fl.Email, fl.Location, fl.ProfessionalTitle, fl.ProfileCompletion, fl.Services, string(skills), created,
		)
		if err != nil {
			return fmt.Errorf("freelancer %s: %w", fl.ID, err)
		}
	}
	return nil
}

func upsertApplications(ctx context.Context, tx database.Tx, f *Fixtures) error {
	for _, a := range f.Applications {
		created, _ := parseFixtureTime(a.CreatedAt)
		_, err := tx.Exec(ctx,
			`INSERT INTO applications (id, job_id, applicant_id, status, cover_later, protfolio_links, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, cover_later = EXCLUDED.cover_later,
				protfolio_links = EXCLUDED.protfolio_links`,
			a.ID, a.JobID, a.ApplicantID, a.Status, a.CoverLetter, a.PortfolioLinks, created,
		)
		if err != nil {
			return fmt.Errorf("application %s: %w", a.ID, err)
		}
	}
	return nil
}
