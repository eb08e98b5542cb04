package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"talent-admin/internal/database"
	"talent-admin/internal/domain/freelancer"

	"github.com/google/uuid"
)

type FreelancerRepository interface {
	ListFreelancers(ctx context.Context) ([]freelancer.Freelancer, error)
	GetFreelancerByID(ctx context.Context, id uuid.UUID) (freelancer.Freelancer, error)
}

type PostgresFreelancerRepository struct {
	db database.DB
}

func NewPostgresFreelancerRepository(db database.DB) *PostgresFreelancerRepository {
	return &PostgresFreelancerRepository{db: db}
}

const freelancerColumns = `id, user_id, first_name, last_name, full_name, email, gender, age, location,
	linkedin_url, github_url, professional_title, about, profile_image, profile_completion, services,
	portfolio_links, skills, work_experiences, education, certifications, languages,
	created_at, COALESCE(updated_at, created_at)`

func scanFreelancer(row database.Row) (freelancer.Freelancer, error) {
	var (
		f                                                    freelancer.Freelancer
		portfolio, skills, work, education, certs, languages []byte
	)
	err := row.Scan(
		&f.ID, &f.UserID, &f.FirstName, &f.LastName, &f.FullName, &f.Email, &f.Gender, &f.Age, &f.Location,
		&f.LinkedInURL, &f.GithubURL, &f.ProfessionalTitle, &f.About, &f.ProfileImage, &f.ProfileCompletion, &f.Services,
		&portfolio, &skills, &work, &education, &certs, &languages,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return freelancer.Freelancer{}, err
	}

	docs := []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"portfolio_links", portfolio, &f.PortfolioLinks},
		{"skills", skills, &f.Skills},
		{"work_experiences", work, &f.WorkExperiences},
		{"education", education, &f.Education},
		{"certifications", certs, &f.Certifications},
		{"languages", languages, &f.Languages},
	}
	for _, d := range docs {
		if len(d.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(d.raw, d.dst); err != nil {
			return freelancer.Freelancer{}, fmt.Errorf("decode freelancer %s.%s: %w", f.ID, d.name, err)
		}
	}
	return f, nil
}

func (r *PostgresFreelancerRepository) ListFreelancers(ctx context.Context) ([]freelancer.Freelancer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+freelancerColumns+` FROM freelancers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]freelancer.Freelancer, 0)
	for rows.Next() {
		f, err := scanFreelancer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresFreelancerRepository) GetFreelancerByID(ctx context.Context, id uuid.UUID) (freelancer.Freelancer, error) {
	f, err := scanFreelancer(r.db.QueryRow(ctx, `SELECT `+freelancerColumns+` FROM freelancers WHERE id = $1`, id))
	if err != nil {
		return freelancer.Freelancer{}, mapNoRows(err)
	}
	return f, nil
}
