package repository

import (
	"context"
	"time"

	"talent-admin/internal/database"
	"talent-admin/internal/domain/job"

	"github.com/google/uuid"
)

type JobRepository interface {
	ListJobs(ctx context.Context) ([]job.Job, error)
	GetJobByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status job.Status, at time.Time) (job.Job, error)
	ListJobIDsByCompany(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, job_title, description, deadline::text, company, job_type, experience_level,
	working_hours, location, salary, max_applicants, apply_link, company_id, employer_id,
	status, created_at, COALESCE(updated_at, created_at)`

func scanJob(row database.Row) (job.Job, error) {
	var (
		j      job.Job
		title  *string
		status *string
	)
	err := row.Scan(
		&j.ID, &title, &j.Description, &j.Deadline, &j.Company, &j.JobType, &j.ExperienceLevel,
		&j.WorkingHours, &j.Location, &j.Salary, &j.MaxApplicants, &j.ApplyLink, &j.CompanyID, &j.EmployerID,
		&status, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return job.Job{}, err
	}
	if title != nil {
		j.Title = *title
	}
	if status != nil {
		s := job.Status(*status)
		j.Status = &s
	}
	return j, nil
}

func (r *PostgresJobRepository) ListJobs(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) GetJobByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		return job.Job{}, mapNoRows(err)
	}
	return j, nil
}

func (r *PostgresJobRepository) UpdateJobStatus(ctx context.Context, id uuid.UUID, status job.Status, at time.Time) (job.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx,
		`UPDATE jobs SET status = $2, updated_at = $3 WHERE id = $1 RETURNING `+jobColumns,
		id, string(status), at,
	))
	if err != nil {
		return job.Job{}, mapNoRows(err)
	}
	return j, nil
}

func (r *PostgresJobRepository) ListJobIDsByCompany(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM jobs WHERE company_id = $1`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
