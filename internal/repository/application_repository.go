package repository

import (
	"context"

	"talent-admin/internal/database"
	"talent-admin/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	ListApplications(ctx context.Context) ([]application.Detail, error)
	ListApplicationsByJobIDs(ctx context.Context, jobIDs []uuid.UUID) ([]application.Detail, error)
	GetApplicationByID(ctx context.Context, id uuid.UUID) (application.Detail, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Detail, error)
	// ListStatusesByJobIDs returns one normalized status per application
	// whose job is in jobIDs.
	ListStatusesByJobIDs(ctx context.Context, jobIDs []uuid.UUID) ([]application.Status, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationDetailSelect = `SELECT a.id, a.applicant_id, a.job_id, j.job_title, j.company, j.company_id,
	f.professional_title, f.email, a.status, a.cover_later, a.protfolio_links, a.created_at
	FROM applications a
	LEFT JOIN jobs j ON j.id = a.job_id
	LEFT JOIN freelancers f ON f.id = a.applicant_id`

func scanApplicationDetail(row database.Row) (application.Detail, error) {
	var (
		d        application.Detail
		jobTitle *string
		title    *string
		status   *string
	)
	err := row.Scan(
		&d.ID, &d.ApplicantID, &d.JobID, &jobTitle, &d.Company, &d.CompanyID,
		&title, &d.ApplicantEmail, &status, &d.CoverLetter, &d.PortfolioLinks, &d.CreatedAt,
	)
	if err != nil {
		return application.Detail{}, err
	}
	d.JobTitle = application.UnknownJobTitle
	if jobTitle != nil && *jobTitle != "" {
		d.JobTitle = *jobTitle
	}
	d.ApplicantName = application.ApplicantDisplayName(title, d.ApplicantEmail)
	d.Status = application.Normalize(status)
	return d, nil
}

func (r *PostgresApplicationRepository) ListApplications(ctx context.Context) ([]application.Detail, error) {
	return r.list(ctx, applicationDetailSelect+` ORDER BY a.created_at DESC`)
}

func (r *PostgresApplicationRepository) ListApplicationsByJobIDs(ctx context.Context, jobIDs []uuid.UUID) ([]application.Detail, error) {
	if len(jobIDs) == 0 {
		return []application.Detail{}, nil
	}
	return r.list(ctx, applicationDetailSelect+` WHERE a.job_id = ANY($1::uuid[]) ORDER BY a.created_at DESC`, uuidStrings(jobIDs))
}

func (r *PostgresApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.Detail, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Detail, 0)
	for rows.Next() {
		d, err := scanApplicationDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) GetApplicationByID(ctx context.Context, id uuid.UUID) (application.Detail, error) {
	d, err := scanApplicationDetail(r.db.QueryRow(ctx, applicationDetailSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return application.Detail{}, mapNoRows(err)
	}
	return d, nil
}

func (r *PostgresApplicationRepository) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Detail, error) {
	n, err := r.db.Exec(ctx, `UPDATE applications SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return application.Detail{}, err
	}
	if n == 0 {
		return application.Detail{}, ErrNotFound
	}
	return r.GetApplicationByID(ctx, id)
}

func (r *PostgresApplicationRepository) ListStatusesByJobIDs(ctx context.Context, jobIDs []uuid.UUID) ([]application.Status, error) {
	if len(jobIDs) == 0 {
		return []application.Status{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT status FROM applications WHERE job_id = ANY($1::uuid[])`, uuidStrings(jobIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Status, 0)
	for rows.Next() {
		var s *string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, application.Normalize(s))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
