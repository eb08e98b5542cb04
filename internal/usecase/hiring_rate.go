package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"talent-admin/internal/domain/application"
	"talent-admin/internal/domain/hiring"
	"talent-admin/internal/domain/notification"
	"talent-admin/internal/repository"

	"github.com/google/uuid"
)

var ErrNoCompanyJobs = errors.New("company has no jobs")

type HiringRateOptions struct {
	// Async runs recalculations on a background goroutine detached from
	// the triggering request.
	Async   bool
	Timeout time.Duration
}

// HiringRateRecalculator keeps employers.hiring_rate in line with the hire
// outcomes of every application to the company's jobs. It is triggered by
// a transition to hired and never fails the caller; concurrent triggers for
// one company race and the last write wins.
type HiringRateRecalculator struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	companies    repository.CompanyRepository

	publisher   Publisher
	invalidator StatsInvalidator
	logger      *log.Logger

	async   bool
	timeout time.Duration
	now     func() time.Time

	wg sync.WaitGroup
}

func NewHiringRateRecalculator(
	jobs repository.JobRepository,
	applications repository.ApplicationRepository,
	companies repository.CompanyRepository,
	opts HiringRateOptions,
	publisher Publisher,
	invalidator StatsInvalidator,
	logger *log.Logger,
) *HiringRateRecalculator {
	if logger == nil {
		logger = log.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HiringRateRecalculator{
		jobs:         jobs,
		applications: applications,
		companies:    companies,
		publisher:    publisherOrNop(publisher),
		invalidator:  invalidatorOrNop(invalidator),
		logger:       logger,
		async:        opts.Async,
		timeout:      timeout,
		now:          time.Now,
	}
}

// OnHired schedules a recalculation for the company owning app's job.
func (r *HiringRateRecalculator) OnHired(ctx context.Context, app application.Detail) {
	if r == nil {
		return
	}
	if !r.async {
		runCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()
		r.run(runCtx, app)
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		runCtx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		r.run(runCtx, app)
	}()
}

// Wait blocks until every scheduled recalculation has finished.
func (r *HiringRateRecalculator) Wait() {
	if r == nil {
		return
	}
	r.wg.Wait()
}

func (r *HiringRateRecalculator) run(ctx context.Context, app application.Detail) {
	companyID, ok, err := r.resolveCompany(ctx, app)
	if err != nil {
		r.logger.Printf("[HiringRate] resolve company failed application_id=%s job_id=%s err=%v", app.ID, app.JobID, err)
		return
	}
	if !ok {
		r.logger.Printf("[HiringRate] skipped application_id=%s job_id=%s reason=no_company", app.ID, app.JobID)
		return
	}

	if _, err := r.RecalculateCompany(ctx, companyID); err != nil {
		if errors.Is(err, ErrNoCompanyJobs) {
			r.logger.Printf("[HiringRate] skipped company_id=%s reason=no_jobs", companyID)
			return
		}
		r.logger.Printf("[HiringRate] recalculation failed company_id=%s err=%v", companyID, err)
	}
}

func (r *HiringRateRecalculator) resolveCompany(ctx context.Context, app application.Detail) (uuid.UUID, bool, error) {
	if app.CompanyID != nil {
		return *app.CompanyID, true, nil
	}
	j, err := r.jobs.GetJobByID(ctx, app.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	if j.CompanyID == nil {
		return uuid.Nil, false, nil
	}
	return *j.CompanyID, true, nil
}

// RecalculateCompany recomputes and stores the hiring rate of one company.
// It returns ErrNoCompanyJobs without writing when the company owns no jobs.
func (r *HiringRateRecalculator) RecalculateCompany(ctx context.Context, companyID uuid.UUID) (hiring.Snapshot, error) {
	jobIDs, err := r.jobs.ListJobIDsByCompany(ctx, companyID)
	if err != nil {
		return hiring.Snapshot{}, fmt.Errorf("list company jobs: %w", err)
	}
	if len(jobIDs) == 0 {
		return hiring.Snapshot{}, ErrNoCompanyJobs
	}

	statuses, err := r.applications.ListStatusesByJobIDs(ctx, jobIDs)
	if err != nil {
		return hiring.Snapshot{}, fmt.Errorf("list application statuses: %w", err)
	}

	snap := hiring.Snapshot{Total: len(statuses)}
	for _, s := range statuses {
		if s == application.StatusHired {
			snap.Hired++
		}
	}
	rate := snap.Rate()

	if err := r.companies.UpdateHiringRate(ctx, companyID, rate, r.now().UTC()); err != nil {
		return snap, fmt.Errorf("update hiring rate: %w", err)
	}

	r.logger.Printf("[HiringRate] recalculated company_id=%s hired=%d total=%d rate=%d", companyID, snap.Hired, snap.Total, rate)
	r.invalidator.Invalidate(ctx)
	r.publisher.EntityUpdated(notification.EntityCompany, companyID)
	return snap, nil
}
