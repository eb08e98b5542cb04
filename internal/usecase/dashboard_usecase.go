package usecase

import (
	"context"
	"log"
	"time"

	"talent-admin/internal/domain/application"
	"talent-admin/internal/domain/dashboard"
	"talent-admin/internal/domain/hiring"
	"talent-admin/internal/domain/job"
	"talent-admin/internal/repository"

	"golang.org/x/sync/errgroup"
)

const (
	dashboardStatsKey = "dashboard:stats"
	chartMonths       = 6
)

type StatsCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type DashboardUsecase struct {
	stats  repository.StatsRepository
	cache  StatsCache
	ttl    time.Duration
	logger *log.Logger
	now    func() time.Time
}

func NewDashboardUsecase(stats repository.StatsRepository, cache StatsCache, ttl time.Duration, logger *log.Logger) *DashboardUsecase {
	if logger == nil {
		logger = log.Default()
	}
	return &DashboardUsecase{stats: stats, cache: cache, ttl: ttl, logger: logger, now: time.Now}
}

// GetStats serves cached figures when present and otherwise recomputes them.
func (u *DashboardUsecase) GetStats(ctx context.Context) (dashboard.Stats, error) {
	if u.cache != nil {
		var cached dashboard.Stats
		if hit, err := u.cache.GetJSON(ctx, dashboardStatsKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	out, err := u.Compute(ctx, u.now())
	if err != nil {
		return dashboard.Stats{}, err
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, dashboardStatsKey, out, u.ttl); err != nil {
			u.logger.Printf("[Dashboard] cache write failed err=%v", err)
		}
	}
	return out, nil
}

// Compute issues every count concurrently; any failing count fails the call.
func (u *DashboardUsecase) Compute(ctx context.Context, now time.Time) (dashboard.Stats, error) {
	var (
		totalCompanies, verifiedCompanies, companiesBefore int
		totalJobs, activeJobs                              int
		totalApplications, pendingApplications             int
		totalFreelancers, freelancersBefore                int
		jobStamps                                          []time.Time
	)
	verified := true
	cutoff := dashboard.GrowthCutoff(now)

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int, q repository.CountQuery) {
		g.Go(func() error {
			n, err := u.stats.Count(gctx, q)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(&totalCompanies, repository.CountQuery{Table: repository.TableEmployers})
	count(&verifiedCompanies, repository.CountQuery{Table: repository.TableEmployers, Verified: &verified})
	count(&companiesBefore, repository.CountQuery{Table: repository.TableEmployers, CreatedBefore: &cutoff})
	count(&totalJobs, repository.CountQuery{Table: repository.TableJobs})
	count(&activeJobs, repository.CountQuery{Table: repository.TableJobs, Status: string(job.StatusActive)})
	count(&totalApplications, repository.CountQuery{Table: repository.TableApplications})
	count(&pendingApplications, repository.CountQuery{Table: repository.TableApplications, Status: string(application.StatusPending)})
	count(&totalFreelancers, repository.CountQuery{Table: repository.TableFreelancers})
	count(&freelancersBefore, repository.CountQuery{Table: repository.TableFreelancers, CreatedBefore: &cutoff})
	g.Go(func() error {
		stamps, err := u.stats.ListJobCreatedAtSince(gctx, dashboard.WindowStart(now, chartMonths))
		if err != nil {
			return err
		}
		jobStamps = stamps
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.Stats{}, storeError(u.logger, "dashboard stats", err)
	}

	return dashboard.Stats{
		TotalCompanies:       totalCompanies,
		VerifiedCompanies:    verifiedCompanies,
		PendingVerifications: totalCompanies - verifiedCompanies,
		VerificationRate:     hiring.Percent(verifiedCompanies, totalCompanies),
		TotalJobs:            totalJobs,
		ActiveJobs:           activeJobs,
		TotalApplications:    totalApplications,
		PendingApplications:  pendingApplications,
		TotalFreelancers:     totalFreelancers,
		FreelancerGrowth:     hiring.Growth(totalFreelancers, freelancersBefore),
		CompanyGrowth:        hiring.Growth(totalCompanies, companiesBefore),
		JobsPostedByMonth:    dashboard.BucketByMonth(now, chartMonths, jobStamps),
		GeneratedAt:          now.UTC(),
	}, nil
}

func (u *DashboardUsecase) Invalidate(ctx context.Context) {
	if u == nil || u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, dashboardStatsKey); err != nil {
		u.logger.Printf("[Dashboard] cache invalidation failed err=%v", err)
	}
}
