package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"talent-admin/internal/domain/application"
	"talent-admin/internal/domain/job"
	"talent-admin/internal/domain/notification"
	"talent-admin/internal/repository"

	"github.com/google/uuid"
)

// JobWithApplications is a job merged with the applications made to it.
type JobWithApplications struct {
	Job               job.Job
	Applications      []application.Detail
	ApplicationCounts application.StatusCounts
}

type JobList struct {
	Items  []JobWithApplications
	Counts job.StatusCounts
}

type JobUsecase struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	publisher    Publisher
	invalidator  StatsInvalidator
	logger       *log.Logger
	now          func() time.Time
}

func NewJobUsecase(jobs repository.JobRepository, applications repository.ApplicationRepository, publisher Publisher, invalidator StatsInvalidator, logger *log.Logger) *JobUsecase {
	if logger == nil {
		logger = log.Default()
	}
	return &JobUsecase{
		jobs:         jobs,
		applications: applications,
		publisher:    publisherOrNop(publisher),
		invalidator:  invalidatorOrNop(invalidator),
		logger:       logger,
		now:          time.Now,
	}
}

// ListJobs returns jobs matching status ("" or "all" for every job). Counts
// are always computed over the unfiltered list.
func (u *JobUsecase) ListJobs(ctx context.Context, status string) (JobList, error) {
	status = strings.TrimSpace(status)
	filter := job.Status(status)
	if status != "" && status != "all" && !filter.Valid() {
		return JobList{}, ErrInvalidStatus
	}

	all, err := u.jobs.ListJobs(ctx)
	if err != nil {
		return JobList{}, storeError(u.logger, "list jobs", err)
	}

	selected := make([]job.Job, 0, len(all))
	for _, j := range all {
		if filter.Valid() && !j.HasStatus(filter) {
			continue
		}
		selected = append(selected, j)
	}

	apps, err := u.applicationsFor(ctx, filter, selected)
	if err != nil {
		return JobList{}, storeError(u.logger, "list job applications", err)
	}
	byJob := make(map[uuid.UUID][]application.Detail, len(selected))
	for _, a := range apps {
		byJob[a.JobID] = append(byJob[a.JobID], a)
	}

	items := make([]JobWithApplications, 0, len(selected))
	for _, j := range selected {
		items = append(items, mergeJob(j, byJob[j.ID]))
	}
	return JobList{Items: items, Counts: job.CountStatuses(all)}, nil
}

// applicationsFor reads every application when no status filter applies,
// otherwise only those made to jobs.
func (u *JobUsecase) applicationsFor(ctx context.Context, filter job.Status, jobs []job.Job) ([]application.Detail, error) {
	if !filter.Valid() {
		return u.applications.ListApplications(ctx)
	}
	ids := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	return u.applications.ListApplicationsByJobIDs(ctx, ids)
}

func (u *JobUsecase) GetJob(ctx context.Context, id uuid.UUID) (JobWithApplications, error) {
	j, err := u.jobs.GetJobByID(ctx, id)
	if err != nil {
		return JobWithApplications{}, storeError(u.logger, "get job", err)
	}
	apps, err := u.applications.ListApplicationsByJobIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return JobWithApplications{}, storeError(u.logger, "list job applications", err)
	}
	return mergeJob(j, apps), nil
}

func (u *JobUsecase) UpdateJobStatus(ctx context.Context, id uuid.UUID, status string) (job.Job, error) {
	s := job.Status(strings.TrimSpace(status))
	if !s.Valid() {
		return job.Job{}, ErrInvalidStatus
	}

	j, err := u.jobs.UpdateJobStatus(ctx, id, s, u.now().UTC())
	if err != nil {
		u.publisher.Notify(notification.New(notification.LevelError, notification.MsgJobStatusFailed))
		return job.Job{}, storeError(u.logger, "update job status", err)
	}
	u.logger.Printf("[Job] status updated job_id=%s status=%s", id, s)
	u.invalidator.Invalidate(ctx)
	u.publisher.Notify(notification.New(notification.LevelSuccess, notification.MsgJobStatusUpdated))
	u.publisher.EntityUpdated(notification.EntityJob, id)
	return j, nil
}

func mergeJob(j job.Job, apps []application.Detail) JobWithApplications {
	if apps == nil {
		apps = []application.Detail{}
	}
	return JobWithApplications{
		Job:               j,
		Applications:      apps,
		ApplicationCounts: application.CountStatuses(apps),
	}
}
