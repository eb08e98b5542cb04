package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"talent-admin/internal/domain/application"
	"talent-admin/internal/domain/company"
	"talent-admin/internal/domain/freelancer"
	"talent-admin/internal/domain/job"
	"talent-admin/internal/domain/notification"
	"talent-admin/internal/repository"

	"github.com/google/uuid"
)

var errStoreDown = errors.New("store unavailable")

// memStore is an in-memory implementation of the company, job and
// application repositories.
type memStore struct {
	mu sync.Mutex

	companies map[uuid.UUID]company.Company
	jobs      map[uuid.UUID]job.Job
	apps      map[uuid.UUID]application.Detail

	failListJobIDs error
	failStatuses   error
	failRateWrite  error
	failUpdate     error
	rateWrites     []uuid.UUID
	byJobIDReads   int
}

func newMemStore() *memStore {
	return &memStore{
		companies: map[uuid.UUID]company.Company{},
		jobs:      map[uuid.UUID]job.Job{},
		apps:      map[uuid.UUID]application.Detail{},
	}
}

func (m *memStore) addCompany(name string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.companies[id] = company.Company{ID: id, Name: name, CreatedAt: time.Now()}
	return id
}

func (m *memStore) addJob(companyID *uuid.UUID, status job.Status) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	s := status
	m.jobs[id] = job.Job{ID: id, Title: "Job " + id.String()[:4], CompanyID: companyID, Status: &s, CreatedAt: time.Now()}
	return id
}

func (m *memStore) addApplication(jobID uuid.UUID, status application.Status) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	m.apps[id] = application.Detail{ID: id, ApplicantID: uuid.New(), JobID: jobID, Status: status, CreatedAt: time.Now()}
	return id
}

func (m *memStore) setHiringRate(id uuid.UUID, rate int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.companies[id]
	c.HiringRate = &rate
	m.companies[id] = c
}

func (m *memStore) hiringRate(id uuid.UUID) *int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.companies[id].HiringRate
}

func (m *memStore) detail(d application.Detail) application.Detail {
	d.JobTitle = application.UnknownJobTitle
	d.CompanyID = nil
	if j, ok := m.jobs[d.JobID]; ok {
		d.JobTitle = j.Title
		d.CompanyID = j.CompanyID
	}
	return d
}

func (m *memStore) ListCompanies(context.Context) ([]company.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]company.Company, 0, len(m.companies))
	for _, c := range m.companies {
		out = append(out, c)
	}
	return out, nil
}

func (m *memStore) ListUnverifiedCompanies(ctx context.Context) ([]company.Company, error) {
	all, _ := m.ListCompanies(ctx)
	out := make([]company.Company, 0, len(all))
	for _, c := range all {
		if c.IsVerified != nil && !*c.IsVerified {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) GetCompanyByID(_ context.Context, id uuid.UUID) (company.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.companies[id]
	if !ok {
		return company.Company{}, repository.ErrNotFound
	}
	return c, nil
}

func (m *memStore) SetCompanyVerified(_ context.Context, id uuid.UUID, verified bool, at time.Time) (company.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate != nil {
		return company.Company{}, m.failUpdate
	}
	c, ok := m.companies[id]
	if !ok {
		return company.Company{}, repository.ErrNotFound
	}
	c.IsVerified = &verified
	c.UpdatedAt = at
	m.companies[id] = c
	return c, nil
}

func (m *memStore) UpdateHiringRate(_ context.Context, id uuid.UUID, rate int, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRateWrite != nil {
		return m.failRateWrite
	}
	c, ok := m.companies[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.HiringRate = &rate
	c.UpdatedAt = at
	m.companies[id] = c
	m.rateWrites = append(m.rateWrites, id)
	return nil
}

func (m *memStore) ListJobs(context.Context) ([]job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]job.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID.String() < out[k].ID.String() })
	return out, nil
}

func (m *memStore) GetJobByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, repository.ErrNotFound
	}
	return j, nil
}

func (m *memStore) UpdateJobStatus(_ context.Context, id uuid.UUID, status job.Status, at time.Time) (job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate != nil {
		return job.Job{}, m.failUpdate
	}
	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, repository.ErrNotFound
	}
	j.Status = &status
	j.UpdatedAt = at
	m.jobs[id] = j
	return j, nil
}

func (m *memStore) ListJobIDsByCompany(_ context.Context, companyID uuid.UUID) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failListJobIDs != nil {
		return nil, m.failListJobIDs
	}
	out := make([]uuid.UUID, 0)
	for _, j := range m.jobs {
		if j.CompanyID != nil && *j.CompanyID == companyID {
			out = append(out, j.ID)
		}
	}
	return out, nil
}

func (m *memStore) ListApplications(context.Context) ([]application.Detail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]application.Detail, 0, len(m.apps))
	for _, a := range m.apps {
		out = append(out, m.detail(a))
	}
	return out, nil
}

func (m *memStore) ListApplicationsByJobIDs(_ context.Context, jobIDs []uuid.UUID) ([]application.Detail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byJobIDReads++
	want := make(map[uuid.UUID]bool, len(jobIDs))
	for _, id := range jobIDs {
		want[id] = true
	}
	out := make([]application.Detail, 0)
	for _, a := range m.apps {
		if want[a.JobID] {
			out = append(out, m.detail(a))
		}
	}
	return out, nil
}

func (m *memStore) GetApplicationByID(_ context.Context, id uuid.UUID) (application.Detail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return application.Detail{}, repository.ErrNotFound
	}
	return m.detail(a), nil
}

func (m *memStore) UpdateApplicationStatus(_ context.Context, id uuid.UUID, status application.Status) (application.Detail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate != nil {
		return application.Detail{}, m.failUpdate
	}
	a, ok := m.apps[id]
	if !ok {
		return application.Detail{}, repository.ErrNotFound
	}
	a.Status = status
	m.apps[id] = a
	return m.detail(a), nil
}

func (m *memStore) ListStatusesByJobIDs(_ context.Context, jobIDs []uuid.UUID) ([]application.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failStatuses != nil {
		return nil, m.failStatuses
	}
	want := make(map[uuid.UUID]bool, len(jobIDs))
	for _, id := range jobIDs {
		want[id] = true
	}
	out := make([]application.Status, 0)
	for _, a := range m.apps {
		if want[a.JobID] {
			out = append(out, a.Status)
		}
	}
	return out, nil
}

type fakeFreelancers struct {
	items []freelancer.Freelancer
	err   error
}

func (f fakeFreelancers) ListFreelancers(context.Context) ([]freelancer.Freelancer, error) {
	return f.items, f.err
}

func (f fakeFreelancers) GetFreelancerByID(_ context.Context, id uuid.UUID) (freelancer.Freelancer, error) {
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return freelancer.Freelancer{}, repository.ErrNotFound
}

type publishedEntity struct {
	entity string
	id     uuid.UUID
}

type recordingPublisher struct {
	mu            sync.Mutex
	notifications []notification.Notification
	entities      []publishedEntity
}

func (p *recordingPublisher) Notify(n notification.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, n)
}

func (p *recordingPublisher) EntityUpdated(entity string, id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entities = append(p.entities, publishedEntity{entity: entity, id: id})
}

func (p *recordingPublisher) messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.notifications))
	for _, n := range p.notifications {
		out = append(out, string(n.Type)+":"+n.Message)
	}
	return out
}

type countingInvalidator struct {
	mu sync.Mutex
	n  int
}

func (c *countingInvalidator) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
}

func (c *countingInvalidator) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
