package usecase

import (
	"context"
	"log"
	"time"

	"talent-admin/internal/domain/company"
	"talent-admin/internal/domain/notification"
	"talent-admin/internal/repository"

	"github.com/google/uuid"
)

type CompanyList struct {
	Items  []company.Company
	Counts company.TabCounts
}

type CompanyUsecase struct {
	repo        repository.CompanyRepository
	publisher   Publisher
	invalidator StatsInvalidator
	logger      *log.Logger
	now         func() time.Time
}

func NewCompanyUsecase(repo repository.CompanyRepository, publisher Publisher, invalidator StatsInvalidator, logger *log.Logger) *CompanyUsecase {
	if logger == nil {
		logger = log.Default()
	}
	return &CompanyUsecase{
		repo:        repo,
		publisher:   publisherOrNop(publisher),
		invalidator: invalidatorOrNop(invalidator),
		logger:      logger,
		now:         time.Now,
	}
}

func (u *CompanyUsecase) ListCompanies(ctx context.Context, tab string) (CompanyList, error) {
	t, ok := company.ParseTab(tab)
	if !ok {
		return CompanyList{}, ErrInvalidInput
	}
	items, err := u.repo.ListCompanies(ctx)
	if err != nil {
		return CompanyList{}, storeError(u.logger, "list companies", err)
	}
	return CompanyList{
		Items:  company.FilterAndSort(items, t),
		Counts: company.CountTabs(items),
	}, nil
}

func (u *CompanyUsecase) ListUnverifiedCompanies(ctx context.Context) ([]company.Company, error) {
	items, err := u.repo.ListUnverifiedCompanies(ctx)
	if err != nil {
		return nil, storeError(u.logger, "list unverified companies", err)
	}
	company.SortNewestFirst(items)
	return items, nil
}

func (u *CompanyUsecase) GetCompany(ctx context.Context, id uuid.UUID) (company.Company, error) {
	c, err := u.repo.GetCompanyByID(ctx, id)
	if err != nil {
		return company.Company{}, storeError(u.logger, "get company", err)
	}
	return c, nil
}

func (u *CompanyUsecase) VerifyCompany(ctx context.Context, id uuid.UUID) (company.Company, error) {
	return u.setVerified(ctx, id, true, notification.MsgCompanyVerified, notification.MsgCompanyVerifyFailed)
}

func (u *CompanyUsecase) RejectCompany(ctx context.Context, id uuid.UUID) (company.Company, error) {
	return u.setVerified(ctx, id, false, notification.MsgCompanyRejected, notification.MsgCompanyRejectFailed)
}

func (u *CompanyUsecase) setVerified(ctx context.Context, id uuid.UUID, verified bool, okMsg, failMsg string) (company.Company, error) {
	c, err := u.repo.SetCompanyVerified(ctx, id, verified, u.now().UTC())
	if err != nil {
		u.publisher.Notify(notification.New(notification.LevelError, failMsg))
		return company.Company{}, storeError(u.logger, "set company verified", err)
	}
	u.logger.Printf("[Company] verification updated company_id=%s verified=%t", id, verified)
	u.invalidator.Invalidate(ctx)
	u.publisher.Notify(notification.New(notification.LevelSuccess, okMsg))
	u.publisher.EntityUpdated(notification.EntityCompany, id)
	return c, nil
}
