package usecase

import (
	"context"
	"log"
	"strings"

	"talent-admin/internal/domain/freelancer"
	"talent-admin/internal/repository"

	"github.com/google/uuid"
)

type FreelancerQuery struct {
	Query      string
	Completion string
	Location   string
}

type FreelancerList struct {
	Items     []freelancer.Freelancer
	Total     int
	Filtered  int
	Locations []string
}

type FreelancerUsecase struct {
	repo   repository.FreelancerRepository
	logger *log.Logger
}

func NewFreelancerUsecase(repo repository.FreelancerRepository, logger *log.Logger) *FreelancerUsecase {
	if logger == nil {
		logger = log.Default()
	}
	return &FreelancerUsecase{repo: repo, logger: logger}
}

func (u *FreelancerUsecase) ListFreelancers(ctx context.Context, q FreelancerQuery) (FreelancerList, error) {
	band, ok := freelancer.ParseCompletionBand(strings.ToLower(strings.TrimSpace(q.Completion)))
	if !ok {
		return FreelancerList{}, ErrInvalidInput
	}

	all, err := u.repo.ListFreelancers(ctx)
	if err != nil {
		return FreelancerList{}, storeError(u.logger, "list freelancers", err)
	}

	items := freelancer.Apply(all, freelancer.Filter{
		Query:      q.Query,
		Completion: band,
		Location:   strings.TrimSpace(q.Location),
	})
	return FreelancerList{
		Items:     items,
		Total:     len(all),
		Filtered:  len(items),
		Locations: freelancer.UniqueLocations(all),
	}, nil
}

func (u *FreelancerUsecase) GetFreelancer(ctx context.Context, id uuid.UUID) (freelancer.Freelancer, error) {
	f, err := u.repo.GetFreelancerByID(ctx, id)
	if err != nil {
		return freelancer.Freelancer{}, storeError(u.logger, "get freelancer", err)
	}
	return f, nil
}
