package usecase

import (
	"errors"
	"fmt"
	"log"

	"talent-admin/internal/repository"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("not found")
	ErrInternal      = errors.New("internal error")
)

// storeError maps a repository error to a usecase sentinel, logging the
// cause of anything that is not a plain miss.
func storeError(logger *log.Logger, op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if logger != nil {
		logger.Printf("[Store] %s failed err=%v", op, err)
	}
	return fmt.Errorf("%w: %s", ErrInternal, op)
}
