package repository

import (
	"errors"

	"talent-admin/internal/database"
)

var ErrNotFound = errors.New("record not found")

func mapNoRows(err error) error {
	if errors.Is(err, database.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
