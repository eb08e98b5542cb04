package company

import (
	"time"

	"github.com/google/uuid"
)

// Tab selects a slice of the company list shown to administrators.
type Tab string

const (
	TabAll        Tab = "all"
	TabRequesting Tab = "requesting"
	TabOthers     Tab = "others"
)

func ParseTab(s string) (Tab, bool) {
	switch Tab(s) {
	case "", TabAll:
		return TabAll, true
	case TabRequesting:
		return TabRequesting, true
	case TabOthers:
		return TabOthers, true
	default:
		return "", false
	}
}

// Company is a row of the employers table.
type Company struct {
	ID                  uuid.UUID
	Name                string
	UserID              *uuid.UUID
	TIN                 *string
	PhoneNumber         *string
	Email               *string
	Address             *string
	Country             *string
	BusinessLicence     *string
	EstablishedDate     *string
	BusinessDescription *string
	Website             *string
	IsOwner             *bool
	IsVerified          *bool
	RequestVerify       bool
	HiringRate          *int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (c Company) Verified() bool {
	return c.IsVerified != nil && *c.IsVerified
}

// RequestingVerification reports whether the company asked for verification
// and has not been verified yet. A NULL is_verified does not count as unverified.
func (c Company) RequestingVerification() bool {
	return c.RequestVerify && c.IsVerified != nil && !*c.IsVerified
}

func (c Company) InTab(tab Tab) bool {
	switch tab {
	case TabRequesting:
		return c.RequestingVerification()
	case TabOthers:
		return !c.RequestingVerification()
	default:
		return true
	}
}
