package application

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusInReview    Status = "in-review"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusHired       Status = "hired"
)

var Statuses = []Status{StatusPending, StatusInReview, StatusShortlisted, StatusRejected, StatusHired}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Normalize maps a stored status to its effective value; NULL and unknown
// values read as pending.
func Normalize(raw *string) Status {
	if raw == nil {
		return StatusPending
	}
	s := Status(*raw)
	if !s.Valid() {
		return StatusPending
	}
	return s
}

const (
	UnknownJobTitle  = "Unknown Job"
	UnknownApplicant = "Unknown Applicant"
)

// Detail is an application joined with its job and applicant.
type Detail struct {
	ID             uuid.UUID
	ApplicantID    uuid.UUID
	JobID          uuid.UUID
	JobTitle       string
	Company        *string
	CompanyID      *uuid.UUID
	ApplicantName  string
	ApplicantEmail *string
	Status         Status
	CoverLetter    *string
	PortfolioLinks []string
	CreatedAt      time.Time
}

// ApplicantDisplayName prefers the professional title, then the email.
func ApplicantDisplayName(title, email *string) string {
	if title != nil && *title != "" {
		return *title
	}
	if email != nil && *email != "" {
		return *email
	}
	return UnknownApplicant
}

// StatusCounts is the number of applications per status.
type StatusCounts map[Status]int

func CountStatuses(items []Detail) StatusCounts {
	out := StatusCounts{}
	for _, s := range Statuses {
		out[s] = 0
	}
	for _, it := range items {
		out[it.Status]++
	}
	return out
}
