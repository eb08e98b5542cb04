package job

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
	StatusDraft  Status = "draft"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusDraft:
		return true
	default:
		return false
	}
}

// Job is a posting owned by at most one company. CompanyID is nullable in
// source data; such jobs never contribute to a company hiring rate.
type Job struct {
	ID              uuid.UUID
	Title           string
	Description     *string
	Deadline        *string
	Company         *string
	JobType         *string
	ExperienceLevel *string
	WorkingHours    *string
	Location        *string
	Salary          *string
	MaxApplicants   *int
	ApplyLink       *string
	CompanyID       *uuid.UUID
	EmployerID      *uuid.UUID
	Status          *Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (j Job) HasStatus(s Status) bool {
	return j.Status != nil && *j.Status == s
}

// StatusCounts is the number of jobs per listing filter.
type StatusCounts struct {
	All    int
	Active int
	Closed int
	Draft  int
}

func CountStatuses(items []Job) StatusCounts {
	out := StatusCounts{All: len(items)}
	for _, j := range items {
		switch {
		case j.HasStatus(StatusActive):
			out.Active++
		case j.HasStatus(StatusClosed):
			out.Closed++
		case j.HasStatus(StatusDraft):
			out.Draft++
		}
	}
	return out
}
