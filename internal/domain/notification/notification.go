package notification

import (
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// DismissAfter is how long a dashboard keeps a notification on screen.
const DismissAfter = 5 * time.Second

// Notification is a transient message shown to every connected operator.
type Notification struct {
	ID             string `json:"id"`
	Type           Level  `json:"type"`
	Message        string `json:"message"`
	DismissAfterMs int64  `json:"dismissAfterMs"`
}

func New(level Level, message string) Notification {
	return Notification{
		ID:             uuid.NewString(),
		Type:           level,
		Message:        message,
		DismissAfterMs: DismissAfter.Milliseconds(),
	}
}

// Entities named in entity_updated events.
const (
	EntityCompany     = "company"
	EntityJob         = "job"
	EntityApplication = "application"
)

const (
	MsgCompanyVerified         = "Company verified successfully!"
	MsgCompanyVerifyFailed     = "Failed to verify company"
	MsgCompanyRejected         = "Company verification rejected"
	MsgCompanyRejectFailed     = "Failed to reject company"
	MsgJobStatusUpdated        = "Job status updated successfully!"
	MsgJobStatusFailed         = "Failed to update job status"
	MsgApplicationUpdated      = "Application status updated successfully!"
	MsgApplicationUpdateFailed = "Failed to update application status"
)
