package entity

import "time"

// Kinds of recorded audit entries.
const (
	KindOtpIssued     = "otp_issued"
	KindOtpConsumed   = "otp_consumed"
	KindSweepComplete = "otp_sweep_completed"
)

// Entry is one immutable audit record derived from a published event.
type Entry struct {
	ID          int64
	Kind        string
	UserID      int64
	CodeID      string
	OperationID string
	Detail      []byte // raw event payload as JSON
	OccurredAt  time.Time
}
