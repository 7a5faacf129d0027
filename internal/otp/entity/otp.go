package entity

import "time"

// Code is a single one-time password issued to a user for one operation.
type Code struct {
	ID          string
	UserID      int64
	Value       string
	OperationID string
	Status      CodeStatus
	CreatedAt   time.Time
	ExpiresAt   time.Time
	UsedAt      *time.Time
}

// IsExpired reports whether the code's lifetime has passed at the given time.
func (c Code) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Config is the single runtime policy for issued codes.
//
// Exactly one row is authoritative. When several exist, the earliest
// created row wins.
type Config struct {
	ID         int64
	CodeLength int
	TTLSeconds int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TTL returns the code lifetime as a duration.
func (c Config) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// SweepResult summarizes one pass of the expiry sweeper.
type SweepResult struct {
	Scanned int
	Expired int
	Failed  int
}

// CodeListFilter narrows the administrative code listing.
type CodeListFilter struct {
	IsFilterByUser   bool
	IsFilterByStatus bool
	UserID           int64
	Status           CodeStatus
	Limit            int32
	Offset           int32
}
