package entity

import "time"

type User struct {
	ID        int64
	Email     string
	FullName  string
	Role      string
	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// UserCredentialInfo carries the fields needed to check a login attempt.
type UserCredentialInfo struct {
	ID       int64
	Email    string
	Role     string
	Status   UserStatus
	Password string // hashed
}

type UserListFilter struct {
	IsFilterBySearch bool
	Search           string
	Limit            int32
	Offset           int32
}
