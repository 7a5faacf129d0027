package entity

type UserStatus int16

const (
	// UserStatusUnknown means the status is not known / not set.
	UserStatusUnknown UserStatus = 0

	// UserStatusActive means the user is allowed to request and validate codes.
	UserStatusActive UserStatus = 1

	// UserStatusInactive means the account was deactivated or deleted.
	UserStatusInactive UserStatus = 2
)

func (us UserStatus) String() string {
	switch us {
	case UserStatusActive:
		return "Active"
	case UserStatusInactive:
		return "Inactive"
	default:
		return "Unknown"
	}
}
