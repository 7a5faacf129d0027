package entity

// Policy bounds for the runtime configuration.
const (
	MinCodeLength = 4
	MaxCodeLength = 8
	MinTTLSeconds = 30
	MaxTTLSeconds = 3600

	DefaultCodeLength = 6
	DefaultTTLSeconds = 300
)

type CodeStatus int16

const (
	// CodeStatusUnknown means the status is not known / not set.
	CodeStatusUnknown CodeStatus = 0

	// CodeStatusActive means the code can still be consumed.
	CodeStatusActive CodeStatus = 1

	// CodeStatusUsed means the code was consumed exactly once.
	CodeStatusUsed CodeStatus = 2

	// CodeStatusExpired means the code's lifetime passed without consumption.
	CodeStatusExpired CodeStatus = 3
)

func (cs CodeStatus) String() string {
	switch cs {
	case CodeStatusActive:
		return "Active"
	case CodeStatusUsed:
		return "Used"
	case CodeStatusExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

func CodeStatusFromString(s string) CodeStatus {
	switch s {
	case "active", "Active":
		return CodeStatusActive
	case "used", "Used":
		return CodeStatusUsed
	case "expired", "Expired":
		return CodeStatusExpired
	default:
		return CodeStatusUnknown
	}
}
