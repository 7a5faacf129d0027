package validator

// Validator validates request and domain structs against their tags.
type Validator interface {
	// Validate checks data and returns a descriptive error when any field
	// fails its constraints.
	Validate(data any) error
}
