package models

// ValidationError is a local, pre-network validation failure. It is raised
// before any remote call is made.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}
