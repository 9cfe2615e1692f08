package model

// ValidationError carries a user-facing message for malformed input.
// Handlers map it to a 400 response without rewording the message, so the
// client can display it inline.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError with the given message.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}
