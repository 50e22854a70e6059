package entity

import "errors"

// ErrInvalidInput matches every ValidationError through errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError names the rejected field. Message is written for the API
// client and must not contain internal details.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// AsValidationError returns the ValidationError in err's chain, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
