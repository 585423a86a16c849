package studio

import "fmt"

// ValidationError rejects malformed requests before any provider call is
// made. The HTTP layer maps it to a 400; nothing downstream ever sees the
// request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
