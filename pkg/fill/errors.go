package fill

import (
	"fmt"
	"strings"
)

// ValidationError reports required fields with no usable answer. It is
// raised before packaging; a validation failure never reaches the transport
// layer.
type ValidationError struct {
	// Missing holds the labels of unanswered required fields, in schema
	// order.
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("fill: required fields unanswered: %s", strings.Join(e.Missing, ", "))
}

// AuthRequiredError reports that the form demands a credential the session
// does not hold. The answer map has already been parked in the draft slot
// when this is returned; restoring it after login is the caller's concern.
type AuthRequiredError struct {
	FormID string
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("fill: form %s requires authentication to submit", e.FormID)
}

// stateError reports an operation attempted outside the state that allows it.
type stateError struct {
	op    string
	state State
}

func (e *stateError) Error() string {
	return fmt.Sprintf("fill: cannot %s while session is %s", e.op, e.state)
}
