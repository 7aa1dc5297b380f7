package fill

import (
	"context"
	"fmt"

	"github.com/formforge/formforge/pkg/store"
)

// Submit validates, packages and delivers the answers. On validation failure
// the session stays filling and the returned error lists the missing labels.
// When the form requires authentication and no valid credentials are present,
// the answers are parked as a draft and an AuthRequiredError is returned; the
// draft is never restored automatically. A transport failure puts the session
// back into filling with the answers intact so the operator can retry.
func (s *Session) Submit(ctx context.Context, responses store.ResponseStore) error {
	switch s.state {
	case StateReady, StateFilling:
	default:
		return &stateError{op: "submit", state: s.state}
	}

	if verr := s.Validate(); verr != nil {
		s.state = StateFilling
		return verr
	}

	if s.form.AuthRequired && (s.cred == nil || !s.cred.Valid(ctx)) {
		s.drafts.SaveDraft(s.formID, s.Answers())
		return &AuthRequiredError{FormID: s.formID}
	}

	s.state = StateSubmitting
	if _, err := responses.Submit(ctx, s.formID, s.Payload()); err != nil {
		s.state = StateFilling
		return fmt.Errorf("submit response: %w", err)
	}

	s.state = StateSubmitted
	s.guard.MarkSubmitted(s.formID)
	s.drafts.ClearDraft(s.formID)
	return nil
}
