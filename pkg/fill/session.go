// Package fill runs one fill-out session: it consumes a fetched schema,
// accumulates an answer map with type-dependent value shapes, enforces
// required-field constraints, and packages the submission payload. A Session
// moves through a small state machine; inputs are only accepted while the
// session is ready or filling.
package fill

import (
	"context"
	"errors"

	"github.com/formforge/formforge/pkg/fieldtypes"
	"github.com/formforge/formforge/pkg/model"
	"github.com/formforge/formforge/pkg/store"
)

// State names one node of the session state machine.
type State string

const (
	StateLoading          State = "loading"
	StateReady            State = "ready"
	StateNotFound         State = "not_found"
	StateLoadError        State = "load_error"
	StateClosed           State = "closed"
	StateAlreadySubmitted State = "already_submitted"
	StateFilling          State = "filling"
	StateSubmitting       State = "submitting"
	StateSubmitted        State = "submitted"
)

// Attachment is a file answer: the binary blob plus its original filename.
type Attachment struct {
	Name string
	Data []byte
}

// Option configures a Session before the schema fetch.
type Option func(*Session)

// WithGuard installs the client-local one-submission marker.
func WithGuard(g SubmitGuard) Option {
	return func(s *Session) {
		if g != nil {
			s.guard = g
		}
	}
}

// WithDrafts installs the draft slot used when a submit is blocked on
// authentication.
func WithDrafts(d DraftStore) Option {
	return func(s *Session) {
		if d != nil {
			s.drafts = d
		}
	}
}

// WithCredentials installs the credential checker consulted at submit time
// for forms that require authentication.
func WithCredentials(c store.CredentialChecker) Option {
	return func(s *Session) {
		s.cred = c
	}
}

// Session owns the ephemeral answer map for the duration of one fill-out.
// It is single-owner; nothing here is shared across concurrent operators.
type Session struct {
	formID  string
	form    model.Form
	state   State
	loadErr error

	answers map[string]any
	other   map[string]string

	guard  SubmitGuard
	drafts DraftStore
	cred   store.CredentialChecker
}

// Begin fetches the schema and resolves the initial state: ready when the
// form exists and accepts responses, otherwise one of the terminal states.
// Begin never fails; the outcome is encoded in the session state.
func Begin(ctx context.Context, formID string, schemas store.SchemaStore, options ...Option) *Session {
	s := &Session{
		formID:  formID,
		state:   StateLoading,
		answers: make(map[string]any),
		other:   make(map[string]string),
		guard:   NewMemoryGuard(),
		drafts:  NewMemoryDrafts(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	form, err := schemas.Fetch(ctx, formID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.state = StateNotFound
	case err != nil:
		s.state = StateLoadError
		s.loadErr = err
	case !form.Accepting:
		s.form = form
		s.state = StateClosed
	case s.guard.Submitted(formID):
		s.form = form
		s.state = StateAlreadySubmitted
	default:
		s.form = form
		s.state = StateReady
	}
	return s
}

// State reports the current state machine node.
func (s *Session) State() State {
	return s.state
}

// Form returns a copy of the fetched schema (zero value before a successful
// load).
func (s *Session) Form() model.Form {
	return s.form.Clone()
}

// LoadErr returns the transport failure behind a load_error state.
func (s *Session) LoadErr() error {
	return s.loadErr
}

// Answers returns a copy of the current answer map. Together with State it
// forms the observable pair the surrounding surface renders from.
func (s *Session) Answers() map[string]any {
	out := make(map[string]any, len(s.answers))
	for k, v := range s.answers {
		if list, ok := v.([]string); ok {
			out[k] = append([]string(nil), list...)
			continue
		}
		out[k] = v
	}
	return out
}

// answerKey maps a field to its slot in the answer map. Answers are keyed by
// label, not id, for compatibility with stored responses and the export join:
// two fields sharing a label collide and the last write wins. Keeping the
// strategy behind this one function makes an id-keyed scheme a one-line
// change. See DESIGN.md for the documented limitation.
func answerKey(field model.Field) string {
	return field.Label
}

// fillable flips ready into filling on the first interaction and reports
// whether inputs are currently accepted.
func (s *Session) fillable(op string) error {
	switch s.state {
	case StateReady:
		s.state = StateFilling
		return nil
	case StateFilling:
		return nil
	default:
		return &stateError{op: op, state: s.state}
	}
}

// SetText records a scalar string answer for text-like fields (text,
// textarea, email, number, date) and for unknown types riding the text
// fallback path.
func (s *Session) SetText(field model.Field, value string) error {
	if err := s.fillable("set text"); err != nil {
		return err
	}
	s.answers[answerKey(field)] = value
	return nil
}

// Select records a single-choice answer (mcq, dropdown) and drops any
// "Other" linkage for the field.
func (s *Session) Select(field model.Field, option string) error {
	if err := s.fillable("select"); err != nil {
		return err
	}
	s.answers[answerKey(field)] = option
	return nil
}

// SelectOther switches a single-choice field onto its "Other" free-text
// affordance: the stored answer becomes whatever was most recently typed in
// the paired box, or the empty string when nothing was.
func (s *Session) SelectOther(field model.Field) error {
	if err := s.fillable("select other"); err != nil {
		return err
	}
	key := answerKey(field)
	s.answers[key] = s.other[key]
	return nil
}

// SetOtherText updates the free-text paired with the "Other" option. The
// stored answer follows the typed text live.
func (s *Session) SetOtherText(field model.Field, text string) error {
	if err := s.fillable("set other text"); err != nil {
		return err
	}
	key := answerKey(field)
	s.other[key] = text
	s.answers[key] = text
	return nil
}

// Toggle records or removes one option of a multi-choice (checkbox) answer.
// The stored value is the ordered list of currently checked options.
func (s *Session) Toggle(field model.Field, option string, checked bool) error {
	if err := s.fillable("toggle"); err != nil {
		return err
	}
	key := answerKey(field)
	prev, _ := s.answers[key].([]string)
	if checked {
		s.answers[key] = append(append([]string(nil), prev...), option)
		return nil
	}
	kept := make([]string, 0, len(prev))
	for _, item := range prev {
		if item != option {
			kept = append(kept, item)
		}
	}
	s.answers[key] = kept
	return nil
}

// SetNumber records a slider answer.
func (s *Session) SetNumber(field model.Field, value float64) error {
	if err := s.fillable("set number"); err != nil {
		return err
	}
	s.answers[answerKey(field)] = value
	return nil
}

// Attach records a file answer.
func (s *Session) Attach(field model.Field, name string, data []byte) error {
	if err := s.fillable("attach"); err != nil {
		return err
	}
	s.answers[answerKey(field)] = Attachment{Name: name, Data: data}
	return nil
}

// Validate checks that every required field carries a usable answer. It
// returns nil when the session may proceed to packaging.
func (s *Session) Validate() *ValidationError {
	var missing []string
	for _, field := range s.form.Fields {
		if !field.Required {
			continue
		}
		if !answered(s.answers[answerKey(field)], field) {
			missing = append(missing, field.Label)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Missing: missing}
}

func answered(value any, field model.Field) bool {
	if value == nil {
		return false
	}
	switch fieldtypes.Lookup(field.Type).Shape {
	case fieldtypes.ShapeList:
		list, ok := value.([]string)
		return ok && len(list) > 0
	case fieldtypes.ShapeNumber:
		_, ok := value.(float64)
		return ok
	case fieldtypes.ShapeBlob:
		att, ok := value.(Attachment)
		return ok && att.Name != ""
	default:
		str, ok := value.(string)
		return ok && str != ""
	}
}
