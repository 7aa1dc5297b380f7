// Package store declares the persistence collaborators the builder and
// collector depend on, plus reference implementations (in-memory and SQLite).
// The schema engine itself owns no wire format; everything here is contract.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/formforge/formforge/pkg/model"
)

// ErrNotFound reports that a requested form or response does not exist.
var ErrNotFound = errors.New("store: not found")

// TransportError wraps a failure to reach the backing store. Callers treat it
// as retryable; it never carries a validation meaning.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// FilePart is one uploaded attachment travelling alongside the answer object.
type FilePart struct {
	// Label of the field the upload answers.
	Label string
	// Name is the original filename; it is also the value recorded in the
	// answer object for the field.
	Name string
	Data []byte
}

// Submission is the transmission payload for one fill-out session: every
// non-file answer serialized into a single label-keyed object, plus each file
// as a separate binary part.
type Submission struct {
	Answers map[string]any
	Files   []FilePart
}

// SchemaStore persists form definitions.
type SchemaStore interface {
	// Fetch returns the form or ErrNotFound.
	Fetch(ctx context.Context, formID string) (model.Form, error)
	// Create persists a new form and returns it with its assigned id.
	Create(ctx context.Context, form model.Form) (model.Form, error)
	// Update replaces the stored definition with the given snapshot.
	Update(ctx context.Context, formID string, form model.Form) error
	// SetAccepting toggles whether the form accepts responses and returns
	// the updated form.
	SetAccepting(ctx context.Context, formID string, accepting bool) (model.Form, error)
	// List returns every stored form.
	List(ctx context.Context) ([]model.Form, error)
	// Delete removes a form and its responses.
	Delete(ctx context.Context, formID string) error
}

// ResponseStore persists submissions. Responses are immutable once created.
type ResponseStore interface {
	Submit(ctx context.Context, formID string, sub Submission) (model.Response, error)
	Responses(ctx context.Context, formID string) ([]model.Response, error)
}

// CredentialChecker reports whether the current session holds a valid
// credential. The engine never inspects the credential itself.
type CredentialChecker interface {
	Valid(ctx context.Context) bool
}

// Generator produces a candidate form from a free-text prompt. Candidates are
// opaque; adopters must discard any field ids the generator supplied.
type Generator interface {
	Generate(ctx context.Context, prompt string) (model.Form, error)
}
