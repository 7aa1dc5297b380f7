// Package builder owns the mutable form during an editing session. It
// exposes the field editor (create/update/remove with additive type
// migration), the reorder engine, and a debounced autosave loop that
// coalesces mutation bursts into a single outbound snapshot.
package builder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/formforge/formforge/pkg/model"
	"github.com/formforge/formforge/pkg/store"
)

// DefaultAutosaveDelay is the quiescence window after which the latest
// snapshot is persisted.
const DefaultAutosaveDelay = time.Second

// ErrPublished is returned by every mutation once the form has been
// published. Publishing is one-way; the backing store treats a published
// schema as read-only and this controller respects that by refusing further
// edits.
var ErrPublished = errors.New("builder: form is published and read-only")

// Option configures a Builder before use.
type Option func(*Builder)

// WithStore sets the schema store autosave and Save persist to. Without a
// store, edits stay in memory and Save is a no-op.
func WithStore(s store.SchemaStore) Option {
	return func(b *Builder) {
		b.store = s
	}
}

// WithAutosaveDelay overrides the debounce window.
func WithAutosaveDelay(d time.Duration) Option {
	return func(b *Builder) {
		if d > 0 {
			b.delay = d
		}
	}
}

// WithSaveErrorHandler registers a callback for failed debounced saves. The
// failure is non-fatal; the snapshot is retried on the next mutation, not on
// a timer.
func WithSaveErrorHandler(fn func(error)) Option {
	return func(b *Builder) {
		if fn != nil {
			b.reportErr = fn
		}
	}
}

// Builder is the editing controller for one form. All mutations update the
// in-memory form immediately and reschedule the autosave timer; only the most
// recent snapshot is ever sent. A Builder is owned by a single editing
// session and safe for use from its callbacks.
type Builder struct {
	mu        sync.Mutex
	form      model.Form
	store     store.SchemaStore
	delay     time.Duration
	timer     *time.Timer
	reportErr func(error)
}

// New starts a session on a fresh untitled form.
func New(options ...Option) *Builder {
	return Load(model.NewForm(), options...)
}

// Load starts a session on an existing form definition.
func Load(form model.Form, options ...Option) *Builder {
	b := &Builder{
		form:      form.Clone(),
		delay:     DefaultAutosaveDelay,
		reportErr: func(error) {},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Form returns a deep copy of the current schema for preview or fill-out
// surfaces.
func (b *Builder) Form() model.Form {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.form.Clone()
}

// Published reports whether the form has gone through the one-way publish
// transition.
func (b *Builder) Published() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.form.Published
}

// SetTitle updates the form title.
func (b *Builder) SetTitle(title string) error {
	return b.mutate(func() {
		b.form.Title = title
	})
}

// SetDescription updates the markdown description.
func (b *Builder) SetDescription(description string) error {
	return b.mutate(func() {
		b.form.Description = description
	})
}

// SetAuthRequired toggles whether submitters need a valid credential.
func (b *Builder) SetAuthRequired(required bool) error {
	return b.mutate(func() {
		b.form.AuthRequired = required
	})
}

// AddField appends a new blank text question and returns it.
func (b *Builder) AddField() (model.Field, error) {
	field := model.NewField()
	err := b.mutate(func() {
		b.form.Fields = append(b.form.Fields, field)
	})
	if err != nil {
		return model.Field{}, err
	}
	return field, nil
}

// UpdateField merges the patch into the field with the given id. An unknown
// id is silently ignored: the surface may race a remove against an in-flight
// edit, and dropping the stale edit is the intended outcome.
func (b *Builder) UpdateField(id string, patch Patch) error {
	return b.mutate(func() {
		for i := range b.form.Fields {
			if b.form.Fields[i].ID == id {
				applyPatch(&b.form.Fields[i], patch)
				return
			}
		}
	})
}

// RemoveField deletes the field with the given id. Removing an unknown id is
// a no-op.
func (b *Builder) RemoveField(id string) error {
	return b.mutate(func() {
		for i := range b.form.Fields {
			if b.form.Fields[i].ID == id {
				b.form.Fields = append(b.form.Fields[:i], b.form.Fields[i+1:]...)
				return
			}
		}
	})
}

// Reorder moves the field fromID to the position held by toID. Dropping a
// field onto itself is a no-op.
func (b *Builder) Reorder(fromID, toID string) error {
	if fromID == toID {
		return nil
	}
	return b.mutate(func() {
		ids := Move(b.form.FieldIDs(), fromID, toID)
		byID := make(map[string]model.Field, len(b.form.Fields))
		for _, field := range b.form.Fields {
			byID[field.ID] = field
		}
		ordered := make([]model.Field, len(ids))
		for i, id := range ids {
			ordered[i] = byID[id]
		}
		b.form.Fields = ordered
	})
}

// Adopt replaces the working schema with a generator-produced candidate.
// Every candidate field receives a fresh id regardless of what the generator
// supplied; the form keeps its own identity.
func (b *Builder) Adopt(candidate model.Form) error {
	return b.mutate(func() {
		b.form.Title = candidate.Title
		b.form.Description = candidate.Description
		b.form.Fields = make([]model.Field, len(candidate.Fields))
		for i, field := range candidate.Fields {
			adopted := field.Clone()
			adopted.ID = uuid.NewString()
			b.form.Fields[i] = adopted
		}
	})
}

// Save persists the current snapshot immediately, bypassing the debounce
// window and cancelling any pending autosave.
func (b *Builder) Save(ctx context.Context) error {
	b.mu.Lock()
	b.stopTimerLocked()
	snapshot := b.form.Clone()
	b.mu.Unlock()
	return b.persist(ctx, snapshot)
}

// Publish persists immediately and flips the one-way published flag. After a
// successful publish every further mutation fails with ErrPublished.
func (b *Builder) Publish(ctx context.Context) error {
	b.mu.Lock()
	if b.form.Published {
		b.mu.Unlock()
		return ErrPublished
	}
	b.stopTimerLocked()
	b.form.Published = true
	b.form.Accepting = true
	snapshot := b.form.Clone()
	b.mu.Unlock()

	if err := b.persist(ctx, snapshot); err != nil {
		b.mu.Lock()
		b.form.Published = false
		b.form.Accepting = false
		b.mu.Unlock()
		return err
	}
	return nil
}

// MarkPublished records that the collaborator reported the form as published
// without writing anything. Used when another surface performed the publish.
func (b *Builder) MarkPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.form.Published = true
}

// Close cancels any pending autosave. A snapshot still inside the debounce
// window is dropped; call Save first to keep it.
func (b *Builder) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopTimerLocked()
}

// mutate applies fn under the lock and reschedules the autosave timer.
func (b *Builder) mutate(fn func()) error {
	b.mu.Lock()
	if b.form.Published {
		b.mu.Unlock()
		return ErrPublished
	}
	fn()
	b.scheduleLocked()
	b.mu.Unlock()
	return nil
}

// scheduleLocked arms the debounce timer, cancelling any earlier schedule so
// bursts collapse into one save carrying the latest snapshot.
func (b *Builder) scheduleLocked() {
	if b.store == nil {
		return
	}
	b.stopTimerLocked()
	b.timer = time.AfterFunc(b.delay, b.autosave)
}

func (b *Builder) stopTimerLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Builder) autosave() {
	b.mu.Lock()
	b.timer = nil
	snapshot := b.form.Clone()
	b.mu.Unlock()

	if err := b.persist(context.Background(), snapshot); err != nil {
		// Non-fatal; the snapshot is retried on the next mutation.
		b.reportErr(err)
	}
}

func (b *Builder) persist(ctx context.Context, snapshot model.Form) error {
	if b.store == nil {
		return nil
	}
	err := b.store.Update(ctx, snapshot.ID, snapshot)
	if errors.Is(err, store.ErrNotFound) {
		_, err = b.store.Create(ctx, snapshot)
	}
	if err != nil {
		return fmt.Errorf("builder: persist form %s: %w", snapshot.ID, err)
	}
	return nil
}
