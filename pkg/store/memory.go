package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/formforge/formforge/pkg/model"
)

// Memory is an in-process SchemaStore and ResponseStore. It backs tests and
// single-binary deployments; forms and responses are deep-copied on the way
// in and out so callers never share state with the store.
type Memory struct {
	mu        sync.RWMutex
	forms     map[string]model.Form
	order     []string
	responses map[string][]model.Response
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		forms:     make(map[string]model.Form),
		responses: make(map[string][]model.Response),
	}
}

var (
	_ SchemaStore   = (*Memory)(nil)
	_ ResponseStore = (*Memory)(nil)
)

func (m *Memory) Fetch(ctx context.Context, formID string) (model.Form, error) {
	if err := ctx.Err(); err != nil {
		return model.Form{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	form, ok := m.forms[formID]
	if !ok {
		return model.Form{}, ErrNotFound
	}
	return form.Clone(), nil
}

func (m *Memory) Create(ctx context.Context, form model.Form) (model.Form, error) {
	if err := ctx.Err(); err != nil {
		return model.Form{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := form.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if _, exists := m.forms[stored.ID]; !exists {
		m.order = append(m.order, stored.ID)
	}
	m.forms[stored.ID] = stored
	return stored.Clone(), nil
}

func (m *Memory) Update(ctx context.Context, formID string, form model.Form) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.forms[formID]; !ok {
		return ErrNotFound
	}
	stored := form.Clone()
	stored.ID = formID
	m.forms[formID] = stored
	return nil
}

func (m *Memory) SetAccepting(ctx context.Context, formID string, accepting bool) (model.Form, error) {
	if err := ctx.Err(); err != nil {
		return model.Form{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	form, ok := m.forms[formID]
	if !ok {
		return model.Form{}, ErrNotFound
	}
	form.Accepting = accepting
	m.forms[formID] = form
	return form.Clone(), nil
}

func (m *Memory) List(ctx context.Context) ([]model.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Form, 0, len(m.order))
	for _, id := range m.order {
		if form, ok := m.forms[id]; ok {
			out = append(out, form.Clone())
		}
	}
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, formID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.forms[formID]; !ok {
		return ErrNotFound
	}
	delete(m.forms, formID)
	delete(m.responses, formID)
	for i, id := range m.order {
		if id == formID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) Submit(ctx context.Context, formID string, sub Submission) (model.Response, error) {
	if err := ctx.Err(); err != nil {
		return model.Response{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.forms[formID]; !ok {
		return model.Response{}, ErrNotFound
	}

	answers := make(map[string]any, len(sub.Answers))
	for k, v := range sub.Answers {
		answers[k] = v
	}
	// File parts surface in the answer object as their filename only; the
	// blob itself stays with the response store.
	for _, part := range sub.Files {
		answers[part.Label] = part.Name
	}

	resp := model.Response{
		ResponseID:  uuid.NewString(),
		SubmittedAt: time.Now().UTC(),
		Answers:     answers,
	}
	m.responses[formID] = append(m.responses[formID], resp)
	return resp.Clone(), nil
}

func (m *Memory) Responses(ctx context.Context, formID string) ([]model.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.responses[formID]
	out := make([]model.Response, len(stored))
	for i, resp := range stored {
		out[i] = resp.Clone()
	}
	return out, nil
}
