package fill

import "sync"

// SubmitGuard is the client-local one-submission-per-form marker. It is
// advisory UX only: it lives with the session surface, not the server, and
// must never be treated as a uniqueness or security boundary.
type SubmitGuard interface {
	Submitted(formID string) bool
	MarkSubmitted(formID string)
}

// DraftStore parks an answer map when a submit is interrupted (today: by a
// missing credential). Drafts are session-scoped and never restored
// automatically; the surrounding application decides if and when to reload
// one.
type DraftStore interface {
	SaveDraft(formID string, answers map[string]any)
	Draft(formID string) (map[string]any, bool)
	ClearDraft(formID string)
}

// MemoryGuard is an in-process SubmitGuard.
type MemoryGuard struct {
	mu   sync.Mutex
	seen map[string]bool
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{seen: make(map[string]bool)}
}

func (g *MemoryGuard) Submitted(formID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seen[formID]
}

func (g *MemoryGuard) MarkSubmitted(formID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seen[formID] = true
}

// MemoryDrafts is an in-process DraftStore.
type MemoryDrafts struct {
	mu     sync.Mutex
	drafts map[string]map[string]any
}

func NewMemoryDrafts() *MemoryDrafts {
	return &MemoryDrafts{drafts: make(map[string]map[string]any)}
}

func (d *MemoryDrafts) SaveDraft(formID string, answers map[string]any) {
	copied := make(map[string]any, len(answers))
	for k, v := range answers {
		copied[k] = v
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drafts[formID] = copied
}

func (d *MemoryDrafts) Draft(formID string) (map[string]any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	draft, ok := d.drafts[formID]
	if !ok {
		return nil, false
	}
	copied := make(map[string]any, len(draft))
	for k, v := range draft {
		copied[k] = v
	}
	return copied, true
}

func (d *MemoryDrafts) ClearDraft(formID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.drafts, formID)
}
