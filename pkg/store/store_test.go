package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/formforge/formforge/pkg/model"
)

func testForm() model.Form {
	return model.Form{
		Title:     "Feedback",
		Accepting: true,
		Fields: []model.Field{
			{ID: "f1", Label: "Name", Type: model.FieldTypeText, Required: true},
			{ID: "f2", Label: "Topics", Type: model.FieldTypeCheckbox, Options: []string{"Go", "SQL"}},
		},
	}
}

func runStoreContract(t *testing.T, schemas SchemaStore, responses ResponseStore) {
	t.Helper()
	ctx := context.Background()

	if _, err := schemas.Fetch(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("fetch missing: want ErrNotFound, got %v", err)
	}

	created, err := schemas.Create(ctx, testForm())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create must assign an id")
	}

	fetched, err := schemas.Fetch(ctx, created.ID)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if diff := cmp.Diff(created, fetched); diff != "" {
		t.Fatalf("fetch mismatch (-created +fetched):\n%s", diff)
	}

	fetched.Title = "Feedback v2"
	if err := schemas.Update(ctx, created.ID, fetched); err != nil {
		t.Fatalf("update: %v", err)
	}

	toggled, err := schemas.SetAccepting(ctx, created.ID, false)
	if err != nil {
		t.Fatalf("set accepting: %v", err)
	}
	if toggled.Accepting {
		t.Fatal("accepting flag not cleared")
	}
	if toggled.Title != "Feedback v2" {
		t.Fatalf("toggle lost update: %q", toggled.Title)
	}

	resp, err := responses.Submit(ctx, created.ID, Submission{
		Answers: map[string]any{"Name": "Ann", "Topics": []string{"Go"}},
		Files:   []FilePart{{Label: "CV", Name: "cv.pdf", Data: []byte("%PDF")}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.ResponseID == "" || resp.SubmittedAt.IsZero() {
		t.Fatalf("response not stamped: %+v", resp)
	}
	if resp.Answers["CV"] != "cv.pdf" {
		t.Fatalf("file part must surface as its filename, got %v", resp.Answers["CV"])
	}

	list, err := responses.Responses(ctx, created.ID)
	if err != nil {
		t.Fatalf("responses: %v", err)
	}
	if len(list) != 1 || list[0].ResponseID != resp.ResponseID {
		t.Fatalf("unexpected responses: %+v", list)
	}

	forms, err := schemas.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(forms) != 1 {
		t.Fatalf("expected 1 form, got %d", len(forms))
	}

	if err := schemas.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := schemas.Fetch(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("fetch after delete: want ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_Contract(t *testing.T) {
	mem := NewMemory()
	runStoreContract(t, mem, mem)
}

func TestSQLiteStore_Contract(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	runStoreContract(t, db, db)
}

func TestMemoryStore_CloneBoundary(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	form := testForm()
	created, err := mem.Create(ctx, form)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Mutating the caller's copy must not reach the store.
	form.Fields[0].Label = "Mutated"
	got, err := mem.Fetch(ctx, created.ID)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got.Fields[0].Label != "Name" {
		t.Fatalf("store shares state with caller: %q", got.Fields[0].Label)
	}
}
