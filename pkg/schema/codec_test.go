package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/formforge/formforge/pkg/model"
)

func sampleForm() model.Form {
	return model.Form{
		ID:          "form-1",
		Title:       "Signup",
		Description: "Tell us about you",
		Accepting:   true,
		Fields: []model.Field{
			{ID: "f1", Label: "Name", Type: model.FieldTypeText, Required: true},
			{ID: "f2", Label: "Size", Type: model.FieldTypeDropdown, Options: []string{"S", "M"}},
			{ID: "f3", Label: "Rating", Type: model.FieldTypeSlider, Min: model.Number(0), Max: model.Number(10)},
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	raw, err := EncodeJSON(sampleForm())
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	got, err := DecodeJSON(raw)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if diff := cmp.Diff(sampleForm(), got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	raw, err := EncodeYAML(sampleForm())
	if err != nil {
		t.Fatalf("EncodeYAML: %v", err)
	}
	got, err := DecodeYAML(raw)
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	if diff := cmp.Diff(sampleForm(), got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFilePicksCodecByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonRaw, err := EncodeJSON(sampleForm())
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	jsonPath := filepath.Join(dir, "form.json")
	if err := os.WriteFile(jsonPath, jsonRaw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	yamlRaw, err := EncodeYAML(sampleForm())
	if err != nil {
		t.Fatalf("EncodeYAML: %v", err)
	}
	yamlPath := filepath.Join(dir, "form.yaml")
	if err := os.WriteFile(yamlPath, yamlRaw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, path := range []string{jsonPath, yamlPath} {
		got, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s): %v", path, err)
		}
		if diff := cmp.Diff(sampleForm(), got); diff != "" {
			t.Fatalf("LoadFile(%s) mismatch (-want +got):\n%s", path, diff)
		}
	}
}

func TestParseCandidateExtractsDocument(t *testing.T) {
	text := "Sure! Here is the form you asked for:\n```json\n" +
		`{"title":"Quiz","fields":[{"label":"Q1","type":"text"},{"label":"Pick","type":"mcq","options":["A","B"]}]}` +
		"\n```\nLet me know if you want changes."

	form, err := ParseCandidate(text)
	if err != nil {
		t.Fatalf("ParseCandidate: %v", err)
	}
	if form.Title != "Quiz" || len(form.Fields) != 2 {
		t.Fatalf("unexpected form: %+v", form)
	}
	if form.ID == "" {
		t.Fatal("form id not assigned")
	}
	seen := map[string]bool{}
	for _, field := range form.Fields {
		if field.ID == "" {
			t.Fatalf("field %q has no id", field.Label)
		}
		if seen[field.ID] {
			t.Fatalf("duplicate field id %s", field.ID)
		}
		seen[field.ID] = true
	}
}

func TestParseCandidateNoDocument(t *testing.T) {
	_, err := ParseCandidate("no json here")
	if !errors.Is(err, ErrNoDocument) {
		t.Fatalf("err = %v, want ErrNoDocument", err)
	}
}

func TestParseCandidateMalformed(t *testing.T) {
	if _, err := ParseCandidate("{not valid json}"); err == nil {
		t.Fatal("want decode error, got nil")
	}
}
