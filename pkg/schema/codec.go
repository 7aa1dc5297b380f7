// Package schema reads and writes form definitions. It covers the stored
// JSON and YAML document shapes plus the lenient candidate parser used on
// machine-produced text, which may wrap the definition in prose.
package schema

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/formforge/formforge/pkg/model"
)

// ErrNoDocument is returned when candidate text holds no JSON object at all.
var ErrNoDocument = errors.New("schema: no form document found")

// EncodeJSON serializes a form as indented JSON.
func EncodeJSON(form model.Form) ([]byte, error) {
	raw, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}
	return raw, nil
}

// DecodeJSON parses a stored JSON form document.
func DecodeJSON(raw []byte) (model.Form, error) {
	var form model.Form
	if err := json.Unmarshal(raw, &form); err != nil {
		return model.Form{}, fmt.Errorf("decode form: %w", err)
	}
	return form, nil
}

// EncodeYAML serializes a form as YAML.
func EncodeYAML(form model.Form) ([]byte, error) {
	raw, err := yaml.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}
	return raw, nil
}

// DecodeYAML parses a YAML form document.
func DecodeYAML(raw []byte) (model.Form, error) {
	var form model.Form
	if err := yaml.Unmarshal(raw, &form); err != nil {
		return model.Form{}, fmt.Errorf("decode form: %w", err)
	}
	return form, nil
}

// ParseCandidate extracts and decodes a form definition from free-form text.
// Generated text often surrounds the document with prose or code fences, so
// the parser takes the span from the first '{' to the last '}' and decodes
// that. Field ids in the candidate are discarded: every field gets a fresh id
// so an imported definition can never collide with existing ones.
func ParseCandidate(text string) (model.Form, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return model.Form{}, ErrNoDocument
	}
	form, err := DecodeJSON([]byte(text[start : end+1]))
	if err != nil {
		return model.Form{}, fmt.Errorf("parse candidate: %w", err)
	}
	AssignIDs(&form)
	return form, nil
}

// AssignIDs gives the form and every field a fresh identity, discarding any
// ids already present.
func AssignIDs(form *model.Form) {
	fresh := model.NewForm()
	form.ID = fresh.ID
	for i := range form.Fields {
		field := model.NewField()
		form.Fields[i].ID = field.ID
		if form.Fields[i].Type == "" {
			form.Fields[i].Type = model.FieldTypeText
		}
	}
}
