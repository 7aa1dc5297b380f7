package model

import (
	"time"

	"github.com/google/uuid"
)

// FieldType is the enum of question kinds a form can carry.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeMCQ      FieldType = "mcq"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeSlider   FieldType = "slider"
	FieldTypeFile     FieldType = "file"
)

// Field models one question inside a form. ID is assigned once at creation
// and stays stable across reorders and type changes; it is the only handle
// reorder and migration logic may rely on. Label is display text and is NOT
// a stable identifier. Options apply to choice types, Min/Max to sliders;
// attributes left behind by an earlier type are kept, never cleared.
type Field struct {
	ID       string    `json:"id" yaml:"id"`
	Label    string    `json:"label" yaml:"label"`
	Type     FieldType `json:"type" yaml:"type"`
	Required bool      `json:"required" yaml:"required"`
	Options  []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Min      *float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max      *float64  `json:"max,omitempty" yaml:"max,omitempty"`
}

// Form is the schema renderers and collectors consume. Field order is the
// sole source of display and collection order; there is no separate sort key.
type Form struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields"`
	// Accepting gates the public fill-out page; a closed form renders a
	// terminal explanation instead of inputs.
	Accepting bool `json:"accepting" yaml:"accepting"`
	// AuthRequired forces a valid credential at submit time.
	AuthRequired bool `json:"authReq" yaml:"authReq"`
	// Published marks the one-way transition after which the schema is
	// externally read-only.
	Published bool `json:"published" yaml:"published"`
}

// Response is one persisted submission against a form. It is created once by
// the response store and immutable afterwards. Answers are keyed by field
// label; value shapes depend on the field type (string, []string, float64,
// or a filename for file uploads).
type Response struct {
	ResponseID  string         `json:"responseId" yaml:"responseId"`
	SubmittedAt time.Time      `json:"submittedAt" yaml:"submittedAt"`
	Answers     map[string]any `json:"answers" yaml:"answers"`
}

// NewField returns a blank text field with a freshly generated id.
func NewField() Field {
	return Field{
		ID:   uuid.NewString(),
		Type: FieldTypeText,
	}
}

// NewForm returns an empty untitled form with a fresh id.
func NewForm() Form {
	return Form{
		ID:    uuid.NewString(),
		Title: "Untitled Form",
	}
}

// Number returns a pointer to v, for populating Min/Max literals.
func Number(v float64) *float64 {
	return &v
}

// FieldByID returns the field with the given id and whether it exists.
func (f Form) FieldByID(id string) (Field, bool) {
	for _, field := range f.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return Field{}, false
}

// FieldIDs returns the ids of all fields in display order.
func (f Form) FieldIDs() []string {
	ids := make([]string, len(f.Fields))
	for i, field := range f.Fields {
		ids[i] = field.ID
	}
	return ids
}
