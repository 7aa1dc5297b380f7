// Package fieldtypes is the static registry of supported field types. It maps
// a type tag to the value shape its answers take, the attributes the editor
// must maintain, and the placeholder content seeded on type changes. Lookups
// never fail: unknown tags resolve to the plain text spec.
package fieldtypes

import "github.com/formforge/formforge/pkg/model"

// ValueShape describes the answer value a field type produces.
type ValueShape string

const (
	// ShapeScalar answers are a single string (text, email, date, single choice).
	ShapeScalar ValueShape = "scalar"
	// ShapeList answers are an ordered list of option strings.
	ShapeList ValueShape = "list"
	// ShapeNumber answers are a numeric value.
	ShapeNumber ValueShape = "number"
	// ShapeBlob answers are a binary attachment plus its filename.
	ShapeBlob ValueShape = "blob"
)

// Defaults seeded when a field switches into a type that needs them.
const (
	DefaultMin = 0.0
	DefaultMax = 100.0
)

// DefaultOptions returns the placeholder option list seeded when a choice
// field has no options yet.
func DefaultOptions() []string {
	return []string{"Option 1", "Option 2"}
}

// Spec captures the per-type contract shared by the editor, the collector,
// and the export projector.
type Spec struct {
	Type model.FieldType
	// Shape is the value shape answers of this type take.
	Shape ValueShape
	// NeedsOptions reports whether the editor must maintain an option list.
	NeedsOptions bool
	// NeedsRange reports whether the editor must maintain min/max bounds.
	NeedsRange bool
	// MultiChoice reports whether several options may be picked at once.
	MultiChoice bool
	// HasOther reports whether the fill surface pairs the options with an
	// "Other" free-text affordance.
	HasOther bool
	// InputHint is the HTML input type the preview renderer emits.
	InputHint string
	// Display is the human label shown in the type picker.
	Display string
}

var specs = map[model.FieldType]Spec{
	model.FieldTypeText:     {Type: model.FieldTypeText, Shape: ShapeScalar, InputHint: "text", Display: "Text"},
	model.FieldTypeTextarea: {Type: model.FieldTypeTextarea, Shape: ShapeScalar, InputHint: "textarea", Display: "Paragraph"},
	model.FieldTypeEmail:    {Type: model.FieldTypeEmail, Shape: ShapeScalar, InputHint: "email", Display: "Email"},
	model.FieldTypeNumber:   {Type: model.FieldTypeNumber, Shape: ShapeScalar, InputHint: "number", Display: "Number"},
	model.FieldTypeDate:     {Type: model.FieldTypeDate, Shape: ShapeScalar, InputHint: "date", Display: "Date"},
	model.FieldTypeMCQ:      {Type: model.FieldTypeMCQ, Shape: ShapeScalar, NeedsOptions: true, HasOther: true, InputHint: "radio", Display: "Multiple Choice (Radio)"},
	model.FieldTypeCheckbox: {Type: model.FieldTypeCheckbox, Shape: ShapeList, NeedsOptions: true, MultiChoice: true, InputHint: "checkbox", Display: "Checkboxes"},
	model.FieldTypeDropdown: {Type: model.FieldTypeDropdown, Shape: ShapeScalar, NeedsOptions: true, InputHint: "select", Display: "Dropdown"},
	model.FieldTypeSlider:   {Type: model.FieldTypeSlider, Shape: ShapeNumber, NeedsRange: true, InputHint: "range", Display: "Slider"},
	model.FieldTypeFile:     {Type: model.FieldTypeFile, Shape: ShapeBlob, InputHint: "file", Display: "File Upload"},
}

// order mirrors the type picker in the editor surface.
var order = []model.FieldType{
	model.FieldTypeText,
	model.FieldTypeTextarea,
	model.FieldTypeEmail,
	model.FieldTypeNumber,
	model.FieldTypeDate,
	model.FieldTypeMCQ,
	model.FieldTypeCheckbox,
	model.FieldTypeDropdown,
	model.FieldTypeSlider,
	model.FieldTypeFile,
}

// Lookup resolves the spec for a type tag. Unknown tags fall back to the
// text spec so stale or future schemas still render as plain inputs.
func Lookup(t model.FieldType) Spec {
	if spec, ok := specs[t]; ok {
		return spec
	}
	fallback := specs[model.FieldTypeText]
	fallback.Type = t
	return fallback
}

// Known reports whether the tag is a registered type.
func Known(t model.FieldType) bool {
	_, ok := specs[t]
	return ok
}

// All returns the registered specs in type-picker order.
func All() []Spec {
	out := make([]Spec, 0, len(order))
	for _, t := range order {
		out = append(out, specs[t])
	}
	return out
}
