// Package openapi derives form definitions from OpenAPI 3 documents. Each
// operation with an object request body maps to one form: properties become
// fields, string formats and enums pick the field type, and the schema's
// required list drives the required flag.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/formforge/formforge/pkg/fieldtypes"
	"github.com/formforge/formforge/pkg/model"
)

// ErrNoOperations is returned when a document defines no importable
// operation.
var ErrNoOperations = errors.New("openapi: no operations with a request body")

// Importer parses OpenAPI documents and converts operations to forms.
type Importer struct {
	loader *openapi3.Loader
}

// NewImporter builds an importer. External refs stay disabled so imports are
// self-contained.
func NewImporter(ctx context.Context) *Importer {
	return &Importer{loader: &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: false}}
}

// Forms parses the raw document and returns one form per operation that
// carries an object request body, ordered by path then method.
func (im *Importer) Forms(ctx context.Context, raw []byte) ([]model.Form, error) {
	doc, err := im.loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	var forms []model.Form
	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for path := range paths {
		keys = append(keys, path)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			body := requestSchema(op)
			if body == nil {
				continue
			}
			forms = append(forms, operationForm(doc, path, method, op, body))
		}
	}
	if len(forms) == 0 {
		return nil, ErrNoOperations
	}
	return forms, nil
}

// requestSchema digs out the object schema of the operation's request body,
// preferring JSON content.
func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mime := range []string{"application/json", "multipart/form-data", "application/x-www-form-urlencoded"} {
		if media, ok := content[mime]; ok && media.Schema != nil && media.Schema.Value != nil {
			return media.Schema.Value
		}
	}
	for _, media := range content {
		if media.Schema != nil && media.Schema.Value != nil {
			return media.Schema.Value
		}
	}
	return nil
}

func operationForm(doc *openapi3.T, path, method string, op *openapi3.Operation, body *openapi3.Schema) model.Form {
	form := model.NewForm()
	form.Title = op.Summary
	if form.Title == "" {
		form.Title = fmt.Sprintf("%s %s", method, path)
	}
	form.Description = op.Description
	if form.Description == "" && doc.Info != nil {
		form.Description = doc.Info.Description
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field := propertyField(name, ref.Value)
		field.Required = required[name]
		form.Fields = append(form.Fields, field)
	}
	return form
}

// propertyField maps one schema property to a field. Enums become choice
// fields, bounded numerics become sliders, and string formats pick the
// matching input type.
func propertyField(name string, prop *openapi3.Schema) model.Field {
	field := model.NewField()
	field.Label = label(name, prop)

	switch {
	case len(prop.Enum) > 0:
		field.Type = model.FieldTypeDropdown
		field.Options = enumOptions(prop.Enum)

	case typeIs(prop, openapi3.TypeArray):
		field.Type = model.FieldTypeCheckbox
		if prop.Items != nil && prop.Items.Value != nil {
			field.Options = enumOptions(prop.Items.Value.Enum)
		}
		// Choice fields always carry options; an item schema without an
		// enum gets the editor's placeholders.
		if len(field.Options) == 0 {
			field.Options = fieldtypes.DefaultOptions()
		}

	case typeIs(prop, openapi3.TypeNumber), typeIs(prop, openapi3.TypeInteger):
		if prop.Min != nil && prop.Max != nil {
			field.Type = model.FieldTypeSlider
			field.Min = model.Number(*prop.Min)
			field.Max = model.Number(*prop.Max)
		} else {
			field.Type = model.FieldTypeNumber
		}

	case typeIs(prop, openapi3.TypeString):
		field.Type = stringFieldType(prop)

	default:
		field.Type = model.FieldTypeText
	}
	return field
}

func stringFieldType(prop *openapi3.Schema) model.FieldType {
	switch prop.Format {
	case "email":
		return model.FieldTypeEmail
	case "date", "date-time":
		return model.FieldTypeDate
	case "binary", "byte":
		return model.FieldTypeFile
	}
	// Long free text gets a paragraph input.
	if prop.MaxLength != nil && *prop.MaxLength > 255 {
		return model.FieldTypeTextarea
	}
	return model.FieldTypeText
}

func typeIs(prop *openapi3.Schema, want string) bool {
	if prop.Type == nil {
		return false
	}
	for _, t := range prop.Type.Slice() {
		if t == want {
			return true
		}
	}
	return false
}

func enumOptions(enum []any) []string {
	out := make([]string, 0, len(enum))
	for _, v := range enum {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

// label turns a property name into a human label unless the schema supplies
// a title.
func label(name string, prop *openapi3.Schema) string {
	if prop.Title != "" {
		return prop.Title
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	words := strings.Fields(name)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
