// Package formforge re-exports the building blocks of the form engine so
// simple callers need a single import: schema model, editor, fill session,
// export, and stores.
package formforge

import (
	"context"
	"io"

	"github.com/formforge/formforge/pkg/builder"
	"github.com/formforge/formforge/pkg/export"
	"github.com/formforge/formforge/pkg/fill"
	"github.com/formforge/formforge/pkg/model"
	"github.com/formforge/formforge/pkg/openapi"
	"github.com/formforge/formforge/pkg/schema"
	"github.com/formforge/formforge/pkg/store"
)

// Form is the persisted shape of one form definition.
type Form = model.Form

// Field is one entry of a form's ordered field list.
type Field = model.Field

// Response is one stored submission.
type Response = model.Response

// FieldType tags the behavior of a field.
type FieldType = model.FieldType

// Patch is a partial field update applied through the editor.
type Patch = builder.Patch

// Builder is the editing session over one form.
type Builder = builder.Builder

// Session is the fill-out session over one fetched form.
type Session = fill.Session

// NewForm returns an empty untitled form with a fresh identity.
func NewForm() Form {
	return model.NewForm()
}

// NewBuilder opens an editing session on a new form.
func NewBuilder(opts ...builder.Option) *Builder {
	return builder.New(opts...)
}

// EditForm opens an editing session on an existing form.
func EditForm(form Form, opts ...builder.Option) *Builder {
	return builder.Load(form, opts...)
}

// BeginFill fetches a form and starts a fill-out session.
func BeginFill(ctx context.Context, formID string, schemas store.SchemaStore, opts ...fill.Option) *Session {
	return fill.Begin(ctx, formID, schemas, opts...)
}

// LoadForm reads a form definition from a JSON or YAML file.
func LoadForm(path string) (Form, error) {
	return schema.LoadFile(path)
}

// ImportOpenAPI derives form definitions from an OpenAPI 3 document.
func ImportOpenAPI(ctx context.Context, raw []byte) ([]Form, error) {
	return openapi.NewImporter(ctx).Forms(ctx, raw)
}

// GenerateForm asks a generator for a candidate definition and normalizes
// its identity so it can be adopted by a builder.
func GenerateForm(ctx context.Context, gen store.Generator, prompt string) (Form, error) {
	form, err := gen.Generate(ctx, prompt)
	if err != nil {
		return Form{}, err
	}
	schema.AssignIDs(&form)
	return form, nil
}

// ExportCSV writes a form's responses as CSV.
func ExportCSV(w io.Writer, form Form, responses []Response) error {
	return export.WriteCSV(w, form, responses)
}

// ExportXLSX writes a form's responses as an XLSX workbook.
func ExportXLSX(w io.Writer, form Form, responses []Response) error {
	return export.WriteXLSX(w, form, responses)
}

// NewMemoryStore returns an in-process schema and response store.
func NewMemoryStore() *store.Memory {
	return store.NewMemory()
}

// OpenStore opens the SQLite-backed schema and response store at path.
func OpenStore(path string) (*store.SQLite, error) {
	return store.OpenSQLite(path)
}
