package preview

import (
	"embed"
	"fmt"
	"io"

	"github.com/flosch/pongo2/v6"

	"github.com/formforge/formforge/pkg/fieldtypes"
	"github.com/formforge/formforge/pkg/model"
)

//go:embed templates
var templateFS embed.FS

var templateSet = pongo2.NewSet("preview", pongo2.NewFSLoader(templateFS))

const pageTemplate = "templates/form.tpl"

// fieldView is the template-facing shape of one field.
type fieldView struct {
	Label    string
	Input    string
	Required bool
	Options  []string
	HasOther bool
	Multi    bool
	Min      float64
	Max      float64
}

// RenderPage writes the form as a standalone HTML page. A form that is not
// accepting responses renders a closed notice instead of the field list.
func RenderPage(w io.Writer, form model.Form) error {
	return render(w, form, false)
}

// RenderSubmittedPage writes the thank-you page shown after a successful
// submission.
func RenderSubmittedPage(w io.Writer, form model.Form) error {
	return render(w, form, true)
}

func render(w io.Writer, form model.Form, submitted bool) error {
	tmpl, err := templateSet.FromFile(pageTemplate)
	if err != nil {
		return fmt.Errorf("load page template: %w", err)
	}

	description, err := DescriptionHTML(form.Description)
	if err != nil {
		return err
	}

	views := make([]fieldView, 0, len(form.Fields))
	for _, field := range form.Fields {
		views = append(views, viewOf(field))
	}

	ctx := pongo2.Context{
		"title":       PlainText(form.Title),
		"description": description,
		"closed":      !form.Accepting,
		"submitted":   submitted,
		"fields":      views,
	}
	if err := tmpl.ExecuteWriter(ctx, w); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func viewOf(field model.Field) fieldView {
	spec := fieldtypes.Lookup(field.Type)
	view := fieldView{
		Label:    PlainText(field.Label),
		Input:    spec.InputHint,
		Required: field.Required,
		HasOther: spec.HasOther,
		Multi:    spec.MultiChoice,
	}
	if spec.NeedsOptions {
		for _, option := range field.Options {
			view.Options = append(view.Options, PlainText(option))
		}
	}
	if spec.NeedsRange {
		view.Min, view.Max = fieldtypes.DefaultMin, fieldtypes.DefaultMax
		if field.Min != nil {
			view.Min = *field.Min
		}
		if field.Max != nil {
			view.Max = *field.Max
		}
	}
	return view
}
