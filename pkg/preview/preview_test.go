package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/formforge/formforge/pkg/model"
)

func TestDescriptionHTMLRendersMarkdown(t *testing.T) {
	got, err := DescriptionHTML("Please answer **honestly**.")
	if err != nil {
		t.Fatalf("DescriptionHTML: %v", err)
	}
	if !strings.Contains(got, "<strong>honestly</strong>") {
		t.Fatalf("markdown not rendered: %q", got)
	}
}

func TestDescriptionHTMLSanitizes(t *testing.T) {
	got, err := DescriptionHTML(`hello <script>alert("x")</script> world`)
	if err != nil {
		t.Fatalf("DescriptionHTML: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("script survived sanitization: %q", got)
	}
	if !strings.Contains(got, "hello") || !strings.Contains(got, "world") {
		t.Fatalf("surrounding text lost: %q", got)
	}
}

func previewForm() model.Form {
	return model.Form{
		ID:          "form-1",
		Title:       "Event feedback",
		Description: "How was *it*?",
		Accepting:   true,
		Fields: []model.Field{
			{ID: "f1", Label: "Name", Type: model.FieldTypeText, Required: true},
			{ID: "f2", Label: "Color", Type: model.FieldTypeMCQ, Options: []string{"Red", "Green"}},
			{ID: "f3", Label: "Rating", Type: model.FieldTypeSlider, Min: model.Number(1), Max: model.Number(5)},
			{ID: "f4", Label: "Notes", Type: model.FieldTypeTextarea},
		},
	}
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPage(&buf, previewForm()); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	page := buf.String()

	for _, want := range []string{
		"<h1>Event feedback</h1>",
		"<em>it</em>",
		`type="radio"`,
		`type="range"`,
		"<textarea",
		`class="required"`,
		"Other:",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(page, "no longer accepting") {
		t.Fatal("open form rendered closed notice")
	}
}

func TestRenderPageClosed(t *testing.T) {
	form := previewForm()
	form.Accepting = false

	var buf bytes.Buffer
	if err := RenderPage(&buf, form); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	page := buf.String()
	if !strings.Contains(page, "no longer accepting") {
		t.Fatal("closed notice missing")
	}
	if strings.Contains(page, "<form") {
		t.Fatal("closed form still rendered inputs")
	}
}

func TestRenderSubmittedPage(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSubmittedPage(&buf, previewForm()); err != nil {
		t.Fatalf("RenderSubmittedPage: %v", err)
	}
	page := buf.String()
	if !strings.Contains(page, "response has been recorded") {
		t.Fatal("thank-you notice missing")
	}
	if strings.Contains(page, "<form") {
		t.Fatal("submitted page still rendered inputs")
	}
}

func TestRenderPageEscapesLabels(t *testing.T) {
	form := previewForm()
	form.Title = `Feedback <script>alert("x")</script>`

	var buf bytes.Buffer
	if err := RenderPage(&buf, form); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	if strings.Contains(buf.String(), "<script>") {
		t.Fatal("script survived in title")
	}
}
