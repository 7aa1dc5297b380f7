package openapi

import (
	"context"
	"errors"
	"testing"

	"github.com/formforge/formforge/pkg/model"
)

const petSignupDoc = `{
  "openapi": "3.0.3",
  "info": {"title": "Shelter API", "version": "1.0.0"},
  "paths": {
    "/adoptions": {
      "post": {
        "summary": "Adoption application",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["full_name", "email"],
                "properties": {
                  "full_name": {"type": "string"},
                  "email": {"type": "string", "format": "email"},
                  "visit_date": {"type": "string", "format": "date"},
                  "story": {"type": "string", "maxLength": 2000},
                  "home_size": {"type": "string", "enum": ["Apartment", "House", "Farm"]},
                  "preferred_days": {
                    "type": "array",
                    "items": {"type": "string", "enum": ["Mon", "Wed", "Fri"]}
                  },
                  "yard_meters": {"type": "number", "minimum": 0, "maximum": 500},
                  "household_count": {"type": "integer"}
                }
              }
            }
          }
        },
        "responses": {"200": {"description": "ok"}}
      }
    },
    "/health": {
      "get": {"responses": {"200": {"description": "ok"}}}
    }
  }
}`

func importForms(t *testing.T, doc string) []model.Form {
	t.Helper()
	ctx := context.Background()
	forms, err := NewImporter(ctx).Forms(ctx, []byte(doc))
	if err != nil {
		t.Fatalf("Forms: %v", err)
	}
	return forms
}

func fieldByLabel(t *testing.T, form model.Form, label string) model.Field {
	t.Helper()
	for _, field := range form.Fields {
		if field.Label == label {
			return field
		}
	}
	t.Fatalf("no field labeled %q in %+v", label, form.Fields)
	return model.Field{}
}

func TestFormsMapsOperation(t *testing.T) {
	forms := importForms(t, petSignupDoc)
	if len(forms) != 1 {
		t.Fatalf("len(forms) = %d, want 1", len(forms))
	}
	form := forms[0]
	if form.Title != "Adoption application" {
		t.Fatalf("title = %q", form.Title)
	}
	if form.ID == "" {
		t.Fatal("form id not assigned")
	}
	if len(form.Fields) != 8 {
		t.Fatalf("len(fields) = %d, want 8", len(form.Fields))
	}
}

func TestFormsFieldTypes(t *testing.T) {
	form := importForms(t, petSignupDoc)[0]

	cases := []struct {
		label string
		want  model.FieldType
	}{
		{"Full Name", model.FieldTypeText},
		{"Email", model.FieldTypeEmail},
		{"Visit Date", model.FieldTypeDate},
		{"Story", model.FieldTypeTextarea},
		{"Home Size", model.FieldTypeDropdown},
		{"Preferred Days", model.FieldTypeCheckbox},
		{"Yard Meters", model.FieldTypeSlider},
		{"Household Count", model.FieldTypeNumber},
	}
	for _, tc := range cases {
		if got := fieldByLabel(t, form, tc.label).Type; got != tc.want {
			t.Errorf("%s: type = %s, want %s", tc.label, got, tc.want)
		}
	}

	slider := fieldByLabel(t, form, "Yard Meters")
	if slider.Min == nil || *slider.Min != 0 || slider.Max == nil || *slider.Max != 500 {
		t.Fatalf("slider bounds = %v %v", slider.Min, slider.Max)
	}

	dropdown := fieldByLabel(t, form, "Home Size")
	if len(dropdown.Options) != 3 || dropdown.Options[0] != "Apartment" {
		t.Fatalf("dropdown options = %v", dropdown.Options)
	}

	checkbox := fieldByLabel(t, form, "Preferred Days")
	if len(checkbox.Options) != 3 || checkbox.Options[2] != "Fri" {
		t.Fatalf("checkbox options = %v", checkbox.Options)
	}
}

func TestFormsRequiredFlags(t *testing.T) {
	form := importForms(t, petSignupDoc)[0]
	if !fieldByLabel(t, form, "Full Name").Required {
		t.Fatal("Full Name should be required")
	}
	if !fieldByLabel(t, form, "Email").Required {
		t.Fatal("Email should be required")
	}
	if fieldByLabel(t, form, "Story").Required {
		t.Fatal("Story should not be required")
	}
}

func TestFormsArrayWithoutEnumSeedsOptions(t *testing.T) {
	doc := `{
  "openapi": "3.0.3",
  "info": {"title": "t", "version": "1"},
  "paths": {
    "/tags": {
      "post": {
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "tags": {"type": "array", "items": {"type": "string"}}
                }
              }
            }
          }
        },
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`
	form := importForms(t, doc)[0]
	field := fieldByLabel(t, form, "Tags")
	if field.Type != model.FieldTypeCheckbox {
		t.Fatalf("type = %s, want %s", field.Type, model.FieldTypeCheckbox)
	}
	if len(field.Options) == 0 {
		t.Fatal("checkbox field imported without options")
	}
}

func TestFormsNoOperations(t *testing.T) {
	doc := `{"openapi":"3.0.3","info":{"title":"t","version":"1"},"paths":{"/x":{"get":{"responses":{"200":{"description":"ok"}}}}}}`
	ctx := context.Background()
	_, err := NewImporter(ctx).Forms(ctx, []byte(doc))
	if !errors.Is(err, ErrNoOperations) {
		t.Fatalf("err = %v, want ErrNoOperations", err)
	}
}
