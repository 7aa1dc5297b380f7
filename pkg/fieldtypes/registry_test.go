package fieldtypes

import (
	"testing"

	"github.com/formforge/formforge/pkg/model"
)

func TestLookup_Shapes(t *testing.T) {
	cases := []struct {
		fieldType model.FieldType
		shape     ValueShape
		options   bool
		rangeReq  bool
	}{
		{model.FieldTypeText, ShapeScalar, false, false},
		{model.FieldTypeTextarea, ShapeScalar, false, false},
		{model.FieldTypeEmail, ShapeScalar, false, false},
		{model.FieldTypeNumber, ShapeScalar, false, false},
		{model.FieldTypeDate, ShapeScalar, false, false},
		{model.FieldTypeMCQ, ShapeScalar, true, false},
		{model.FieldTypeCheckbox, ShapeList, true, false},
		{model.FieldTypeDropdown, ShapeScalar, true, false},
		{model.FieldTypeSlider, ShapeNumber, false, true},
		{model.FieldTypeFile, ShapeBlob, false, false},
	}

	for _, tc := range cases {
		spec := Lookup(tc.fieldType)
		if spec.Shape != tc.shape {
			t.Errorf("%s: shape %q, want %q", tc.fieldType, spec.Shape, tc.shape)
		}
		if spec.NeedsOptions != tc.options {
			t.Errorf("%s: needs options %v, want %v", tc.fieldType, spec.NeedsOptions, tc.options)
		}
		if spec.NeedsRange != tc.rangeReq {
			t.Errorf("%s: needs range %v, want %v", tc.fieldType, spec.NeedsRange, tc.rangeReq)
		}
	}
}

func TestLookup_UnknownFallsBackToText(t *testing.T) {
	spec := Lookup(model.FieldType("hologram"))
	if spec.Shape != ShapeScalar || spec.NeedsOptions || spec.NeedsRange {
		t.Fatalf("unknown type must take the text path, got %+v", spec)
	}
	if spec.Type != model.FieldType("hologram") {
		t.Fatalf("fallback spec should keep the original tag, got %q", spec.Type)
	}
	if Known("hologram") {
		t.Fatal("hologram must not be a known type")
	}
}

func TestAll_StableOrder(t *testing.T) {
	all := All()
	if len(all) != 10 {
		t.Fatalf("expected 10 registered types, got %d", len(all))
	}
	if all[0].Type != model.FieldTypeText || all[9].Type != model.FieldTypeFile {
		t.Fatalf("picker order changed: first=%q last=%q", all[0].Type, all[9].Type)
	}
}
