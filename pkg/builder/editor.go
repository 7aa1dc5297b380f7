package builder

import (
	"github.com/formforge/formforge/pkg/fieldtypes"
	"github.com/formforge/formforge/pkg/model"
)

// Patch carries a partial field update. Nil members are left untouched;
// Options uses nil (not empty) to mean "unchanged".
type Patch struct {
	Label    *string
	Type     *model.FieldType
	Required *bool
	Options  []string
	Min      *float64
	Max      *float64
}

// String returns a pointer to s, for building Patch literals.
func String(s string) *string {
	return &s
}

// Type returns a pointer to t, for building Patch literals.
func Type(t model.FieldType) *model.FieldType {
	return &t
}

// Bool returns a pointer to b, for building Patch literals.
func Bool(b bool) *bool {
	return &b
}

// applyPatch merges the patch into the field. Migration is additive: a type
// change only adds the attributes the new type needs, it never clears what an
// earlier type left behind. Choice types seed placeholder options only when
// none exist yet; switching into slider resets min/max to the defaults
// unconditionally. Explicit attributes in the same patch are applied after
// the type change so callers can override the seeded values.
func applyPatch(field *model.Field, patch Patch) {
	if patch.Type != nil {
		field.Type = *patch.Type
		spec := fieldtypes.Lookup(field.Type)
		if spec.NeedsOptions && len(field.Options) == 0 {
			field.Options = fieldtypes.DefaultOptions()
		}
		if spec.NeedsRange {
			field.Min = model.Number(fieldtypes.DefaultMin)
			field.Max = model.Number(fieldtypes.DefaultMax)
		}
	}
	if patch.Label != nil {
		field.Label = *patch.Label
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.Options != nil {
		field.Options = append([]string(nil), patch.Options...)
	}
	if patch.Min != nil {
		v := *patch.Min
		field.Min = &v
	}
	if patch.Max != nil {
		v := *patch.Max
		field.Max = &v
	}
}
