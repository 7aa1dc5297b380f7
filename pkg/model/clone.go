package model

// Clone returns a deep copy of the field, including its option list and
// range bounds.
func (f Field) Clone() Field {
	out := f
	if f.Options != nil {
		out.Options = append([]string(nil), f.Options...)
	}
	if f.Min != nil {
		v := *f.Min
		out.Min = &v
	}
	if f.Max != nil {
		v := *f.Max
		out.Max = &v
	}
	return out
}

// Clone returns a deep copy of the form. Editors hand clones to preview and
// collection surfaces so mutations never leak across owners.
func (f Form) Clone() Form {
	out := f
	if f.Fields != nil {
		out.Fields = make([]Field, len(f.Fields))
		for i, field := range f.Fields {
			out.Fields[i] = field.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the response answer map. Scalar values are
// shared; list values are copied.
func (r Response) Clone() Response {
	out := r
	if r.Answers != nil {
		out.Answers = make(map[string]any, len(r.Answers))
		for k, v := range r.Answers {
			if list, ok := v.([]string); ok {
				out.Answers[k] = append([]string(nil), list...)
				continue
			}
			out.Answers[k] = v
		}
	}
	return out
}
