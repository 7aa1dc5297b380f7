// Package export projects stored responses onto the form schema as a table
// and serializes the table as CSV or XLSX. Columns come from the schema, not
// from the answer maps: answers whose label no longer matches a field are
// dropped, and fields with no answer render as the placeholder cell.
package export

import (
	"strconv"
	"time"

	"github.com/formforge/formforge/pkg/model"
)

// placeholder fills cells with no usable answer.
const placeholder = "-"

// timeLayout formats the submission timestamp column.
const timeLayout = "2006-01-02 15:04:05"

// Header returns the column headers: the two metadata columns followed by the
// field labels in schema order.
func Header(form model.Form) []string {
	out := make([]string, 0, len(form.Fields)+2)
	out = append(out, "Response ID", "Submitted At")
	for _, field := range form.Fields {
		out = append(out, field.Label)
	}
	return out
}

// Rows projects the responses onto the schema. The first row is the header;
// response rows keep the order they were given in. The projection is pure, so
// exporting the same inputs twice yields identical tables.
func Rows(form model.Form, responses []model.Response) [][]string {
	rows := make([][]string, 0, len(responses)+1)
	rows = append(rows, Header(form))
	for _, resp := range responses {
		row := make([]string, 0, len(form.Fields)+2)
		row = append(row, resp.ResponseID, formatTime(resp.SubmittedAt))
		for _, field := range form.Fields {
			row = append(row, Cell(resp.Answers[field.Label]))
		}
		rows = append(rows, row)
	}
	return rows
}

// Cell renders one answer value. List answers drop empty entries and join
// with a comma; absent or falsy answers (empty string, zero, false, empty
// list) become the placeholder. Both []string and []any lists are accepted
// because answers round-trip through JSON.
func Cell(value any) string {
	switch v := value.(type) {
	case nil:
		return placeholder
	case string:
		if v == "" {
			return placeholder
		}
		return v
	case []string:
		return joinList(v)
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				list = append(list, s)
			}
		}
		return joinList(list)
	case float64:
		if v == 0 {
			return placeholder
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		if v == 0 {
			return placeholder
		}
		return strconv.Itoa(v)
	case bool:
		if !v {
			return placeholder
		}
		return "true"
	default:
		return placeholder
	}
}

func joinList(list []string) string {
	out := ""
	for _, item := range list {
		if item == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += item
	}
	if out == "" {
		return placeholder
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return t.UTC().Format(timeLayout)
}
