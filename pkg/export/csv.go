package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/formforge/formforge/pkg/model"
)

// WriteCSV projects the responses and writes the table as RFC 4180 CSV.
func WriteCSV(w io.Writer, form model.Form, responses []model.Response) error {
	cw := csv.NewWriter(w)
	for _, row := range Rows(form, responses) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
