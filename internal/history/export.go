package history

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/and161185/goph-passgen/internal/model"
)

// CSVHeader is the single column written by WriteCSV.
const CSVHeader = "credential"

// WriteCSV writes one quoted row per credential, in the given order, after a header row.
func WriteCSV(w io.Writer, items []model.Credential) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{CSVHeader}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, it := range items {
		if err := cw.Write([]string{it.Value}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
