// Package export writes transaction tables to CSV files and Google Sheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"orbital/internal/core"
)

// Header is the column order shared by every export target.
var Header = []string{"ID", "Date", "Merchant", "Description", "Category", "Type", "Status", "Amount"}

// Row renders one transaction in Header order.
func Row(tx core.Transaction) []string {
	return []string{
		tx.ID,
		tx.Date.UTC().Format(time.RFC3339),
		tx.Merchant.Name,
		tx.Description,
		tx.Category.Label(),
		string(tx.Type),
		tx.Status.Label(),
		tx.Amount.Decimal().StringFixed(2),
	}
}

// CSVWriter writes transactions to CSV format.
type CSVWriter struct{}

// WriteToFile writes rows to path, creating parent directories as needed.
func (w *CSVWriter) WriteToFile(path string, rows []core.Transaction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file %q: %w", path, err)
	}
	if err := w.Write(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write writes the header and one line per transaction to out.
func (w *CSVWriter) Write(out io.Writer, rows []core.Transaction) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, tx := range rows {
		if err := writer.Write(Row(tx)); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
