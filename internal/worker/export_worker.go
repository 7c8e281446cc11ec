package worker

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"orbital/internal/amqp"
	"orbital/internal/core"
	"orbital/internal/export"
	"orbital/internal/log"
)

// SheetAppender mirrors an export to a spreadsheet
type SheetAppender interface {
	Append(ctx context.Context, exportID string, rows []core.Transaction) (string, error)
}

// ExportWorker writes queued export requests to disk and, optionally, to a
// Google Sheet
type ExportWorker struct {
	dir    string
	csv    *export.CSVWriter
	sheets SheetAppender
	logger *log.Logger
}

// NewExportWorker returns a worker writing into dir. A nil sheets appender
// disables the spreadsheet mirror.
func NewExportWorker(dir string, sheets SheetAppender, logger *log.Logger) *ExportWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &ExportWorker{
		dir:    dir,
		csv:    &export.CSVWriter{},
		sheets: sheets,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// Path returns the CSV file an export ID is written to
func (w *ExportWorker) Path(exportID string) string {
	return filepath.Join(w.dir, exportID+".csv")
}

// Handle processes one export request. Redelivered messages overwrite the
// same file.
func (w *ExportWorker) Handle(ctx context.Context, msg *amqp.ExportRequestMessage) error {
	start := time.Now()

	if _, err := uuid.Parse(msg.ID); err != nil {
		return fmt.Errorf("export id %q: %w", msg.ID, amqp.ErrInvalidMessage)
	}

	w.logger.InfoContext(ctx, "Processing export request",
		log.FieldExportID, msg.ID,
		log.FieldClientID, msg.ClientID,
		log.FieldRows, len(msg.Rows))

	path := w.Path(msg.ID)
	if err := w.csv.WriteToFile(path, msg.Rows); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}

	if w.sheets != nil {
		if _, err := w.sheets.Append(ctx, msg.ID, msg.Rows); err != nil {
			return fmt.Errorf("append export to sheets: %w", err)
		}
	}

	w.logger.InfoContext(ctx, "Export written",
		log.FieldExportID, msg.ID,
		"path", path,
		log.FieldDuration, time.Since(start).Milliseconds())

	return nil
}
