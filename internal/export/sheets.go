package export

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"orbital/internal/core"
	"orbital/internal/log"
)

var ErrMissingCredentials = errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")

type SheetsConfig struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

// SheetsWriter appends exported rows to a Google Sheet
type SheetsWriter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger
}

// NewSheetsWriter creates a Sheets client authenticated with a service
// account.
func NewSheetsWriter(ctx context.Context, cfg SheetsConfig, logger *log.Logger) (*SheetsWriter, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	credentialsJSON, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope),
		goption.WithHTTPClient(newHTTPClientWithPooling()))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return NewSheetsWriterWithService(svc, cfg.SpreadsheetID, cfg.SheetName, logger), nil
}

// NewSheetsWriterWithService wraps an existing Sheets service
func NewSheetsWriterWithService(svc *gsheet.Service, spreadsheetID, sheetName string, logger *log.Logger) *SheetsWriter {
	if logger == nil {
		logger = log.Discard()
	}
	if sheetName == "" {
		sheetName = "Transactions"
	}
	return &SheetsWriter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger.WithComponent(log.ComponentSheets),
	}
}

func loadCredentials(cfg SheetsConfig) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		return []byte(cfg.CredentialsJSON), nil
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, ErrMissingCredentials
	}
}

// newHTTPClientWithPooling creates an HTTP client for the Sheets API with
// connection pooling and bounded timeouts
func newHTTPClientWithPooling() *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   60 * time.Second,
	}
}

// Append adds a header row tagged with exportID followed by one row per
// transaction. It returns the range the API reports as updated.
func (w *SheetsWriter) Append(ctx context.Context, exportID string, rows []core.Transaction) (string, error) {
	if w.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	values := make([][]any, 0, len(rows)+1)
	header := make([]any, 0, len(Header)+1)
	header = append(header, "Export "+exportID)
	for _, h := range Header {
		header = append(header, h)
	}
	values = append(values, header)
	for _, tx := range rows {
		row := Row(tx)
		line := make([]any, 0, len(row)+1)
		line = append(line, "")
		for _, cell := range row {
			line = append(line, cell)
		}
		values = append(values, line)
	}

	rng := fmt.Sprintf("%s!A:I", w.sheetName)
	resp, err := w.svc.Spreadsheets.Values.Append(w.spreadsheetID, rng, &gsheet.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", w.sheetName, err)
	}

	updated := ""
	if resp.Updates != nil {
		updated = resp.Updates.UpdatedRange
	}
	w.logger.InfoContext(ctx, "Appended export to sheet",
		log.FieldExportID, exportID,
		log.FieldRows, len(rows),
		"range", updated)

	return updated, nil
}
