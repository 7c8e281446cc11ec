package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"orbital/internal/amqp"
	"orbital/internal/cli"
	"orbital/internal/export"
	"orbital/internal/log"
	"orbital/internal/worker"
)

func main() {
	cfg, logger, err := cli.Bootstrap(log.ComponentWorker)
	if err != nil {
		os.Exit(1)
	}

	logger.Info("Starting orbital-worker")

	if !cfg.ExportsEnabled() {
		logger.Error("AMQP_URL is required to consume export requests")
		os.Exit(1)
	}

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	// Google Sheets mirroring is optional; the CSV file is always written.
	var sheets worker.SheetAppender
	if cfg.SheetsEnabled() {
		writer, err := export.NewSheetsWriter(ctx, export.SheetsConfig{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile: cfg.GoogleServiceAccountFile,
		}, logger)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		sheets = writer
		logger.Info("Google Sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(cfg.ExportDir, sheets, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Consuming export requests", "queue", cfg.AMQPQueue, "export_dir", cfg.ExportDir)
		return amqpClient.ConsumeExportRequests(gctx, exportWorker.Handle)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
