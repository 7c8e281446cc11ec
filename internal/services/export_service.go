package services

import (
	"context"
	"errors"
	"fmt"

	"orbital/internal/amqp"
	"orbital/internal/filter"
	"orbital/internal/log"
	"orbital/internal/state"
)

var ErrExportsDisabled = errors.New("exports are disabled")

// ExportPublisher queues export requests for the worker
type ExportPublisher interface {
	PublishExportRequest(ctx context.Context, msg *amqp.ExportRequestMessage) error
}

// ExportService turns the current table view into a queued export
type ExportService struct {
	dashboard *DashboardService
	publisher ExportPublisher
	logger    *log.Logger
}

// NewExportService returns a service that queues exports through publisher.
// A nil publisher disables exports.
func NewExportService(dashboard *DashboardService, publisher ExportPublisher, logger *log.Logger) *ExportService {
	if logger == nil {
		logger = log.Discard()
	}
	return &ExportService{
		dashboard: dashboard,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentExport),
	}
}

// Enabled reports whether export requests can be queued
func (s *ExportService) Enabled() bool {
	return s.publisher != nil
}

// Request publishes the table rows the query selects, before pagination.
func (s *ExportService) Request(ctx context.Context, clientID string, st state.AppState, q filter.Query) (*amqp.ExportRequestMessage, error) {
	if !s.Enabled() {
		return nil, ErrExportsDisabled
	}

	rows := s.dashboard.Rows(st, q)
	msg := amqp.NewExportRequestMessage(clientID, st.DateRange, filter.CombinedSearch(st.GlobalSearch, q.Search), rows)

	if err := s.publisher.PublishExportRequest(ctx, msg); err != nil {
		return nil, fmt.Errorf("publish export request: %w", err)
	}

	s.logger.InfoContext(ctx, "Queued export",
		log.FieldOperation, log.OpExport,
		log.FieldExportID, msg.ID,
		log.FieldClientID, clientID,
		log.FieldRows, len(rows))

	return msg, nil
}
