package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"orbital/internal/core"
)

var ErrInvalidMessage = errors.New("invalid export request message")

// ExportRequestMessage asks the worker to export a set of table rows. The
// rows travel with the message because every process generates its own
// dataset.
type ExportRequestMessage struct {
	ID          string             `json:"id"`
	RequestedAt time.Time          `json:"requestedAt"`
	ClientID    string             `json:"clientId,omitempty"`
	Range       core.DateRange     `json:"range"`
	Search      string             `json:"search,omitempty"`
	Rows        []core.Transaction `json:"rows"`
}

// NewExportRequestMessage stamps a fresh ID and request time onto rows
func NewExportRequestMessage(clientID string, r core.DateRange, search string, rows []core.Transaction) *ExportRequestMessage {
	if rows == nil {
		rows = []core.Transaction{}
	}
	return &ExportRequestMessage{
		ID:          uuid.NewString(),
		RequestedAt: time.Now().UTC(),
		ClientID:    clientID,
		Range:       r,
		Search:      search,
		Rows:        rows,
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExportRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExportRequestMessageFromJSON decodes and validates a message body
func ExportRequestMessageFromJSON(data []byte) (*ExportRequestMessage, error) {
	var msg ExportRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(msg.ID); err != nil {
		return nil, ErrInvalidMessage
	}
	return &msg, nil
}
