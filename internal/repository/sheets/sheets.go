package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/minchenkova509/telegram-bot/configs"
	"github.com/minchenkova509/telegram-bot/internal/domain"
)

// Sink appends audit records to a Google spreadsheet, one row per completed
// hand-off. Append is best effort; the caller decides what a failure means.
type Sink struct {
	service       *sheetsapi.Service
	spreadsheetID string
	writeRange    string
	timeout       time.Duration
	log           *slog.Logger
}

func NewSink(ctx context.Context, cfg *configs.Config, log *slog.Logger) (*Sink, error) {
	const op = "sheets.NewSink"

	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON([]byte(cfg.Sheets.CredentialsJSON)),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Sink{
		service:       service,
		spreadsheetID: cfg.Sheets.SpreadsheetID,
		writeRange:    cfg.Sheets.WriteRange,
		timeout:       cfg.Sheets.Timeout,
		log:           log,
	}, nil
}

func (s *Sink) Append(ctx context.Context, rec domain.AuditRecord) error {
	const op = "sheets.Append"

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	row := &sheetsapi.ValueRange{
		Values: [][]interface{}{{
			rec.RequestID,
			rec.Driver,
			rec.Timestamp.Format(time.RFC3339),
			rec.PhotoID,
			string(rec.Origin),
		}},
	}

	_, err := s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, s.writeRange, row).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("audit row appended", "request_id", rec.RequestID, "origin", rec.Origin)
	return nil
}
