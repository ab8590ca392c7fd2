package notifier

import (
	"context"
	"log/slog"

	"github.com/amishk599/interndigest/internal/model"
)

// Ensure LogSender implements model.Sender.
var _ model.Sender = (*LogSender)(nil)

// LogSender writes the digest to the given logger instead of delivering it.
// It backs dry runs and the "log" delivery type.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender returns a sender that logs each digest via slog.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the subject and one line per posting. Returns nil (stdout
// logging does not fail).
func (s *LogSender) Send(_ context.Context, msg model.Message) error {
	s.logger.Info("digest",
		"subject", msg.Subject,
		"recipients", len(msg.Recipients),
		"postings", len(msg.Postings),
		"html_bytes", len(msg.HTMLBody),
	)
	for _, p := range msg.Postings {
		s.logger.Info("posting",
			"source", string(p.Source),
			"company", p.Company,
			"title", p.Title,
			"location", p.Location,
			"url", p.URL,
		)
	}
	return nil
}
