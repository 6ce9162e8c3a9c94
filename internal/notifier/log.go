// Package notifier reports incidents to operators.
package notifier

import (
	"log/slog"
	"net/http"

	"github.com/amishk599/jobboard/internal/config"
	"github.com/amishk599/jobboard/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes incidents to the given logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each incident via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the incident at error level. It never fails.
func (n *LogNotifier) Notify(inc model.Incident) error {
	args := []any{"source", inc.Source, "event", inc.Event, "at", inc.At}
	if inc.Err != nil {
		args = append(args, "error", inc.Err)
	}
	n.logger.Error(inc.Message, args...)
	return nil
}

// New builds the notifier selected by cfg.
func New(cfg config.NotificationConfig, client *http.Client, logger *slog.Logger) model.Notifier {
	if cfg.Type == "slack" {
		return NewSlackNotifier(cfg.WebhookURL, client, logger)
	}
	return NewLogNotifier(logger)
}
