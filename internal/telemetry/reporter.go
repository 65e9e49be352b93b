package telemetry

import (
	"context"
	"encoding/json"

	"acnode/internal/journal"
	"acnode/internal/logger"
	"acnode/internal/models"
)

// Error categories used across the node, mirroring the failure taxonomy.
const (
	CategoryWiFi       = "WiFi"
	CategoryMQTT       = "MQTT"
	CategoryIR         = "IR"
	CategoryOTA        = "OTA"
	CategoryAPI        = "API"
	CategoryValidation = "Validation"
)

// Reporter is the single error-artifact channel: every documented
// failure path appends a journal entry and, when the session is up,
// publishes a structured report on the error topic. Reporting never
// halts the caller.
type Reporter struct {
	bus     Bus
	journal journal.Journal
	log     *logger.Logger
}

// NewReporter builds a reporter over the session bus and journal.
func NewReporter(bus Bus, j journal.Journal, log *logger.Logger) *Reporter {
	return &Reporter{bus: bus, journal: j, log: log}
}

// Report records one failure. Before a session exists the report is
// journal-only; it is never lost silently.
func (r *Reporter) Report(ctx context.Context, category, message string) {
	r.log.Errorw("error reported", "category", category, "message", message)

	if err := r.journal.Append(ctx, journal.Event{
		Type:     journal.TypeError,
		Message:  message,
		Metadata: map[string]any{"category": category},
	}); err != nil {
		r.log.Warnw("journal append failed", "err", err)
	}

	if !r.bus.IsConnected() {
		return
	}
	payload, err := json.Marshal(models.ErrorReport{
		Category: category,
		Message:  message,
		Origin:   models.ErrorOrigin,
	})
	if err != nil {
		return
	}
	if err := r.bus.Publish(r.bus.Topics().Error(), payload, true); err != nil {
		r.log.Warnw("error publish failed", "err", err)
	}
}
