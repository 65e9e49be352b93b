// Package telemetry publishes the node's externally observable signals:
// the retained online/offline status token, the retained telemetry
// snapshot, and structured error reports.
package telemetry

import (
	"encoding/json"
	"fmt"

	"acnode/internal/logger"
	"acnode/internal/models"
	"acnode/internal/session"
)

// Bus is the slice of the message session the publisher needs.
type Bus interface {
	Publish(topic string, payload []byte, retained bool) error
	IsConnected() bool
	Topics() session.Topics
}

const (
	statusOnline  = "online"
	statusOffline = "offline"
)

// Publisher emits status and telemetry documents over the session.
type Publisher struct {
	bus Bus
	log *logger.Logger
}

// NewPublisher builds a publisher over the session bus.
func NewPublisher(bus Bus, log *logger.Logger) *Publisher {
	return &Publisher{bus: bus, log: log}
}

// Connected reports whether the underlying session can carry a publish.
func (p *Publisher) Connected() bool {
	return p.bus.IsConnected()
}

// PublishStatus publishes the retained single-token status message.
func (p *Publisher) PublishStatus(online bool) error {
	payload := statusOffline
	if online {
		payload = statusOnline
	}
	if err := p.bus.Publish(p.bus.Topics().Status(), []byte(payload), true); err != nil {
		return fmt.Errorf("publish status: %w", err)
	}
	return nil
}

// PublishTelemetry publishes the retained snapshot document.
func (p *Publisher) PublishTelemetry(t models.Telemetry) error {
	payload, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode telemetry: %w", err)
	}
	if err := p.bus.Publish(p.bus.Topics().Telemetry(), payload, true); err != nil {
		return fmt.Errorf("publish telemetry: %w", err)
	}
	p.log.Debugw("telemetry published", "bytes", len(payload))
	return nil
}
