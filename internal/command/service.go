// Package command applies inbound AC commands: wire-value translation,
// validation, full-state IR transmission, and persistence of the result.
package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"acnode/internal/catalog"
	"acnode/internal/ir"
	"acnode/internal/logger"
	"acnode/internal/models"
)

// Command names accepted by Apply, matching the command topic segments.
const (
	NamePower       = "power"
	NameMode        = "mode"
	NameTemperature = "temperature"
	NameFanSpeed    = "fanspeed"
)

// ErrRejected marks a command rejected by validation before any
// transmission attempt.
var ErrRejected = errors.New("command rejected")

// Command is one normalized inbound command.
type Command struct {
	Name  string
	Value string
}

// StateStore persists the operating state after a confirmed send.
type StateStore interface {
	Save(models.ACState) error
}

// Reporter receives persistence failures, which never abort the caller.
type Reporter interface {
	Report(ctx context.Context, category, message string)
}

// Service owns the in-memory operating state and applies commands to it
// one at a time. The orchestrator loop is the only caller of Apply;
// State is safe for concurrent readers (portal, telemetry).
type Service struct {
	tx       ir.Transmitter
	store    StateStore
	reporter Reporter
	protocol func() catalog.Protocol
	applied  func(models.ACState)
	log      *logger.Logger

	mu    sync.RWMutex
	state models.ACState
}

// NewService builds the command service. protocol yields the currently
// configured protocol; applied is invoked after every successful
// transmit+persist cycle (status/telemetry publish hook).
func NewService(tx ir.Transmitter, store StateStore, reporter Reporter, protocol func() catalog.Protocol, applied func(models.ACState), initial models.ACState, log *logger.Logger) *Service {
	return &Service{
		tx:       tx,
		store:    store,
		reporter: reporter,
		protocol: protocol,
		applied:  applied,
		state:    initial,
		log:      log,
	}
}

// State returns the last successfully transmitted AC state.
func (s *Service) State() models.ACState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Apply validates the command, transmits the resulting complete state
// and, only on a confirmed send, persists it and fires the applied
// hook. On any failure the operating state is left untouched and no
// publish happens.
//
// Adjusting mode, temperature or fan speed while the unit is off also
// turns it on, mirroring physical remote behavior.
func (s *Service) Apply(ctx context.Context, cmd Command) error {
	next, err := s.resolve(cmd)
	if err != nil {
		return err
	}

	if err := s.tx.Transmit(s.protocol(), next); err != nil {
		return fmt.Errorf("transmit %s=%s: %w", cmd.Name, cmd.Value, err)
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	if err := s.store.Save(next); err != nil {
		// The command took effect; a failed write must not undo that.
		s.reporter.Report(ctx, "Store", fmt.Sprintf("persist operating state: %v", err))
	}
	s.log.Infow("command applied",
		"command", cmd.Name, "value", cmd.Value,
		"power", next.Power, "mode", next.Mode, "temperature", next.TemperatureC, "fanspeed", next.FanSpeed)

	if s.applied != nil {
		s.applied(next)
	}
	return nil
}

// resolve computes the full target state for a command without side
// effects.
func (s *Service) resolve(cmd Command) (models.ACState, error) {
	next := s.State()

	switch cmd.Name {
	case NamePower:
		switch cmd.Value {
		case "on":
			next.Power = true
		case "off":
			next.Power = false
		case "toggle":
			next.Power = !next.Power
		default:
			return models.ACState{}, fmt.Errorf("%w: invalid power value %q", ErrRejected, cmd.Value)
		}

	case NameMode:
		mode, err := models.ParseMode(cmd.Value)
		if err != nil {
			return models.ACState{}, fmt.Errorf("%w: %v", ErrRejected, err)
		}
		next.Mode = mode
		next.Power = true

	case NameTemperature:
		t, err := strconv.Atoi(cmd.Value)
		if err != nil || !models.ValidTemperature(t) {
			return models.ACState{}, fmt.Errorf("%w: invalid temperature value %q", ErrRejected, cmd.Value)
		}
		next.TemperatureC = t
		next.Power = true

	case NameFanSpeed:
		fan, err := models.ParseFanSpeed(cmd.Value)
		if err != nil {
			return models.ACState{}, fmt.Errorf("%w: %v", ErrRejected, err)
		}
		next.FanSpeed = fan
		next.Power = true

	default:
		return models.ACState{}, fmt.Errorf("%w: unknown command %q", ErrRejected, cmd.Name)
	}
	return next, nil
}
