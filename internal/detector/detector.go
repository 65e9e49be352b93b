// Package detector walks a brand's candidate IR protocols with the
// operator in the loop: fire a test command, ask whether the AC
// reacted, move on until one sticks.
package detector

import (
	"errors"
	"fmt"

	"acnode/internal/catalog"
	"acnode/internal/ir"
	"acnode/internal/logger"
	"acnode/internal/models"
)

// detectionCommand is the fixed test fired at each candidate: a
// setting an operator can observe on any unit.
var detectionCommand = models.ACState{
	Power:        true,
	Mode:         models.ModeCool,
	TemperatureC: 25,
	FanSpeed:     models.FanMedium,
}

// ErrExhausted signals that every testable candidate was rejected.
var ErrExhausted = errors.New("no candidate protocol confirmed")

// ErrNoCandidates signals a brand with nothing the emitter can fire.
var ErrNoCandidates = errors.New("no transmittable protocols for brand")

// Prompt describes the candidate currently awaiting operator feedback.
type Prompt struct {
	Brand    string
	Protocol catalog.Protocol
	Index    int
	Total    int
}

// Detector runs one detection session at a time.
type Detector struct {
	tx  ir.Transmitter
	log *logger.Logger

	brand      string
	candidates []catalog.Protocol
	index      int
	active     bool
}

func New(tx ir.Transmitter, log *logger.Logger) *Detector {
	return &Detector{tx: tx, log: log}
}

// Start begins a session for the brand and fires the first candidate.
func (d *Detector) Start(brand string) (Prompt, error) {
	candidates := d.transmittable(brand)
	if len(candidates) == 0 {
		return Prompt{}, fmt.Errorf("%w: %s", ErrNoCandidates, brand)
	}
	d.brand = brand
	d.candidates = candidates
	d.index = 0
	d.active = true
	return d.fire()
}

// Confirm accepts the current candidate and ends the session.
func (d *Detector) Confirm() (catalog.Protocol, error) {
	if !d.active {
		return "", errors.New("no detection session in progress")
	}
	p := d.candidates[d.index]
	d.active = false
	d.log.Infow("protocol confirmed", "brand", d.brand, "protocol", p)
	return p, nil
}

// Reject discards the current candidate and fires the next one.
// Returns ErrExhausted once the list runs out.
func (d *Detector) Reject() (Prompt, error) {
	if !d.active {
		return Prompt{}, errors.New("no detection session in progress")
	}
	d.index++
	if d.index >= len(d.candidates) {
		d.active = false
		return Prompt{}, fmt.Errorf("%w: %s", ErrExhausted, d.brand)
	}
	return d.fire()
}

// FirstSupported resolves a brand without operator testing by taking
// the first candidate the emitter can fire.
func (d *Detector) FirstSupported(brand string) (catalog.Protocol, error) {
	candidates := d.transmittable(brand)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoCandidates, brand)
	}
	return candidates[0], nil
}

// Active reports whether a session is awaiting operator feedback.
func (d *Detector) Active() bool { return d.active }

// Abort cancels the session, if any.
func (d *Detector) Abort() {
	if d.active {
		d.log.Infow("detection aborted", "brand", d.brand)
	}
	d.active = false
}

func (d *Detector) transmittable(brand string) []catalog.Protocol {
	var out []catalog.Protocol
	for _, p := range catalog.CandidatesFor(brand) {
		if d.tx.Supported(p) {
			out = append(out, p)
		} else {
			d.log.Debugw("skipping candidate without timing data", "brand", brand, "protocol", p)
		}
	}
	return out
}

func (d *Detector) fire() (Prompt, error) {
	p := d.candidates[d.index]
	if err := d.tx.Transmit(p, detectionCommand); err != nil {
		d.active = false
		return Prompt{}, fmt.Errorf("test transmit %s: %w", p, err)
	}
	d.log.Infow("test command sent", "brand", d.brand, "protocol", p,
		"candidate", d.index+1, "of", len(d.candidates))
	return Prompt{Brand: d.brand, Protocol: p, Index: d.index, Total: len(d.candidates)}, nil
}
