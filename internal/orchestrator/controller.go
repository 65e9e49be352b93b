package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"acnode/internal/backend"
	"acnode/internal/catalog"
	"acnode/internal/detector"
	"acnode/internal/journal"
	"acnode/internal/portal"
	"acnode/internal/telemetry"
)

// Portal requests crossing into the control loop. Each carries a reply
// channel with capacity one so the loop never blocks on an abandoned
// caller.

type statusReq struct{ reply chan portal.Status }

type networkReq struct {
	ssid, password string
	reply          chan error
}

type identityReq struct {
	customerID, zoneID, brand string
	skipTesting               bool
	reply                     chan promptResp
}

type resultReq struct {
	worked bool
	reply  chan promptResp
}

type resetReq struct{ reply chan error }

type promptResp struct {
	prompt *portal.Prompt
	err    error
}

// Status implements portal.Controller.
func (o *Orchestrator) Status(ctx context.Context) portal.Status {
	req := statusReq{reply: make(chan portal.Status, 1)}
	select {
	case o.events <- req:
	case <-ctx.Done():
		return portal.Status{}
	}
	select {
	case st := <-req.reply:
		return st
	case <-ctx.Done():
		return portal.Status{}
	}
}

// SubmitNetwork implements portal.Controller.
func (o *Orchestrator) SubmitNetwork(ctx context.Context, ssid, password string) error {
	req := networkReq{ssid: ssid, password: password, reply: make(chan error, 1)}
	return o.roundTrip(ctx, req, req.reply)
}

// SubmitIdentity implements portal.Controller.
func (o *Orchestrator) SubmitIdentity(ctx context.Context, customerID, zoneID, brand string, skipTesting bool) (*portal.Prompt, error) {
	req := identityReq{
		customerID:  customerID,
		zoneID:      zoneID,
		brand:       brand,
		skipTesting: skipTesting,
		reply:       make(chan promptResp, 1),
	}
	select {
	case o.events <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-req.reply:
		return resp.prompt, resp.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// OperatorResult implements portal.Controller.
func (o *Orchestrator) OperatorResult(ctx context.Context, worked bool) (*portal.Prompt, error) {
	req := resultReq{worked: worked, reply: make(chan promptResp, 1)}
	select {
	case o.events <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-req.reply:
		return resp.prompt, resp.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Reset implements portal.Controller.
func (o *Orchestrator) Reset(ctx context.Context) error {
	req := resetReq{reply: make(chan error, 1)}
	return o.roundTrip(ctx, req, req.reply)
}

func (o *Orchestrator) roundTrip(ctx context.Context, ev any, reply chan error) error {
	select {
	case o.events <- ev:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// handleEvent dispatches one portal request on the loop goroutine.
func (o *Orchestrator) handleEvent(ctx context.Context, ev any) {
	switch req := ev.(type) {
	case statusReq:
		req.reply <- o.snapshot(ctx)
	case networkReq:
		err := o.saveNetwork(ctx, req.ssid, req.password)
		req.reply <- err
		if err == nil {
			o.switchNetwork(ctx)
		}
	case identityReq:
		prompt, err := o.applyIdentity(ctx, req)
		req.reply <- promptResp{prompt: prompt, err: err}
	case resultReq:
		prompt, err := o.applyResult(ctx, req.worked)
		req.reply <- promptResp{prompt: prompt, err: err}
	case resetReq:
		req.reply <- o.applyReset(ctx)
	default:
		o.log.Errorw("unknown portal event", "event", fmt.Sprintf("%T", ev))
	}
}

// snapshot builds the portal view. The Wi-Fi password never leaves the
// device.
func (o *Orchestrator) snapshot(ctx context.Context) portal.Status {
	events, err := o.journal.List(ctx, journal.Filter{Limit: 10})
	if err != nil {
		o.log.Warnw("journal list failed", "err", err)
	}
	cfg := o.cfg
	cfg.WiFiPassword = ""
	return portal.Status{
		State:     string(o.state),
		DeviceID:  o.deviceID,
		Firmware:  o.settings.FirmwareVersion,
		Config:    cfg,
		ACState:   o.commands.State(),
		Connected: o.session.IsConnected(),
		Prompt:    o.prompt,
		Events:    events,
	}
}

// saveNetwork persists the submitted credentials. The outcome goes back
// to the portal before the link swings away from the hotspot, since the
// client loses the AP the moment the switch starts.
func (o *Orchestrator) saveNetwork(ctx context.Context, ssid, password string) error {
	prev := o.cfg
	o.cfg.WiFiSSID = ssid
	o.cfg.WiFiPassword = password
	if err := o.cfgStore.Save(o.cfg); err != nil {
		o.cfg = prev
		o.reporter.Report(ctx, telemetry.CategoryValidation, fmt.Sprintf("persist network credentials: %v", err))
		return err
	}
	return nil
}

// switchNetwork swings the link from the hotspot to the customer
// network and picks the follow-on state.
func (o *Orchestrator) switchNetwork(ctx context.Context) {
	if o.state == StateAPMode {
		if err := o.net.StopAP(); err != nil {
			o.log.Warnw("hotspot teardown failed", "err", err)
		}
	}
	if o.joinNetwork(ctx) {
		if o.cfg.Complete() {
			o.state = StateNormal
			o.dialSession(ctx)
		} else {
			o.state = StateDeviceSetup
		}
	}
}

// applyIdentity validates the operator's input against the catalog and
// the backend, then either finishes setup directly or starts the
// operator-assisted protocol test.
func (o *Orchestrator) applyIdentity(ctx context.Context, req identityReq) (*portal.Prompt, error) {
	if o.state != StateDeviceSetup {
		return nil, fmt.Errorf("device is not in setup (state %s)", o.state)
	}

	if catalog.CandidatesFor(req.brand) == nil {
		return nil, fmt.Errorf("%w: unknown brand %q", portal.ErrInvalidInput, req.brand)
	}
	valid, err := o.api.ValidateZone(ctx, req.customerID, req.zoneID)
	if err != nil {
		o.reporter.Report(ctx, telemetry.CategoryAPI, fmt.Sprintf("zone validation: %v", err))
		return nil, err
	}
	if !valid {
		return nil, fmt.Errorf("%w: zone %q is not registered for customer %q",
			portal.ErrInvalidInput, req.zoneID, req.customerID)
	}

	o.cfg.CustomerID = req.customerID
	o.cfg.ZoneID = req.zoneID
	o.cfg.ACBrand = req.brand

	if req.skipTesting {
		p, err := o.detect.FirstSupported(req.brand)
		if err != nil {
			return nil, err
		}
		return nil, o.finishSetup(ctx, p)
	}

	dp, err := o.detect.Start(req.brand)
	if err != nil {
		if !errors.Is(err, detector.ErrNoCandidates) {
			o.reporter.Report(ctx, telemetry.CategoryIR, err.Error())
		}
		return nil, err
	}
	o.appendJournal(ctx, journal.Event{
		Type:     journal.TypeDetection,
		Message:  "protocol detection started",
		Metadata: map[string]any{"brand": req.brand, "candidates": dp.Total},
	})
	o.prompt = promptFor(dp)
	return o.prompt, nil
}

// applyResult advances the protocol test with the operator's answer.
func (o *Orchestrator) applyResult(ctx context.Context, worked bool) (*portal.Prompt, error) {
	if !o.detect.Active() {
		return nil, errors.New("no protocol test in progress")
	}

	if worked {
		p, err := o.detect.Confirm()
		if err != nil {
			return nil, err
		}
		o.prompt = nil
		return nil, o.finishSetup(ctx, p)
	}

	dp, err := o.detect.Reject()
	if err != nil {
		o.prompt = nil
		if errors.Is(err, detector.ErrExhausted) {
			o.reporter.Report(ctx, telemetry.CategoryValidation,
				fmt.Sprintf("no working protocol found for brand %q", o.cfg.ACBrand))
		} else {
			o.reporter.Report(ctx, telemetry.CategoryIR, err.Error())
		}
		return nil, err
	}
	o.prompt = promptFor(dp)
	return o.prompt, nil
}

// finishSetup persists the completed configuration under the confirmed
// protocol, registers the device and moves to normal operation. The
// protocol is saved before the registration attempt so a registration
// failure never forces re-detection.
func (o *Orchestrator) finishSetup(ctx context.Context, p catalog.Protocol) error {
	o.cfg.ACProtocol = string(p)
	o.cfg.FirmwareVersion = o.settings.FirmwareVersion
	if err := o.cfgStore.Save(o.cfg); err != nil {
		o.reporter.Report(ctx, telemetry.CategoryValidation, fmt.Sprintf("persist configuration: %v", err))
		return err
	}

	reg := backend.Registration{
		DeviceID:        o.deviceID,
		ZoneID:          o.cfg.ZoneID,
		ACBrandName:     o.cfg.ACBrand,
		ACBrandProtocol: string(p),
		FirmwareVersion: o.settings.FirmwareVersion,
	}
	if err := o.api.RegisterDevice(ctx, o.cfg.CustomerID, reg); err != nil {
		o.reporter.Report(ctx, telemetry.CategoryAPI, fmt.Sprintf("device registration: %v", err))
		return err
	}
	o.appendJournal(ctx, journal.Event{
		Type:     journal.TypeDetection,
		Message:  "protocol confirmed, device registered",
		Metadata: map[string]any{"brand": o.cfg.ACBrand, "protocol": string(p)},
	})

	o.state = StateNormal
	o.dialSession(ctx)
	return nil
}

// applyReset wipes the device back to factory state. The reply goes
// out before the reboot so the portal can render the confirmation.
func (o *Orchestrator) applyReset(ctx context.Context) error {
	o.appendJournal(ctx, journal.Event{
		Type:    journal.TypeReset,
		Message: "factory reset requested",
	})
	o.detect.Abort()
	o.prompt = nil
	o.session.Close()

	if err := o.cfgStore.Clear(); err != nil {
		return err
	}
	if err := o.stateStore.Clear(); err != nil {
		return err
	}
	o.log.Infow("configuration erased, restarting")
	o.reboot()
	return nil
}

func promptFor(dp detector.Prompt) *portal.Prompt {
	return &portal.Prompt{
		Brand:    dp.Brand,
		Protocol: string(dp.Protocol),
		Index:    dp.Index + 1,
		Total:    dp.Total,
	}
}
