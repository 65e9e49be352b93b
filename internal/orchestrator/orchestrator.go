// Package orchestrator is the node's control loop. One goroutine owns
// the provisioning lifecycle and all state transitions; the portal and
// the message session feed it through channels, so every configuration
// change and inbound command is applied sequentially.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"acnode/internal/backend"
	"acnode/internal/catalog"
	"acnode/internal/command"
	"acnode/internal/detector"
	"acnode/internal/ir"
	"acnode/internal/journal"
	"acnode/internal/logger"
	"acnode/internal/models"
	"acnode/internal/netlink"
	"acnode/internal/portal"
	"acnode/internal/session"
	"acnode/internal/store"
	"acnode/internal/telemetry"
)

// State is the lifecycle phase exposed on the portal.
type State string

const (
	StateUnconfigured State = "unconfigured"
	StateAPMode       State = "ap_mode"
	StateConnecting   State = "connecting"
	StateDeviceSetup  State = "device_setup"
	StateNormal       State = "normal"
)

// Settings tune the control loop.
type Settings struct {
	FirmwareVersion   string
	APPassword        string
	TelemetryInterval time.Duration
	WatchdogInterval  time.Duration
	BackoffBase       time.Duration
	BackoffMax        time.Duration
}

const (
	defaultTelemetryInterval = 30 * time.Second
	defaultWatchdogInterval  = 5 * time.Second
	defaultBackoffBase       = 5 * time.Second
	defaultBackoffMax        = 30 * time.Second
)

func (s Settings) withDefaults() Settings {
	if s.TelemetryInterval <= 0 {
		s.TelemetryInterval = defaultTelemetryInterval
	}
	if s.WatchdogInterval <= 0 {
		s.WatchdogInterval = defaultWatchdogInterval
	}
	if s.BackoffBase <= 0 {
		s.BackoffBase = defaultBackoffBase
	}
	if s.BackoffMax <= 0 {
		s.BackoffMax = defaultBackoffMax
	}
	return s
}

// Orchestrator wires every subsystem together and runs the loop.
type Orchestrator struct {
	settings Settings
	log      *logger.Logger

	cfgStore   *store.ConfigStore
	stateStore *store.StateStore
	net        netlink.Manager
	api        *backend.Client
	journal    journal.Journal
	updater    Updater
	reboot     func()

	session   *session.Manager
	publisher *telemetry.Publisher
	reporter  *telemetry.Reporter
	detect    *detector.Detector
	commands  *command.Service

	events  chan any
	inbound chan session.Inbound

	// Loop-owned; touched only by Run's goroutine after start.
	state    State
	cfg      models.Config
	deviceID string
	prompt   *portal.Prompt
	backoff  *session.Backoff
	redialAt time.Time
}

// Updater applies one firmware image; the orchestrator reboots after.
type Updater interface {
	Apply(ctx context.Context, url, version string) error
}

// New assembles the orchestrator and the subsystems whose lifecycle it
// owns: message session, publisher, reporter, detector and command
// service.
func New(
	settings Settings,
	mqttSettings session.Settings,
	cfgStore *store.ConfigStore,
	stateStore *store.StateStore,
	tx ir.Transmitter,
	net netlink.Manager,
	api *backend.Client,
	j journal.Journal,
	updater Updater,
	reboot func(),
	log *logger.Logger,
) *Orchestrator {
	o := &Orchestrator{
		settings:   settings.withDefaults(),
		log:        log,
		cfgStore:   cfgStore,
		stateStore: stateStore,
		net:        net,
		api:        api,
		journal:    j,
		updater:    updater,
		reboot:     reboot,
		events:     make(chan any, 8),
		inbound:    make(chan session.Inbound, 16),
		state:      StateUnconfigured,
	}
	o.backoff = session.NewBackoff(o.settings.BackoffBase, o.settings.BackoffMax)
	o.session = session.NewManager(mqttSettings, o.dispatchInbound, log.Named("session"))
	o.publisher = telemetry.NewPublisher(o.session, log.Named("telemetry"))
	o.reporter = telemetry.NewReporter(o.session, j, log.Named("reporter"))
	o.detect = detector.New(tx, log.Named("detector"))
	o.commands = command.NewService(
		tx,
		stateStore,
		o.reporter,
		func() catalog.Protocol { return catalog.Protocol(o.cfg.ACProtocol) },
		func(models.ACState) { o.announce(context.Background()) },
		stateStore.Load(),
		log.Named("command"),
	)
	return o
}

// Run executes the control loop until ctx is canceled.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.cfg = o.cfgStore.Load()
	o.deviceID = o.net.DeviceID()
	o.log.Infow("node starting",
		"device_id", o.deviceID,
		"firmware", o.settings.FirmwareVersion,
		"provisioned", o.cfg.HasNetwork(),
		"complete", o.cfg.Complete())

	o.boot(ctx)

	telemetryTick := time.NewTicker(o.settings.TelemetryInterval)
	watchdog := time.NewTicker(o.settings.WatchdogInterval)
	defer telemetryTick.Stop()
	defer watchdog.Stop()

	for {
		select {
		case <-ctx.Done():
			o.shutdown()
			return ctx.Err()
		case ev := <-o.events:
			o.handleEvent(ctx, ev)
		case in := <-o.inbound:
			o.handleInbound(ctx, in)
		case <-telemetryTick.C:
			if o.state == StateNormal {
				o.publishTelemetry(ctx)
			}
		case <-watchdog.C:
			o.watchdog(ctx)
		}
	}
}

// boot picks the initial state from the persisted configuration.
func (o *Orchestrator) boot(ctx context.Context) {
	if !o.cfg.HasNetwork() {
		o.enterAPMode()
		return
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

// enterAPMode opens the setup hotspot and waits for the portal.
func (o *Orchestrator) enterAPMode() {
	ssid := netlink.APSSID(o.deviceID)
	if err := o.net.StartAP(ssid, o.settings.APPassword); err != nil {
		o.log.Errorw("setup hotspot failed to start", "ssid", ssid, "err", err)
	}
	o.state = StateAPMode
}

// joinNetwork connects to the provisioned Wi-Fi. On failure the node
// reports the error and falls back to the setup hotspot.
func (o *Orchestrator) joinNetwork(ctx context.Context) bool {
	o.state = StateConnecting
	if err := o.net.Connect(ctx, o.cfg.WiFiSSID, o.cfg.WiFiPassword); err != nil {
		o.reporter.Report(ctx, telemetry.CategoryWiFi,
			fmt.Sprintf("join network %q: %v", o.cfg.WiFiSSID, err))
		o.enterAPMode()
		return false
	}
	return true
}

// dialSession attempts one broker connection. Failures arm the backoff
// timer checked by the watchdog; success resets it and announces the
// node online.
func (o *Orchestrator) dialSession(ctx context.Context) {
	topics := session.Topics{CustomerID: o.cfg.CustomerID, DeviceID: o.deviceID}
	if err := o.session.Connect(ctx, topics); err != nil {
		o.reporter.Report(ctx, telemetry.CategoryMQTT, fmt.Sprintf("broker connection: %v", err))
		o.redialAt = time.Now().Add(o.backoff.Interval())
		o.backoff.Failure()
		return
	}
	o.backoff.Success()

	o.announce(ctx)
	o.appendJournal(ctx, journal.Event{
		Type:    journal.TypeSession,
		Message: "broker session established",
	})
}

// watchdog recovers the network link and the broker session.
func (o *Orchestrator) watchdog(ctx context.Context) {
	switch o.state {
	case StateDeviceSetup, StateNormal:
	default:
		return
	}

	if !o.net.IsConnected() {
		o.reporter.Report(ctx, telemetry.CategoryWiFi, "network link lost")
		o.session.Close()
		prev := o.state
		if !o.joinNetwork(ctx) {
			return
		}
		o.state = prev
	}

	if o.state == StateNormal && !o.session.IsConnected() && time.Now().After(o.redialAt) {
		o.dialSession(ctx)
	}
}

// handleInbound processes one broker message on the loop goroutine.
func (o *Orchestrator) handleInbound(ctx context.Context, in session.Inbound) {
	if in.Kind == session.KindOTA {
		o.handleOTA(ctx, in.Payload)
		return
	}

	cmd := command.Command{
		Name:  string(in.Kind),
		Value: strings.TrimSpace(string(in.Payload)),
	}
	if err := o.commands.Apply(ctx, cmd); err != nil {
		category := telemetry.CategoryIR
		if errors.Is(err, command.ErrRejected) {
			category = telemetry.CategoryValidation
		}
		o.reporter.Report(ctx, category, fmt.Sprintf("command %s=%s: %v", cmd.Name, cmd.Value, err))
		return
	}
	o.appendJournal(ctx, journal.Event{
		Type:     journal.TypeCommand,
		Message:  fmt.Sprintf("%s=%s applied", cmd.Name, cmd.Value),
		Metadata: o.commands.State(),
	})
}

// handleOTA validates and applies a firmware-update request. Malformed
// payloads are reported without any download; a failed update leaves
// the running firmware in place and is never retried on its own.
func (o *Orchestrator) handleOTA(ctx context.Context, payload []byte) {
	req, err := models.ParseOTARequest(payload)
	if err != nil {
		o.reporter.Report(ctx, telemetry.CategoryOTA, err.Error())
		return
	}
	o.appendJournal(ctx, journal.Event{
		Type:     journal.TypeOTA,
		Message:  "firmware update requested",
		Metadata: req,
	})

	if err := o.updater.Apply(ctx, req.URL, req.Version); err != nil {
		o.reporter.Report(ctx, telemetry.CategoryOTA, fmt.Sprintf("update to %s: %v", req.Version, err))
		return
	}

	o.cfg.FirmwareVersion = req.Version
	if err := o.cfgStore.Save(o.cfg); err != nil {
		o.log.Errorw("persist firmware version failed", "err", err)
	}
	o.appendJournal(ctx, journal.Event{
		Type:    journal.TypeOTA,
		Message: "firmware " + req.Version + " installed, restarting",
	})
	o.session.Close()
	o.reboot()
}

// announce publishes the retained status and telemetry pair after a
// confirmed state change or a fresh broker session.
func (o *Orchestrator) announce(ctx context.Context) {
	if !o.publisher.Connected() {
		return
	}
	if err := o.publisher.PublishStatus(true); err != nil {
		o.log.Warnw("status publish failed", "err", err)
	}
	o.publishTelemetry(ctx)
}

func (o *Orchestrator) publishTelemetry(ctx context.Context) {
	if !o.publisher.Connected() {
		return
	}
	st := o.commands.State()
	t := models.Telemetry{
		DeviceID:        o.deviceID,
		CustomerID:      o.cfg.CustomerID,
		ZoneID:          o.cfg.ZoneID,
		ACBrand:         o.cfg.ACBrand,
		ACProtocol:      o.cfg.ACProtocol,
		FirmwareVersion: o.settings.FirmwareVersion,
		WiFiSSID:        o.cfg.WiFiSSID,
		RSSI:            o.net.SignalStrength(),
		ACPower:         st.Power,
		ACMode:          st.Mode,
		ACTemperature:   st.TemperatureC,
		ACFanSpeed:      st.FanSpeed,
	}
	if err := o.publisher.PublishTelemetry(t); err != nil {
		o.log.Warnw("telemetry publish failed", "err", err)
	}
}

// appendJournal records an event; journal failures are logged, never
// escalated.
func (o *Orchestrator) appendJournal(ctx context.Context, e journal.Event) {
	if err := o.journal.Append(ctx, e); err != nil {
		o.log.Warnw("journal append failed", "type", e.Type, "err", err)
	}
}

// dispatchInbound is called from paho's handler goroutine; it must not
// block, so a full queue drops the message.
func (o *Orchestrator) dispatchInbound(in session.Inbound) {
	select {
	case o.inbound <- in:
	default:
		o.log.Warnw("inbound queue full, dropping message", "kind", in.Kind)
	}
}

func (o *Orchestrator) shutdown() {
	o.session.Close()
	if o.state == StateAPMode {
		if err := o.net.StopAP(); err != nil {
			o.log.Warnw("hotspot teardown failed", "err", err)
		}
	}
	o.log.Infow("node stopped")
}
