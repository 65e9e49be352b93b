// Package session maintains the single authenticated MQTT session with
// the broker: last-will registration, command/OTA subscriptions and
// ordered delivery of inbound messages to the control loop.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"acnode/internal/logger"
)

// Inbound message kinds delivered to the dispatcher.
type Kind string

const (
	KindPower       Kind = Kind(CommandPower)
	KindMode        Kind = Kind(CommandMode)
	KindTemperature Kind = Kind(CommandTemperature)
	KindFanSpeed    Kind = Kind(CommandFanSpeed)
	KindOTA         Kind = "ota"
)

// Inbound is one message received on a subscribed topic.
type Inbound struct {
	Kind    Kind
	Payload []byte
}

// Settings are the broker connection parameters from the installation
// config.
type Settings struct {
	BrokerURL      string
	Username       string
	Password       string
	ConnectTimeout time.Duration
	KeepAlive      time.Duration
}

const (
	statusOffline = "offline"
	willQoS       = 1
	publishQoS    = 1
)

// Manager owns the broker session. Reconnection policy lives with the
// caller: the manager exposes synchronous Connect/IsConnected and the
// orchestrator schedules retries using a Backoff.
type Manager struct {
	log      *logger.Logger
	settings Settings
	dispatch func(Inbound)

	mu     sync.Mutex
	client mqtt.Client
	topics Topics
}

// NewManager builds a manager. dispatch receives every inbound message
// in delivery order; it must not block for long.
func NewManager(settings Settings, dispatch func(Inbound), log *logger.Logger) *Manager {
	return &Manager{log: log, settings: settings, dispatch: dispatch}
}

// Connect dials the broker with a retained "offline" last will on the
// status topic, then subscribes the four command topics and the OTA
// topic. The broker therefore announces this device as offline on any
// abrupt disconnection without action by the device.
func (m *Manager) Connect(ctx context.Context, topics Topics) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil && m.client.IsConnected() {
		return nil
	}
	m.topics = topics

	opts := mqtt.NewClientOptions().
		AddBroker(m.settings.BrokerURL).
		SetUsername(m.settings.Username).
		SetPassword(m.settings.Password).
		SetClientID("acnode-" + topics.DeviceID).
		SetCleanSession(true).
		SetAutoReconnect(false).
		SetOrderMatters(true).
		SetKeepAlive(m.settings.KeepAlive).
		SetConnectTimeout(m.settings.ConnectTimeout).
		SetWill(topics.Status(), statusOffline, willQoS, true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		m.log.Warnw("mqtt connection lost", "err", err)
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(m.settings.ConnectTimeout) {
		return fmt.Errorf("connect to %s: timeout", m.settings.BrokerURL)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect to %s: %w", m.settings.BrokerURL, err)
	}

	for _, name := range CommandNames {
		if err := subscribe(client, topics.Command(name), m.commandHandler); err != nil {
			client.Disconnect(0)
			return err
		}
	}
	if err := subscribe(client, topics.OTA(), m.otaHandler); err != nil {
		client.Disconnect(0)
		return err
	}

	m.client = client
	m.log.Infow("mqtt session established", "broker", m.settings.BrokerURL, "device_id", topics.DeviceID)
	return nil
}

// IsConnected reports whether the session is currently up.
func (m *Manager) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client != nil && m.client.IsConnected()
}

// Publish sends a payload on a topic over the live session.
func (m *Manager) Publish(topic string, payload []byte, retained bool) error {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()

	if client == nil || !client.IsConnected() {
		return fmt.Errorf("publish %s: session not connected", topic)
	}
	token := client.Publish(topic, publishQoS, retained, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Topics returns the topic set of the current (or last) session.
func (m *Manager) Topics() Topics {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.topics
}

// Close announces offline and disconnects gracefully. It is used for
// orderly shutdown; abrupt losses are covered by the last will.
func (m *Manager) Close() {
	m.mu.Lock()
	client := m.client
	m.client = nil
	m.mu.Unlock()

	if client == nil {
		return
	}
	if client.IsConnected() {
		token := client.Publish(m.topics.Status(), publishQoS, true, statusOffline)
		token.WaitTimeout(time.Second)
	}
	client.Disconnect(250)
}

func subscribe(client mqtt.Client, topic string, handler mqtt.MessageHandler) error {
	token := client.Subscribe(topic, publishQoS, handler)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return nil
}

// commandHandler routes a command-topic message by its last segment.
// Paho invokes handlers sequentially, so delivery order is preserved
// into the dispatcher.
func (m *Manager) commandHandler(_ mqtt.Client, msg mqtt.Message) {
	name := msg.Topic()[strings.LastIndex(msg.Topic(), "/")+1:]
	m.log.Debugw("command received", "topic", msg.Topic(), "payload", string(msg.Payload()))
	m.dispatch(Inbound{Kind: Kind(name), Payload: msg.Payload()})
}

func (m *Manager) otaHandler(_ mqtt.Client, msg mqtt.Message) {
	m.log.Infow("ota message received", "topic", msg.Topic())
	m.dispatch(Inbound{Kind: KindOTA, Payload: msg.Payload()})
}
