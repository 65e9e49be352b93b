package session

import (
	"testing"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"acnode/internal/logger"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Duplicate() bool   { return false }
func (m *fakeMessage) Qos() byte         { return 1 }
func (m *fakeMessage) Retained() bool    { return false }
func (m *fakeMessage) Topic() string     { return m.topic }
func (m *fakeMessage) MessageID() uint16 { return 0 }
func (m *fakeMessage) Payload() []byte   { return m.payload }
func (m *fakeMessage) Ack()              {}

var _ mqtt.Message = (*fakeMessage)(nil)

func newTestManager(dispatch func(Inbound)) *Manager {
	return NewManager(Settings{}, dispatch, logger.Get(logger.ErrorLevel))
}

func TestCommandHandler_RoutesByLastSegment(t *testing.T) {
	var got []Inbound
	m := newTestManager(func(in Inbound) { got = append(got, in) })

	m.commandHandler(nil, &fakeMessage{topic: "node/cust-1/AABBCC/command/power", payload: []byte("on")})
	m.commandHandler(nil, &fakeMessage{topic: "node/cust-1/AABBCC/command/temperature", payload: []byte("22")})

	if len(got) != 2 {
		t.Fatalf("expected 2 dispatches, got %d", len(got))
	}
	if got[0].Kind != KindPower || string(got[0].Payload) != "on" {
		t.Fatalf("unexpected first dispatch: %+v", got[0])
	}
	if got[1].Kind != KindTemperature || string(got[1].Payload) != "22" {
		t.Fatalf("unexpected second dispatch: %+v", got[1])
	}
}

func TestOTAHandler(t *testing.T) {
	var got []Inbound
	m := newTestManager(func(in Inbound) { got = append(got, in) })

	payload := []byte(`{"url":"https://x/fw.bin","version":"2.0.0"}`)
	m.otaHandler(nil, &fakeMessage{topic: "node/cust-1/AABBCC/ota/update", payload: payload})

	if len(got) != 1 || got[0].Kind != KindOTA {
		t.Fatalf("unexpected dispatch: %+v", got)
	}
	if string(got[0].Payload) != string(payload) {
		t.Fatalf("payload not forwarded verbatim")
	}
}

func TestPublish_WithoutSession(t *testing.T) {
	m := newTestManager(func(Inbound) {})
	if err := m.Publish("node/c/d/status", []byte("online"), true); err == nil {
		t.Fatalf("publish without a session must fail")
	}
}

func TestIsConnected_WithoutSession(t *testing.T) {
	m := newTestManager(func(Inbound) {})
	if m.IsConnected() {
		t.Fatalf("fresh manager must not report connected")
	}
	// Close on a never-connected manager is a no-op
	m.Close()
}
