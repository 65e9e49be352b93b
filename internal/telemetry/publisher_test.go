package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"acnode/internal/journal"
	"acnode/internal/logger"
	"acnode/internal/models"
	"acnode/internal/session"
)

type fakeBus struct {
	connected  bool
	publishErr error
	published  []publication
}

type publication struct {
	topic    string
	payload  []byte
	retained bool
}

func (f *fakeBus) Publish(topic string, payload []byte, retained bool) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, publication{topic, payload, retained})
	return nil
}
func (f *fakeBus) IsConnected() bool { return f.connected }
func (f *fakeBus) Topics() session.Topics {
	return session.Topics{CustomerID: "cust-1", DeviceID: "AABBCC"}
}

type fakeJournal struct {
	events    []journal.Event
	appendErr error
}

func (f *fakeJournal) Append(_ context.Context, e journal.Event) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.events = append(f.events, e)
	return nil
}
func (f *fakeJournal) List(context.Context, journal.Filter) ([]journal.Event, error) {
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.Get(logger.ErrorLevel)
}

func TestPublishStatus(t *testing.T) {
	bus := &fakeBus{connected: true}
	p := NewPublisher(bus, testLogger())

	if err := p.PublishStatus(true); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected one publication")
	}
	got := bus.published[0]
	if got.topic != "node/cust-1/AABBCC/status" || string(got.payload) != "online" || !got.retained {
		t.Fatalf("unexpected publication: %+v", got)
	}

	if err := p.PublishStatus(false); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if string(bus.published[1].payload) != "offline" {
		t.Fatalf("offline token wrong: %s", bus.published[1].payload)
	}
}

func TestPublishTelemetry(t *testing.T) {
	bus := &fakeBus{connected: true}
	p := NewPublisher(bus, testLogger())

	err := p.PublishTelemetry(models.Telemetry{
		DeviceID: "AABBCC",
		ACMode:   models.ModeCool,
		RSSI:     -55,
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	got := bus.published[0]
	if got.topic != "node/cust-1/AABBCC/telemetry" || !got.retained {
		t.Fatalf("unexpected publication: %+v", got)
	}
	var doc map[string]any
	if err := json.Unmarshal(got.payload, &doc); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if doc["device_id"] != "AABBCC" || doc["ac_mode"] != "cool" || doc["rssi"] != float64(-55) {
		t.Fatalf("unexpected document: %v", doc)
	}
}

func TestReport_PublishesAndJournals(t *testing.T) {
	bus := &fakeBus{connected: true}
	j := &fakeJournal{}
	r := NewReporter(bus, j, testLogger())

	r.Report(context.Background(), CategoryIR, "transmit failed")

	if len(j.events) != 1 || j.events[0].Type != journal.TypeError {
		t.Fatalf("journal entry missing: %+v", j.events)
	}
	if len(bus.published) != 1 {
		t.Fatalf("error report not published")
	}
	var rep models.ErrorReport
	if err := json.Unmarshal(bus.published[0].payload, &rep); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if rep.Category != CategoryIR || rep.Message != "transmit failed" || rep.Origin != models.ErrorOrigin {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestReport_OfflineIsJournalOnly(t *testing.T) {
	bus := &fakeBus{connected: false}
	j := &fakeJournal{}
	r := NewReporter(bus, j, testLogger())

	r.Report(context.Background(), CategoryWiFi, "link lost")

	if len(j.events) != 1 {
		t.Fatalf("journal entry missing")
	}
	if len(bus.published) != 0 {
		t.Fatalf("must not publish without a session")
	}
}

func TestReport_NeverPanicsOnFailures(t *testing.T) {
	bus := &fakeBus{connected: true, publishErr: errors.New("broker gone")}
	j := &fakeJournal{appendErr: errors.New("db locked")}
	r := NewReporter(bus, j, testLogger())

	// both sinks failing must not halt the caller
	r.Report(context.Background(), CategoryMQTT, "still alive")
}
