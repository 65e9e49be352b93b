package detector

import (
	"errors"
	"testing"

	"acnode/internal/catalog"
	"acnode/internal/logger"
	"acnode/internal/models"
)

type fakeTransmitter struct {
	supported map[catalog.Protocol]bool
	err       error
	sent      []catalog.Protocol
}

func (f *fakeTransmitter) Supported(p catalog.Protocol) bool { return f.supported[p] }
func (f *fakeTransmitter) Transmit(p catalog.Protocol, _ models.ACState) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, p)
	return nil
}

func testLogger() *logger.Logger {
	return logger.Get(logger.ErrorLevel)
}

func TestStart_SkipsUnsupportedCandidates(t *testing.T) {
	tx := &fakeTransmitter{supported: map[catalog.Protocol]bool{
		"DAIKIN2":   true,
		"DAIKIN128": true,
	}}
	d := New(tx, testLogger())

	p, err := d.Start("daikin")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if p.Protocol != "DAIKIN2" {
		t.Fatalf("first testable candidate = %q, want DAIKIN2", p.Protocol)
	}
	if p.Total != 2 {
		t.Fatalf("total = %d, want 2", p.Total)
	}
	if len(tx.sent) != 1 || tx.sent[0] != "DAIKIN2" {
		t.Fatalf("test command not fired for first candidate: %v", tx.sent)
	}
}

func TestStart_NoCandidates(t *testing.T) {
	d := New(&fakeTransmitter{supported: map[catalog.Protocol]bool{}}, testLogger())

	if _, err := d.Start("daikin"); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
	if _, err := d.Start("acme"); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("unknown brand: expected ErrNoCandidates, got %v", err)
	}
}

func TestConfirm_EndsSession(t *testing.T) {
	tx := &fakeTransmitter{supported: map[catalog.Protocol]bool{"LG": true}}
	d := New(tx, testLogger())

	if _, err := d.Start("lg"); err != nil {
		t.Fatalf("start: %v", err)
	}
	p, err := d.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if p != "LG" {
		t.Fatalf("confirmed %q, want LG", p)
	}
	if d.Active() {
		t.Fatalf("session must end on confirm")
	}
	if _, err := d.Confirm(); err == nil {
		t.Fatalf("confirm without a session must fail")
	}
}

func TestReject_AdvancesThenExhausts(t *testing.T) {
	tx := &fakeTransmitter{supported: map[catalog.Protocol]bool{
		"COOLIX":   true,
		"COOLIX48": true,
	}}
	d := New(tx, testLogger())

	first, err := d.Start("coolix")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if first.Protocol != "COOLIX" || first.Index != 0 {
		t.Fatalf("unexpected first prompt: %+v", first)
	}

	second, err := d.Reject()
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if second.Protocol != "COOLIX48" || second.Index != 1 {
		t.Fatalf("unexpected second prompt: %+v", second)
	}
	if len(tx.sent) != 2 {
		t.Fatalf("each candidate must fire a test command, sent %v", tx.sent)
	}

	if _, err := d.Reject(); !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if d.Active() {
		t.Fatalf("session must end on exhaustion")
	}
}

func TestStart_TransmitFailureEndsSession(t *testing.T) {
	tx := &fakeTransmitter{
		supported: map[catalog.Protocol]bool{"LG": true},
		err:       errors.New("device busy"),
	}
	d := New(tx, testLogger())

	if _, err := d.Start("lg"); err == nil {
		t.Fatalf("expected transmit error")
	}
	if d.Active() {
		t.Fatalf("failed test transmit must end the session")
	}
}

func TestFirstSupported(t *testing.T) {
	tx := &fakeTransmitter{supported: map[catalog.Protocol]bool{
		"DAIKIN64": true,
	}}
	d := New(tx, testLogger())

	p, err := d.FirstSupported("daikin")
	if err != nil {
		t.Fatalf("first supported: %v", err)
	}
	if p != "DAIKIN64" {
		t.Fatalf("got %q, want first transmittable candidate DAIKIN64", p)
	}
	if len(tx.sent) != 0 {
		t.Fatalf("skip-testing path must not transmit")
	}

	if _, err := d.FirstSupported("acme"); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestAbort(t *testing.T) {
	tx := &fakeTransmitter{supported: map[catalog.Protocol]bool{"LG": true}}
	d := New(tx, testLogger())
	if _, err := d.Start("lg"); err != nil {
		t.Fatalf("start: %v", err)
	}
	d.Abort()
	if d.Active() {
		t.Fatalf("abort must end the session")
	}
}
