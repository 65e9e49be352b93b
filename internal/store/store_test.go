package store

import (
	"os"
	"path/filepath"
	"testing"

	"acnode/internal/logger"
	"acnode/internal/models"
)

func testLogger() *logger.Logger {
	return logger.Get(logger.ErrorLevel)
}

func TestConfigStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := NewConfigStore(path, testLogger())

	cfg := models.Config{
		WiFiSSID:     "office",
		WiFiPassword: "secret",
		CustomerID:   "cust-1",
		ZoneID:       "zone-9",
		ACBrand:      "daikin",
		ACProtocol:   "DAIKIN",
	}
	if err := s.Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := s.Load()
	if got != cfg {
		t.Fatalf("loaded %+v, want %+v", got, cfg)
	}
}

func TestConfigStore_MissingFileYieldsEmpty(t *testing.T) {
	s := NewConfigStore(filepath.Join(t.TempDir(), "absent.json"), testLogger())
	got := s.Load()
	if got != (models.Config{}) {
		t.Fatalf("expected empty config, got %+v", got)
	}
	if got.HasNetwork() || got.Complete() {
		t.Fatalf("empty config must not be provisioned")
	}
}

func TestConfigStore_CorruptFileYieldsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	s := NewConfigStore(path, testLogger())
	if got := s.Load(); got != (models.Config{}) {
		t.Fatalf("expected empty config, got %+v", got)
	}
}

func TestConfigStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := NewConfigStore(path, testLogger())
	if err := s.Save(models.Config{WiFiSSID: "x"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("record still exists after clear")
	}
	// clearing an absent record is not an error
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestStateStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := NewStateStore(path, testLogger())

	st := models.ACState{Power: true, Mode: models.ModeHeat, TemperatureC: 22, FanSpeed: models.FanHigh}
	if err := s.Save(st); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := s.Load(); got != st {
		t.Fatalf("loaded %+v, want %+v", got, st)
	}
}

func TestStateStore_InvalidRecordYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{"power":true,"mode":"plasma","temperature_c":99}`), 0o600); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	s := NewStateStore(path, testLogger())
	if got := s.Load(); got != models.DefaultACState() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestStateStore_MissingFileYieldsDefaults(t *testing.T) {
	s := NewStateStore(filepath.Join(t.TempDir(), "absent.json"), testLogger())
	if got := s.Load(); got != models.DefaultACState() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestSave_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	s := NewStateStore(path, testLogger())
	if err := s.Save(models.DefaultACState()); err != nil {
		t.Fatalf("save into missing directory: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("record not written: %v", err)
	}
}
