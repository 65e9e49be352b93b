// Package store persists the node's two durable records, the
// provisioned configuration and the last commanded AC state, as small
// JSON documents.
//
// Load never fails the boot sequence: a missing, unreadable or corrupt
// record yields defaults. Save replaces the record atomically via a
// temp-file-then-rename so a power loss mid-write leaves either the old
// or the new document, never a torn one.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"acnode/internal/logger"
	"acnode/internal/models"
)

// ConfigStore is the durable record of network and provisioning identity.
type ConfigStore struct {
	doc documentStore
}

// NewConfigStore returns a store backed by the JSON document at path.
func NewConfigStore(path string, log *logger.Logger) *ConfigStore {
	return &ConfigStore{doc: documentStore{path: path, log: log}}
}

// Load reads the persisted configuration, or an empty Config if no
// readable record exists.
func (s *ConfigStore) Load() models.Config {
	var cfg models.Config
	if !s.doc.load(&cfg) {
		return models.Config{}
	}
	return cfg
}

// Save overwrites the configuration record.
func (s *ConfigStore) Save(cfg models.Config) error {
	return s.doc.save(cfg)
}

// Clear removes the configuration record (device reset).
func (s *ConfigStore) Clear() error {
	return s.doc.clear()
}

// StateStore is the durable record of the last successfully transmitted
// AC command.
type StateStore struct {
	doc documentStore
}

// NewStateStore returns a store backed by the JSON document at path.
func NewStateStore(path string, log *logger.Logger) *StateStore {
	return &StateStore{doc: documentStore{path: path, log: log}}
}

// Load reads the persisted operating state. Missing or corrupt records
// yield the default state.
func (s *StateStore) Load() models.ACState {
	var st models.ACState
	if !s.doc.load(&st) || !st.Valid() {
		return models.DefaultACState()
	}
	return st
}

// Save overwrites the operating-state record.
func (s *StateStore) Save(st models.ACState) error {
	return s.doc.save(st)
}

// Clear removes the operating-state record (device reset).
func (s *StateStore) Clear() error {
	return s.doc.clear()
}

// documentStore holds the shared read/replace mechanics for a single
// JSON document on disk.
type documentStore struct {
	path string
	log  *logger.Logger
}

// load reads and decodes the document into v. It returns false when no
// usable record exists; the condition is logged, never escalated.
func (d documentStore) load(v any) bool {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if !os.IsNotExist(err) && d.log != nil {
			d.log.Warnw("store record unreadable, using defaults", "path", d.path, "err", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		if d.log != nil {
			d.log.Warnw("store record corrupt, using defaults", "path", d.path, "err", err)
		}
		return false
	}
	return true
}

// save encodes v and atomically replaces the document on disk.
func (d documentStore) save(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record for %s: %w", d.path, err)
	}
	if dir := filepath.Dir(d.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store directory %s: %w", dir, err)
		}
	}
	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, d.path); err != nil {
		return fmt.Errorf("replace %s: %w", d.path, err)
	}
	return nil
}

// clear removes the document. A record that never existed is not an error.
func (d documentStore) clear() error {
	if err := os.Remove(d.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", d.path, err)
	}
	return nil
}
