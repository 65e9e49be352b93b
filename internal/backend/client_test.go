package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"acnode/internal/logger"
)

func testClient(url string) *Client {
	return NewClient(url, "test-secret", 2*time.Second, logger.Get(logger.ErrorLevel))
}

func TestValidateZone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/validate-zone" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("X-Device-Secret"); got != "test-secret" {
			t.Errorf("secret header = %q", got)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["customer_id"] != "cust-1" || body["zone_id"] != "zone-9" {
			t.Errorf("unexpected body: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"valid": true})
	}))
	defer srv.Close()

	valid, err := testClient(srv.URL).ValidateZone(context.Background(), "cust-1", "zone-9")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !valid {
		t.Fatalf("expected valid zone")
	}
}

func TestValidateZone_Invalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]bool{"valid": false})
	}))
	defer srv.Close()

	valid, err := testClient(srv.URL).ValidateZone(context.Background(), "cust-1", "zone-9")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if valid {
		t.Fatalf("expected invalid zone")
	}
}

func TestValidateZone_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).ValidateZone(context.Background(), "c", "z"); err == nil {
		t.Fatalf("expected error on non-200 status")
	}
}

func TestRegisterDevice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/customers/cust-1/devices" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var reg Registration
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if reg.DeviceID != "AABBCC" || reg.ACBrandProtocol != "DAIKIN" {
			t.Errorf("unexpected registration: %+v", reg)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := testClient(srv.URL).RegisterDevice(context.Background(), "cust-1", Registration{
		DeviceID:        "AABBCC",
		ZoneID:          "zone-9",
		ACBrandName:     "daikin",
		ACBrandProtocol: "DAIKIN",
		FirmwareVersion: "1.0.0",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
}

func TestRegisterDevice_Denied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("zone already has a device"))
	}))
	defer srv.Close()

	err := testClient(srv.URL).RegisterDevice(context.Background(), "cust-1", Registration{DeviceID: "AABBCC"})
	if err == nil {
		t.Fatalf("expected denial on non-201 status")
	}
}
