package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWhatsAppGateway_Send(t *testing.T) {
	var got sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/messages" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("missing bearer token")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	gw, err := NewWhatsAppGateway(srv.URL, "test-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := gw.Send(context.Background(), "50688880000", "Cita confirmada"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if got.To != "50688880000" || got.Body != "Cita confirmada" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestWhatsAppGateway_SendProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	gw, err := NewWhatsAppGateway(srv.URL, "test-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := gw.Send(context.Background(), "50688880000", "hola"); err == nil {
		t.Fatalf("a non-success status must surface as an error")
	}
}

func TestWhatsAppGateway_MissingURL(t *testing.T) {
	if _, err := NewWhatsAppGateway("", "token"); err != ErrMissingWhatsAppAPIURL {
		t.Fatalf("expected ErrMissingWhatsAppAPIURL, got %v", err)
	}
}

func TestWhatsAppGateway_MockMode(t *testing.T) {
	t.Setenv("WHATSAPP_MOCK", "true")
	gw, err := NewWhatsAppGateway("", "")
	if err != nil {
		t.Fatalf("mock mode must not require configuration: %v", err)
	}
	if err := gw.Send(context.Background(), "50688880000", "hola"); err != nil {
		t.Fatalf("mock send must succeed: %v", err)
	}
}

func TestEventDeduper_Seen(t *testing.T) {
	d := NewEventDeduper(time.Minute, 100)

	if d.Seen("evt-1") {
		t.Fatalf("first sighting must not count as seen")
	}
	if !d.Seen("evt-1") {
		t.Fatalf("repeat within ttl must count as seen")
	}
	if d.Seen("evt-2") {
		t.Fatalf("a different id must not count as seen")
	}
	if d.Seen("") {
		t.Fatalf("an empty id is never deduplicated")
	}
}

func TestEventDeduper_TTLExpiry(t *testing.T) {
	d := NewEventDeduper(time.Minute, 100)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return base }

	d.Seen("evt-1")
	d.now = func() time.Time { return base.Add(2 * time.Minute) }
	if d.Seen("evt-1") {
		t.Fatalf("an expired entry must be forgotten")
	}
}

func TestEventDeduper_CapacityEvictsOldest(t *testing.T) {
	d := NewEventDeduper(time.Hour, 2)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	d.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	d.Seen("evt-1")
	d.Seen("evt-2")
	d.Seen("evt-3") // evicts evt-1

	if d.Seen("evt-1") {
		t.Fatalf("the oldest entry must have been evicted")
	}
	if !d.Seen("evt-3") {
		t.Fatalf("recent entries must survive the eviction")
	}
}
