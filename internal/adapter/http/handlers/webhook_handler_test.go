package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"barberia_citas/internal/infrastructure/notifications"

	"github.com/gin-gonic/gin"
)

func webhookRouter() *gin.Engine {
	h := NewWebhookHandler(notifications.NewEventDeduper(time.Minute, 100))
	r := gin.New()
	r.POST("/v1/webhooks/whatsapp", h.ReceiveWhatsApp)
	return r
}

func postWebhook(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/whatsapp", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWebhookHandler_ReceiveWhatsApp(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		w := postWebhook(webhookRouter(), `{"from":"50688880000"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("first delivery is received", func(t *testing.T) {
		w := postWebhook(webhookRouter(), `{"event_id":"evt-1","from":"50688880000","body":"ok"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if got["status"] != "received" {
			t.Fatalf("unexpected body: %+v", got)
		}
	})

	t.Run("provider retries are acknowledged but flagged", func(t *testing.T) {
		r := webhookRouter()
		if w := postWebhook(r, `{"event_id":"evt-2"}`); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}

		w := postWebhook(r, `{"event_id":"evt-2"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("a retry must still be acknowledged, got %d", w.Code)
		}
		var got map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if got["status"] != "duplicate" {
			t.Fatalf("unexpected body: %+v", got)
		}
	})
}
