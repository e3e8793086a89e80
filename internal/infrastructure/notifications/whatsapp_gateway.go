package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"barberia_citas/internal/usecase/interfaces"
	"barberia_citas/pkg"
)

var ErrMissingWhatsAppAPIURL = errors.New("missing WHATSAPP_API_URL")
var ErrWhatsAppGatewayNotConfigured = errors.New("whatsapp gateway not configured")

const defaultSendTimeout = 5 * time.Second

// WhatsAppGateway delivers booking confirmations and cancellations through an
// external WhatsApp HTTP provider. In mock mode every send succeeds locally
// and is only logged, which is how local and CI environments run.
type WhatsAppGateway struct {
	hc       *http.Client
	apiURL   string
	token    string
	mockMode bool
}

var _ interfaces.INotificationGateway = (*WhatsAppGateway)(nil)

func NewWhatsAppGateway(apiURL, token string) (*WhatsAppGateway, error) {
	if isNotificationMockEnabled() {
		pkg.GetLogger().Sugar().Infow("notificaciones en modo mock")
		return &WhatsAppGateway{mockMode: true}, nil
	}

	if apiURL == "" {
		return nil, ErrMissingWhatsAppAPIURL
	}

	return &WhatsAppGateway{
		hc:     &http.Client{Timeout: defaultSendTimeout},
		apiURL: strings.TrimRight(apiURL, "/"),
		token:  token,
	}, nil
}

type sendMessageRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

func (g *WhatsAppGateway) Send(ctx context.Context, destination, text string) error {
	if g != nil && g.mockMode {
		pkg.GetLogger().Sugar().Infow("mensaje mock enviado", "destino", destination, "texto", text)
		return nil
	}
	if g == nil || g.hc == nil {
		return ErrWhatsAppGatewayNotConfigured
	}

	payload, err := json.Marshal(sendMessageRequest{To: destination, Body: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func isNotificationMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("WHATSAPP_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
