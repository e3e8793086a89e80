package handlers

import (
	"net/http"

	request "barberia_citas/internal/adapter/http/dto/request"
	"barberia_citas/internal/infrastructure/notifications"
	"barberia_citas/pkg"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives delivery callbacks from the WhatsApp provider.
//
// Providers retry aggressively on anything but a 2xx, so this handler always
// answers 200 once the payload decodes, and deduplicates retried events.

type WebhookHandler struct {
	deduper *notifications.EventDeduper
}

func NewWebhookHandler(deduper *notifications.EventDeduper) *WebhookHandler {
	return &WebhookHandler{deduper: deduper}
}

func (h *WebhookHandler) ReceiveWhatsApp(c *gin.Context) {
	var payload request.WhatsAppWebhookRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid webhook payload", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	logger := pkg.GetLogger().Sugar()
	if h.deduper.Seen(payload.EventID) {
		logger.Infow("evento de webhook repetido, ignorado", "event_id", payload.EventID)
		c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
		return
	}

	logger.Infow("evento de webhook recibido", "event_id", payload.EventID, "from", payload.From)
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
