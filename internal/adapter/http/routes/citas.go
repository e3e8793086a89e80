package routes

import (
	"barberia_citas/internal/adapter/http/handlers"
	"barberia_citas/internal/adapter/http/middleware"
	"barberia_citas/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	PathCitas     = "/citas"
	PathHoras     = "/horas"
	PathServicios = "/servicios"
	PathBarbero   = "/barbero"
	PathWebhooks  = "/webhooks"
)

func addCitasRoutes(
	rg *gin.RouterGroup,
	auth usecase.IProviderAuthUseCase,
	bookingHandler *handlers.BookingHandler,
	barberoHandler *handlers.BarberoHandler,
	webhookHandler *handlers.WebhookHandler,
) {
	barberoOnly := middleware.BarberoAuth(auth)

	citas := rg.Group(PathCitas)
	{
		citas.POST("", bookingHandler.CreateBooking)
		citas.GET("", bookingHandler.ListByClave)
		citas.GET("/todas", barberoOnly, barberoHandler.Agenda)
		citas.PATCH("/:id/cancelar", middleware.BarberoAuthOptional(auth), bookingHandler.CancelBooking)
		citas.PATCH("/:id/atender", barberoOnly, barberoHandler.MarkFulfilled)
	}

	rg.GET(PathHoras, bookingHandler.AvailableSlots)
	rg.GET(PathServicios, bookingHandler.ServiceCatalog)

	barbero := rg.Group(PathBarbero)
	{
		barbero.POST("/login", barberoHandler.Login)
	}

	webhooks := rg.Group(PathWebhooks)
	{
		webhooks.POST("/whatsapp", webhookHandler.ReceiveWhatsApp)
	}
}
