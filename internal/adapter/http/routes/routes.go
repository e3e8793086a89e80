package routes

import (
	"os"
	"time"

	_ "barberia_citas/docs" // This will be auto-generated
	"barberia_citas/internal/adapter/http/handlers"
	"barberia_citas/internal/adapter/http/middleware"
	repository2 "barberia_citas/internal/adapter/persistence/repository"
	"barberia_citas/internal/domain/schedule"
	"barberia_citas/internal/infrastructure/database"
	"barberia_citas/internal/infrastructure/notifications"
	"barberia_citas/internal/usecase"
	"barberia_citas/internal/usecase/interfaces"
	"barberia_citas/pkg"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const defaultPort = "8080"
const defaultTimezone = "America/Costa_Rica"

const webhookDedupTTL = 10 * time.Minute
const webhookDedupMaxEntries = 1000

// Run will start the server
func Run() {
	logger := pkg.GetLogger().Sugar()

	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if err := router.Run(":" + port); err != nil {
		logger.Fatalw("fallo al iniciar el servidor", "err", err)
	}
}

func getRoutes() {
	logger := pkg.GetLogger().Sugar()

	supabase := database.ConnectSupabase()
	remoteRepo := repository2.NewSupabaseReservationRepository(supabase)
	localRepo := repository2.NewLogfileReservationRepository()
	store := repository2.NewFallbackReservationRepository(remoteRepo, localRepo)

	loc, err := time.LoadLocation(getenvDefault("BARBERIA_TZ", defaultTimezone))
	if err != nil {
		logger.Fatalw("zona horaria invalida", "tz", os.Getenv("BARBERIA_TZ"), "err", err)
	}
	calendar := schedule.NewCalendar(loc)

	var gateway interfaces.INotificationGateway
	waGateway, err := notifications.NewWhatsAppGateway(os.Getenv("WHATSAPP_API_URL"), os.Getenv("WHATSAPP_TOKEN"))
	if err != nil {
		logger.Warnw("pasarela de whatsapp no configurada, notificaciones desactivadas", "err", err)
	} else {
		gateway = waGateway
	}

	bookingUseCase := usecase.NewBookingUseCase(store, gateway, calendar, os.Getenv("BARBERO_PHONE"))
	authUseCase := usecase.NewProviderAuthUseCase(os.Getenv("BARBERO_SECRET"), os.Getenv("JWT_SECRET"))

	bookingHandler := handlers.NewBookingHandler(bookingUseCase)
	barberoHandler := handlers.NewBarberoHandler(authUseCase, bookingUseCase)
	webhookHandler := handlers.NewWebhookHandler(notifications.NewEventDeduper(webhookDedupTTL, webhookDedupMaxEntries))

	// Rutas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addCitasRoutes(v1, authUseCase, bookingHandler, barberoHandler, webhookHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RateLimit())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		pkg.GetLogger().Sugar().Errorw("recuperado de un panic", "panic", recovered)
		c.AbortWithStatus(500)
	}))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
