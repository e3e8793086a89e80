package main

import (
	_ "barberia_citas/docs"
	"barberia_citas/internal/adapter/http/routes"
	"barberia_citas/pkg"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Barberia Citas API
// @version         1.0
// @description     Reservation engine for a barbershop (citas + horas) backed by Supabase with a local log fallback.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	pkg.InitializeLogger()
	routes.Run()
}
