package middleware

import (
	"net/http"
	"strings"

	"barberia_citas/internal/usecase"
	"barberia_citas/pkg"

	"github.com/gin-gonic/gin"
)

// ContextKeyBarbero marks a request as authenticated with the barbero token.
// Handlers read it to bypass the clave ownership check.
const ContextKeyBarbero = "es_barbero"

// BarberoAuth validates the Bearer token issued by the login endpoint and
// flags the request as barbero-authenticated.
func BarberoAuth(auth usecase.IProviderAuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			appErr := pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid Authorization header", http.StatusUnauthorized)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if err := auth.Validate(token); err != nil {
			appErr := pkg.NewDomainErrorSimple("UNAUTHORIZED", "Invalid token", http.StatusUnauthorized)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}

		c.Set(ContextKeyBarbero, true)
		c.Next()
	}
}

// BarberoAuthOptional flags the request when a valid barbero token is present
// but lets anonymous requests through. Used on endpoints clients can also hit
// with their clave.
func BarberoAuthOptional(auth usecase.IProviderAuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			if err := auth.Validate(strings.TrimPrefix(header, "Bearer ")); err == nil {
				c.Set(ContextKeyBarbero, true)
			}
		}
		c.Next()
	}
}
