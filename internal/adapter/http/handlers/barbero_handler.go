package handlers

import (
	"errors"
	"net/http"

	request "barberia_citas/internal/adapter/http/dto/request"
	response "barberia_citas/internal/adapter/http/dto/response"
	"barberia_citas/internal/usecase"
	"barberia_citas/pkg"

	"github.com/gin-gonic/gin"
)

// BarberoHandler handles the barbero-side endpoints: login, full agenda and
// marking citas as attended.

type BarberoHandler struct {
	auth    usecase.IProviderAuthUseCase
	booking usecase.IBookingUseCase
}

func NewBarberoHandler(auth usecase.IProviderAuthUseCase, booking usecase.IBookingUseCase) *BarberoHandler {
	return &BarberoHandler{auth: auth, booking: booking}
}

// Login exchanges the shared secret for a session token.
func (h *BarberoHandler) Login(c *gin.Context) {
	var payload request.BarberoLoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid login payload", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	token, err := h.auth.Login(payload.Secreto)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			appErr := pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Invalid credentials", http.StatusUnauthorized)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		appErr := pkg.NewInternalError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.TokenResponse{Token: token})
}

// Agenda returns every reservation regardless of clave or estado.
func (h *BarberoHandler) Agenda(c *gin.Context) {
	reservations, err := h.booking.ListAll(c.Request.Context())
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromReservations(reservations))
}

// MarkFulfilled transitions a reservation to ATENDIDA.
func (h *BarberoHandler) MarkFulfilled(c *gin.Context) {
	fulfilled, err := h.booking.MarkFulfilled(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromReservation(fulfilled))
}
