package handlers

import (
	"errors"
	"net/http"

	request "barberia_citas/internal/adapter/http/dto/request"
	response "barberia_citas/internal/adapter/http/dto/response"
	"barberia_citas/internal/adapter/http/middleware"
	"barberia_citas/internal/adapter/persistence/repository"
	"barberia_citas/internal/domain/entities"
	"barberia_citas/internal/usecase"
	"barberia_citas/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidBookingPayload = pkg.NewDomainErrorSimple("INVALID_BOOKING_INPUT", "Invalid booking payload", http.StatusBadRequest)
)

// BookingHandler handles the public reservation endpoints.

type BookingHandler struct {
	usecase usecase.IBookingUseCase
}

func NewBookingHandler(uc usecase.IBookingUseCase) *BookingHandler {
	return &BookingHandler{usecase: uc}
}

// CreateBooking reserves a slot and returns the stored reservation, including
// the issued clave when the client did not provide one.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var payload request.BookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBookingPayload.HTTPStatus, errInvalidBookingPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.CreateBooking(c.Request.Context(),
		payload.ResolveCliente(), payload.Clave, payload.Barbero, payload.Servicio, payload.Fecha, payload.Hora)
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromReservation(created))
}

// ListByClave returns the reservations visible to one client key.
func (h *BookingHandler) ListByClave(c *gin.Context) {
	clave := c.Query("clave")
	if clave == "" {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Missing clave parameter", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	reservations, err := h.usecase.ListByClave(c.Request.Context(), clave)
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromReservations(reservations))
}

// CancelBooking transitions a reservation to CANCELADA. Clients must present
// the owning clave; a barbero-authenticated request skips that check.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id := c.Param("id")

	var payload request.CancelBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !c.GetBool(middleware.ContextKeyBarbero) {
		c.JSON(errInvalidBookingPayload.HTTPStatus, errInvalidBookingPayload.ToHTTPError())
		return
	}

	cancelled, err := h.usecase.CancelBooking(c.Request.Context(), id, payload.Clave, c.GetBool(middleware.ContextKeyBarbero))
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromReservation(cancelled))
}

// AvailableSlots returns the free horas for a barbero on a date.
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	fecha := c.Query("fecha")
	barbero := c.Query("barbero")

	horas, err := h.usecase.AvailableSlots(c.Request.Context(), fecha, barbero)
	if err != nil {
		appErr := mapBookingError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.SlotsResponse{Fecha: fecha, Barbero: barbero, Horas: horas})
}

// ServiceCatalog returns the bookable services with their prices.
func (h *BookingHandler) ServiceCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromServiceCatalog(entities.Services()))
}

func mapBookingError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCliente),
		errors.Is(err, usecase.ErrInvalidBarbero),
		errors.Is(err, usecase.ErrInvalidServicio),
		errors.Is(err, usecase.ErrInvalidFecha),
		errors.Is(err, usecase.ErrInvalidHora):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrSlotConflict):
		return pkg.NewDomainErrorSimple("SLOT_CONFLICT", "Slot already reserved", http.StatusConflict)
	case errors.Is(err, usecase.ErrReservationNotFound):
		return pkg.NewDomainErrorSimple("CITA_NOT_FOUND", "Reservation not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Clave does not match this reservation", http.StatusForbidden)
	case errors.Is(err, repository.ErrBackendUnavailable):
		return pkg.NewDomainError("SERVICE_UNAVAILABLE", "Reservation storage temporarily unavailable", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewInternalError(err)
	}
}
