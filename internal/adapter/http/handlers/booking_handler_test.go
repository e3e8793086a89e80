package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"barberia_citas/internal/adapter/http/handlers/mocks"
	"barberia_citas/internal/adapter/http/middleware"
	"barberia_citas/internal/adapter/persistence/repository"
	"barberia_citas/internal/domain/entities"
	"barberia_citas/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func activa(id string) entities.Reservation {
	return entities.Reservation{
		ID:       id,
		Cliente:  "Ana",
		Clave:    "key1",
		Barbero:  "Juan",
		Servicio: "Corte de cabello",
		Precio:   5000,
		Fecha:    "2025-06-10",
		Hora:     "9:00am",
		Estado:   entities.ReservationStatusActiva,
	}
}

func TestBookingHandler_CreateBooking(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.POST("/v1/citas", h.CreateBooking)

		req := httptest.NewRequest(http.MethodPost, "/v1/citas", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("slot conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.POST("/v1/citas", h.CreateBooking)

		uc.EXPECT().CreateBooking(gomock.Any(), "Ana", "", "Juan", "Corte de cabello", "2025-06-10", "9:00am").
			Return(entities.Reservation{}, usecase.ErrSlotConflict)

		body := `{"cliente":"Ana","barbero":"Juan","servicio":"Corte de cabello","fecha":"2025-06-10","hora":"9:00am"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/citas", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("storage outage maps to 503", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.POST("/v1/citas", h.CreateBooking)

		uc.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(entities.Reservation{}, repository.ErrBackendUnavailable)

		body := `{"cliente":"Ana","barbero":"Juan","servicio":"Corte de cabello","fecha":"2025-06-10","hora":"9:00am"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/citas", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("success returns the issued clave", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.POST("/v1/citas", h.CreateBooking)

		created := activa("r1")
		created.Clave = "generada-123"
		uc.EXPECT().CreateBooking(gomock.Any(), "Ana", "", "Juan", "Corte de cabello", "2025-06-10", "9:00am").
			Return(created, nil)

		body := `{"cliente":"Ana","barbero":"Juan","servicio":"Corte de cabello","fecha":"2025-06-10","hora":"9:00am"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/citas", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if got["clave"] != "generada-123" {
			t.Fatalf("the issued clave must be returned: %+v", got)
		}
	})
}

func TestBookingHandler_ListByClave(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing clave", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.GET("/v1/citas", h.ListByClave)

		req := httptest.NewRequest(http.MethodGet, "/v1/citas", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.GET("/v1/citas", h.ListByClave)

		uc.EXPECT().ListByClave(gomock.Any(), "key1").Return([]entities.Reservation{activa("r1")}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/citas?clave=key1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if len(got) != 1 || got[0]["id"] != "r1" {
			t.Fatalf("unexpected listing: %+v", got)
		}
	})
}

func TestBookingHandler_CancelBooking(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("wrong clave is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.PATCH("/v1/citas/:id/cancelar", h.CancelBooking)

		uc.EXPECT().CancelBooking(gomock.Any(), "r1", "otra", false).
			Return(entities.Reservation{}, usecase.ErrForbidden)

		req := httptest.NewRequest(http.MethodPatch, "/v1/citas/r1/cancelar", bytes.NewBufferString(`{"clave":"otra"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.PATCH("/v1/citas/:id/cancelar", h.CancelBooking)

		uc.EXPECT().CancelBooking(gomock.Any(), "nope", "key1", false).
			Return(entities.Reservation{}, usecase.ErrReservationNotFound)

		req := httptest.NewRequest(http.MethodPatch, "/v1/citas/nope/cancelar", bytes.NewBufferString(`{"clave":"key1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.PATCH("/v1/citas/:id/cancelar", h.CancelBooking)

		cancelled := activa("r1")
		cancelled.Estado = entities.ReservationStatusCancelada
		uc.EXPECT().CancelBooking(gomock.Any(), "r1", "key1", false).Return(cancelled, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/citas/r1/cancelar", bytes.NewBufferString(`{"clave":"key1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("barbero session skips the clave check", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.PATCH("/v1/citas/:id/cancelar", func(c *gin.Context) {
			c.Set(middleware.ContextKeyBarbero, true)
		}, h.CancelBooking)

		cancelled := activa("r1")
		cancelled.Estado = entities.ReservationStatusCancelada
		uc.EXPECT().CancelBooking(gomock.Any(), "r1", "", true).Return(cancelled, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/citas/r1/cancelar", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestBookingHandler_ServiceCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	h := NewBookingHandler(mocks.NewMockIBookingUseCase(ctrl))

	r := gin.New()
	r.GET("/v1/servicios", h.ServiceCatalog)

	req := httptest.NewRequest(http.MethodGet, "/v1/servicios", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected the 4 catalog services, got %+v", got)
	}
	if got[0]["servicio"] != "Corte + barba" || got[0]["precio"] != float64(7000) {
		t.Fatalf("catalog must be name-sorted with prices: %+v", got)
	}
}

func TestBookingHandler_AvailableSlots(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid fecha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.GET("/v1/horas", h.AvailableSlots)

		uc.EXPECT().AvailableSlots(gomock.Any(), "10/06/2025", "Juan").Return(nil, usecase.ErrInvalidFecha)

		req := httptest.NewRequest(http.MethodGet, "/v1/horas?fecha=10%2F06%2F2025&barbero=Juan", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBookingUseCase(ctrl)
		h := NewBookingHandler(uc)

		r := gin.New()
		r.GET("/v1/horas", h.AvailableSlots)

		uc.EXPECT().AvailableSlots(gomock.Any(), "2025-06-10", "Juan").
			Return([]string{"9:00am", "9:30am"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/horas?fecha=2025-06-10&barbero=Juan", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		horas, ok := got["horas"].([]any)
		if !ok || len(horas) != 2 || horas[0] != "9:00am" {
			t.Fatalf("unexpected horas: %+v", got)
		}
	})
}
