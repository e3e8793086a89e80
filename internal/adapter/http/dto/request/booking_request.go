package request

import "strings"

// BookingRequest is the public payload to reserve a slot. Clave is optional:
// when absent the engine issues one and returns it in the response.
type BookingRequest struct {
	Cliente  string `json:"cliente" binding:"required"`
	Clave    string `json:"clave"`
	Barbero  string `json:"barbero" binding:"required"`
	Servicio string `json:"servicio" binding:"required"`
	Fecha    string `json:"fecha" binding:"required"`
	Hora     string `json:"hora" binding:"required"`
}

func (r BookingRequest) ResolveCliente() string {
	return strings.TrimSpace(r.Cliente)
}

type CancelBookingRequest struct {
	Clave string `json:"clave"`
}

type BarberoLoginRequest struct {
	Secreto string `json:"secreto" binding:"required"`
}

// WhatsAppWebhookRequest is the inbound event shape posted by the messaging
// provider. Only the fields the engine cares about are decoded.
type WhatsAppWebhookRequest struct {
	EventID string `json:"event_id" binding:"required"`
	From    string `json:"from"`
	Body    string `json:"body"`
}
