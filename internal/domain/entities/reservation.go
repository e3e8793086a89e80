package entities

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ReservationStatus represents the lifecycle of a cita.
//
// Domain notes:
//   - ACTIVA is the only non-terminal state. A reservation leaves it exactly
//     once, either by cancellation or by the barbero marking it attended.
//   - Terminal records are kept for history; they never block a slot again.
type ReservationStatus string

const (
	ReservationStatusActiva    ReservationStatus = "ACTIVA"
	ReservationStatusCancelada ReservationStatus = "CANCELADA"
	ReservationStatusAtendida  ReservationStatus = "ATENDIDA"
)

// Legacy log files encode terminal states by overwriting the servicio field
// with one of these markers instead of carrying a status column.
const (
	LegacyMarkerCancelada = "CITA CANCELADA"
	LegacyMarkerAtendida  = "CITA ATENDIDA"
)

// IsTerminal reports whether no further transition is allowed.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusCancelada || s == ReservationStatusAtendida
}

// StatusFromLegacyMarker maps a servicio-field marker to its status.
func StatusFromLegacyMarker(servicio string) (ReservationStatus, bool) {
	switch servicio {
	case LegacyMarkerCancelada:
		return ReservationStatusCancelada, true
	case LegacyMarkerAtendida:
		return ReservationStatusAtendida, true
	}
	return "", false
}

// Reservation is the sole persisted entity: one booked slot with one barbero.
//
// Every field except Estado is frozen at creation time. Precio is derived from
// Servicio once and is not recomputed if the catalog changes later.
type Reservation struct {
	ID       string            `json:"id"`
	Cliente  string            `json:"cliente"`
	Clave    string            `json:"clave"`
	Barbero  string            `json:"barbero"`
	Servicio string            `json:"servicio"`
	Precio   int               `json:"precio"`
	Fecha    string            `json:"fecha"`
	Hora     string            `json:"hora"`
	Estado   ReservationStatus `json:"estado"`
}

// Occupies reports whether this reservation blocks the given slot.
// Hora comparison is by exact label match.
func (r Reservation) Occupies(barbero, fecha, hora string) bool {
	return r.Estado == ReservationStatusActiva &&
		r.Barbero == NormalizeBarbero(barbero) &&
		r.Fecha == fecha &&
		r.Hora == hora
}

// NormalizeBarbero collapses whitespace and title-cases the name so that
// " juan  PEREZ " and "Juan Perez" refer to the same barbero everywhere.
// Applied once at the model boundary; comparison sites must not re-normalize.
func NormalizeBarbero(name string) string {
	fields := strings.Fields(name)
	for i, f := range fields {
		lower := strings.ToLower(f)
		// Upcase the first rune, not the first byte: names like "ángel"
		// start with a multi-byte letter.
		first, size := utf8.DecodeRuneInString(lower)
		fields[i] = string(unicode.ToUpper(first)) + lower[size:]
	}
	return strings.Join(fields, " ")
}

// LooksLikePhone reports whether a client key is phone-shaped (a bare numeric
// string, optionally with a leading + and separator characters). Only
// phone-shaped keys receive WhatsApp confirmations.
func LooksLikePhone(clave string) bool {
	s := strings.TrimSpace(clave)
	s = strings.TrimPrefix(s, "+")
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '-':
			// separators are fine
		default:
			return false
		}
	}
	return digits >= 8
}
