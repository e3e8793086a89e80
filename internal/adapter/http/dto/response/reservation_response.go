package response

import (
	"sort"

	"barberia_citas/internal/domain/entities"
)

type ReservationResponse struct {
	ID       string `json:"id"`
	Cliente  string `json:"cliente"`
	Clave    string `json:"clave"`
	Barbero  string `json:"barbero"`
	Servicio string `json:"servicio"`
	Precio   int    `json:"precio"`
	Fecha    string `json:"fecha"`
	Hora     string `json:"hora"`
	Estado   string `json:"estado"`
}

func FromReservation(r entities.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:       r.ID,
		Cliente:  r.Cliente,
		Clave:    r.Clave,
		Barbero:  r.Barbero,
		Servicio: r.Servicio,
		Precio:   r.Precio,
		Fecha:    r.Fecha,
		Hora:     r.Hora,
		Estado:   string(r.Estado),
	}
}

func FromReservations(rs []entities.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromReservation(r))
	}
	return out
}

type SlotsResponse struct {
	Fecha   string   `json:"fecha"`
	Barbero string   `json:"barbero"`
	Horas   []string `json:"horas"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ServiceResponse struct {
	Servicio string `json:"servicio"`
	Precio   int    `json:"precio"`
}

// FromServiceCatalog flattens the catalog into a name-sorted list.
func FromServiceCatalog(catalog map[string]int) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(catalog))
	for servicio, precio := range catalog {
		out = append(out, ServiceResponse{Servicio: servicio, Precio: precio})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Servicio < out[j].Servicio })
	return out
}
