package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"barberia_citas/internal/domain/entities"
	"barberia_citas/internal/infrastructure/database"
	"barberia_citas/internal/usecase/interfaces"
)

const defaultCitasTableName = "citas"

type citaRow struct {
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

// SupabaseReservationRepository is the remote backend: one REST collection
// named citas with list, insert and filtered status updates.
//
// It is the primary store. Callers compose it behind the fallback adapter and
// must treat any error here (including timeouts) as "try the local log".
type SupabaseReservationRepository struct {
	client *database.SupabaseClient
	table  string
}

var _ interfaces.IReservationRepository = (*SupabaseReservationRepository)(nil)

func NewSupabaseReservationRepository(client *database.SupabaseClient) *SupabaseReservationRepository {
	return &SupabaseReservationRepository{
		client: client,
		table:  getenvDefault("CITAS_TABLE", defaultCitasTableName),
	}
}

func (r *SupabaseReservationRepository) ListAll(ctx context.Context) ([]entities.Reservation, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "fecha.asc,hora.asc")

	var rows []citaRow
	status, err := r.client.Do(ctx, http.MethodGet, r.table, query, "", nil, &rows)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("citas list failed (status=%d)", status)
	}

	out := make([]entities.Reservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromCitaRow(row))
	}
	return out, nil
}

// Append inserts the reservation. A retry with the same id is ignored by the
// store instead of creating a duplicate row.
func (r *SupabaseReservationRepository) Append(ctx context.Context, res entities.Reservation) (entities.Reservation, error) {
	query := url.Values{}
	query.Set("on_conflict", "id")

	var rows []citaRow
	status, err := r.client.Do(ctx, http.MethodPost, r.table, query,
		"resolution=ignore-duplicates,return=representation", toCitaRow(res), &rows)
	if err != nil {
		return entities.Reservation{}, err
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return entities.Reservation{}, fmt.Errorf("citas insert failed (status=%d)", status)
	}
	if len(rows) == 0 {
		// Duplicate id ignored: the original insert already succeeded.
		return res, nil
	}
	return fromCitaRow(rows[0]), nil
}

// UpdateStatus patches only the estado column of the matching row. An unknown
// id yields a zero-value Reservation with a nil error.
func (r *SupabaseReservationRepository) UpdateStatus(ctx context.Context, id string, newStatus entities.ReservationStatus) (entities.Reservation, error) {
	query := url.Values{}
	query.Set("id", "eq."+id)

	body := map[string]string{"estado": string(newStatus)}
	var rows []citaRow
	status, err := r.client.Do(ctx, http.MethodPatch, r.table, query,
		"return=representation", body, &rows)
	if err != nil {
		return entities.Reservation{}, err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return entities.Reservation{}, fmt.Errorf("citas update failed (status=%d)", status)
	}
	if len(rows) == 0 {
		return entities.Reservation{}, nil
	}
	return fromCitaRow(rows[0]), nil
}

func toCitaRow(r entities.Reservation) citaRow {
	return citaRow{
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

func fromCitaRow(row citaRow) entities.Reservation {
	estado := entities.ReservationStatus(row.Estado)
	if estado != entities.ReservationStatusActiva && !estado.IsTerminal() {
		estado = entities.ReservationStatusActiva
	}
	return entities.Reservation{
		ID:       row.ID,
		Cliente:  row.Cliente,
		Clave:    row.Clave,
		Barbero:  entities.NormalizeBarbero(row.Barbero),
		Servicio: row.Servicio,
		Precio:   row.Precio,
		Fecha:    row.Fecha,
		Hora:     row.Hora,
		Estado:   estado,
	}
}
