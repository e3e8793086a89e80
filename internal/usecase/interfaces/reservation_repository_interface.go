package interfaces

import (
	"context"

	"barberia_citas/internal/domain/entities"
)

//go:generate mockgen -source=reservation_repository_interface.go -destination=mocks/reservation_repository_mock.go -package=mocks

// IReservationRepository is the contract shared by every reservation store:
// the remote citas collection, the local log, and the fallback composition.
//
//   - ListAll returns every reservation of any status, unfiltered.
//   - Append durably records a new ACTIVA reservation. Retrying with the same
//     id must not create duplicates on a keyed backend; the local log appends
//     unconditionally and is the weaker fallback.
//   - UpdateStatus transitions one reservation by id. Backends that can
//     distinguish an unknown id return a zero-value Reservation with a nil
//     error; a non-nil error always means the backend itself failed.
type IReservationRepository interface {
	ListAll(ctx context.Context) ([]entities.Reservation, error)
	Append(ctx context.Context, r entities.Reservation) (entities.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status entities.ReservationStatus) (entities.Reservation, error)
}
