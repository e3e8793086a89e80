package repository

import (
	"context"
	"errors"
	"fmt"

	"barberia_citas/internal/domain/entities"
	"barberia_citas/internal/usecase/interfaces"
	"barberia_citas/pkg"
)

// ErrBackendUnavailable means both storage backends failed. It must reach the
// caller: an outage must never be dressed up as "no reservations".
var ErrBackendUnavailable = errors.New("reservation backends unavailable")

// FallbackReservationRepository composes the remote store (primary) with the
// local log (secondary): every operation tries the primary and retries against
// the secondary on any failure, including timeouts.
//
// The two backends are deliberately NOT kept in sync. A write that lands on
// the primary is never mirrored to the secondary, so degraded reads can be
// stale or partial. That is an availability-over-consistency tradeoff: the
// barberia keeps taking bookings through an outage.
type FallbackReservationRepository struct {
	primary   interfaces.IReservationRepository
	secondary interfaces.IReservationRepository
}

var _ interfaces.IReservationRepository = (*FallbackReservationRepository)(nil)

func NewFallbackReservationRepository(primary, secondary interfaces.IReservationRepository) *FallbackReservationRepository {
	return &FallbackReservationRepository{primary: primary, secondary: secondary}
}

func (r *FallbackReservationRepository) ListAll(ctx context.Context) ([]entities.Reservation, error) {
	out, err := r.primary.ListAll(ctx)
	if err == nil {
		return out, nil
	}
	r.warn("ListAll", err)

	out, err2 := r.secondary.ListAll(ctx)
	if err2 != nil {
		return nil, bothFailed("ListAll", err, err2)
	}
	return out, nil
}

func (r *FallbackReservationRepository) Append(ctx context.Context, res entities.Reservation) (entities.Reservation, error) {
	out, err := r.primary.Append(ctx, res)
	if err == nil {
		return out, nil
	}
	r.warn("Append", err)

	out, err2 := r.secondary.Append(ctx, res)
	if err2 != nil {
		return entities.Reservation{}, bothFailed("Append", err, err2)
	}
	return out, nil
}

func (r *FallbackReservationRepository) UpdateStatus(ctx context.Context, id string, status entities.ReservationStatus) (entities.Reservation, error) {
	out, err := r.primary.UpdateStatus(ctx, id, status)
	if err == nil {
		return out, nil
	}
	r.warn("UpdateStatus", err)

	out, err2 := r.secondary.UpdateStatus(ctx, id, status)
	if err2 != nil {
		return entities.Reservation{}, bothFailed("UpdateStatus", err, err2)
	}
	return out, nil
}

func (r *FallbackReservationRepository) warn(op string, err error) {
	pkg.GetLogger().Sugar().Warnw("almacen primario fallo, usando respaldo local", "op", op, "err", err)
}

func bothFailed(op string, primaryErr, secondaryErr error) error {
	return fmt.Errorf("%w: %s: primary: %v; secondary: %v", ErrBackendUnavailable, op, primaryErr, secondaryErr)
}
