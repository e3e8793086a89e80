package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"barberia_citas/internal/domain/entities"
	"barberia_citas/internal/domain/schedule"
	"barberia_citas/internal/usecase/interfaces"
	"barberia_citas/pkg"

	"github.com/google/uuid"
)

var (
	ErrInvalidCliente      = errors.New("invalid cliente")
	ErrInvalidBarbero      = errors.New("invalid barbero")
	ErrInvalidServicio     = errors.New("invalid servicio")
	ErrInvalidFecha        = errors.New("invalid fecha")
	ErrInvalidHora         = errors.New("invalid hora")
	ErrSlotConflict        = errors.New("slot already booked")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrForbidden           = errors.New("clave does not own this reservation")
)

// IBookingUseCase exposes the reservation state machine.
//
// Lifecycle: ACTIVA -> CANCELADA | ATENDIDA, both terminal. At most one ACTIVA
// reservation may exist per (barbero, fecha, hora); terminal records free the
// slot for reuse.
type IBookingUseCase interface {
	CreateBooking(ctx context.Context, cliente, clave, barbero, servicio, fecha, hora string) (entities.Reservation, error)
	CancelBooking(ctx context.Context, id, clave string, asBarbero bool) (entities.Reservation, error)
	MarkFulfilled(ctx context.Context, id string) (entities.Reservation, error)
	AvailableSlots(ctx context.Context, fecha, barbero string) ([]string, error)
	ListByClave(ctx context.Context, clave string) ([]entities.Reservation, error)
	ListAll(ctx context.Context) ([]entities.Reservation, error)
}

type BookingUseCase struct {
	repo     interfaces.IReservationRepository
	gateway  interfaces.INotificationGateway
	calendar *schedule.Calendar

	// barberoPhone receives the barbero-side notification for every booking
	// and cancellation. Empty disables that side entirely.
	barberoPhone string

	// slotLocks serialises conflict-check + append per slot key. This closes
	// the read-then-write race between concurrent bookings for the same slot
	// within this process; cross-process callers are not coordinated.
	mu        sync.Mutex
	slotLocks map[string]*sync.Mutex
}

var _ IBookingUseCase = (*BookingUseCase)(nil)

func NewBookingUseCase(
	repo interfaces.IReservationRepository,
	gateway interfaces.INotificationGateway,
	calendar *schedule.Calendar,
	barberoPhone string,
) *BookingUseCase {
	return &BookingUseCase{
		repo:         repo,
		gateway:      gateway,
		calendar:     calendar,
		barberoPhone: strings.TrimSpace(barberoPhone),
		slotLocks:    make(map[string]*sync.Mutex),
	}
}

func (u *BookingUseCase) CreateBooking(ctx context.Context, cliente, clave, barbero, servicio, fecha, hora string) (entities.Reservation, error) {
	cliente = strings.TrimSpace(cliente)
	if cliente == "" {
		return entities.Reservation{}, ErrInvalidCliente
	}
	barbero = entities.NormalizeBarbero(barbero)
	if barbero == "" {
		return entities.Reservation{}, ErrInvalidBarbero
	}
	servicio = strings.TrimSpace(servicio)
	if servicio == "" {
		return entities.Reservation{}, ErrInvalidServicio
	}
	clave = strings.TrimSpace(clave)
	if clave == "" {
		// Anonymous callers still get a token so they can manage the cita.
		clave = uuid.NewString()
	}

	bookable, err := u.calendar.Contains(fecha, hora)
	if err != nil {
		return entities.Reservation{}, ErrInvalidFecha
	}
	if !bookable {
		return entities.Reservation{}, ErrInvalidHora
	}

	lock := u.slotLock(barbero, fecha, hora)
	lock.Lock()
	defer lock.Unlock()

	existing, err := u.repo.ListAll(ctx)
	if err != nil {
		return entities.Reservation{}, err
	}
	for _, r := range existing {
		if r.Occupies(barbero, fecha, hora) {
			return entities.Reservation{}, ErrSlotConflict
		}
	}

	if !entities.KnownService(servicio) {
		// Unknown services price at zero on purpose; see the catalog notes.
		pkg.GetLogger().Sugar().Warnw("servicio fuera del catalogo, precio 0", "servicio", servicio)
	}

	r := entities.Reservation{
		ID:       uuid.NewString(),
		Cliente:  cliente,
		Clave:    clave,
		Barbero:  barbero,
		Servicio: servicio,
		Precio:   entities.PriceForService(servicio),
		Fecha:  fecha,
		Hora:   hora,
		Estado: entities.ReservationStatusActiva,
	}

	created, err := u.repo.Append(ctx, r)
	if err != nil {
		return entities.Reservation{}, err
	}

	u.notify(ctx, created, fmt.Sprintf("Cita agendada: %s con %s el %s a las %s (%s, ₡%d)",
		created.Cliente, created.Barbero, created.Fecha, created.Hora, created.Servicio, created.Precio))
	return created, nil
}

// CancelBooking transitions a reservation to CANCELADA.
//
// Only the owning clave may cancel; asBarbero bypasses ownership for an
// authenticated barbero session. Cancelling an already-terminal reservation is
// a no-op success.
func (u *BookingUseCase) CancelBooking(ctx context.Context, id, clave string, asBarbero bool) (entities.Reservation, error) {
	r, err := u.getByID(ctx, id)
	if err != nil {
		return entities.Reservation{}, err
	}
	if !asBarbero && r.Clave != strings.TrimSpace(clave) {
		return entities.Reservation{}, ErrForbidden
	}
	if r.Estado.IsTerminal() {
		return r, nil
	}

	updated, err := u.repo.UpdateStatus(ctx, id, entities.ReservationStatusCancelada)
	if err != nil {
		return entities.Reservation{}, err
	}
	if updated.ID == "" {
		return entities.Reservation{}, ErrReservationNotFound
	}

	u.notify(ctx, updated, fmt.Sprintf("Cita cancelada: %s el %s a las %s",
		updated.Barbero, updated.Fecha, updated.Hora))
	return updated, nil
}

// MarkFulfilled transitions ACTIVA -> ATENDIDA. Barbero-only; callers must be
// authenticated before reaching this method. No-op once terminal.
func (u *BookingUseCase) MarkFulfilled(ctx context.Context, id string) (entities.Reservation, error) {
	r, err := u.getByID(ctx, id)
	if err != nil {
		return entities.Reservation{}, err
	}
	if r.Estado.IsTerminal() {
		return r, nil
	}

	updated, err := u.repo.UpdateStatus(ctx, id, entities.ReservationStatusAtendida)
	if err != nil {
		return entities.Reservation{}, err
	}
	if updated.ID == "" {
		return entities.Reservation{}, ErrReservationNotFound
	}
	return updated, nil
}

// AvailableSlots returns the calendar grid for fecha minus the horas of every
// ACTIVA reservation for (barbero, fecha).
func (u *BookingUseCase) AvailableSlots(ctx context.Context, fecha, barbero string) ([]string, error) {
	barbero = entities.NormalizeBarbero(barbero)
	if barbero == "" {
		return nil, ErrInvalidBarbero
	}

	slots, err := u.calendar.Slots(fecha)
	if err != nil {
		return nil, ErrInvalidFecha
	}
	if len(slots) == 0 {
		return slots, nil
	}

	existing, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool)
	for _, r := range existing {
		if r.Estado == entities.ReservationStatusActiva && r.Barbero == barbero && r.Fecha == fecha {
			taken[r.Hora] = true
		}
	}

	free := make([]string, 0, len(slots))
	for _, s := range slots {
		if !taken[s] {
			free = append(free, s)
		}
	}
	return free, nil
}

// ListByClave returns the reservations visible to one client key.
func (u *BookingUseCase) ListByClave(ctx context.Context, clave string) ([]entities.Reservation, error) {
	clave = strings.TrimSpace(clave)
	all, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	own := make([]entities.Reservation, 0)
	for _, r := range all {
		if r.Clave == clave {
			own = append(own, r)
		}
	}
	return own, nil
}

// ListAll is the barbero dashboard feed: every reservation, any status.
func (u *BookingUseCase) ListAll(ctx context.Context) ([]entities.Reservation, error) {
	return u.repo.ListAll(ctx)
}

func (u *BookingUseCase) getByID(ctx context.Context, id string) (entities.Reservation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Reservation{}, ErrReservationNotFound
	}
	all, err := u.repo.ListAll(ctx)
	if err != nil {
		return entities.Reservation{}, err
	}
	for _, r := range all {
		if r.ID == id {
			return r, nil
		}
	}
	return entities.Reservation{}, ErrReservationNotFound
}

func (u *BookingUseCase) slotLock(barbero, fecha, hora string) *sync.Mutex {
	key := barbero + "|" + fecha + "|" + hora
	u.mu.Lock()
	defer u.mu.Unlock()
	lock, ok := u.slotLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		u.slotLocks[key] = lock
	}
	return lock
}

// notify delivers booking events over the gateway. Failures are logged and
// swallowed: messaging must never roll back a committed reservation.
func (u *BookingUseCase) notify(ctx context.Context, r entities.Reservation, text string) {
	if u.gateway == nil {
		return
	}
	logger := pkg.GetLogger().Sugar()

	if u.barberoPhone != "" {
		if err := u.gateway.Send(ctx, u.barberoPhone, text); err != nil {
			logger.Warnw("notificacion al barbero fallida", "cita", r.ID, "err", err)
		}
	}
	if entities.LooksLikePhone(r.Clave) {
		if err := u.gateway.Send(ctx, r.Clave, text); err != nil {
			logger.Warnw("notificacion al cliente fallida", "cita", r.ID, "err", err)
		}
	}
}
