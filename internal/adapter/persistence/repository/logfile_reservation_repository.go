package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"barberia_citas/internal/domain/entities"
	"barberia_citas/internal/usecase/interfaces"
	"barberia_citas/pkg"

	"github.com/google/uuid"
)

const defaultCitasLogPath = "citas.txt"

// LogfileReservationRepository is the local durable backend: one pipe-delimited
// line per reservation, UTF-8, newline-terminated.
//
// Writes use the 9-field layout with an explicit estado column:
//
//	id|cliente|clave|barbero|servicio|precio|fecha|hora|estado
//
// Reads also accept the three legacy layouts (8, 7 and 6 fields), including
// the old convention of overwriting servicio with "CITA CANCELADA" or
// "CITA ATENDIDA". Malformed lines are skipped individually, never fatal.
//
// This backend appends unconditionally: a retried Append can duplicate a line.
// It is the weaker fallback and is documented as such on the adapter.
type LogfileReservationRepository struct {
	path string
	mu   sync.Mutex
}

var _ interfaces.IReservationRepository = (*LogfileReservationRepository)(nil)

func NewLogfileReservationRepository() *LogfileReservationRepository {
	return &LogfileReservationRepository{
		path: getenvDefault("CITAS_LOG_PATH", defaultCitasLogPath),
	}
}

func NewLogfileReservationRepositoryAt(path string) *LogfileReservationRepository {
	return &LogfileReservationRepository{path: path}
}

func (r *LogfileReservationRepository) ListAll(ctx context.Context) ([]entities.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readAll()
}

func (r *LogfileReservationRepository) Append(ctx context.Context, res entities.Reservation) (entities.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return entities.Reservation{}, err
	}
	defer f.Close()

	if _, err := f.WriteString(formatLine(res)); err != nil {
		return entities.Reservation{}, err
	}
	if err := f.Sync(); err != nil {
		return entities.Reservation{}, err
	}
	return res, nil
}

// UpdateStatus rewrites the whole log with the matching line transitioned.
// The rewrite goes to a temp file in the same directory and is swapped in with
// a rename, so a crash mid-write never corrupts the existing log.
func (r *LogfileReservationRepository) UpdateStatus(ctx context.Context, id string, newStatus entities.ReservationStatus) (entities.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.readAll()
	if err != nil {
		return entities.Reservation{}, err
	}

	var updated entities.Reservation
	for i := range all {
		if all[i].ID == id {
			all[i].Estado = newStatus
			updated = all[i]
			break
		}
	}
	if updated.ID == "" {
		return entities.Reservation{}, nil
	}

	var sb strings.Builder
	for _, res := range all {
		sb.WriteString(formatLine(res))
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return entities.Reservation{}, err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return entities.Reservation{}, err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return entities.Reservation{}, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return entities.Reservation{}, err
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return entities.Reservation{}, err
	}
	return updated, nil
}

func (r *LogfileReservationRepository) readAll() ([]entities.Reservation, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []entities.Reservation{}, nil
		}
		return nil, err
	}

	logger := pkg.GetLogger().Sugar()
	out := []entities.Reservation{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		res, err := parseLine(line)
		if err != nil {
			logger.Warnw("linea de cita ilegible, omitida", "path", r.path, "err", err)
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func formatLine(r entities.Reservation) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%d|%s|%s|%s\n",
		r.ID, r.Cliente, r.Clave, r.Barbero, r.Servicio, r.Precio, r.Fecha, r.Hora, r.Estado)
}

// parseLine normalizes any known line layout into the canonical Reservation.
// Variants are tried by field count, newest first.
func parseLine(line string) (entities.Reservation, error) {
	fields := strings.Split(line, "|")
	switch len(fields) {
	case 9:
		return parseV9(fields)
	case 8:
		return parseV8(fields)
	case 7:
		return parseV7(fields)
	case 6:
		return parseV6(fields, line)
	}
	return entities.Reservation{}, fmt.Errorf("unsupported field count %d", len(fields))
}

// parseV9: id|cliente|clave|barbero|servicio|precio|fecha|hora|estado
func parseV9(f []string) (entities.Reservation, error) {
	estado := entities.ReservationStatus(f[8])
	if estado != entities.ReservationStatusActiva && !estado.IsTerminal() {
		return entities.Reservation{}, fmt.Errorf("unknown estado %q", f[8])
	}
	return entities.Reservation{
		ID:       f[0],
		Cliente:  f[1],
		Clave:    f[2],
		Barbero:  entities.NormalizeBarbero(f[3]),
		Servicio: f[4],
		Precio:   parsePrecio(f[5]),
		Fecha:    f[6],
		Hora:     f[7],
		Estado:   estado,
	}, nil
}

// parseV8: id|cliente|clave|barbero|servicio|precio|fecha|hora
// with terminal states marker-encoded in the servicio field.
func parseV8(f []string) (entities.Reservation, error) {
	servicio, estado := decodeLegacyServicio(f[4])
	return entities.Reservation{
		ID:       f[0],
		Cliente:  f[1],
		Clave:    f[2],
		Barbero:  entities.NormalizeBarbero(f[3]),
		Servicio: servicio,
		Precio:   parsePrecio(f[5]),
		Fecha:    f[6],
		Hora:     f[7],
		Estado:   estado,
	}, nil
}

// parseV7: id|cliente|barbero|servicio|precio|fecha|hora (no clave yet)
func parseV7(f []string) (entities.Reservation, error) {
	servicio, estado := decodeLegacyServicio(f[3])
	return entities.Reservation{
		ID:       f[0],
		Cliente:  f[1],
		Barbero:  entities.NormalizeBarbero(f[2]),
		Servicio: servicio,
		Precio:   parsePrecio(f[4]),
		Fecha:    f[5],
		Hora:     f[6],
		Estado:   estado,
	}, nil
}

// parseV6: cliente|barbero|servicio|precio|fecha|hora (the original layout,
// no id at all). The id is derived from the line content so it stays stable
// across reads.
func parseV6(f []string, line string) (entities.Reservation, error) {
	servicio, estado := decodeLegacyServicio(f[2])
	return entities.Reservation{
		ID:       uuid.NewSHA1(uuid.NameSpaceOID, []byte(line)).String(),
		Cliente:  f[0],
		Barbero:  entities.NormalizeBarbero(f[1]),
		Servicio: servicio,
		Precio:   parsePrecio(f[3]),
		Fecha:    f[4],
		Hora:     f[5],
		Estado:   estado,
	}, nil
}

// decodeLegacyServicio resolves the marker-in-servicio convention. The real
// servicio is unrecoverable once a legacy writer overwrote it.
func decodeLegacyServicio(servicio string) (string, entities.ReservationStatus) {
	if estado, ok := entities.StatusFromLegacyMarker(servicio); ok {
		return "", estado
	}
	return servicio, entities.ReservationStatusActiva
}

func parsePrecio(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
