package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

const reservationColumns = `id, guest_name, room_id, room_number, status, payment_status,
	check_in, check_out, total_price, revision, created_at, updated_at`

// ReservationRepo implementa ReservationRepository sobre PostgreSQL (usable con pool o tx).
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

// Create persiste una reserva nueva con revision 1.
func (r *ReservationRepo) Create(ctx context.Context, res *entity.Reservation) error {
	const query = `
		INSERT INTO reservations (id, guest_name, room_id, room_number, status, payment_status,
			check_in, check_out, total_price, revision, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		res.ID, res.GuestName, res.RoomID, res.RoomNumber, res.Status, res.PaymentStatus,
		res.CheckIn, res.CheckOut, res.TotalPrice, res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	res.Revision = 1
	return nil
}

// GetByID obtiene una reserva por ID. Devuelve nil, nil si no existe.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	res, err := scanReservation(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

// List devuelve la página pedida, ordenada por created_at descendente con
// desempate por id ascendente.
func (r *ReservationRepo) List(ctx context.Context, f repository.ReservationFilter, limit, offset int) ([]*entity.Reservation, error) {
	where, args := reservationWhere(f)
	query := `SELECT ` + reservationColumns + ` FROM reservations` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var list []*entity.Reservation
	err := withRetry(ctx, func() error {
		rows, err := r.q.Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("list reservations: %w", err)
		}
		defer rows.Close()
		list = list[:0]
		for rows.Next() {
			res, err := scanReservation(rows)
			if err != nil {
				return fmt.Errorf("scan reservation: %w", err)
			}
			list = append(list, res)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.Reservation{}
	}
	return list, nil
}

// Count cuenta las reservas que cumplen el filtro.
func (r *ReservationRepo) Count(ctx context.Context, f repository.ReservationFilter) (int, error) {
	where, args := reservationWhere(f)
	var count int
	err := withRetry(ctx, func() error {
		return r.q.QueryRow(ctx, `SELECT COUNT(*) FROM reservations`+where, args...).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("count reservations: %w", err)
	}
	return count, nil
}

// Update escribe la reserva con compare-and-swap sobre revision. Si la fila
// cambió desde la lectura devuelve domain.ErrConflict sin escribir nada.
func (r *ReservationRepo) Update(ctx context.Context, res *entity.Reservation) error {
	const query = `
		UPDATE reservations
		SET guest_name = $2, status = $3, payment_status = $4, check_in = $5,
			check_out = $6, total_price = $7, revision = revision + 1, updated_at = $8
		WHERE id = $1 AND revision = $9`
	cmd, err := r.q.Exec(ctx, query,
		res.ID, res.GuestName, res.Status, res.PaymentStatus,
		res.CheckIn, res.CheckOut, res.TotalPrice, res.UpdatedAt, res.Revision,
	)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, res.ID).Scan(&exists); err != nil {
			return fmt.Errorf("update reservation: %w", err)
		}
		if !exists {
			return &domain.NotFoundError{Entity: "reserva", ID: res.ID}
		}
		return &domain.ConflictError{Entity: "reserva", ID: res.ID,
			Detail: "la reserva fue modificada por otra operación"}
	}
	res.Revision++
	return nil
}

// FindActiveByRoom devuelve la reserva activa (confirmed o checked_in) de la
// habitación, o nil, nil si no hay ninguna.
func (r *ReservationRepo) FindActiveByRoom(ctx context.Context, roomID string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE room_id = $1 AND status IN ('confirmed', 'checked_in')
		ORDER BY created_at DESC LIMIT 1`
	res, err := scanReservation(r.q.QueryRow(ctx, query, roomID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active reservation: %w", err)
	}
	return res, nil
}

// reservationWhere arma la cláusula WHERE del filtro con placeholders posicionales.
func reservationWhere(f repository.ReservationFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.GuestName != "" {
		add(`guest_name ILIKE $%d`, "%"+f.GuestName+"%")
	}
	if f.Status != "" && f.Status != "all" {
		add(`status = $%d`, f.Status)
	}
	if f.PaymentStatus != "" && f.PaymentStatus != "all" {
		add(`payment_status = $%d`, f.PaymentStatus)
	}
	if f.DateStart != nil && f.DateEnd != nil {
		// Solapamiento de estadía: check_in ≤ fin Y check_out ≥ inicio.
		add(`check_in <= $%d`, *f.DateEnd)
		add(`check_out >= $%d`, *f.DateStart)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID, &res.GuestName, &res.RoomID, &res.RoomNumber, &res.Status, &res.PaymentStatus,
		&res.CheckIn, &res.CheckOut, &res.TotalPrice, &res.Revision, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
