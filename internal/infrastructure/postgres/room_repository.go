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

var _ repository.RoomRepository = (*RoomRepo)(nil)

const roomColumns = `id, room_number, type, max_occupancy, rate, status, amenities,
	description, revision, created_at, updated_at`

// RoomRepo implementa RoomRepository sobre PostgreSQL (usable con pool o tx).
// Amenities se persiste como text[].
type RoomRepo struct {
	q Querier
}

// NewRoomRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRoomRepository(q Querier) *RoomRepo {
	return &RoomRepo{q: q}
}

// Create persiste una habitación nueva con revision 1. El número de
// habitación tiene constraint único; la violación se traduce a conflicto.
func (r *RoomRepo) Create(ctx context.Context, room *entity.Room) error {
	const query = `
		INSERT INTO rooms (id, room_number, type, max_occupancy, rate, status, amenities,
			description, revision, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		room.ID, room.RoomNumber, room.Type, room.MaxOccupancy, room.Rate, room.Status,
		room.Amenities, room.Description, room.CreatedAt, room.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "habitación", ID: room.RoomNumber,
				Detail: "el número de habitación ya existe"}
		}
		return fmt.Errorf("insert room: %w", err)
	}
	room.Revision = 1
	return nil
}

// GetByID obtiene una habitación por ID. Devuelve nil, nil si no existe.
func (r *RoomRepo) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	room, err := scanRoom(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}

// GetByNumber obtiene una habitación por número. Devuelve nil, nil si no existe.
func (r *RoomRepo) GetByNumber(ctx context.Context, roomNumber string) (*entity.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE room_number = $1`
	room, err := scanRoom(r.q.QueryRow(ctx, query, roomNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room by number: %w", err)
	}
	return room, nil
}

// List devuelve las habitaciones que cumplen el filtro, ordenadas por número ascendente.
func (r *RoomRepo) List(ctx context.Context, f repository.RoomFilter) ([]*entity.Room, error) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != "" && f.Status != "all" {
		add(`status = $%d`, f.Status)
	}
	if f.Type != "" && f.Type != "all" {
		add(`type = $%d`, f.Type)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf(`(room_number ILIKE $%d OR description ILIKE $%d)`, len(args), len(args)))
	}

	query := `SELECT ` + roomColumns + ` FROM rooms`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY room_number ASC`

	var list []*entity.Room
	err := withRetry(ctx, func() error {
		rows, err := r.q.Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("list rooms: %w", err)
		}
		defer rows.Close()
		list = list[:0]
		for rows.Next() {
			room, err := scanRoom(rows)
			if err != nil {
				return fmt.Errorf("scan room: %w", err)
			}
			list = append(list, room)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.Room{}
	}
	return list, nil
}

// Update escribe la habitación con compare-and-swap sobre revision.
func (r *RoomRepo) Update(ctx context.Context, room *entity.Room) error {
	const query = `
		UPDATE rooms
		SET type = $2, max_occupancy = $3, rate = $4, status = $5, amenities = $6,
			description = $7, revision = revision + 1, updated_at = $8
		WHERE id = $1 AND revision = $9`
	cmd, err := r.q.Exec(ctx, query,
		room.ID, room.Type, room.MaxOccupancy, room.Rate, room.Status,
		room.Amenities, room.Description, room.UpdatedAt, room.Revision,
	)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM rooms WHERE id = $1)`, room.ID).Scan(&exists); err != nil {
			return fmt.Errorf("update room: %w", err)
		}
		if !exists {
			return &domain.NotFoundError{Entity: "habitación", ID: room.ID}
		}
		return &domain.ConflictError{Entity: "habitación", ID: room.ID,
			Detail: "la habitación fue modificada por otra operación"}
	}
	room.Revision++
	return nil
}

func scanRoom(row pgx.Row) (*entity.Room, error) {
	var room entity.Room
	err := row.Scan(
		&room.ID, &room.RoomNumber, &room.Type, &room.MaxOccupancy, &room.Rate, &room.Status,
		&room.Amenities, &room.Description, &room.Revision, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}
