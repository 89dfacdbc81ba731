package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// RoomUseCase inventario de habitaciones: listados, resumen y las
// transiciones de estado de check-in / check-out.
type RoomUseCase struct {
	rooms   repository.RoomRepository
	metrics repository.MetricsRepository
	nowFn   func() time.Time
}

// NewRoomUseCase construye el caso de uso.
func NewRoomUseCase(rooms repository.RoomRepository, metrics repository.MetricsRepository) *RoomUseCase {
	return &RoomUseCase{rooms: rooms, metrics: metrics, nowFn: time.Now}
}

// WithClock sustituye la fuente de tiempo (tests).
func (uc *RoomUseCase) WithClock(now func() time.Time) *RoomUseCase {
	uc.nowFn = now
	return uc
}

// List lista habitaciones con filtros de estado, tipo y búsqueda libre.
func (uc *RoomUseCase) List(ctx context.Context, q dto.RoomQuery) ([]dto.RoomResponse, error) {
	f := repository.RoomFilter{Type: q.Type, Search: q.Search}
	if q.Status != "" && q.Status != "all" {
		if !entity.ValidRoomStatus(q.Status) {
			return nil, domain.Validationf("status", "valor desconocido %q", q.Status)
		}
		f.Status = q.Status
	}
	list, err := uc.rooms.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listar habitaciones: %w", err)
	}
	items := make([]dto.RoomResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRoomResponse(r))
	}
	return items, nil
}

// GetByID obtiene una habitación.
func (uc *RoomUseCase) GetByID(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := uc.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, &domain.NotFoundError{Entity: "habitación", ID: id}
	}
	return toRoomResponse(room), nil
}

// Summary devuelve los totales por estado y la tarifa media de las
// habitaciones no deshabilitadas (cero si no hay ninguna).
func (uc *RoomUseCase) Summary(ctx context.Context) (*dto.RoomSummaryDTO, error) {
	counts, err := uc.metrics.RoomCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("resumen de habitaciones: %w", err)
	}
	avg, err := uc.metrics.AverageRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("tarifa media: %w", err)
	}
	return &dto.RoomSummaryDTO{
		Total:       counts.Total,
		Available:   counts.Available,
		Occupied:    counts.Occupied,
		Maintenance: counts.Maintenance,
		AverageRate: avg.Round(2),
	}, nil
}

// Create crea una habitación con número único, tarifa y aforo positivos.
func (uc *RoomUseCase) Create(ctx context.Context, in dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	if in.RoomNumber == "" {
		return nil, domain.Validationf("room_number", "obligatorio")
	}
	if !entity.ValidRoomType(in.Type) {
		return nil, domain.Validationf("type", "tipo desconocido %q", in.Type)
	}
	if in.MaxOccupancy <= 0 {
		return nil, domain.Validationf("max_occupancy", "debe ser mayor que cero")
	}
	if !in.Rate.IsPositive() {
		return nil, domain.Validationf("rate", "debe ser mayor que cero")
	}
	existing, err := uc.rooms.GetByNumber(ctx, in.RoomNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{Entity: "habitación", ID: in.RoomNumber, Detail: "número ya registrado"}
	}

	now := uc.nowFn()
	room := &entity.Room{
		ID:           uuid.New().String(),
		RoomNumber:   in.RoomNumber,
		Type:         in.Type,
		MaxOccupancy: in.MaxOccupancy,
		Rate:         in.Rate,
		Status:       entity.RoomAvailable,
		Amenities:    in.Amenities,
		Description:  in.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

// CheckIn pasa la habitación available → occupied. Cualquier otro estado de
// partida es un conflicto; con dos check-in simultáneos el CAS de revisión
// garantiza que exactamente uno gane.
func (uc *RoomUseCase) CheckIn(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := uc.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, &domain.NotFoundError{Entity: "habitación", ID: id}
	}
	if room.Status != entity.RoomAvailable {
		return nil, &domain.ConflictError{Entity: "habitación", ID: room.RoomNumber,
			Detail: fmt.Sprintf("check-in sobre estado %s", room.Status)}
	}
	room.Status = entity.RoomOccupied
	room.UpdatedAt = uc.nowFn()
	if err := uc.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

// CheckOut pasa la habitación occupied → available. Si no está ocupada la
// operación es inválida para su estado actual.
func (uc *RoomUseCase) CheckOut(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := uc.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, &domain.NotFoundError{Entity: "habitación", ID: id}
	}
	if room.Status != entity.RoomOccupied {
		return nil, &domain.InvalidStateError{Entity: "habitación", ID: room.RoomNumber,
			Status: room.Status, Operation: "check-out"}
	}
	room.Status = entity.RoomAvailable
	room.UpdatedAt = uc.nowFn()
	if err := uc.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

// SetStatus fija un estado administrativo (available, maintenance, disabled).
// occupied solo lo mueve el check-in, y una habitación ocupada no se puede
// retirar de servicio hasta liberar al huésped.
func (uc *RoomUseCase) SetStatus(ctx context.Context, id, status string) (*dto.RoomResponse, error) {
	switch status {
	case entity.RoomAvailable, entity.RoomMaintenance, entity.RoomDisabled:
	case entity.RoomOccupied:
		return nil, domain.Validationf("status", "occupied solo se alcanza vía check-in")
	default:
		return nil, domain.Validationf("status", "valor desconocido %q", status)
	}
	room, err := uc.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, &domain.NotFoundError{Entity: "habitación", ID: id}
	}
	if room.Status == entity.RoomOccupied {
		return nil, &domain.ConflictError{Entity: "habitación", ID: room.RoomNumber,
			Detail: "ocupada, libere al huésped antes de cambiar el estado"}
	}
	room.Status = status
	room.UpdatedAt = uc.nowFn()
	if err := uc.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

func toRoomResponse(r *entity.Room) *dto.RoomResponse {
	if r == nil {
		return nil
	}
	return &dto.RoomResponse{
		ID:           r.ID,
		RoomNumber:   r.RoomNumber,
		Type:         r.Type,
		MaxOccupancy: r.MaxOccupancy,
		Rate:         r.Rate,
		Status:       r.Status,
		Amenities:    r.Amenities,
		Description:  r.Description,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
