package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/booking"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repos atados a una misma transacción. Las
// transiciones que tocan reserva y habitación a la vez pasan por aquí para
// que el invariante ocupación↔reserva no se rompa a medias.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		reservations repository.ReservationRepository,
		rooms repository.RoomRepository,
	) error) error
}

// ReservationUseCase consultas y ciclo de vida de reservas.
type ReservationUseCase struct {
	reservations repository.ReservationRepository
	rooms        repository.RoomRepository
	tx           TxRunner
	nowFn        func() time.Time
}

// NewReservationUseCase construye el caso de uso.
func NewReservationUseCase(reservations repository.ReservationRepository, rooms repository.RoomRepository, tx TxRunner) *ReservationUseCase {
	return &ReservationUseCase{
		reservations: reservations,
		rooms:        rooms,
		tx:           tx,
		nowFn:        time.Now,
	}
}

// WithClock sustituye la fuente de tiempo (tests).
func (uc *ReservationUseCase) WithClock(now func() time.Time) *ReservationUseCase {
	uc.nowFn = now
	return uc
}

// Query lista reservas con filtros y paginación.
//
// guestName filtra por substring case-insensitive; status y paymentStatus por
// igualdad exacta ("all" o vacío no filtran); el rango de fechas por solape.
// Orden: created_at descendente, empates por id ascendente. Una página más
// allá de los datos devuelve items vacíos con el total correcto.
func (uc *ReservationUseCase) Query(ctx context.Context, q dto.ReservationQuery) (*dto.ReservationListResponse, error) {
	q.DefaultPage()

	filter, err := buildReservationFilter(q)
	if err != nil {
		return nil, err
	}

	total, err := uc.reservations.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("contar reservas: %w", err)
	}
	list, err := uc.reservations.List(ctx, filter, q.PageSize, q.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar reservas: %w", err)
	}

	items := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReservationResponse(r))
	}
	return &dto.ReservationListResponse{
		Items: items,
		Page:  dto.PageResponse{Page: q.Page, PageSize: q.PageSize, Total: total},
	}, nil
}

// GetByID obtiene una reserva.
func (uc *ReservationUseCase) GetByID(ctx context.Context, id string) (*dto.ReservationResponse, error) {
	r, err := uc.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &domain.NotFoundError{Entity: "reserva", ID: id}
	}
	return toReservationResponse(r), nil
}

// Create crea una reserva en estado pending. El total se calcula en el
// servidor como tarifa × noches; la habitación debe admitir reservas
// (maintenance y disabled quedan excluidas).
func (uc *ReservationUseCase) Create(ctx context.Context, in dto.CreateReservationRequest) (*dto.ReservationResponse, error) {
	if in.GuestName == "" {
		return nil, domain.Validationf("guest_name", "obligatorio")
	}
	checkIn, err := time.Parse("2006-01-02", in.CheckIn)
	if err != nil {
		return nil, domain.Validationf("check_in", "fecha inválida %q", in.CheckIn)
	}
	checkOut, err := time.Parse("2006-01-02", in.CheckOut)
	if err != nil {
		return nil, domain.Validationf("check_out", "fecha inválida %q", in.CheckOut)
	}
	if !checkIn.Before(checkOut) {
		return nil, domain.Validationf("check_in", "check_in debe ser anterior a check_out")
	}
	payment := in.PaymentStatus
	if payment == "" {
		payment = entity.PaymentUnpaid
	}
	if !entity.ValidPaymentStatus(payment) {
		return nil, domain.Validationf("payment_status", "valor desconocido %q", payment)
	}

	room, err := uc.rooms.GetByNumber(ctx, in.RoomNumber)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, &domain.NotFoundError{Entity: "habitación", ID: in.RoomNumber}
	}
	if !room.Bookable() {
		return nil, &domain.ConflictError{Entity: "habitación", ID: room.RoomNumber,
			Detail: fmt.Sprintf("en estado %s, no admite reservas", room.Status)}
	}

	now := uc.nowFn()
	r := &entity.Reservation{
		ID:            uuid.New().String(),
		GuestName:     in.GuestName,
		RoomID:        room.ID,
		RoomNumber:    room.RoomNumber,
		Status:        entity.ReservationPending,
		PaymentStatus: payment,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		TotalPrice:    booking.TotalPrice(room.Rate, checkIn, checkOut),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.reservations.Create(ctx, r); err != nil {
		return nil, err
	}
	return toReservationResponse(r), nil
}

// Transition avanza la reserva según la máquina de estados y mantiene el
// estado de la habitación en la misma transacción: el check-in ocupa la
// habitación, el check-out (o la cancelación de un huésped alojado) la libera.
func (uc *ReservationUseCase) Transition(ctx context.Context, id, to string) (*dto.ReservationResponse, error) {
	if !entity.ValidReservationStatus(to) {
		return nil, domain.Validationf("to", "estado desconocido %q", to)
	}

	var result *entity.Reservation
	err := uc.tx.Run(ctx, func(reservations repository.ReservationRepository, rooms repository.RoomRepository) error {
		r, err := reservations.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if r == nil {
			return &domain.NotFoundError{Entity: "reserva", ID: id}
		}
		if !r.CanTransitionTo(to) {
			return &domain.TransitionError{Entity: "reserva", ID: id, From: r.Status, To: to}
		}

		switch {
		case to == entity.ReservationCheckedIn:
			if err := occupyRoom(ctx, rooms, r.RoomID); err != nil {
				return err
			}
		case to == entity.ReservationCheckedOut,
			to == entity.ReservationCancelled && r.Status == entity.ReservationCheckedIn:
			if err := releaseRoom(ctx, rooms, r.RoomID, to == entity.ReservationCheckedOut); err != nil {
				return err
			}
		}

		r.Status = to
		r.UpdatedAt = uc.nowFn()
		if err := reservations.Update(ctx, r); err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toReservationResponse(result), nil
}

// SetPaymentStatus cambia el estado de pago. Las reservas terminales
// (checked_out, cancelled) son inmutables.
func (uc *ReservationUseCase) SetPaymentStatus(ctx context.Context, id, status string) (*dto.ReservationResponse, error) {
	if !entity.ValidPaymentStatus(status) {
		return nil, domain.Validationf("payment_status", "valor desconocido %q", status)
	}
	r, err := uc.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &domain.NotFoundError{Entity: "reserva", ID: id}
	}
	if r.Terminal() {
		return nil, &domain.InvalidStateError{Entity: "reserva", ID: id, Status: r.Status, Operation: "cambio de pago"}
	}
	r.PaymentStatus = status
	r.UpdatedAt = uc.nowFn()
	if err := uc.reservations.Update(ctx, r); err != nil {
		return nil, err
	}
	return toReservationResponse(r), nil
}

// occupyRoom pasa la habitación available → occupied; cualquier otro estado
// es un conflicto (doble check-in incluido).
func occupyRoom(ctx context.Context, rooms repository.RoomRepository, roomID string) error {
	room, err := rooms.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return &domain.NotFoundError{Entity: "habitación", ID: roomID}
	}
	if room.Status != entity.RoomAvailable {
		return &domain.ConflictError{Entity: "habitación", ID: room.RoomNumber,
			Detail: fmt.Sprintf("check-in sobre estado %s", room.Status)}
	}
	room.Status = entity.RoomOccupied
	return rooms.Update(ctx, room)
}

// releaseRoom pasa la habitación occupied → available. En un check-out la
// habitación debe estar ocupada; en una cancelación se tolera el desvío.
func releaseRoom(ctx context.Context, rooms repository.RoomRepository, roomID string, strict bool) error {
	room, err := rooms.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return &domain.NotFoundError{Entity: "habitación", ID: roomID}
	}
	if room.Status != entity.RoomOccupied {
		if strict {
			return &domain.InvalidStateError{Entity: "habitación", ID: room.RoomNumber,
				Status: room.Status, Operation: "check-out"}
		}
		return nil
	}
	room.Status = entity.RoomAvailable
	return rooms.Update(ctx, room)
}

func buildReservationFilter(q dto.ReservationQuery) (repository.ReservationFilter, error) {
	f := repository.ReservationFilter{GuestName: q.GuestName}

	if q.Status != "" && q.Status != "all" {
		if !entity.ValidReservationStatus(q.Status) {
			return f, domain.Validationf("status", "valor desconocido %q", q.Status)
		}
		f.Status = q.Status
	}
	if q.PaymentStatus != "" && q.PaymentStatus != "all" {
		if !entity.ValidPaymentStatus(q.PaymentStatus) {
			return f, domain.Validationf("paymentStatus", "valor desconocido %q", q.PaymentStatus)
		}
		f.PaymentStatus = q.PaymentStatus
	}
	if q.DateStart != "" || q.DateEnd != "" {
		if q.DateStart == "" || q.DateEnd == "" {
			return f, domain.Validationf("dateStart", "dateStart y dateEnd van juntos")
		}
		rng, err := dto.ParseDateRange(q.DateStart, q.DateEnd)
		if err != nil {
			return f, err
		}
		f.DateStart = &rng.Start
		f.DateEnd = &rng.End
	}
	return f, nil
}

func toReservationResponse(r *entity.Reservation) *dto.ReservationResponse {
	if r == nil {
		return nil
	}
	return &dto.ReservationResponse{
		ID:            r.ID,
		GuestName:     r.GuestName,
		RoomNumber:    r.RoomNumber,
		Status:        r.Status,
		PaymentStatus: r.PaymentStatus,
		CheckIn:       r.CheckIn.Format("2006-01-02"),
		CheckOut:      r.CheckOut.Format("2006-01-02"),
		TotalPrice:    r.TotalPrice,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
