// seed puebla la base de datos con datos de demostración: habitaciones,
// personal y reservas de ejemplo para probar el dashboard y los reportes.
//
// Uso: go run ./cmd/seed
// Idempotencia simple: si una habitación o usuario ya existe se omite.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Hoteleria-api/internal/domain/booking"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Hoteleria-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	rooms := postgres.NewRoomRepository(pool)
	users := postgres.NewUserRepository(pool)
	reservations := postgres.NewReservationRepository(pool)

	now := time.Now()

	type roomSeed struct {
		number string
		typ    string
		max    int
		rate   decimal.Decimal
	}
	roomSeeds := []roomSeed{
		{"101", entity.RoomTypeStandard, 2, decimal.NewFromInt(120)},
		{"102", entity.RoomTypeStandard, 2, decimal.NewFromInt(120)},
		{"103", entity.RoomTypeStandard, 3, decimal.NewFromInt(140)},
		{"201", entity.RoomTypeDeluxe, 2, decimal.NewFromInt(180)},
		{"202", entity.RoomTypeDeluxe, 3, decimal.NewFromInt(195)},
		{"301", entity.RoomTypeSuite, 4, decimal.NewFromInt(280)},
		{"302", entity.RoomTypeSuite, 4, decimal.NewFromInt(310)},
		{"401", entity.RoomTypeFamily, 6, decimal.NewFromInt(240)},
	}

	byNumber := make(map[string]*entity.Room)
	for _, s := range roomSeeds {
		existing, err := rooms.GetByNumber(ctx, s.number)
		if err != nil {
			fail("consultar habitación %s: %v", s.number, err)
		}
		if existing != nil {
			byNumber[s.number] = existing
			continue
		}
		room := &entity.Room{
			ID:           uuid.New().String(),
			RoomNumber:   s.number,
			Type:         s.typ,
			MaxOccupancy: s.max,
			Rate:         s.rate,
			Status:       entity.RoomAvailable,
			Amenities:    []string{"wifi", "tv"},
			Description:  fmt.Sprintf("Habitación %s %s", s.typ, s.number),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := rooms.Create(ctx, room); err != nil {
			fail("crear habitación %s: %v", s.number, err)
		}
		byNumber[s.number] = room
		fmt.Printf("habitación %s creada\n", s.number)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.DefaultCost)
	if err != nil {
		fail("hash de contraseña: %v", err)
	}
	staff := []entity.User{
		{Name: "Admin Demo", Email: "admin@hotel.demo", Role: entity.RoleAdmin},
		{Name: "Gerencia Demo", Email: "gerencia@hotel.demo", Role: entity.RoleManager},
		{Name: "Recepción Demo", Email: "recepcion@hotel.demo", Role: entity.RoleReceptionist},
	}
	for _, s := range staff {
		existing, err := users.GetByEmail(ctx, s.Email)
		if err != nil {
			fail("consultar usuario %s: %v", s.Email, err)
		}
		if existing != nil {
			continue
		}
		u := &entity.User{
			ID:           uuid.New().String(),
			Name:         s.Name,
			Email:        s.Email,
			PasswordHash: string(hash),
			Role:         s.Role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, u); err != nil {
			fail("crear usuario %s: %v", s.Email, err)
		}
		fmt.Printf("usuario %s creado (password: admin1234)\n", s.Email)
	}

	type resSeed struct {
		guest   string
		room    string
		inDays  int // offset en días respecto a hoy
		nights  int
		status  string
		payment string
	}
	resSeeds := []resSeed{
		{"Carlos Pérez", "101", -10, 3, entity.ReservationCheckedOut, entity.PaymentPaid},
		{"María González", "201", -5, 4, entity.ReservationCheckedOut, entity.PaymentPaid},
		{"Luis Ramírez", "301", -1, 5, entity.ReservationCheckedIn, entity.PaymentPartial},
		{"Ana Torres", "102", 0, 2, entity.ReservationConfirmed, entity.PaymentUnpaid},
		{"Jorge Medina", "401", 3, 7, entity.ReservationPending, entity.PaymentUnpaid},
		{"Lucía Herrera", "202", 5, 2, entity.ReservationPending, entity.PaymentUnpaid},
	}
	for _, s := range resSeeds {
		room := byNumber[s.room]
		if room == nil {
			continue
		}
		checkIn := now.AddDate(0, 0, s.inDays).Truncate(24 * time.Hour)
		checkOut := checkIn.AddDate(0, 0, s.nights)
		r := &entity.Reservation{
			ID:            uuid.New().String(),
			GuestName:     s.guest,
			RoomID:        room.ID,
			RoomNumber:    room.RoomNumber,
			Status:        s.status,
			PaymentStatus: s.payment,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			TotalPrice:    booking.TotalPrice(room.Rate, checkIn, checkOut),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := reservations.Create(ctx, r); err != nil {
			fail("crear reserva de %s: %v", s.guest, err)
		}
		if s.status == entity.ReservationCheckedIn && room.Status == entity.RoomAvailable {
			room.Status = entity.RoomOccupied
			room.UpdatedAt = now
			if err := rooms.Update(ctx, room); err != nil {
				fail("ocupar habitación %s: %v", room.RoomNumber, err)
			}
		}
		fmt.Printf("reserva de %s creada (%s)\n", s.guest, s.status)
	}

	fmt.Println("seed completado")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
