// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Respalda el binario de demostración y las pruebas de los casos de
// uso; la semántica (CAS sobre Revision, orden de listados, cero sin datos)
// es la misma que la de la implementación Postgres.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// Store almacén en memoria. Los repos concretos se obtienen con
// Reservations(), Rooms(), Users() y Metrics(); todos comparten el mismo
// mutex, así que Run (usecase.TxRunner) es atómico frente a otros llamadores.
type Store struct {
	mu           sync.RWMutex
	reservations map[string]*entity.Reservation
	rooms        map[string]*entity.Room
	users        map[string]*entity.User
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		reservations: make(map[string]*entity.Reservation),
		rooms:        make(map[string]*entity.Room),
		users:        make(map[string]*entity.User),
	}
}

// Reservations devuelve la vista ReservationRepository del almacén.
func (s *Store) Reservations() repository.ReservationRepository { return &reservationStore{s} }

// Rooms devuelve la vista RoomRepository del almacén.
func (s *Store) Rooms() repository.RoomRepository { return &roomStore{s} }

// Users devuelve la vista UserRepository del almacén.
func (s *Store) Users() repository.UserRepository { return &userStore{s} }

// Metrics devuelve la vista MetricsRepository del almacén.
func (s *Store) Metrics() repository.MetricsRepository { return &metricsStore{s} }

// Run ejecuta fn con los repos del propio store. El CAS sobre Revision da la
// atomicidad que en Postgres aporta la transacción.
func (s *Store) Run(_ context.Context, fn func(
	reservations repository.ReservationRepository,
	rooms repository.RoomRepository,
) error) error {
	return fn(s.Reservations(), s.Rooms())
}

// --- reservas ---

type reservationStore struct{ s *Store }

func (r *reservationStore) Create(ctx context.Context, res *entity.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res.Revision = 1
	r.s.reservations[res.ID] = cloneReservation(res)
	return nil
}

func (r *reservationStore) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, nil
	}
	return cloneReservation(res), nil
}

func (r *reservationStore) List(ctx context.Context, f repository.ReservationFilter, limit, offset int) ([]*entity.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := r.filter(f)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	if offset >= len(matched) {
		return []*entity.Reservation{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	page := make([]*entity.Reservation, 0, end-offset)
	for _, res := range matched[offset:end] {
		page = append(page, cloneReservation(res))
	}
	return page, nil
}

func (r *reservationStore) Count(ctx context.Context, f repository.ReservationFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.filter(f)), nil
}

func (r *reservationStore) Update(ctx context.Context, res *entity.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.reservations[res.ID]
	if !ok {
		return &domain.NotFoundError{Entity: "reserva", ID: res.ID}
	}
	if current.Revision != res.Revision {
		return &domain.ConflictError{Entity: "reserva", ID: res.ID,
			Detail: "la reserva fue modificada por otra operación"}
	}
	res.Revision++
	r.s.reservations[res.ID] = cloneReservation(res)
	return nil
}

func (r *reservationStore) FindActiveByRoom(ctx context.Context, roomID string) (*entity.Reservation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, res := range r.s.reservations {
		if res.RoomID == roomID && res.Active() {
			return cloneReservation(res), nil
		}
	}
	return nil, nil
}

// filter aplica el filtro; el llamador sostiene el lock.
func (r *reservationStore) filter(f repository.ReservationFilter) []*entity.Reservation {
	matched := make([]*entity.Reservation, 0, len(r.s.reservations))
	guest := strings.ToLower(f.GuestName)
	for _, res := range r.s.reservations {
		if guest != "" && !strings.Contains(strings.ToLower(res.GuestName), guest) {
			continue
		}
		if f.Status != "" && f.Status != "all" && res.Status != f.Status {
			continue
		}
		if f.PaymentStatus != "" && f.PaymentStatus != "all" && res.PaymentStatus != f.PaymentStatus {
			continue
		}
		if f.DateStart != nil && f.DateEnd != nil && !res.Overlaps(*f.DateStart, *f.DateEnd) {
			continue
		}
		matched = append(matched, res)
	}
	return matched
}

// --- habitaciones ---

type roomStore struct{ s *Store }

func (r *roomStore) Create(ctx context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.rooms {
		if existing.RoomNumber == room.RoomNumber {
			return &domain.ConflictError{Entity: "habitación", ID: room.RoomNumber,
				Detail: "el número de habitación ya existe"}
		}
	}
	room.Revision = 1
	r.s.rooms[room.ID] = cloneRoom(room)
	return nil
}

func (r *roomStore) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, nil
	}
	return cloneRoom(room), nil
}

func (r *roomStore) GetByNumber(ctx context.Context, roomNumber string) (*entity.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, room := range r.s.rooms {
		if room.RoomNumber == roomNumber {
			return cloneRoom(room), nil
		}
	}
	return nil, nil
}

func (r *roomStore) List(ctx context.Context, f repository.RoomFilter) ([]*entity.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	search := strings.ToLower(f.Search)
	matched := make([]*entity.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		if f.Status != "" && f.Status != "all" && room.Status != f.Status {
			continue
		}
		if f.Type != "" && f.Type != "all" && room.Type != f.Type {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(room.RoomNumber), search) &&
			!strings.Contains(strings.ToLower(room.Description), search) {
			continue
		}
		matched = append(matched, cloneRoom(room))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].RoomNumber < matched[j].RoomNumber
	})
	return matched, nil
}

func (r *roomStore) Update(ctx context.Context, room *entity.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.rooms[room.ID]
	if !ok {
		return &domain.NotFoundError{Entity: "habitación", ID: room.ID}
	}
	if current.Revision != room.Revision {
		return &domain.ConflictError{Entity: "habitación", ID: room.ID,
			Detail: "la habitación fue modificada por otra operación"}
	}
	room.Revision++
	r.s.rooms[room.ID] = cloneRoom(room)
	return nil
}

// --- usuarios ---

type userStore struct{ s *Store }

func (u *userStore) Create(ctx context.Context, user *entity.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, existing := range u.s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	u.s.users[user.ID] = cloneUser(user)
	return nil
}

func (u *userStore) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(user), nil
}

func (u *userStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, user := range u.s.users {
		if strings.EqualFold(user.Email, email) {
			return cloneUser(user), nil
		}
	}
	return nil, nil
}

func (u *userStore) List(ctx context.Context) ([]*entity.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	out := make([]*entity.User, 0, len(u.s.users))
	for _, user := range u.s.users {
		out = append(out, cloneUser(user))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (u *userStore) Update(ctx context.Context, user *entity.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if _, ok := u.s.users[user.ID]; !ok {
		return &domain.NotFoundError{Entity: "usuario", ID: user.ID}
	}
	u.s.users[user.ID] = cloneUser(user)
	return nil
}

// --- métricas ---

type metricsStore struct{ s *Store }

func (m *metricsStore) RevenueInRange(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	total := decimal.Zero
	for _, r := range m.s.reservations {
		if r.Status == entity.ReservationCancelled {
			continue
		}
		if r.CreatedAt.Before(start) || r.CreatedAt.After(end) {
			continue
		}
		total = total.Add(r.TotalPrice)
	}
	return total, nil
}

func (m *metricsStore) CountByCheckInDate(ctx context.Context, day time.Time) (int, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	y, mo, d := day.Date()
	count := 0
	for _, r := range m.s.reservations {
		ry, rm, rd := r.CheckIn.Date()
		if ry == y && rm == mo && rd == d {
			count++
		}
	}
	return count, nil
}

func (m *metricsStore) CountDistinctOccupied(ctx context.Context, start, end time.Time) (int, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	occupied := make(map[string]struct{})
	for _, r := range m.s.reservations {
		if r.Active() && r.Overlaps(start, end) {
			occupied[r.RoomID] = struct{}{}
		}
	}
	return len(occupied), nil
}

func (m *metricsStore) RoomCounts(ctx context.Context) (repository.RoomStatusCounts, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var c repository.RoomStatusCounts
	for _, r := range m.s.rooms {
		c.Total++
		switch r.Status {
		case entity.RoomAvailable:
			c.Available++
		case entity.RoomOccupied:
			c.Occupied++
		case entity.RoomMaintenance:
			c.Maintenance++
		case entity.RoomDisabled:
			c.Disabled++
		}
	}
	return c, nil
}

func (m *metricsStore) AverageRate(ctx context.Context) (decimal.Decimal, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	sum := decimal.Zero
	n := 0
	for _, r := range m.s.rooms {
		if r.Status == entity.RoomDisabled {
			continue
		}
		sum = sum.Add(r.Rate)
		n++
	}
	if n == 0 {
		return decimal.Zero, nil
	}
	return sum.Div(decimal.NewFromInt(int64(n))).Round(2), nil
}

func (m *metricsStore) CountActiveUsers(ctx context.Context) (int, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	count := 0
	for _, u := range m.s.users {
		if u.IsActive {
			count++
		}
	}
	return count, nil
}

func (m *metricsStore) RevenueSeries(ctx context.Context, start, end time.Time) ([]repository.RevenuePoint, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	byMonth := make(map[time.Time]*repository.RevenuePoint)
	for _, r := range m.s.reservations {
		if r.Status == entity.ReservationCancelled {
			continue
		}
		if r.CreatedAt.Before(start) || r.CreatedAt.After(end) {
			continue
		}
		month := time.Date(r.CreatedAt.Year(), r.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		p, ok := byMonth[month]
		if !ok {
			p = &repository.RevenuePoint{Month: month, Revenue: decimal.Zero}
			byMonth[month] = p
		}
		p.Revenue = p.Revenue.Add(r.TotalPrice)
		p.Reservations++
	}

	if len(byMonth) == 0 {
		return []repository.RevenuePoint{}, nil
	}

	// Serie continua: los meses sin datos entran con cero.
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	series := make([]repository.RevenuePoint, 0, len(byMonth))
	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		if p, ok := byMonth[month]; ok {
			series = append(series, *p)
		} else {
			series = append(series, repository.RevenuePoint{Month: month, Revenue: decimal.Zero})
		}
	}
	return series, nil
}

func cloneReservation(r *entity.Reservation) *entity.Reservation {
	cp := *r
	return &cp
}

func cloneRoom(r *entity.Room) *entity.Room {
	cp := *r
	cp.Amenities = append([]string(nil), r.Amenities...)
	return &cp
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	if u.LastLogin != nil {
		t := *u.LastLogin
		cp.LastLogin = &t
	}
	return &cp
}
