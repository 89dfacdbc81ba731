// Package reports implementa la exportación de reportes del hotel:
// construcción del dataset por tipo de reporte, renderizado a PDF/CSV/XLSX
// y la cola de trabajos en segundo plano.
package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
	"github.com/jhoicas/Hoteleria-api/internal/domain/repository"
)

// Dataset tabla lista para renderizar. Las filas van en orden determinista:
// para entradas idénticas el dataset (y por tanto el artefacto) es idéntico,
// salvo GeneratedAt, que los renderers emiten en un campo señalizado que los
// hashes de contenido excluyen.
type Dataset struct {
	Title       string
	Subtitle    string // rango de fechas legible
	Columns     []string
	Rows        [][]string
	Totals      []string // fila de totales opcional, misma aridad que Columns
	GeneratedAt time.Time
}

// printer formatea montos con separadores de miles en español.
var printer = message.NewPrinter(language.Spanish)

func formatMoney(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("$%.2f", f)
}

// buildSales listado de reservas cuya estadía se solapa con el rango, con
// total de ingresos (excluyendo canceladas) al pie.
func (uc *ExportUseCase) buildSales(ctx context.Context, start, end time.Time) (*Dataset, error) {
	list, err := uc.reservationsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(list))
	total := decimal.Zero
	for _, r := range list {
		rows = append(rows, []string{
			r.GuestName,
			r.RoomNumber,
			r.CheckIn.Format("2006-01-02"),
			r.CheckOut.Format("2006-01-02"),
			r.Status,
			r.PaymentStatus,
			formatMoney(r.TotalPrice),
		})
		if r.Status != entity.ReservationCancelled {
			total = total.Add(r.TotalPrice)
		}
	}
	return &Dataset{
		Title:   "Reporte de ventas",
		Columns: []string{"Huésped", "Habitación", "Check-in", "Check-out", "Estado", "Pago", "Total"},
		Rows:    rows,
		Totals:  []string{"Total", "", "", "", "", "", formatMoney(total)},
	}, nil
}

// buildOccupancy noches ocupadas por habitación dentro del rango.
// Cuentan las reservas no canceladas; la noche se recorta al rango pedido.
func (uc *ExportUseCase) buildOccupancy(ctx context.Context, start, end time.Time) (*Dataset, error) {
	rooms, err := uc.rooms.List(ctx, repository.RoomFilter{})
	if err != nil {
		return nil, err
	}
	list, err := uc.reservationsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	nightsByRoom := make(map[string]int64, len(rooms))
	for _, r := range list {
		if r.Status == entity.ReservationCancelled {
			continue
		}
		nightsByRoom[r.RoomID] += overlapNights(r.CheckIn, r.CheckOut, start, end)
	}

	rangeNights := overlapNights(start, end, start, end)
	rows := make([][]string, 0, len(rooms))
	var totalNights int64
	for _, room := range rooms {
		nights := nightsByRoom[room.ID]
		totalNights += nights
		pct := "0%"
		if rangeNights > 0 {
			pct = fmt.Sprintf("%d%%", nights*100/rangeNights)
		}
		rows = append(rows, []string{
			room.RoomNumber,
			room.Type,
			room.Status,
			fmt.Sprintf("%d", nights),
			pct,
		})
	}
	return &Dataset{
		Title:   "Análisis de ocupación",
		Columns: []string{"Habitación", "Tipo", "Estado actual", "Noches ocupadas", "Ocupación"},
		Rows:    rows,
		Totals:  []string{"Total", "", "", fmt.Sprintf("%d", totalNights), ""},
	}, nil
}

// buildRevenue ingresos por mes calendario dentro del rango.
func (uc *ExportUseCase) buildRevenue(ctx context.Context, start, end time.Time) (*Dataset, error) {
	points, err := uc.metrics.RevenueSeries(ctx, start, end)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(points))
	total := decimal.Zero
	count := 0
	for _, p := range points {
		rows = append(rows, []string{
			p.Month.Format("2006-01"),
			fmt.Sprintf("%d", p.Reservations),
			formatMoney(p.Revenue),
		})
		total = total.Add(p.Revenue)
		count += p.Reservations
	}
	return &Dataset{
		Title:   "Análisis de ingresos",
		Columns: []string{"Mes", "Reservas", "Ingresos"},
		Rows:    rows,
		Totals:  []string{"Total", fmt.Sprintf("%d", count), formatMoney(total)},
	}, nil
}

// buildStaff listado del personal, ordenado por nombre (orden del repo).
func (uc *ExportUseCase) buildStaff(ctx context.Context) (*Dataset, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		active := "no"
		if u.IsActive {
			active = "sí"
		}
		last := "—"
		if u.LastLogin != nil {
			last = u.LastLogin.Format("2006-01-02")
		}
		rows = append(rows, []string{u.Name, u.Email, u.Role, active, last})
	}
	return &Dataset{
		Title:   "Desempeño del personal",
		Columns: []string{"Nombre", "Email", "Rol", "Activo", "Último acceso"},
		Rows:    rows,
	}, nil
}

// buildGuest agregado por huésped sobre las reservas no canceladas del rango,
// ordenado por gasto descendente y nombre ascendente para desempatar.
func (uc *ExportUseCase) buildGuest(ctx context.Context, start, end time.Time) (*Dataset, error) {
	list, err := uc.reservationsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	type guestAgg struct {
		name   string
		stays  int
		nights int64
		spent  decimal.Decimal
	}
	byGuest := make(map[string]*guestAgg)
	for _, r := range list {
		if r.Status == entity.ReservationCancelled {
			continue
		}
		g, ok := byGuest[r.GuestName]
		if !ok {
			g = &guestAgg{name: r.GuestName, spent: decimal.Zero}
			byGuest[r.GuestName] = g
		}
		g.stays++
		g.nights += overlapNights(r.CheckIn, r.CheckOut, start, end)
		g.spent = g.spent.Add(r.TotalPrice)
	}

	guests := make([]*guestAgg, 0, len(byGuest))
	for _, g := range byGuest {
		guests = append(guests, g)
	}
	sort.Slice(guests, func(i, j int) bool {
		if !guests[i].spent.Equal(guests[j].spent) {
			return guests[i].spent.GreaterThan(guests[j].spent)
		}
		return guests[i].name < guests[j].name
	})

	rows := make([][]string, 0, len(guests))
	for _, g := range guests {
		rows = append(rows, []string{
			g.name,
			fmt.Sprintf("%d", g.stays),
			fmt.Sprintf("%d", g.nights),
			formatMoney(g.spent),
		})
	}
	return &Dataset{
		Title:   "Analítica de huéspedes",
		Columns: []string{"Huésped", "Reservas", "Noches", "Total gastado"},
		Rows:    rows,
	}, nil
}

// reservationsInRange pagina el repositorio completo para el rango pedido.
func (uc *ExportUseCase) reservationsInRange(ctx context.Context, start, end time.Time) ([]*entity.Reservation, error) {
	const pageSize = 500
	filter := repository.ReservationFilter{DateStart: &start, DateEnd: &end}

	var all []*entity.Reservation
	for offset := 0; ; offset += pageSize {
		page, err := uc.reservations.List(ctx, filter, pageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}

// overlapNights noches de [in, out] que caen dentro de [start, end].
func overlapNights(in, out, start, end time.Time) int64 {
	if in.Before(start) {
		in = start
	}
	if out.After(end) {
		out = end
	}
	if !in.Before(out) {
		return 0
	}
	n := int64(out.Sub(in).Hours() / 24)
	if n == 0 {
		n = 1 // estadía parcial dentro del rango cuenta como una noche
	}
	return n
}
