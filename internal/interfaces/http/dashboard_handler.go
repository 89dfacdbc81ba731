package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Hoteleria-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints de KPIs del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetKpis devuelve el snapshot de KPIs para la ventana pedida.
// GET /api/dashboard/kpis?rangeDays=30
//
// Respuesta: KpiDTO (total_revenue, todays_reservations, occupancy_rate,
// active_users, cada uno con su tendencia frente a la ventana anterior).
func (h *DashboardHandler) GetKpis(c *fiber.Ctx) error {
	rangeDays := c.QueryInt("rangeDays", 30)
	out, err := h.uc.GetKpis(c.Context(), rangeDays)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetRevenueSeries devuelve los ingresos por mes para el gráfico del dashboard.
// GET /api/dashboard/revenue-series?rangeDays=90
func (h *DashboardHandler) GetRevenueSeries(c *fiber.Ctx) error {
	rangeDays := c.QueryInt("rangeDays", 90)
	out, err := h.uc.GetRevenueSeries(c.Context(), rangeDays)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
