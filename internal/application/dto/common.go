package dto

import (
	"time"

	"github.com/jhoicas/Hoteleria-api/internal/domain"
)

// dateLayout formato de fecha de los parámetros externos (YYYY-MM-DD).
const dateLayout = "2006-01-02"

// PageRequest paginación para listados.
type PageRequest struct {
	Page     int `query:"page" validate:"min=1"`
	PageSize int `query:"pageSize" validate:"min=1,max=100"`
}

// DefaultPage aplica valores por defecto y acota PageSize.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// Offset devuelve el desplazamiento equivalente a la página pedida.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// DateRange rango de fechas cerrado [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange valida y convierte los parámetros dateStart/dateEnd.
// Ambos obligatorios; Start > End es un error de validación.
func ParseDateRange(dateStart, dateEnd string) (DateRange, error) {
	start, err := time.Parse(dateLayout, dateStart)
	if err != nil {
		return DateRange{}, domain.Validationf("dateStart", "fecha inválida %q (formato YYYY-MM-DD)", dateStart)
	}
	end, err := time.Parse(dateLayout, dateEnd)
	if err != nil {
		return DateRange{}, domain.Validationf("dateEnd", "fecha inválida %q (formato YYYY-MM-DD)", dateEnd)
	}
	if start.After(end) {
		return DateRange{}, domain.Validationf("dateStart", "dateStart %s posterior a dateEnd %s", dateStart, dateEnd)
	}
	return DateRange{Start: start, End: end}, nil
}
