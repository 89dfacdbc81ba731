package dto

import "time"

// GenerateReportRequest cuerpo de POST /api/reports.
type GenerateReportRequest struct {
	ReportType string `json:"reportType"` // sales, occupancy, revenue, staff, guest
	DateStart  string `json:"dateStart"`  // YYYY-MM-DD
	DateEnd    string `json:"dateEnd"`    // YYYY-MM-DD
	Format     string `json:"format"`     // pdf, csv, excel
}

// ReportJobDTO estado de un trabajo de generación de reporte.
// El artefacto se descarga aparte (GET /api/reports/:id/download).
type ReportJobDTO struct {
	ID         string     `json:"id"`
	ReportType string     `json:"report_type"`
	Format     string     `json:"format"`
	Status     string     `json:"status"` // pending, running, done, failed, cancelled
	Filename   string     `json:"filename,omitempty"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
