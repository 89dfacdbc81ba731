package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/reports"
)

// ReportHandler genera reportes en segundo plano: POST encola, GET sondea,
// el artefacto se descarga cuando el trabajo llega a done.
type ReportHandler struct {
	jobs *reports.JobManager
}

// NewReportHandler construye el handler.
func NewReportHandler(jobs *reports.JobManager) *ReportHandler {
	return &ReportHandler{jobs: jobs}
}

// Generate godoc
// @Summary      Encolar generación de reporte
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateReportRequest  true  "reportType, dateStart, dateEnd, format"
// @Success      202   {object}  dto.ReportJobDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateReportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	dateRange, err := dto.ParseDateRange(in.DateStart, in.DateEnd)
	if err != nil {
		return respondError(c, err)
	}
	id, err := h.jobs.Submit(in.ReportType, in.Format, dateRange.Start, dateRange.End)
	if err != nil {
		return respondError(c, err)
	}
	job, err := h.jobs.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(toJobDTO(job))
}

// GetStatus godoc
// @Summary      Consultar estado de un trabajo de reporte
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del trabajo"
// @Success      200  {object}  dto.ReportJobDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/{id} [get]
func (h *ReportHandler) GetStatus(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toJobDTO(job))
}

// Cancel godoc
// @Summary      Cancelar un trabajo de reporte pendiente o en ejecución
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del trabajo"
// @Success      200  {object}  dto.ReportJobDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/reports/{id} [delete]
func (h *ReportHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.jobs.Cancel(id); err != nil {
		return respondError(c, err)
	}
	job, err := h.jobs.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toJobDTO(job))
}

// Download godoc
// @Summary      Descargar el artefacto de un reporte terminado
// @Tags         reports
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        id   path  string  true  "ID del trabajo"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/reports/{id}/download [get]
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if job.Status != reports.JobDone || job.Artifact == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "NOT_READY", Message: "el reporte no está listo para descarga (estado " + job.Status + ")",
		})
	}
	c.Set(fiber.HeaderContentType, job.Artifact.MimeType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+job.Artifact.Filename+`"`)
	return c.Send(job.Artifact.Bytes)
}

func toJobDTO(job *reports.Job) dto.ReportJobDTO {
	out := dto.ReportJobDTO{
		ID:         job.ID,
		ReportType: job.ReportType,
		Format:     job.Format,
		Status:     job.Status,
		Error:      job.Err,
		CreatedAt:  job.CreatedAt,
	}
	if job.Artifact != nil {
		out.Filename = job.Artifact.Filename
	}
	if !job.FinishedAt.IsZero() {
		t := job.FinishedAt
		out.FinishedAt = &t
	}
	return out
}
