package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
)

// RoomHandler maneja las peticiones HTTP para habitaciones (protegido).
type RoomHandler struct {
	uc *usecase.RoomUseCase
}

// NewRoomHandler construye el handler.
func NewRoomHandler(uc *usecase.RoomUseCase) *RoomHandler {
	return &RoomHandler{uc: uc}
}

// List godoc
// @Summary      Listar habitaciones
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"  default(all)
// @Param        type    query  string  false  "Tipo"    default(all)
// @Param        search  query  string  false  "Substring sobre número y descripción"
// @Success      200  {array}  dto.RoomResponse
// @Router       /api/rooms [get]
func (h *RoomHandler) List(c *fiber.Ctx) error {
	var q dto.RoomQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de inventario de habitaciones
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RoomSummaryDTO
// @Router       /api/rooms/summary [get]
func (h *RoomHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener habitación por ID
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la habitación"
// @Success      200  {object}  dto.RoomResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rooms/{id} [get]
func (h *RoomHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear habitación
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRoomRequest  true  "Datos de la habitación"
// @Success      201   {object}  dto.RoomResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rooms [post]
func (h *RoomHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRoomRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CheckIn godoc
// @Summary      Check-in: marca la habitación como ocupada
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la habitación"
// @Success      200  {object}  dto.RoomResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rooms/{id}/check-in [post]
func (h *RoomHandler) CheckIn(c *fiber.Ctx) error {
	out, err := h.uc.CheckIn(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CheckOut godoc
// @Summary      Check-out: libera la habitación
// @Tags         rooms
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la habitación"
// @Success      200  {object}  dto.RoomResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/rooms/{id}/check-out [post]
func (h *RoomHandler) CheckOut(c *fiber.Ctx) error {
	out, err := h.uc.CheckOut(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Fijar estado administrativo de la habitación
// @Tags         rooms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la habitación"
// @Param        body  body  dto.RoomStatusRequest  true  "available, maintenance o disabled"
// @Success      200   {object}  dto.RoomResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/rooms/{id}/status [put]
func (h *RoomHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.RoomStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
