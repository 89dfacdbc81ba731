package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hoteleria-api/internal/application/dto"
	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
)

// ReservationHandler maneja las peticiones HTTP para reservas (protegido).
type ReservationHandler struct {
	uc *usecase.ReservationUseCase
}

// NewReservationHandler construye el handler.
func NewReservationHandler(uc *usecase.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

// List godoc
// @Summary      Listar reservas con filtros combinables
// @Tags         reservations
// @Security     Bearer
// @Produce      json
// @Param        guestName      query  string  false  "Substring del huésped, case-insensitive"
// @Param        status         query  string  false  "Estado de la reserva"  default(all)
// @Param        paymentStatus  query  string  false  "Estado de pago"        default(all)
// @Param        dateStart      query  string  false  "YYYY-MM-DD"
// @Param        dateEnd        query  string  false  "YYYY-MM-DD"
// @Param        page           query  int     false  "Página"     default(1)
// @Param        pageSize       query  int     false  "Tamaño"     default(20)
// @Success      200  {object}  dto.ReservationListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reservations [get]
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	var q dto.ReservationQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Query(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener reserva por ID
// @Tags         reservations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la reserva"
// @Success      200  {object}  dto.ReservationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reservations/{id} [get]
func (h *ReservationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear reserva (estado inicial pending)
// @Tags         reservations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReservationRequest  true  "Datos de la reserva"
// @Success      201   {object}  dto.ReservationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reservations [post]
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transition godoc
// @Summary      Avanzar la reserva en su máquina de estados
// @Tags         reservations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la reserva"
// @Param        body  body  dto.TransitionRequest  true  "Estado destino"
// @Success      200   {object}  dto.ReservationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/reservations/{id}/transition [post]
func (h *ReservationHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Transition(c.Context(), c.Params("id"), in.To)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetPaymentStatus godoc
// @Summary      Cambiar el estado de pago de una reserva no terminal
// @Tags         reservations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la reserva"
// @Param        body  body  dto.PaymentStatusRequest  true  "Nuevo estado de pago"
// @Success      200   {object}  dto.ReservationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/reservations/{id}/payment-status [put]
func (h *ReservationHandler) SetPaymentStatus(c *fiber.Ctx) error {
	var in dto.PaymentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetPaymentStatus(c.Context(), c.Params("id"), in.PaymentStatus)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
