package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hoteleria-api/internal/application/analytics"
	"github.com/jhoicas/Hoteleria-api/internal/application/auth"
	"github.com/jhoicas/Hoteleria-api/internal/application/reports"
	"github.com/jhoicas/Hoteleria-api/internal/application/usecase"
	"github.com/jhoicas/Hoteleria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	DashboardUC   *analytics.DashboardUseCase
	ReservationUC *usecase.ReservationUseCase
	RoomUC        *usecase.RoomUseCase
	UserUC        *usecase.UserUseCase
	ReportJobs    *reports.JobManager
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/kpis", dashboardHandler.GetKpis)
	dashboard.Get("/revenue-series", dashboardHandler.GetRevenueSeries)

	// Reservations (protegido)
	reservations := protected.Group("/reservations")
	reservationHandler := NewReservationHandler(deps.ReservationUC)
	reservations.Get("/", reservationHandler.List)
	reservations.Post("/", reservationHandler.Create)
	reservations.Get("/:id", reservationHandler.GetByID)
	reservations.Post("/:id/transition", reservationHandler.Transition)
	reservations.Put("/:id/payment-status", reservationHandler.SetPaymentStatus)

	// Rooms (protegido; el estado administrativo solo admin/manager)
	rooms := protected.Group("/rooms")
	roomHandler := NewRoomHandler(deps.RoomUC)
	rooms.Get("/", roomHandler.List)
	rooms.Get("/summary", roomHandler.Summary)
	rooms.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), roomHandler.Create)
	rooms.Get("/:id", roomHandler.GetByID)
	rooms.Post("/:id/check-in", roomHandler.CheckIn)
	rooms.Post("/:id/check-out", roomHandler.CheckOut)
	rooms.Put("/:id/status", RequireRole(entity.RoleAdmin, entity.RoleManager), roomHandler.SetStatus)

	// Users (protegido, solo admin/manager)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin, entity.RoleManager))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Put("/:id/active", userHandler.SetActive)

	// Reports (protegido, solo admin/manager)
	reportGroup := protected.Group("/reports", RequireRole(entity.RoleAdmin, entity.RoleManager))
	reportHandler := NewReportHandler(deps.ReportJobs)
	reportGroup.Post("/", reportHandler.Generate)
	reportGroup.Get("/:id", reportHandler.GetStatus)
	reportGroup.Delete("/:id", reportHandler.Cancel)
	reportGroup.Get("/:id/download", reportHandler.Download)
}
