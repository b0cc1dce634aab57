package routes

import (
	"hams-server/internal/config"
	"hams-server/internal/dashboard"
	"hams-server/internal/handlers"
	"hams-server/internal/ledger"
	"hams-server/internal/logger"
	"hams-server/internal/metrics"
	"hams-server/internal/middleware"
	"hams-server/internal/models"
	"hams-server/internal/reference"

	"github.com/gin-gonic/gin"
)

// Dependencies are the session-scoped services the handlers are built from.
type Dependencies struct {
	Config    *config.Config
	Logger    *logger.Logger
	Directory *reference.Directory
	Ledger    *ledger.Ledger
	Dashboard *dashboard.Builder
	Metrics   *metrics.Collector
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.Directory, deps.Config, deps.Logger)
	directoryHandler := handlers.NewDirectoryHandler(deps.Directory)
	appointmentHandler := handlers.NewAppointmentHandler(deps.Ledger, deps.Config.Ledger.SimulatedLatency)
	medicalRecordHandler := handlers.NewMedicalRecordHandler(deps.Directory)
	dashboardHandler := handlers.NewDashboardHandler(deps.Dashboard)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(deps.Config.JWTSecret))
	{
		private.GET("/auth/profile", authHandler.GetProfile)

		private.GET("/doctors", directoryHandler.GetDoctors)
		private.GET("/departments", directoryHandler.GetDepartments)
		private.GET("/patients", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleDoctor), directoryHandler.GetPatients)

		// Appointment routes. Scoping and ownership are enforced by the ledger.
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleAdmin), appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PATCH("/:id/cancel", appointmentHandler.CancelAppointment)
		}

		private.GET("/medical-records", medicalRecordHandler.GetMedicalRecords)
		private.GET("/invoices", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleAdmin), medicalRecordHandler.GetInvoices)
		private.GET("/dashboard", dashboardHandler.GetDashboard)
	}

	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
