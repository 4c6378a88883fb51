package routes

import (
	"net/http"

	"DoctorPortal/backend"
	"DoctorPortal/cache"
	"DoctorPortal/config"
	"DoctorPortal/controllers"
	"DoctorPortal/handlers"
	"DoctorPortal/metrics"
	"DoctorPortal/middlewares"
	"DoctorPortal/repositories"
	"DoctorPortal/services"
	"DoctorPortal/utils"

	"github.com/gin-gonic/gin"
)

// SetupRoutes initializes the routes and middleware for the server. The
// returned OrderService is handed to the maintenance scheduler.
func SetupRoutes(cacheClient *cache.Cache, appConfig *config.AppConfig) (http.Handler, *services.OrderService, error) {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())
	router.Use(metrics.Middleware())

	tokener, err := utils.NewSessionTokener(appConfig.GetSessionKey())
	if err != nil {
		return nil, nil, err
	}

	backendClient := backend.NewClient(appConfig.BackendBaseURL)
	parser := utils.DateParser{Shift: appConfig.DisplayShift}

	// Initialize repositories, services, and handlers
	sessionRepo := repositories.NewSessionRepository(cacheClient)
	appointmentRepo := repositories.NewAppointmentRepository(backendClient)
	patientRepo := repositories.NewPatientRepository(cacheClient, backendClient)
	orderRepo := repositories.NewOrderRepository(backendClient)
	medicineRepo := repositories.NewMedicineRepository(cacheClient, backendClient)
	shiftRepo := repositories.NewShiftRepository(backendClient)

	authService := services.NewAuthService(backendClient, sessionRepo, tokener)
	medicineService := services.NewMedicineService(medicineRepo)
	orderService := services.NewOrderService(orderRepo, medicineService)
	appointmentService := services.NewAppointmentService(appointmentRepo, patientRepo, parser)
	shiftService := services.NewShiftService(shiftRepo)
	dashboardService := services.NewDashboardService(appointmentRepo, orderRepo, parser)

	authHandler := handlers.NewAuthHandler(authService, orderService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	orderHandler := handlers.NewOrderHandler(orderService)
	medicineHandler := handlers.NewMedicineHandler(medicineService)
	shiftHandler := handlers.NewShiftHandler(shiftService)

	// Register routes
	controllers.SetupPortalRoutes(
		router,
		authService,
		authHandler,
		dashboardHandler,
		appointmentHandler,
		orderHandler,
		medicineHandler,
		shiftHandler,
	)
	controllers.SetupRootRoute(router)

	return router, orderService, nil
}
