package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appointify/config"
	"appointify/cron"
	"appointify/database"
	appointmentRepoPkg "appointify/database/repository/appointment"
	availabilityRepoPkg "appointify/database/repository/availability"
	serviceRepoPkg "appointify/database/repository/service"
	userRepoPkg "appointify/database/repository/user"
	"appointify/handlers"
	"appointify/middleware"
	"appointify/routes"
	"appointify/services/admin"
	"appointify/services/agent"
	"appointify/services/appointment"
	"appointify/services/availability"
	"appointify/services/catalog"
	"appointify/services/scheduling"
	"appointify/services/user"
	"appointify/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()

	clock := scheduling.SystemClock{}

	// services.
	userService := &user.DefaultUserService{
		Repo:      userRepo,
		AuthCache: utils.GetAuthCacheClient(),
	}

	catalogService := &catalog.DefaultCatalogService{
		Repo:  serviceRepo,
		Users: userService,
	}

	availabilityService := &availability.DefaultAvailabilityService{
		Rules:        availabilityRepo,
		Appointments: appointmentRepo,
		Services:     serviceRepo,
		Users:        userRepo,
		Cache:        utils.GetCacheClient(),
		Clock:        clock,
	}

	appointmentService := &appointment.DefaultAppointmentService{
		Appointments: appointmentRepo,
		Services:     serviceRepo,
		Users:        userRepo,
		Payments:     &appointment.StripePaymentHandler{Logger: logger},
		Clock:        clock,
	}

	agentService := &agent.DefaultAgentService{
		Appointments: appointmentRepo,
		Clock:        clock,
	}

	adminService := &admin.DefaultAdminService{
		Appointments: appointmentRepo,
		Users:        userService,
		Clock:        clock,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     userRepo,
		Booking:      handlers.NewBookingHandler(availabilityService, catalogService, logger),
		Appointments: handlers.NewAppointmentHandler(appointmentService, logger),
		Agent:        handlers.NewAgentHandler(agentService, availabilityService, logger),
		Admin:        handlers.NewAdminHandler(adminService, catalogService, userService, logger),
		Users:        handlers.NewUserHandler(userService, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background lifecycle sweeps (complete finished, expire stale pending).
	cron.InitLifecycleWorker(appointmentRepo, clock)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
