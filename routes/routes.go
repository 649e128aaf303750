package routes

import (
	"net/http"
	"time"

	"appointify/handlers"
	"appointify/middleware"
	"appointify/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Appointify"})
	})
}

// RegisterBookingRoutes sets up the public booking surface: the catalog
// index and the slot-availability query. No authentication required.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	booking := r.Group("/api/booking")
	{
		booking.GET("/catalog", hb.Booking.GetCatalog)
		booking.GET("/availability", hb.Booking.GetAvailability)
	}
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.Register)
		api.POST("/login", hb.Users.Login)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.Users.Profile)
		api.PUT("/me", hb.Users.UpdateProfile)
		api.DELETE("/me", hb.Users.DeleteAccount)
		api.POST("/logout", hb.Users.Logout)
	}
}

// RegisterAppointmentRoutes sets up appointment CRUD. Booking is restricted
// to clients; reads and updates enforce role visibility in the service.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", middleware.RequireRole(models.RoleClient), hb.Appointments.Create)
		api.GET("", hb.Appointments.List)
		api.GET("/:id", hb.Appointments.Get)
		api.PATCH("/:id", hb.Appointments.Update)
		api.DELETE("/:id", hb.Appointments.Cancel)
	}
}

// RegisterAgentRoutes sets up the agent console.
func RegisterAgentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/agent")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleAgent))
		api.GET("/dashboard", hb.Agent.Dashboard)
		api.GET("/appointments", hb.Appointments.List)
		api.GET("/availability", hb.Agent.GetAvailability)
		api.PUT("/availability", hb.Agent.SaveAvailability)
		api.POST("/block-time", hb.Agent.BlockTime)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRole(models.RoleAdmin))
		api.GET("/dashboard", hb.Admin.Dashboard)
		api.GET("/appointments", hb.Appointments.List)
		api.GET("/agents", hb.Admin.ListAgents)
		api.GET("/services", hb.Admin.ListServices)
		api.POST("/services", hb.Admin.CreateService)
		api.PUT("/services/:id", hb.Admin.UpdateService)
		api.DELETE("/services/:id", hb.Admin.DeleteService)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterAgentRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
