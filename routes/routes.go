package routes

import (
	"net/http"
	"time"

	counselorRepo "mindhaven/database/repository/counselor"
	"mindhaven/handlers"
	"mindhaven/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAppointmentRoutes registers all endpoints of the appointment domain.
func RegisterAppointmentRoutes(r *gin.Engine, h *handlers.AppointmentHandler, counselors counselorRepo.CounselorRepository) {
	api := r.Group("/api/appointments")
	{
		// Public endpoints.
		api.GET("/counselors", h.GetCounselors)
		api.GET("/availability/:counselorId", h.GetAvailability)

		// Client endpoints (any authenticated caller).
		client := api.Group("")
		client.Use(middleware.JWTAuthMiddleware())
		client.POST("/book", h.Book)
		client.GET("/my-bookings", h.MyBookings)
		client.POST("/pay/:id", h.Pay)
		client.GET("/billing/paid", h.BillingPaid)
		client.GET("/billing/unpaid", h.BillingUnpaid)
		client.PATCH("/cancel/:id", h.Cancel)

		// Counselor endpoints (approved counselors only).
		counselor := api.Group("")
		counselor.Use(middleware.JWTAuthMiddleware(), middleware.CounselorOnly(counselors))
		counselor.GET("/schedule", h.Schedule)
		counselor.PUT("/status/:id", h.UpdateStatus)
		counselor.PATCH("/complete/:id", h.Complete)
		counselor.POST("/set-slots", h.SetSlots)
		counselor.DELETE("/availability/:date", h.DeleteDayAvailability)
		counselor.GET("/counselor/dashboard-stats", h.DashboardStats)

		// Admin endpoints.
		admin := api.Group("")
		admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminOnly())
		admin.GET("/admin/all", h.AdminAll)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm MindHaven"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *handlers.AppointmentHandler, counselors counselorRepo.CounselorRepository) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAppointmentRoutes(r, h, counselors)
}
