package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/univoice/backend/internal/app/controllers"
	"github.com/univoice/backend/internal/app/models"
	"github.com/univoice/backend/internal/app/models/dto"
	"github.com/univoice/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	complaintController *controllers.ComplaintController,
	userController *controllers.UserController,
	hostelController *controllers.HostelController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/profile", authController.GetProfile)

		// Complaint routes. Role checks beyond authentication live in the
		// service layer because they depend on the complaint being acted on.
		complaints := authenticated.Group("/complaints")
		{
			complaints.POST("", complaintController.FileComplaint)
			complaints.GET("", complaintController.ListComplaints)
			complaints.GET("/queue", complaintController.GetQueue)
			complaints.GET("/:id", complaintController.GetComplaint)
			complaints.PUT("/:id/status", complaintController.UpdateStatus)
			complaints.PUT("/:id/triage", complaintController.Triage)
			complaints.DELETE("/:id", complaintController.DeleteComplaint)
		}

		// Hostel routes: listing is open to any authenticated user, mutation
		// and the complaint counts view are admin only.
		hostels := authenticated.Group("/hostels")
		{
			hostels.GET("", hostelController.ListHostels)
			hostels.GET("/:id", hostelController.GetHostel)

			hostelsAdminProtected := hostels.Group("")
			hostelsAdminProtected.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				hostelsAdminProtected.POST("", hostelController.CreateHostel)
				hostelsAdminProtected.DELETE("/:id", hostelController.DeleteHostel)
				hostelsAdminProtected.GET("/:id/complaints/counts", complaintController.GetHostelCounts)
			}
		}

		// User management routes (admin only)
		users := authenticated.Group("/users")
		users.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			users.POST("", userController.CreateUser)
			users.GET("", userController.ListUsers)
			users.GET("/:id", userController.GetUser)
			users.GET("/:id/profile", userController.GetStudentProfile)
			users.PUT("/:id", userController.UpdateUser)
			users.DELETE("/:id", userController.DeleteUser)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
