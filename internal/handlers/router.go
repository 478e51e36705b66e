package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/school-portal/portal-service/internal/auth"
	"github.com/school-portal/portal-service/internal/models"
	"github.com/school-portal/portal-service/internal/services"
	"github.com/school-portal/portal-service/internal/utils"
)

type HandlerManager struct {
	authHandler       *AuthHandler
	userHandler       *UserHandler
	classHandler      *ClassHandler
	assignmentHandler *AssignmentHandler
	gradeHandler      *GradeHandler
	guard             *AccessGuard
	serviceManager    services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenIssuer,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:       NewAuthHandler(serviceManager.Auth(), logger),
		userHandler:       NewUserHandler(serviceManager.User(), serviceManager.Export(), logger),
		classHandler:      NewClassHandler(serviceManager.Class(), logger),
		assignmentHandler: NewAssignmentHandler(serviceManager.Assignment(), logger),
		gradeHandler:      NewGradeHandler(serviceManager.Grade(), serviceManager.Export(), logger),
		guard:             NewAccessGuard(tokens),
		serviceManager:    serviceManager,
	}
}

// SetupRoutes sets up all API routes. Every protected route carries an
// explicit role allowlist; admins get no implicit access to teacher or
// student endpoints.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)

	api := router.Group("/api")

	// Public auth routes
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/signup", hm.authHandler.Signup)
		authRoutes.POST("/login", hm.authHandler.Login)
	}

	// Everything else requires a valid bearer token
	protected := api.Group("")
	protected.Use(hm.guard.AuthMiddleware())
	{
		// User management - Admins only
		users := protected.Group("/users")
		{
			users.GET("", hm.guard.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.ListUsers)
			users.POST("", hm.guard.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.InviteUser)
			users.GET("/export", hm.guard.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.ExportUsers)
			users.DELETE("/:id", hm.guard.RequireRoleMiddleware(models.RoleAdmin), hm.userHandler.DeleteUser)
		}

		// Class management - listing for Admins and Teachers, mutation for Admins only
		classes := protected.Group("/classes")
		{
			classes.GET("", hm.guard.RequireRoleMiddleware(models.RoleAdmin, models.RoleTeacher), hm.classHandler.ListClasses)
			classes.POST("", hm.guard.RequireRoleMiddleware(models.RoleAdmin), hm.classHandler.CreateClass)
			classes.PUT("/:id", hm.guard.RequireRoleMiddleware(models.RoleAdmin), hm.classHandler.UpdateClass)
			classes.DELETE("/:id", hm.guard.RequireRoleMiddleware(models.RoleAdmin), hm.classHandler.DeleteClass)
		}

		// Assignments - all roles may read, Teachers mutate
		assignments := protected.Group("/assignments")
		{
			assignments.GET("/class/:classId", hm.guard.RequireRoleMiddleware(models.RoleAdmin, models.RoleTeacher, models.RoleStudent), hm.assignmentHandler.ListByClass)
			assignments.POST("", hm.guard.RequireRoleMiddleware(models.RoleTeacher), hm.assignmentHandler.CreateAssignment)
			assignments.PUT("/:id", hm.guard.RequireRoleMiddleware(models.RoleTeacher), hm.assignmentHandler.UpdateAssignment)
			assignments.DELETE("/:id", hm.guard.RequireRoleMiddleware(models.RoleTeacher), hm.assignmentHandler.DeleteAssignment)
		}

		// Grades - Students read their own, Teachers write and export
		grades := protected.Group("/grades")
		{
			grades.GET("/student/:studentId", hm.guard.RequireRoleMiddleware(models.RoleStudent), hm.gradeHandler.GetStudentGrades)
			grades.POST("", hm.guard.RequireRoleMiddleware(models.RoleTeacher), hm.gradeHandler.SubmitGrade)
			grades.GET("/class/:classId/export", hm.guard.RequireRoleMiddleware(models.RoleTeacher), hm.gradeHandler.ExportClassGrades)
		}
	}
}

// HealthCheck reports process and dependency health
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"error":     err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "portal-service",
	})
}
