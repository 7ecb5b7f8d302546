package api

import (
	"net/http"

	"exam-tasks-api/internal/middleware"
	"exam-tasks-api/internal/services"
	"exam-tasks-api/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AttachmentField is the request field carrying a base64 encoded upload
const AttachmentField = "attachment"

// SetupRoutes configures all API routes
func SetupRoutes(handlers *Handlers, jwtService *services.JWTService, schemas *validation.TaskSchemas, maxFileSize int64, log *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		tasks := api.Group("/tasks")
		tasks.Use(middleware.JWTAuth(jwtService))
		{
			tasks.GET("/", validation.Validate(schemas.ListTasks), handlers.ListTasks)
			tasks.GET("/completeness", handlers.GetCompleteness)
			tasks.POST("/attachments", middleware.Base64Upload(AttachmentField, maxFileSize), handlers.UploadAttachment)
			tasks.GET("/:id", validation.Validate(schemas.GetTask), handlers.GetTask)
			tasks.PUT("/:id", validation.Validate(schemas.UpdateTask), handlers.UpdateTask)
		}
	}

	return router
}
