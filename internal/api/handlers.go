package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"exam-tasks-api/internal/apperror"
	"exam-tasks-api/internal/middleware"
	"exam-tasks-api/internal/models"
	"exam-tasks-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/language"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	taskService *services.TaskService
	log         *logrus.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(taskService *services.TaskService, log *logrus.Logger) *Handlers {
	return &Handlers{
		taskService: taskService,
		log:         log,
	}
}

// ListTasks handles GET /api/tasks/
func (h *Handlers) ListTasks(c *gin.Context) {
	status := models.TaskStatus(c.DefaultQuery("status", string(models.TaskStatusPending)))

	list, err := h.taskService.GetTasks(c.Request.Context(), middleware.GetUserID(c), status, requestLanguage(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetCompleteness handles GET /api/tasks/completeness
func (h *Handlers) GetCompleteness(c *gin.Context) {
	completeness, err := h.taskService.GetUserCompleteness(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, completeness)
}

// GetTask handles GET /api/tasks/:id
func (h *Handlers) GetTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), middleware.GetUserID(c), taskID, requestLanguage(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/:id
// Responds 204 with no body on success
func (h *Handlers) UpdateTask(c *gin.Context) {
	const op = "api.Handlers.UpdateTask"
	log := h.log.WithField("operation", op)

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(apperror.NewValidation("Invalid request body", err.Error()))
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		_ = c.Error(apperror.NewValidation("Invalid request body", err.Error()))
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.taskService.UpdateTask(c.Request.Context(), userID, taskID, patch); err != nil {
		_ = c.Error(err)
		return
	}

	log.WithFields(logrus.Fields{
		"task_id": taskID.Hex(),
		"user_id": userID.Hex(),
	}).Info("task updated")

	c.Status(http.StatusNoContent)
}

// UploadAttachment handles POST /api/tasks/attachments
func (h *Handlers) UploadAttachment(c *gin.Context) {
	const op = "api.Handlers.UploadAttachment"
	log := h.log.WithField("operation", op)

	file, ok := middleware.GetAttachmentFile(c)
	if !ok {
		_ = c.Error(apperror.NewValidation("Attachment not found."))
		return
	}

	userID := middleware.GetUserID(c)
	name, err := h.taskService.UploadAttachment(c.Request.Context(), userID, file)
	if err != nil {
		_ = c.Error(err)
		return
	}

	fields := logrus.Fields{"user_id": userID.Hex(), "name": name}
	if claims := middleware.GetClaims(c); claims != nil && claims.Email != "" {
		fields["email"] = claims.Email
	}
	log.WithFields(fields).Info("attachment uploaded")

	c.JSON(http.StatusCreated, models.UploadAttachmentResponse{Name: name})
}

func taskIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	taskID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		_ = c.Error(apperror.NewValidation("Invalid request params", "id: must be a 24 character hex string"))
		return primitive.NilObjectID, false
	}
	return taskID, true
}

// requestLanguage returns the Accept-Language value when it is a single
// well-formed language tag, or "" to skip localization
func requestLanguage(c *gin.Context) string {
	value := strings.TrimSpace(c.GetHeader("Accept-Language"))
	if value == "" {
		return ""
	}
	if _, err := language.Parse(value); err != nil {
		return ""
	}
	return value
}
