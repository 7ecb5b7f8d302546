package services

import (
	"context"
	"fmt"

	"exam-tasks-api/internal/apperror"
	"exam-tasks-api/internal/database"
	"exam-tasks-api/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStore is the persistence used by TaskService.
// *database.TaskRepository implements it.
type TaskStore interface {
	Aggregate(ctx context.Context, q database.TaskQuery) ([]models.EnrichedTask, error)
	Find(ctx context.Context, q database.TaskQuery) ([]models.Task, error)
	FindOne(ctx context.Context, q database.TaskQuery) (*models.Task, error)
	Update(ctx context.Context, q database.TaskQuery, patch models.TaskPatch) (bool, error)
}

// TaskService implements the task use cases on top of the store and the attachment bucket
type TaskService struct {
	store       TaskStore
	attachments AttachmentStore
	events      EventRecorder
	log         *logrus.Logger
}

// NewTaskService creates a new task service. A nil recorder disables event recording.
func NewTaskService(store TaskStore, attachments AttachmentStore, events EventRecorder, log *logrus.Logger) *TaskService {
	if events == nil {
		events = NopRecorder{}
	}
	return &TaskService{
		store:       store,
		attachments: attachments,
		events:      events,
		log:         log,
	}
}

// GetTasks lists the user's tasks with the given status together with their completeness
func (s *TaskService) GetTasks(ctx context.Context, userID primitive.ObjectID, status models.TaskStatus, language string) (*models.TaskList, error) {
	query := database.NewTaskQuery().
		ForUser(userID).
		WithStatus(status).
		Localized(language)

	results, err := s.store.Aggregate(ctx, query)
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(results))
	for _, result := range results {
		tasks = append(tasks, result.Task)
	}

	return &models.TaskList{
		Completeness: CalculateCompleteness(tasks),
		Results:      results,
	}, nil
}

// GetTask returns a single task owned by the user
func (s *TaskService) GetTask(ctx context.Context, userID, taskID primitive.ObjectID, language string) (*models.EnrichedTask, error) {
	query := database.NewTaskQuery().
		WithID(taskID).
		ForUser(userID).
		Localized(language)

	results, err := s.store.Aggregate(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperror.NewNotFound("Task not found")
	}

	return &results[0], nil
}

// GetUserCompleteness computes completeness over every task of the user
func (s *TaskService) GetUserCompleteness(ctx context.Context, userID primitive.ObjectID) (models.Completeness, error) {
	tasks, err := s.store.Find(ctx, database.NewTaskQuery().ForUser(userID))
	if err != nil {
		return models.Completeness{}, err
	}
	return CalculateCompleteness(tasks), nil
}

// UpdateTask applies patch to a task owned by the user. Attachments dropped
// from the task's list are deleted from the bucket first; if that fails the
// task is left unchanged.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID primitive.ObjectID, patch models.TaskPatch) error {
	const op = "services.TaskService.UpdateTask"
	log := s.log.WithFields(logrus.Fields{
		"operation": op,
		"task_id":   taskID.Hex(),
	})

	query := database.NewTaskQuery().WithID(taskID).ForUser(userID)

	task, err := s.store.FindOne(ctx, query)
	if err != nil {
		return err
	}
	if task == nil {
		return apperror.NewNotFound("Task not found")
	}

	toDelete := AttachmentsToDelete(task.Attachments, patch.Attachments)
	if len(toDelete) > 0 {
		log.WithField("keys", toDelete).Info("deleting removed attachments")
		if err := s.attachments.Delete(ctx, toDelete); err != nil {
			return fmt.Errorf("failed to delete attachments: %w", err)
		}
	}

	matched, err := s.store.Update(ctx, query, patch)
	if err != nil {
		return err
	}
	if !matched {
		return apperror.NewNotFound("Task not found")
	}

	if patch.Status.Set && patch.Status.Value != task.Status {
		err := s.events.RecordStatusChange(ctx, userID.Hex(), taskID.Hex(), task.Status, patch.Status.Value)
		if err != nil {
			log.WithError(err).Warn("failed to record status change")
		}
	}

	return nil
}

// UploadAttachment stores a decoded attachment and returns its key
func (s *TaskService) UploadAttachment(ctx context.Context, userID primitive.ObjectID, file models.AttachmentFile) (string, error) {
	key, err := s.attachments.Upload(ctx, file)
	if err != nil {
		return "", err
	}

	if err := s.events.RecordUpload(ctx, userID.Hex(), key, len(file.Data)); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("failed to record upload")
	}

	return key, nil
}

// AttachmentsToDelete returns the distinct current keys that are not in the
// requested list, in their original order. An absent list keeps every attachment.
func AttachmentsToDelete(current []string, requested models.Optional[[]string]) []string {
	if !requested.Set {
		return nil
	}

	keep := make(map[string]struct{}, len(requested.Value))
	for _, key := range requested.Value {
		keep[key] = struct{}{}
	}

	var toDelete []string
	seen := make(map[string]struct{}, len(current))
	for _, key := range current {
		if _, ok := keep[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		toDelete = append(toDelete, key)
	}

	return toDelete
}
