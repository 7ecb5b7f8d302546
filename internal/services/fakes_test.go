package services

import (
	"context"
	"io"

	"exam-tasks-api/internal/database"
	"exam-tasks-api/internal/models"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeTaskStore struct {
	aggregated []models.EnrichedTask
	found      []models.Task
	one        *models.Task
	matched    bool
	err        error

	queries []database.TaskQuery
	patches []models.TaskPatch
}

func (f *fakeTaskStore) Aggregate(ctx context.Context, q database.TaskQuery) ([]models.EnrichedTask, error) {
	f.queries = append(f.queries, q)
	return f.aggregated, f.err
}

func (f *fakeTaskStore) Find(ctx context.Context, q database.TaskQuery) ([]models.Task, error) {
	f.queries = append(f.queries, q)
	return f.found, f.err
}

func (f *fakeTaskStore) FindOne(ctx context.Context, q database.TaskQuery) (*models.Task, error) {
	f.queries = append(f.queries, q)
	return f.one, f.err
}

func (f *fakeTaskStore) Update(ctx context.Context, q database.TaskQuery, patch models.TaskPatch) (bool, error) {
	f.queries = append(f.queries, q)
	f.patches = append(f.patches, patch)
	return f.matched, f.err
}

type fakeAttachmentStore struct {
	deleteCalls [][]string
	uploads     []models.AttachmentFile
	key         string
	deleteErr   error
	uploadErr   error
}

func (f *fakeAttachmentStore) Upload(ctx context.Context, file models.AttachmentFile) (string, error) {
	f.uploads = append(f.uploads, file)
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return f.key, nil
}

func (f *fakeAttachmentStore) Delete(ctx context.Context, keys []string) error {
	f.deleteCalls = append(f.deleteCalls, keys)
	return f.deleteErr
}

type recordedStatus struct {
	taskID   string
	from, to models.TaskStatus
}

type fakeRecorder struct {
	statuses []recordedStatus
	uploads  []string
	err      error
}

func (f *fakeRecorder) RecordStatusChange(ctx context.Context, userID, taskID string, from, to models.TaskStatus) error {
	f.statuses = append(f.statuses, recordedStatus{taskID: taskID, from: from, to: to})
	return f.err
}

func (f *fakeRecorder) RecordUpload(ctx context.Context, userID, key string, size int) error {
	f.uploads = append(f.uploads, key)
	return f.err
}
