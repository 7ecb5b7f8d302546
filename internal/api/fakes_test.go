package api

import (
	"context"
	"io"
	"testing"

	"exam-tasks-api/internal/database"
	"exam-tasks-api/internal/models"
	"exam-tasks-api/internal/services"
	"exam-tasks-api/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "handler-test-secret"

type fakeStore struct {
	aggregated []models.EnrichedTask
	found      []models.Task
	one        *models.Task
	matched    bool
	err        error

	queries []database.TaskQuery
	patches []models.TaskPatch
}

func (f *fakeStore) Aggregate(ctx context.Context, q database.TaskQuery) ([]models.EnrichedTask, error) {
	f.queries = append(f.queries, q)
	return f.aggregated, f.err
}

func (f *fakeStore) Find(ctx context.Context, q database.TaskQuery) ([]models.Task, error) {
	f.queries = append(f.queries, q)
	return f.found, f.err
}

func (f *fakeStore) FindOne(ctx context.Context, q database.TaskQuery) (*models.Task, error) {
	f.queries = append(f.queries, q)
	return f.one, f.err
}

func (f *fakeStore) Update(ctx context.Context, q database.TaskQuery, patch models.TaskPatch) (bool, error) {
	f.queries = append(f.queries, q)
	f.patches = append(f.patches, patch)
	return f.matched, f.err
}

type fakeAttachments struct {
	key       string
	uploadErr error
	deleteErr error

	uploads []models.AttachmentFile
	deletes [][]string
}

func (f *fakeAttachments) Upload(ctx context.Context, file models.AttachmentFile) (string, error) {
	f.uploads = append(f.uploads, file)
	return f.key, f.uploadErr
}

func (f *fakeAttachments) Delete(ctx context.Context, keys []string) error {
	f.deletes = append(f.deletes, keys)
	return f.deleteErr
}

type captureHook struct {
	entries []*logrus.Entry
}

func (h *captureHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *captureHook) Fire(entry *logrus.Entry) error {
	h.entries = append(h.entries, entry)
	return nil
}

type testServer struct {
	router      *gin.Engine
	logs        *captureHook
	store       *fakeStore
	attachments *fakeAttachments
	userID      primitive.ObjectID
	token       string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)
	hook := &captureHook{}
	log.AddHook(hook)

	schemas, err := validation.LoadTaskSchemas()
	if err != nil {
		t.Fatalf("LoadTaskSchemas() error = %v", err)
	}

	store := &fakeStore{matched: true}
	attachments := &fakeAttachments{key: "3f1c2a4e-0000-4000-8000-000000000001.png"}
	taskService := services.NewTaskService(store, attachments, nil, log)
	jwtService := services.NewJWTService(testSecret)

	userID := primitive.NewObjectID()
	token, err := jwtService.GenerateToken(userID.Hex(), "owner@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	return &testServer{
		router:      SetupRoutes(NewHandlers(taskService, log), jwtService, schemas, 1<<20, log),
		logs:        hook,
		store:       store,
		attachments: attachments,
		userID:      userID,
		token:       token,
	}
}
