package database

import (
	"context"
	"fmt"

	"exam-tasks-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskRepository reads and updates documents of the tasks collection
type TaskRepository struct {
	collection *mongo.Collection
}

// NewTaskRepository creates a repository over db's tasks collection
func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{
		collection: db.Collection(TasksCollection),
	}
}

// Aggregate runs the enriched-task pipeline of q
func (r *TaskRepository) Aggregate(ctx context.Context, q TaskQuery) ([]models.EnrichedTask, error) {
	cursor, err := r.collection.Aggregate(ctx, q.Pipeline())
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := make([]models.EnrichedTask, 0)
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	// The language projection creates an empty examination document when the
	// lookup matched nothing
	for i := range tasks {
		if tasks[i].Examination != nil && tasks[i].Examination.ID.IsZero() {
			tasks[i].Examination = nil
		}
	}

	return tasks, nil
}

// Find returns the status and priority of every task matching q
func (r *TaskRepository) Find(ctx context.Context, q TaskQuery) ([]models.Task, error) {
	opts := options.Find().SetProjection(bson.D{
		{Key: "status", Value: 1},
		{Key: "priority", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, q.Filter(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := make([]models.Task, 0)
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	return tasks, nil
}

// FindOne returns the first task matching q, or nil when there is none
func (r *TaskRepository) FindOne(ctx context.Context, q TaskQuery) (*models.Task, error) {
	var task models.Task
	err := r.collection.FindOne(ctx, q.Filter()).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to query task: %w", err)
	}

	return &task, nil
}

// Update applies patch to the task matching q. It reports whether a task matched.
func (r *TaskRepository) Update(ctx context.Context, q TaskQuery, patch models.TaskPatch) (bool, error) {
	update := PatchUpdate(patch)
	if len(update) == 0 {
		return true, nil
	}

	result, err := r.collection.UpdateOne(ctx, q.Filter(), update)
	if err != nil {
		return false, fmt.Errorf("failed to update task: %w", err)
	}

	return result.MatchedCount > 0, nil
}

// PatchUpdate builds the update document for the fields present in patch.
// Fields set to null are stored as null.
func PatchUpdate(patch models.TaskPatch) bson.D {
	set := bson.D{}

	if patch.Attachments.Set {
		attachments := patch.Attachments.Value
		if attachments == nil {
			attachments = []string{}
		}
		set = append(set, bson.E{Key: "attachments", Value: attachments})
	}
	if patch.DoneDate.Set {
		set = append(set, bson.E{Key: "doneDate", Value: patch.DoneDate.Value})
	}
	if patch.Status.Set {
		set = append(set, bson.E{Key: "status", Value: patch.Status.Value})
	}
	if patch.UserInfo.Set {
		set = append(set, bson.E{Key: "userInfo", Value: patch.UserInfo.Value})
	}

	if len(set) == 0 {
		return bson.D{}
	}
	return bson.D{{Key: "$set", Value: set}}
}
