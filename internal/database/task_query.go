package database

import (
	"exam-tasks-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// localizedExaminationFields are projected to a single language when a
// TaskQuery is localized
var localizedExaminationFields = []string{"name", "description", "shortDescription"}

// TaskQuery describes a read of enriched tasks. It is an immutable value:
// every method returns a modified copy.
type TaskQuery struct {
	match    bson.D
	language string
}

// NewTaskQuery returns a query matching every task
func NewTaskQuery() TaskQuery {
	return TaskQuery{}
}

// ForUser restricts the query to tasks owned by userID
func (q TaskQuery) ForUser(userID primitive.ObjectID) TaskQuery {
	return q.where("userId", userID)
}

// WithStatus restricts the query to tasks with the given status
func (q TaskQuery) WithStatus(status models.TaskStatus) TaskQuery {
	return q.where("status", status)
}

// WithID restricts the query to a single task
func (q TaskQuery) WithID(id primitive.ObjectID) TaskQuery {
	return q.where("_id", id)
}

// Localized projects the examination texts to the given language code.
// An empty code leaves the per-language mappings untouched.
func (q TaskQuery) Localized(language string) TaskQuery {
	q.language = language
	return q
}

// Filter returns the match document of the query
func (q TaskQuery) Filter() bson.D {
	if q.match == nil {
		return bson.D{}
	}
	return q.match
}

// Pipeline assembles the aggregation: match, examination lookup, flatten,
// and the optional language projection
func (q TaskQuery) Pipeline() mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: q.Filter()}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: ExaminationsCollection},
			{Key: "localField", Value: "examinationId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "examination"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "examination", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{"$examination", 0}}}},
		}}},
	}

	if q.language != "" {
		pipeline = append(pipeline, localizationStage(q.language))
	}

	return pipeline
}

func (q TaskQuery) where(key string, value interface{}) TaskQuery {
	match := make(bson.D, 0, len(q.match)+1)
	match = append(match, q.match...)
	q.match = append(match, bson.E{Key: key, Value: value})
	return q
}

func localizationStage(language string) bson.D {
	fields := make(bson.D, 0, len(localizedExaminationFields))
	for _, field := range localizedExaminationFields {
		fields = append(fields, bson.E{
			Key:   "examination." + field,
			Value: "$examination." + field + "." + language,
		})
	}
	return bson.D{{Key: "$addFields", Value: fields}}
}
