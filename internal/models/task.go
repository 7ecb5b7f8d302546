package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	TaskStatusPending  TaskStatus = "PENDING"
	TaskStatusDone     TaskStatus = "DONE"
	TaskStatusCanceled TaskStatus = "CANCELED"
)

// TaskStatuses lists every accepted status value
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusDone, TaskStatusCanceled}

// Valid reports whether s is one of TaskStatuses
func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Task priorities. A lower value means a more important task.
const (
	PriorityHigh     = 1
	PriorityMedium   = 2
	PriorityOptional = 3
)

// Task is a to-do item owned by a user and tied to an examination
type Task struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Status        TaskStatus         `bson:"status" json:"status"`
	Priority      int                `bson:"priority" json:"priority"`
	ExaminationID primitive.ObjectID `bson:"examinationId" json:"examinationId"`
	Attachments   []string           `bson:"attachments" json:"attachments"`
	UserInfo      *string            `bson:"userInfo,omitempty" json:"userInfo,omitempty"`
	DoneDate      *time.Time         `bson:"doneDate,omitempty" json:"doneDate,omitempty"`
}

// EnrichedTask is a task joined with its examination
type EnrichedTask struct {
	Task        `bson:",inline"`
	Examination *Examination `bson:"examination,omitempty" json:"examination,omitempty"`
}

// TaskList is the response body of the task listing endpoint
type TaskList struct {
	Completeness Completeness   `json:"completeness"`
	Results      []EnrichedTask `json:"results"`
}
