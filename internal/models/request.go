package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Optional records whether a JSON key was present, so that an explicit null
// can be told apart from an omitted field
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns a present Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// UnmarshalJSON is only called for keys present in the document, including null ones
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

// UpdateTaskRequest is the body of PUT /api/tasks/:id. Every field is optional.
type UpdateTaskRequest struct {
	Attachments Optional[[]string]    `json:"attachments"`
	DoneDate    Optional[*string]     `json:"doneDate"`
	Status      Optional[*TaskStatus] `json:"status"`
	UserInfo    Optional[*string]     `json:"userInfo"`
}

// TaskPatch is a validated partial update of a task
type TaskPatch struct {
	Attachments Optional[[]string]
	DoneDate    Optional[*time.Time]
	Status      Optional[TaskStatus]
	UserInfo    Optional[*string]
}

// doneDateLayouts are tried in order when parsing doneDate
var doneDateLayouts = []string{time.RFC3339Nano, "2006-01-02"}

// ToPatch converts the request into a TaskPatch, parsing dates
func (r UpdateTaskRequest) ToPatch() (TaskPatch, error) {
	patch := TaskPatch{
		Attachments: r.Attachments,
		UserInfo:    r.UserInfo,
	}

	if r.Status.Set {
		if r.Status.Value == nil {
			return TaskPatch{}, fmt.Errorf("status must not be null")
		}
		patch.Status = Some(*r.Status.Value)
	}

	if r.DoneDate.Set {
		if r.DoneDate.Value == nil {
			patch.DoneDate = Some[*time.Time](nil)
		} else {
			parsed, err := parseDoneDate(*r.DoneDate.Value)
			if err != nil {
				return TaskPatch{}, err
			}
			patch.DoneDate = Some(&parsed)
		}
	}

	return patch, nil
}

func parseDoneDate(value string) (time.Time, error) {
	for _, layout := range doneDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("doneDate %q is not an ISO 8601 date", value)
}

// UploadAttachmentResponse is the body returned after a successful upload
type UploadAttachmentResponse struct {
	Name string `json:"name"`
}

// AttachmentFile is a decoded attachment ready to be stored
type AttachmentFile struct {
	Data      []byte
	Extension string
}

// Claims represents JWT claims issued to API users
type Claims struct {
	UserID string `json:"user_id"` // Hex ObjectID of the user
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
