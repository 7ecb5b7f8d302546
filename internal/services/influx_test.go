package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"exam-tasks-api/internal/models"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

type fakeWriteAPI struct {
	points []*write.Point
	err    error
}

func (f *fakeWriteAPI) WriteRecord(ctx context.Context, line ...string) error { return f.err }

func (f *fakeWriteAPI) WritePoint(ctx context.Context, point ...*write.Point) error {
	if f.err != nil {
		return f.err
	}
	f.points = append(f.points, point...)
	return nil
}

func (f *fakeWriteAPI) EnableBatching() {}

func (f *fakeWriteAPI) Flush(ctx context.Context) error { return nil }

func tagValue(p *write.Point, key string) string {
	for _, tag := range p.TagList() {
		if tag.Key == key {
			return tag.Value
		}
	}
	return ""
}

func TestInfluxServiceRecordsStatusChange(t *testing.T) {
	fake := &fakeWriteAPI{}
	svc := newInfluxService(nil, fake)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	err := svc.RecordStatusChange(context.Background(), "user-1", "task-1", models.TaskStatusPending, models.TaskStatusDone)
	if err != nil {
		t.Fatalf("RecordStatusChange() error = %v", err)
	}

	if len(fake.points) != 1 {
		t.Fatalf("points = %d, want 1", len(fake.points))
	}
	p := fake.points[0]
	if p.Name() != "task_status" || !p.Time().Equal(fixed) {
		t.Errorf("point = %s at %v", p.Name(), p.Time())
	}
	if tagValue(p, "status") != "DONE" || tagValue(p, "user_id") != "user-1" {
		t.Errorf("tags = %v", p.TagList())
	}
}

func TestInfluxServiceRecordsUpload(t *testing.T) {
	fake := &fakeWriteAPI{}
	svc := newInfluxService(nil, fake)

	if err := svc.RecordUpload(context.Background(), "user-1", "abc.png", 42); err != nil {
		t.Fatalf("RecordUpload() error = %v", err)
	}
	if len(fake.points) != 1 || fake.points[0].Name() != "attachment_upload" {
		t.Fatalf("points = %v", fake.points)
	}
}

func TestInfluxServiceWrapsWriteErrors(t *testing.T) {
	cause := errors.New("unavailable")
	svc := newInfluxService(nil, &fakeWriteAPI{err: cause})

	err := svc.RecordUpload(context.Background(), "user-1", "abc.png", 1)
	if !errors.Is(err, cause) {
		t.Errorf("RecordUpload() error = %v, want wrapping %v", err, cause)
	}
}
