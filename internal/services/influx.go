package services

import (
	"context"
	"fmt"
	"time"

	"exam-tasks-api/internal/config"
	"exam-tasks-api/internal/models"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/sirupsen/logrus"
)

// EventRecorder receives task activity. Implementations must not fail the
// request that produced the event; errors are for logging only.
type EventRecorder interface {
	RecordStatusChange(ctx context.Context, userID, taskID string, from, to models.TaskStatus) error
	RecordUpload(ctx context.Context, userID, key string, size int) error
}

// NopRecorder discards every event. It is used when InfluxDB is not configured.
type NopRecorder struct{}

func (NopRecorder) RecordStatusChange(context.Context, string, string, models.TaskStatus, models.TaskStatus) error {
	return nil
}

func (NopRecorder) RecordUpload(context.Context, string, string, int) error {
	return nil
}

// InfluxService writes task activity points to InfluxDB
type InfluxService struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	now      func() time.Time
}

// NewInfluxService connects to InfluxDB and checks its health
func NewInfluxService(cfg config.InfluxDBConfig, log *logrus.Logger) (*InfluxService, error) {
	log.WithFields(logrus.Fields{"url": cfg.URL, "org": cfg.Org, "bucket": cfg.Bucket}).
		Info("initializing InfluxDB client")

	client := influxdb2.NewClient(cfg.URL, cfg.Token)

	health, err := client.Health(context.Background())
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to InfluxDB: %w", err)
	}
	if health.Status != "pass" {
		log.WithField("status", health.Status).Warn("InfluxDB health check did not pass")
	}

	return newInfluxService(client, client.WriteAPIBlocking(cfg.Org, cfg.Bucket)), nil
}

func newInfluxService(client influxdb2.Client, writeAPI api.WriteAPIBlocking) *InfluxService {
	return &InfluxService{
		client:   client,
		writeAPI: writeAPI,
		now:      time.Now,
	}
}

// RecordStatusChange writes a task_status point
func (s *InfluxService) RecordStatusChange(ctx context.Context, userID, taskID string, from, to models.TaskStatus) error {
	point := write.NewPoint("task_status",
		map[string]string{"user_id": userID, "status": string(to)},
		map[string]interface{}{"task_id": taskID, "previous": string(from)},
		s.now(),
	)
	return s.write(ctx, point)
}

// RecordUpload writes an attachment_upload point
func (s *InfluxService) RecordUpload(ctx context.Context, userID, key string, size int) error {
	point := write.NewPoint("attachment_upload",
		map[string]string{"user_id": userID},
		map[string]interface{}{"key": key, "size": size},
		s.now(),
	)
	return s.write(ctx, point)
}

func (s *InfluxService) write(ctx context.Context, point *write.Point) error {
	if err := s.writeAPI.WritePoint(ctx, point); err != nil {
		return fmt.Errorf("failed to write to InfluxDB: %w", err)
	}
	return nil
}

// Close closes the InfluxDB client
func (s *InfluxService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}
