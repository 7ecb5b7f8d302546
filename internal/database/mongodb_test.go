package database

import (
	"io"
	"strings"
	"testing"

	"exam-tasks-api/internal/config"

	"github.com/sirupsen/logrus"
)

func TestBuildURI(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MongoDBConfig
		wantURI string
		wantLog string
	}{
		{
			name:    "explicit uri is not logged",
			cfg:     config.MongoDBConfig{URI: "mongodb://user:secret@db:27017/tasks"},
			wantURI: "mongodb://user:secret@db:27017/tasks",
			wantLog: "(from MONGODB_URI)",
		},
		{
			name:    "credentials are masked",
			cfg:     config.MongoDBConfig{Host: "db", Port: "27017", Database: "tasks", Username: "app", Password: "secret", AuthSource: "admin"},
			wantURI: "mongodb://app:secret@db:27017/tasks?authSource=admin",
			wantLog: "mongodb://app:***@db:27017/tasks?authSource=admin",
		},
		{
			name:    "no credentials",
			cfg:     config.MongoDBConfig{Host: "db", Port: "27017", Database: "tasks"},
			wantURI: "mongodb://db:27017/tasks",
			wantLog: "mongodb://db:27017/tasks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, logURI := BuildURI(tt.cfg)
			if uri != tt.wantURI {
				t.Errorf("uri = %q, want %q", uri, tt.wantURI)
			}
			if logURI != tt.wantLog {
				t.Errorf("logURI = %q, want %q", logURI, tt.wantLog)
			}
		})
	}
}

func TestNewMongoDBClientUnreachable(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := config.MongoDBConfig{
		URI:      "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=300&connectTimeoutMS=300",
		Database: "tasks",
	}

	client, err := NewMongoDBClient(cfg, log)
	if err == nil {
		client.Close()
		t.Fatal("NewMongoDBClient() expected error for an unreachable server")
	}
	if client != nil {
		t.Errorf("NewMongoDBClient() client = %v, want nil", client)
	}
	if !strings.Contains(err.Error(), "failed to ping MongoDB") {
		t.Errorf("error = %v, want ping failure", err)
	}
}
