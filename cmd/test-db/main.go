package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"exam-tasks-api/internal/config"
	"exam-tasks-api/internal/database"
	"exam-tasks-api/internal/models"
	"exam-tasks-api/internal/services"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// test-db prints a user's tasks and completeness straight from MongoDB,
// bypassing HTTP and auth
func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/test-db <userID> [status] [language]")
		fmt.Println("Example: go run ./cmd/test-db 65f1a2b3c4d5e6f708091a2b DONE pl")
		os.Exit(1)
	}

	userID, err := primitive.ObjectIDFromHex(os.Args[1])
	if err != nil {
		log.Fatalf("Invalid user ID: %v", err)
	}

	status := models.TaskStatusPending
	if len(os.Args) > 2 {
		status = models.TaskStatus(os.Args[2])
		if !status.Valid() {
			log.Fatalf("Invalid status %q, expected one of %v", status, models.TaskStatuses)
		}
	}

	language := ""
	if len(os.Args) > 3 {
		language = os.Args[3]
	}

	mongoClient, err := database.NewMongoDBClient(cfg.MongoDB, log)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Close()

	// Read-only use: no attachment store or event recorder needed
	taskService := services.NewTaskService(database.NewTaskRepository(mongoClient.Database()), nil, nil, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Printf("=== Tasks of %s (%s) ===\n\n", userID.Hex(), status)
	list, err := taskService.GetTasks(ctx, userID, status, language)
	if err != nil {
		log.Fatalf("Failed to load tasks: %v", err)
	}

	fmt.Printf("Found %d tasks\n", len(list.Results))
	for i, task := range list.Results {
		if i >= 10 {
			fmt.Printf("  ... and %d more tasks\n", len(list.Results)-10)
			break
		}
		examination := "<missing examination>"
		if task.Examination != nil {
			examination = describe(task.Examination.Name)
		}
		fmt.Printf("  [%d] %s priority=%d attachments=%d examination=%s\n",
			i+1, task.ID.Hex(), task.Priority, len(task.Attachments), examination)
	}
	fmt.Println()

	fmt.Println("=== Completeness (listed tasks) ===")
	printCompleteness(list.Completeness)

	completeness, err := taskService.GetUserCompleteness(ctx, userID)
	if err != nil {
		log.Fatalf("Failed to compute completeness: %v", err)
	}
	fmt.Println("=== Completeness (all tasks) ===")
	printCompleteness(completeness)
}

func describe(text models.LocalizedText) string {
	switch {
	case text.Text != nil:
		return *text.Text
	case text.Translations != nil:
		return fmt.Sprintf("%v", text.Translations)
	default:
		return "<null>"
	}
}

func printCompleteness(c models.Completeness) {
	fmt.Printf("  Done: %d/%d (%.2f%%)\n", c.CompleteTasksCount, c.TotalTasksCount, c.PercentageByCount)
	fmt.Printf("  Weight: %d/%d (%.2f%%)\n\n", c.CompletePriorityWeight, c.TotalPriorityWeight, c.PercentageByPriorityWeight)
}
