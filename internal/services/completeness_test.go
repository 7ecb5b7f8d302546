package services

import (
	"math"
	"testing"

	"exam-tasks-api/internal/models"
)

func TestCalculateCompletenessExample(t *testing.T) {
	tasks := []models.Task{
		{Status: models.TaskStatusDone, Priority: models.PriorityHigh},
		{Status: models.TaskStatusPending, Priority: models.PriorityOptional},
	}

	got := CalculateCompleteness(tasks)
	want := models.Completeness{
		CompleteTasksCount:         1,
		TotalTasksCount:            2,
		PercentageByCount:          50,
		CompletePriorityWeight:     3,
		TotalPriorityWeight:        4,
		PercentageByPriorityWeight: 75,
	}

	if got != want {
		t.Errorf("CalculateCompleteness() = %+v, want %+v", got, want)
	}
}

func TestCalculateCompletenessEmpty(t *testing.T) {
	got := CalculateCompleteness(nil)
	if got != (models.Completeness{}) {
		t.Errorf("CalculateCompleteness(nil) = %+v, want zero summary", got)
	}
}

func TestPriorityWeight(t *testing.T) {
	tests := map[int]int{
		models.PriorityHigh:     3,
		models.PriorityMedium:   2,
		models.PriorityOptional: 1,
	}
	for priority, want := range tests {
		if got := PriorityWeight(models.Task{Priority: priority}); got != want {
			t.Errorf("PriorityWeight(%d) = %d, want %d", priority, got, want)
		}
	}
}

func TestCalculateCompletenessOnlyCountsDone(t *testing.T) {
	tasks := []models.Task{
		{Status: models.TaskStatusCanceled, Priority: models.PriorityHigh},
		{Status: models.TaskStatusPending, Priority: models.PriorityMedium},
	}

	got := CalculateCompleteness(tasks)
	if got.CompleteTasksCount != 0 || got.PercentageByCount != 0 || got.PercentageByPriorityWeight != 0 {
		t.Errorf("CalculateCompleteness() = %+v, want nothing complete", got)
	}
	if got.TotalPriorityWeight != 5 {
		t.Errorf("TotalPriorityWeight = %d, want 5", got.TotalPriorityWeight)
	}
}

func TestCalculateCompletenessPercentagesBounded(t *testing.T) {
	statuses := []models.TaskStatus{models.TaskStatusDone, models.TaskStatusPending, models.TaskStatusCanceled}
	priorities := []int{models.PriorityHigh, models.PriorityMedium, models.PriorityOptional}

	// Every non-empty combination of up to 9 tasks built from the status/priority grid
	var all []models.Task
	for _, s := range statuses {
		for _, p := range priorities {
			all = append(all, models.Task{Status: s, Priority: p})
		}
	}

	for mask := 1; mask < 1<<len(all); mask++ {
		var subset []models.Task
		for i, task := range all {
			if mask&(1<<i) != 0 {
				subset = append(subset, task)
			}
		}

		got := CalculateCompleteness(subset)
		if got.PercentageByCount < 0 || got.PercentageByCount > 100 {
			t.Fatalf("mask %b: PercentageByCount = %v", mask, got.PercentageByCount)
		}
		if got.PercentageByPriorityWeight < 0 || got.PercentageByPriorityWeight > 100 {
			t.Fatalf("mask %b: PercentageByPriorityWeight = %v", mask, got.PercentageByPriorityWeight)
		}
		if got.TotalTasksCount != len(subset) {
			t.Fatalf("mask %b: TotalTasksCount = %d, want %d", mask, got.TotalTasksCount, len(subset))
		}
	}
}

func TestCalculateCompletenessAllDone(t *testing.T) {
	tasks := []models.Task{
		{Status: models.TaskStatusDone, Priority: models.PriorityMedium},
		{Status: models.TaskStatusDone, Priority: models.PriorityOptional},
		{Status: models.TaskStatusDone, Priority: models.PriorityHigh},
	}

	got := CalculateCompleteness(tasks)
	if math.Abs(got.PercentageByCount-100) > 1e-9 || math.Abs(got.PercentageByPriorityWeight-100) > 1e-9 {
		t.Errorf("CalculateCompleteness() = %+v, want 100%%", got)
	}
}
