package services

import "exam-tasks-api/internal/models"

// PriorityWeight is 1 for an optional task and grows as priority gets more important
func PriorityWeight(task models.Task) int {
	return 1 + models.PriorityOptional - task.Priority
}

// CalculateCompleteness summarizes the given tasks. It only looks at status and
// priority; callers choose which tasks to pass in.
func CalculateCompleteness(tasks []models.Task) models.Completeness {
	var result models.Completeness

	for _, task := range tasks {
		weight := PriorityWeight(task)
		result.TotalTasksCount++
		result.TotalPriorityWeight += weight

		if task.Status == models.TaskStatusDone {
			result.CompleteTasksCount++
			result.CompletePriorityWeight += weight
		}
	}

	if result.TotalTasksCount > 0 {
		result.PercentageByCount = float64(result.CompleteTasksCount) / float64(result.TotalTasksCount) * 100
	}
	if result.TotalPriorityWeight != 0 {
		result.PercentageByPriorityWeight = float64(result.CompletePriorityWeight) / float64(result.TotalPriorityWeight) * 100
	}

	return result
}
