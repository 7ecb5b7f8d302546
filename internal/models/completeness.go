package models

// Completeness summarizes how much of a task set is done, by raw count and
// weighted by priority
type Completeness struct {
	CompleteTasksCount         int     `json:"completeTasksCount"`
	TotalTasksCount            int     `json:"totalTasksCount"`
	PercentageByCount          float64 `json:"percentageByCount"`
	CompletePriorityWeight     int     `json:"completePriorityWeight"`
	TotalPriorityWeight        int     `json:"totalPriorityWeight"`
	PercentageByPriorityWeight float64 `json:"percentageByPriorityWeight"`
}
