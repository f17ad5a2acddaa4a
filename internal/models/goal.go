package models

type GoalType string

const (
	GoalCareer GoalType = "career"
	GoalBucket GoalType = "bucket"
)

// Goal is a long-term goal. Completed and Progress are independent of each other.
type Goal struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Reason    string   `json:"reason"`
	Action    string   `json:"action"`
	Progress  int      `json:"progress"` // 0-100
	Type      GoalType `json:"type"`
	Completed bool     `json:"completed"`
}
