package models

import "time"

const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

type Task struct {
	ID          string
	UserID      string
	UserName    string
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
}
