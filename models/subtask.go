package models

import (
	"time"
)

// Subtask is a checklist item under a Task.
type Subtask struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TaskID      uint      `gorm:"not null;index" json:"task_id"`
	Title       string    `gorm:"not null" json:"title"`
	IsCompleted bool      `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (s *Subtask) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"id":           s.ID,
		"task_id":      s.TaskID,
		"title":        s.Title,
		"is_completed": s.IsCompleted,
		"created_at":   s.CreatedAt,
	}
}
