package models

import (
	"time"
)

type Task struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	ListID       uint        `gorm:"not null;index" json:"list_id"`
	Title        string      `gorm:"not null" json:"title"`
	Description  *string     `json:"description"`
	DueDate      Date        `gorm:"index" json:"due_date"`
	IsCompleted  bool        `gorm:"not null;default:false" json:"is_completed"`
	IsImportant  bool        `gorm:"not null;default:false;index" json:"is_important"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
	Subtasks     []Subtask   `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"subtasks,omitempty"`
	MyDayEntries []MyDayTask `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
}

func (t *Task) IsPlanned() bool {
	return !t.DueDate.IsZero()
}

func (t *Task) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"id":           t.ID,
		"list_id":      t.ListID,
		"title":        t.Title,
		"description":  t.Description,
		"due_date":     t.DueDate,
		"is_completed": t.IsCompleted,
		"is_important": t.IsImportant,
		"created_at":   t.CreatedAt,
		"updated_at":   t.UpdatedAt,
	}
}
