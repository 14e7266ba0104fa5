package models

import (
	"time"
)

// Names of the lists seeded at bootstrap, in seeding order.
var SystemListNames = []string{"My Day", "Important", "Planned", "Tasks"}

type List struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	IsSystem  bool      `gorm:"not null;default:false;index" json:"is_system"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	Tasks     []Task    `gorm:"foreignKey:ListID;constraint:OnDelete:RESTRICT" json:"tasks,omitempty"`
}

func (l *List) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"id":         l.ID,
		"name":       l.Name,
		"is_system":  l.IsSystem,
		"created_at": l.CreatedAt,
	}
}
