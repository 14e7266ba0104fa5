package models

// MyDayTask places a task on the planning view of one calendar day. The pair
// (TaskID, TaskDate) is the identity.
type MyDayTask struct {
	TaskID   uint `gorm:"primaryKey;autoIncrement:false" json:"task_id"`
	TaskDate Date `gorm:"primaryKey" json:"task_date"`
}

func (m *MyDayTask) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"task_id":   m.TaskID,
		"task_date": m.TaskDate,
	}
}
