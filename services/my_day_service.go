package services

import (
	"errors"
	"log/slog"

	"vibe-todo/vibetodo/apperrors"
	"vibe-todo/vibetodo/database"
	"vibe-todo/vibetodo/models"

	"gorm.io/gorm"
)

type MyDayServiceInterface interface {
	GetMyDayTasks(s *database.Session, date models.Date) ([]models.Task, error)
	AddToMyDay(s *database.Session, taskID uint, date models.Date) (models.MyDayTask, error)
	RemoveFromMyDay(s *database.Session, taskID uint, date models.Date) (bool, error)
}

type MyDayService struct{}

func taskExists(s *database.Session, id uint) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.FromStorage("failed to check task", err)
	}
	return count > 0, nil
}

func requireTask(s *database.Session, id uint) error {
	exists, err := taskExists(s, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFound("task", id)
	}
	return nil
}

func requireDate(date models.Date) error {
	if date.IsZero() {
		return apperrors.Validation("date is required")
	}
	return nil
}

func (ms *MyDayService) GetMyDayTasks(s *database.Session, date models.Date) ([]models.Task, error) {
	if err := requireDate(date); err != nil {
		return nil, err
	}

	var tasks []models.Task
	err := s.DB.
		Joins("JOIN my_day_tasks ON my_day_tasks.task_id = tasks.id").
		Where("my_day_tasks.task_date = ?", date).
		Order("tasks.id").
		Find(&tasks).Error
	if err != nil {
		return nil, apperrors.FromStorage("failed to fetch my day tasks", err)
	}
	return tasks, nil
}

func (ms *MyDayService) find(s *database.Session, taskID uint, date models.Date) (*models.MyDayTask, error) {
	var entry models.MyDayTask
	err := s.DB.Where("task_id = ? AND task_date = ?", taskID, date).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.FromStorage("failed to look up my day entry", err)
	}
	return &entry, nil
}

// AddToMyDay is idempotent: an existing entry for the pair is returned as is.
func (ms *MyDayService) AddToMyDay(s *database.Session, taskID uint, date models.Date) (models.MyDayTask, error) {
	if err := requireDate(date); err != nil {
		return models.MyDayTask{}, err
	}
	if err := requireTask(s, taskID); err != nil {
		return models.MyDayTask{}, err
	}

	existing, err := ms.find(s, taskID, date)
	if err != nil {
		return models.MyDayTask{}, err
	}
	if existing != nil {
		slog.Debug("task already in my day", "task_id", taskID, "date", date.String())
		return *existing, nil
	}

	entry := models.MyDayTask{TaskID: taskID, TaskDate: date}
	err = s.Savepoint("add_my_day", func() error {
		return s.DB.Create(&entry).Error
	})
	if err != nil {
		if !apperrors.IsConstraint(err) {
			return models.MyDayTask{}, apperrors.FromStorage("failed to add task to my day", err)
		}
		winner, lookupErr := ms.find(s, taskID, date)
		if lookupErr != nil {
			return models.MyDayTask{}, lookupErr
		}
		if winner == nil {
			return models.MyDayTask{}, apperrors.Conflict(err, "failed to add task %d to my day", taskID)
		}
		return *winner, nil
	}

	if err := s.Emit(models.MyDayAdded, "my_day", taskID, entry.ToJSON()); err != nil {
		return models.MyDayTask{}, err
	}
	slog.Info("task added to my day", "task_id", taskID, "date", date.String())
	return entry, nil
}

func (ms *MyDayService) RemoveFromMyDay(s *database.Session, taskID uint, date models.Date) (bool, error) {
	if err := requireDate(date); err != nil {
		return false, err
	}
	if err := requireTask(s, taskID); err != nil {
		return false, err
	}

	result := s.DB.Where("task_id = ? AND task_date = ?", taskID, date).Delete(&models.MyDayTask{})
	if result.Error != nil {
		return false, apperrors.FromStorage("failed to remove task from my day", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	entry := models.MyDayTask{TaskID: taskID, TaskDate: date}
	if err := s.Emit(models.MyDayRemoved, "my_day", taskID, entry.ToJSON()); err != nil {
		return false, err
	}
	slog.Info("task removed from my day", "task_id", taskID, "date", date.String())
	return true, nil
}

var MyDayServiceInstance MyDayServiceInterface = &MyDayService{}
