package services

import (
	"errors"
	"log/slog"
	"strings"

	"vibe-todo/vibetodo/apperrors"
	"vibe-todo/vibetodo/database"
	"vibe-todo/vibetodo/models"

	"gorm.io/gorm"
)

type SubtaskUpdate struct {
	Title       *string
	IsCompleted *bool
}

type SubtaskServiceInterface interface {
	CreateSubtask(s *database.Session, taskID uint, title string) (models.Subtask, error)
	GetSubtask(s *database.Session, id uint) (*models.Subtask, error)
	GetSubtasksByTask(s *database.Session, taskID uint) ([]models.Subtask, error)
	UpdateSubtask(s *database.Session, id uint, update SubtaskUpdate) (models.Subtask, error)
	DeleteSubtask(s *database.Session, id uint) (bool, error)
	ToggleSubtaskComplete(s *database.Session, id uint) (models.Subtask, error)
}

type SubtaskService struct{}

// touchTask moves the parent task's updated_at forward.
func touchTask(s *database.Session, taskID uint) error {
	var task models.Task
	if err := s.DB.Select("id", "updated_at").First(&task, taskID).Error; err != nil {
		return apperrors.FromStorage("failed to load parent task", err)
	}
	err := s.DB.Model(&models.Task{}).Where("id = ?", taskID).
		Update("updated_at", nextUpdatedAt(task.UpdatedAt)).Error
	return apperrors.FromStorage("failed to touch parent task", err)
}

func (ss *SubtaskService) CreateSubtask(s *database.Session, taskID uint, title string) (models.Subtask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Subtask{}, apperrors.Validation("subtask title cannot be empty")
	}
	if err := requireTask(s, taskID); err != nil {
		return models.Subtask{}, err
	}

	subtask := models.Subtask{TaskID: taskID, Title: title}
	if err := s.DB.Create(&subtask).Error; err != nil {
		return models.Subtask{}, apperrors.FromStorage("failed to create subtask", err)
	}
	if err := touchTask(s, taskID); err != nil {
		return models.Subtask{}, err
	}

	if err := s.Emit(models.SubtaskCreated, "subtask", subtask.ID, subtask.ToJSON()); err != nil {
		return models.Subtask{}, err
	}
	slog.Info("subtask created", "id", subtask.ID, "task_id", taskID)
	return subtask, nil
}

func (ss *SubtaskService) GetSubtask(s *database.Session, id uint) (*models.Subtask, error) {
	var subtask models.Subtask
	if err := s.DB.First(&subtask, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.FromStorage("failed to fetch subtask", err)
	}
	return &subtask, nil
}

func (ss *SubtaskService) GetSubtasksByTask(s *database.Session, taskID uint) ([]models.Subtask, error) {
	if err := requireTask(s, taskID); err != nil {
		return nil, err
	}

	var subtasks []models.Subtask
	if err := s.DB.Where("task_id = ?", taskID).Order("id").Find(&subtasks).Error; err != nil {
		return nil, apperrors.FromStorage("failed to fetch subtasks", err)
	}
	return subtasks, nil
}

func (ss *SubtaskService) UpdateSubtask(s *database.Session, id uint, update SubtaskUpdate) (models.Subtask, error) {
	subtask, err := ss.GetSubtask(s, id)
	if err != nil {
		return models.Subtask{}, err
	}
	if subtask == nil {
		return models.Subtask{}, apperrors.NotFound("subtask", id)
	}

	updates := map[string]interface{}{}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return models.Subtask{}, apperrors.Validation("subtask title cannot be empty")
		}
		updates["title"] = title
	}
	if update.IsCompleted != nil {
		updates["is_completed"] = *update.IsCompleted
	}
	if len(updates) == 0 {
		return *subtask, nil
	}

	return ss.apply(s, subtask, updates)
}

func (ss *SubtaskService) apply(s *database.Session, subtask *models.Subtask, updates map[string]interface{}) (models.Subtask, error) {
	if err := s.DB.Model(&models.Subtask{}).Where("id = ?", subtask.ID).Updates(updates).Error; err != nil {
		return models.Subtask{}, apperrors.FromStorage("failed to update subtask", err)
	}
	if err := touchTask(s, subtask.TaskID); err != nil {
		return models.Subtask{}, err
	}

	var stored models.Subtask
	if err := s.DB.First(&stored, subtask.ID).Error; err != nil {
		return models.Subtask{}, apperrors.FromStorage("failed to reload subtask", err)
	}

	if err := s.Emit(models.SubtaskUpdated, "subtask", stored.ID, stored.ToJSON()); err != nil {
		return models.Subtask{}, err
	}
	return stored, nil
}

func (ss *SubtaskService) DeleteSubtask(s *database.Session, id uint) (bool, error) {
	subtask, err := ss.GetSubtask(s, id)
	if err != nil {
		return false, err
	}
	if subtask == nil {
		return false, nil
	}

	if err := s.DB.Delete(&models.Subtask{}, id).Error; err != nil {
		return false, apperrors.FromStorage("failed to delete subtask", err)
	}
	if err := touchTask(s, subtask.TaskID); err != nil {
		return false, err
	}

	if err := s.Emit(models.SubtaskDeleted, "subtask", id, subtask.ToJSON()); err != nil {
		return false, err
	}
	slog.Info("subtask deleted", "id", id)
	return true, nil
}

func (ss *SubtaskService) ToggleSubtaskComplete(s *database.Session, id uint) (models.Subtask, error) {
	subtask, err := ss.GetSubtask(s, id)
	if err != nil {
		return models.Subtask{}, err
	}
	if subtask == nil {
		return models.Subtask{}, apperrors.NotFound("subtask", id)
	}
	return ss.apply(s, subtask, map[string]interface{}{"is_completed": !subtask.IsCompleted})
}

var SubtaskServiceInstance SubtaskServiceInterface = &SubtaskService{}
