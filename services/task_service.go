package services

import (
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"vibe-todo/vibetodo/apperrors"
	"vibe-todo/vibetodo/database"
	"vibe-todo/vibetodo/models"

	"gorm.io/gorm"
)

// TaskOptions carries the optional fields of a new task.
type TaskOptions struct {
	Description *string
	DueDate     models.Date
	IsCompleted bool
	IsImportant bool
}

// TaskUpdate is a partial update; nil fields are left alone. A Description
// of "" and a zero DueDate clear the stored value.
type TaskUpdate struct {
	ListID      *uint
	Title       *string
	Description *string
	DueDate     *models.Date
	IsCompleted *bool
	IsImportant *bool
}

// TaskFilter narrows GetAllTasks. Unset fields are not applied; Title is a
// case-insensitive substring match and is ignored when blank.
type TaskFilter struct {
	ListID      *uint
	IsCompleted *bool
	IsImportant *bool
	DueDate     *models.Date
	Title       string
}

type TaskServiceInterface interface {
	CreateTask(s *database.Session, listID uint, title string, opts TaskOptions) (models.Task, error)
	GetTask(s *database.Session, id uint) (*models.Task, error)
	GetTaskWithSubtasks(s *database.Session, id uint) (*models.Task, error)
	GetTasksByList(s *database.Session, listID uint) ([]models.Task, error)
	UpdateTask(s *database.Session, id uint, update TaskUpdate) (models.Task, error)
	DeleteTask(s *database.Session, id uint) (bool, error)
	ToggleComplete(s *database.Session, id uint) (models.Task, error)
	ToggleImportant(s *database.Session, id uint) (models.Task, error)
	GetImportantTasks(s *database.Session) ([]models.Task, error)
	GetPlannedTasks(s *database.Session) ([]models.Task, error)
	GetAllTasks(s *database.Session, filter TaskFilter) ([]models.Task, error)
}

type TaskService struct{}

func normalizeDescription(desc *string) *string {
	if desc == nil || strings.TrimSpace(*desc) == "" {
		return nil
	}
	d := *desc
	return &d
}

// nextUpdatedAt never returns a time at or before prev, so every mutation
// moves updated_at forward even on a coarse clock.
func nextUpdatedAt(prev time.Time) time.Time {
	now := time.Now()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}
	return now
}

func listExists(s *database.Session, id uint) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.List{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.FromStorage("failed to check list", err)
	}
	return count > 0, nil
}

func (ts *TaskService) CreateTask(s *database.Session, listID uint, title string, opts TaskOptions) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, apperrors.Validation("task title cannot be empty")
	}

	exists, err := listExists(s, listID)
	if err != nil {
		return models.Task{}, err
	}
	if !exists {
		slog.Warn("cannot create task: list not found", "list_id", listID)
		return models.Task{}, apperrors.NotFound("list", listID)
	}

	now := time.Now()
	task := models.Task{
		ListID:      listID,
		Title:       title,
		Description: normalizeDescription(opts.Description),
		DueDate:     opts.DueDate,
		IsCompleted: opts.IsCompleted,
		IsImportant: opts.IsImportant,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.DB.Create(&task).Error; err != nil {
		slog.Error("failed to create task", "list_id", listID, "error", err)
		return models.Task{}, apperrors.FromStorage("failed to create task", err)
	}

	if err := s.Emit(models.TaskCreated, "task", task.ID, task.ToJSON()); err != nil {
		return models.Task{}, err
	}
	slog.Info("task created", "id", task.ID, "list_id", listID)
	return task, nil
}

// GetTask returns nil without error when no task has that id.
func (ts *TaskService) GetTask(s *database.Session, id uint) (*models.Task, error) {
	return ts.findTask(s.DB, id)
}

func (ts *TaskService) GetTaskWithSubtasks(s *database.Session, id uint) (*models.Task, error) {
	return ts.findTask(s.DB.Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("subtasks.id")
	}), id)
}

func (ts *TaskService) findTask(db *gorm.DB, id uint) (*models.Task, error) {
	var task models.Task
	if err := db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Warn("task not found", "id", id)
			return nil, nil
		}
		return nil, apperrors.FromStorage("failed to fetch task", err)
	}
	return &task, nil
}

func (ts *TaskService) mustFindTask(s *database.Session, id uint) (*models.Task, error) {
	task, err := ts.GetTask(s, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.NotFound("task", id)
	}
	return task, nil
}

func (ts *TaskService) GetTasksByList(s *database.Session, listID uint) ([]models.Task, error) {
	exists, err := listExists(s, listID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NotFound("list", listID)
	}

	var tasks []models.Task
	if err := s.DB.Where("list_id = ?", listID).Order("id").Find(&tasks).Error; err != nil {
		return nil, apperrors.FromStorage("failed to fetch tasks", err)
	}
	return tasks, nil
}

func (ts *TaskService) UpdateTask(s *database.Session, id uint, update TaskUpdate) (models.Task, error) {
	task, err := ts.mustFindTask(s, id)
	if err != nil {
		return models.Task{}, err
	}

	updates := map[string]interface{}{}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return models.Task{}, apperrors.Validation("task title cannot be empty")
		}
		updates["title"] = title
	}
	if update.ListID != nil {
		exists, err := listExists(s, *update.ListID)
		if err != nil {
			return models.Task{}, err
		}
		if !exists {
			return models.Task{}, apperrors.NotFound("list", *update.ListID)
		}
		updates["list_id"] = *update.ListID
	}
	if update.Description != nil {
		updates["description"] = normalizeDescription(update.Description)
	}
	if update.DueDate != nil {
		updates["due_date"] = *update.DueDate
	}
	if update.IsCompleted != nil {
		updates["is_completed"] = *update.IsCompleted
	}
	if update.IsImportant != nil {
		updates["is_important"] = *update.IsImportant
	}

	return ts.apply(s, task, updates)
}

// apply writes updates plus a fresh updated_at and returns the stored row.
func (ts *TaskService) apply(s *database.Session, task *models.Task, updates map[string]interface{}) (models.Task, error) {
	updates["updated_at"] = nextUpdatedAt(task.UpdatedAt)

	if err := s.DB.Model(&models.Task{}).Where("id = ?", task.ID).Updates(updates).Error; err != nil {
		slog.Error("failed to update task", "id", task.ID, "error", err)
		return models.Task{}, apperrors.FromStorage("failed to update task", err)
	}

	var stored models.Task
	if err := s.DB.First(&stored, task.ID).Error; err != nil {
		return models.Task{}, apperrors.FromStorage("failed to reload task", err)
	}

	if err := s.Emit(models.TaskUpdated, "task", stored.ID, stored.ToJSON()); err != nil {
		return models.Task{}, err
	}
	slog.Info("task updated", "id", stored.ID)
	return stored, nil
}

// DeleteTask removes the task together with its subtasks and My Day entries.
func (ts *TaskService) DeleteTask(s *database.Session, id uint) (bool, error) {
	task, err := ts.GetTask(s, id)
	if err != nil {
		return false, err
	}
	if task == nil {
		return false, nil
	}

	if err := s.DB.Where("task_id = ?", id).Delete(&models.Subtask{}).Error; err != nil {
		return false, apperrors.FromStorage("failed to delete subtasks", err)
	}
	if err := s.DB.Where("task_id = ?", id).Delete(&models.MyDayTask{}).Error; err != nil {
		return false, apperrors.FromStorage("failed to delete my day entries", err)
	}
	if err := s.DB.Delete(&models.Task{}, id).Error; err != nil {
		return false, apperrors.FromStorage("failed to delete task", err)
	}

	if err := s.Emit(models.TaskDeleted, "task", id, task.ToJSON()); err != nil {
		return false, err
	}
	slog.Info("task deleted", "id", id)
	return true, nil
}

func (ts *TaskService) ToggleComplete(s *database.Session, id uint) (models.Task, error) {
	task, err := ts.mustFindTask(s, id)
	if err != nil {
		return models.Task{}, err
	}
	return ts.apply(s, task, map[string]interface{}{"is_completed": !task.IsCompleted})
}

func (ts *TaskService) ToggleImportant(s *database.Session, id uint) (models.Task, error) {
	task, err := ts.mustFindTask(s, id)
	if err != nil {
		return models.Task{}, err
	}
	return ts.apply(s, task, map[string]interface{}{"is_important": !task.IsImportant})
}

func (ts *TaskService) GetImportantTasks(s *database.Session) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.DB.Where("is_important = ?", true).Order("id").Find(&tasks).Error; err != nil {
		return nil, apperrors.FromStorage("failed to fetch important tasks", err)
	}
	return tasks, nil
}

// GetPlannedTasks returns every task with a due date, in store order.
func (ts *TaskService) GetPlannedTasks(s *database.Session) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.DB.Where("due_date IS NOT NULL").Find(&tasks).Error; err != nil {
		return nil, apperrors.FromStorage("failed to fetch planned tasks", err)
	}
	return tasks, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (ts *TaskService) GetAllTasks(s *database.Session, filter TaskFilter) ([]models.Task, error) {
	query := s.DB.Model(&models.Task{})

	if filter.ListID != nil {
		exists, err := listExists(s, *filter.ListID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NotFound("list", *filter.ListID)
		}
		query = query.Where("list_id = ?", *filter.ListID)
	}
	if filter.IsCompleted != nil {
		query = query.Where("is_completed = ?", *filter.IsCompleted)
	}
	if filter.IsImportant != nil {
		query = query.Where("is_important = ?", *filter.IsImportant)
	}
	if filter.DueDate != nil {
		if filter.DueDate.IsZero() {
			query = query.Where("due_date IS NULL")
		} else {
			query = query.Where("due_date = ?", *filter.DueDate)
		}
	}
	needle := strings.ToLower(strings.TrimSpace(filter.Title))
	// sqlite's LOWER only folds ASCII, so non-ASCII needles are matched here.
	matchInGo := !isASCII(needle)
	if needle != "" && !matchInGo {
		pattern := "%" + likeEscaper.Replace(needle) + "%"
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern)
	}

	var tasks []models.Task
	if err := query.Order("id").Find(&tasks).Error; err != nil {
		return nil, apperrors.FromStorage("failed to fetch tasks", err)
	}
	if matchInGo {
		matched := tasks[:0]
		for _, task := range tasks {
			if strings.Contains(strings.ToLower(task.Title), needle) {
				matched = append(matched, task)
			}
		}
		tasks = matched
	}
	return tasks, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

var TaskServiceInstance TaskServiceInterface = &TaskService{}
