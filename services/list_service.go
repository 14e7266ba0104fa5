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

type ListServiceInterface interface {
	CreateList(s *database.Session, name string) (models.List, error)
	GetList(s *database.Session, id uint) (*models.List, error)
	GetAllLists(s *database.Session) ([]models.List, error)
	UpdateList(s *database.Session, id uint, name string) (models.List, error)
	DeleteList(s *database.Session, id uint) (bool, error)
	GetSystemLists(s *database.Session) ([]models.List, error)
	GetOrCreateSystemList(s *database.Session, name string) (models.List, error)
	InitializeSystemLists(s *database.Session) SeedReport
}

type ListService struct{}

func (ls *ListService) CreateList(s *database.Session, name string) (models.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.List{}, apperrors.Validation("list name cannot be empty")
	}

	list := models.List{Name: name}
	err := s.Savepoint("create_list", func() error {
		return s.DB.Create(&list).Error
	})
	if err != nil {
		if apperrors.IsConstraint(err) {
			slog.Warn("list name already taken", "name", name)
			return models.List{}, apperrors.Conflict(err, "list with name '%s' already exists", name)
		}
		slog.Error("failed to create list", "name", name, "error", err)
		return models.List{}, apperrors.FromStorage("failed to create list", err)
	}

	if err := s.Emit(models.ListCreated, "list", list.ID, list.ToJSON()); err != nil {
		return models.List{}, err
	}
	slog.Info("list created", "id", list.ID, "name", list.Name)
	return list, nil
}

// GetList returns nil without error when no list has that id.
func (ls *ListService) GetList(s *database.Session, id uint) (*models.List, error) {
	var list models.List
	if err := s.DB.First(&list, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Warn("list not found", "id", id)
			return nil, nil
		}
		return nil, apperrors.FromStorage("failed to fetch list", err)
	}
	return &list, nil
}

func (ls *ListService) GetAllLists(s *database.Session) ([]models.List, error) {
	var lists []models.List
	if err := s.DB.Order("id").Find(&lists).Error; err != nil {
		return nil, apperrors.FromStorage("failed to fetch lists", err)
	}
	return lists, nil
}

func (ls *ListService) UpdateList(s *database.Session, id uint, name string) (models.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.List{}, apperrors.Validation("list name cannot be empty")
	}

	list, err := ls.GetList(s, id)
	if err != nil {
		return models.List{}, err
	}
	if list == nil {
		return models.List{}, apperrors.NotFound("list", id)
	}

	err = s.Savepoint("update_list", func() error {
		return s.DB.Model(list).Update("name", name).Error
	})
	if err != nil {
		if apperrors.IsConstraint(err) {
			return models.List{}, apperrors.Conflict(err, "list with name '%s' already exists", name)
		}
		return models.List{}, apperrors.FromStorage("failed to update list", err)
	}
	list.Name = name

	if err := s.Emit(models.ListUpdated, "list", list.ID, list.ToJSON()); err != nil {
		return models.List{}, err
	}
	slog.Info("list updated", "id", list.ID, "name", list.Name)
	return *list, nil
}

// DeleteList reports false when the list does not exist. A list that still
// has tasks is never deleted.
func (ls *ListService) DeleteList(s *database.Session, id uint) (bool, error) {
	list, err := ls.GetList(s, id)
	if err != nil {
		return false, err
	}
	if list == nil {
		return false, nil
	}

	var taskCount int64
	if err := s.DB.Model(&models.Task{}).Where("list_id = ?", id).Count(&taskCount).Error; err != nil {
		return false, apperrors.FromStorage("failed to count tasks", err)
	}
	if taskCount > 0 {
		return false, apperrors.Conflict(nil, "cannot delete list with id %d: it has associated tasks", id)
	}

	err = s.Savepoint("delete_list", func() error {
		return s.DB.Delete(&models.List{}, id).Error
	})
	if err != nil {
		if apperrors.IsConstraint(err) {
			return false, apperrors.Conflict(err, "cannot delete list with id %d: it has associated tasks", id)
		}
		return false, apperrors.FromStorage("failed to delete list", err)
	}

	if err := s.Emit(models.ListDeleted, "list", id, list.ToJSON()); err != nil {
		return false, err
	}
	slog.Info("list deleted", "id", id)
	return true, nil
}

func (ls *ListService) GetSystemLists(s *database.Session) ([]models.List, error) {
	var lists []models.List
	if err := s.DB.Where("is_system = ?", true).Order("id").Find(&lists).Error; err != nil {
		return nil, apperrors.FromStorage("failed to fetch system lists", err)
	}
	return lists, nil
}

func (ls *ListService) findSystemList(s *database.Session, name string) (*models.List, error) {
	var list models.List
	err := s.DB.Where("name = ? AND is_system = ?", name, true).First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.FromStorage("failed to look up system list", err)
	}
	return &list, nil
}

// GetOrCreateSystemList returns the system list called name, creating it if
// needed. When another writer inserts the same name between the lookup and
// the insert, the lookup is repeated once and the winner's row is returned.
func (ls *ListService) GetOrCreateSystemList(s *database.Session, name string) (models.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.List{}, apperrors.Validation("system list name cannot be empty")
	}

	existing, err := ls.findSystemList(s, name)
	if err != nil {
		return models.List{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	list := models.List{Name: name, IsSystem: true}
	err = s.Savepoint("system_list", func() error {
		return s.DB.Create(&list).Error
	})
	if err == nil {
		if err := s.Emit(models.ListCreated, "list", list.ID, list.ToJSON()); err != nil {
			return models.List{}, err
		}
		slog.Info("system list created", "id", list.ID, "name", name)
		return list, nil
	}
	if !apperrors.IsConstraint(err) {
		return models.List{}, apperrors.FromStorage("failed to create system list", err)
	}

	slog.Warn("system list insert conflicted, retrying lookup", "name", name)
	winner, lookupErr := ls.findSystemList(s, name)
	if lookupErr != nil {
		return models.List{}, lookupErr
	}
	if winner == nil {
		return models.List{}, apperrors.Conflict(err, "failed to create system list '%s'", name)
	}
	return *winner, nil
}

// InitializeSystemLists seeds every name in models.SystemListNames. A failure
// for one name is logged and recorded without stopping the others.
func (ls *ListService) InitializeSystemLists(s *database.Session) SeedReport {
	report := make(SeedReport, 0, len(models.SystemListNames))

	for i, name := range models.SystemListNames {
		var list models.List
		err := s.Savepoint(seedSavepoint(i), func() error {
			var err error
			list, err = ls.GetOrCreateSystemList(s, name)
			return err
		})
		if err != nil {
			slog.Error("failed to initialize system list", "name", name, "error", err)
			report = append(report, SeedOutcome{Name: name, Err: err})
			continue
		}
		report = append(report, SeedOutcome{Name: name, List: &list})
	}

	slog.Info("system lists initialized", "ok", len(report.Lists()), "failed", len(report.Failed()))
	return report
}

var ListServiceInstance ListServiceInterface = &ListService{}
