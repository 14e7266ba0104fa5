package testutils

import (
	"vibe-todo/vibetodo/database"
	"vibe-todo/vibetodo/models"
	"vibe-todo/vibetodo/services"

	"github.com/stretchr/testify/mock"
)

// MockListService mocks the ListServiceInterface for testing
type MockListService struct {
	mock.Mock
}

func (m *MockListService) CreateList(s *database.Session, name string) (models.List, error) {
	args := m.Called(s, name)
	return args.Get(0).(models.List), args.Error(1)
}

func (m *MockListService) GetList(s *database.Session, id uint) (*models.List, error) {
	args := m.Called(s, id)
	list, _ := args.Get(0).(*models.List)
	return list, args.Error(1)
}

func (m *MockListService) GetAllLists(s *database.Session) ([]models.List, error) {
	args := m.Called(s)
	return args.Get(0).([]models.List), args.Error(1)
}

func (m *MockListService) UpdateList(s *database.Session, id uint, name string) (models.List, error) {
	args := m.Called(s, id, name)
	return args.Get(0).(models.List), args.Error(1)
}

func (m *MockListService) DeleteList(s *database.Session, id uint) (bool, error) {
	args := m.Called(s, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockListService) GetSystemLists(s *database.Session) ([]models.List, error) {
	args := m.Called(s)
	return args.Get(0).([]models.List), args.Error(1)
}

func (m *MockListService) GetOrCreateSystemList(s *database.Session, name string) (models.List, error) {
	args := m.Called(s, name)
	return args.Get(0).(models.List), args.Error(1)
}

func (m *MockListService) InitializeSystemLists(s *database.Session) services.SeedReport {
	args := m.Called(s)
	return args.Get(0).(services.SeedReport)
}

// MockTaskService mocks the TaskServiceInterface for testing
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(s *database.Session, listID uint, title string, opts services.TaskOptions) (models.Task, error) {
	args := m.Called(s, listID, title, opts)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) GetTask(s *database.Session, id uint) (*models.Task, error) {
	args := m.Called(s, id)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}

func (m *MockTaskService) GetTaskWithSubtasks(s *database.Session, id uint) (*models.Task, error) {
	args := m.Called(s, id)
	task, _ := args.Get(0).(*models.Task)
	return task, args.Error(1)
}

func (m *MockTaskService) GetTasksByList(s *database.Session, listID uint) ([]models.Task, error) {
	args := m.Called(s, listID)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(s *database.Session, id uint, update services.TaskUpdate) (models.Task, error) {
	args := m.Called(s, id, update)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(s *database.Session, id uint) (bool, error) {
	args := m.Called(s, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskService) ToggleComplete(s *database.Session, id uint) (models.Task, error) {
	args := m.Called(s, id)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) ToggleImportant(s *database.Session, id uint) (models.Task, error) {
	args := m.Called(s, id)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) GetImportantTasks(s *database.Session) ([]models.Task, error) {
	args := m.Called(s)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) GetPlannedTasks(s *database.Session) ([]models.Task, error) {
	args := m.Called(s)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) GetAllTasks(s *database.Session, filter services.TaskFilter) ([]models.Task, error) {
	args := m.Called(s, filter)
	return args.Get(0).([]models.Task), args.Error(1)
}

// MockSubtaskService mocks the SubtaskServiceInterface for testing
type MockSubtaskService struct {
	mock.Mock
}

func (m *MockSubtaskService) CreateSubtask(s *database.Session, taskID uint, title string) (models.Subtask, error) {
	args := m.Called(s, taskID, title)
	return args.Get(0).(models.Subtask), args.Error(1)
}

func (m *MockSubtaskService) GetSubtask(s *database.Session, id uint) (*models.Subtask, error) {
	args := m.Called(s, id)
	subtask, _ := args.Get(0).(*models.Subtask)
	return subtask, args.Error(1)
}

func (m *MockSubtaskService) GetSubtasksByTask(s *database.Session, taskID uint) ([]models.Subtask, error) {
	args := m.Called(s, taskID)
	return args.Get(0).([]models.Subtask), args.Error(1)
}

func (m *MockSubtaskService) UpdateSubtask(s *database.Session, id uint, update services.SubtaskUpdate) (models.Subtask, error) {
	args := m.Called(s, id, update)
	return args.Get(0).(models.Subtask), args.Error(1)
}

func (m *MockSubtaskService) DeleteSubtask(s *database.Session, id uint) (bool, error) {
	args := m.Called(s, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubtaskService) ToggleSubtaskComplete(s *database.Session, id uint) (models.Subtask, error) {
	args := m.Called(s, id)
	return args.Get(0).(models.Subtask), args.Error(1)
}

// MockMyDayService mocks the MyDayServiceInterface for testing
type MockMyDayService struct {
	mock.Mock
}

func (m *MockMyDayService) GetMyDayTasks(s *database.Session, date models.Date) ([]models.Task, error) {
	args := m.Called(s, date)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockMyDayService) AddToMyDay(s *database.Session, taskID uint, date models.Date) (models.MyDayTask, error) {
	args := m.Called(s, taskID, date)
	return args.Get(0).(models.MyDayTask), args.Error(1)
}

func (m *MockMyDayService) RemoveFromMyDay(s *database.Session, taskID uint, date models.Date) (bool, error) {
	args := m.Called(s, taskID, date)
	return args.Bool(0), args.Error(1)
}

// MockAuthService mocks the AuthServiceInterface for testing
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockAuthService) Login(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*services.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*services.Claims)
	return claims, args.Error(1)
}

func (m *MockAuthService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ComparePasswords(hashedPassword, password string) error {
	return m.Called(hashedPassword, password).Error(0)
}
