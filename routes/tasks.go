package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"vibe-todo/vibetodo/database"
	"vibe-todo/vibetodo/models"
	"vibe-todo/vibetodo/services"

	"github.com/gin-gonic/gin"
)

type createTaskRequest struct {
	ListID      uint        `json:"list_id"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	DueDate     models.Date `json:"due_date"`
	IsCompleted bool        `json:"is_completed"`
	IsImportant bool        `json:"is_important"`
}

func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface) {
	group.GET("/tasks", func(c *gin.Context) { GetTasks(c, db, taskService) })
	group.POST("/tasks", func(c *gin.Context) { CreateTask(c, db, taskService) })
	group.GET("/tasks/important", func(c *gin.Context) { GetImportantTasks(c, db, taskService) })
	group.GET("/tasks/planned", func(c *gin.Context) { GetPlannedTasks(c, db, taskService) })
	group.GET("/tasks/:id", func(c *gin.Context) { GetTaskById(c, db, taskService) })
	group.PATCH("/tasks/:id", func(c *gin.Context) { UpdateTask(c, db, taskService) })
	group.DELETE("/tasks/:id", func(c *gin.Context) { DeleteTask(c, db, taskService) })
	group.POST("/tasks/:id/toggle-complete", func(c *gin.Context) { ToggleTaskComplete(c, db, taskService) })
	group.POST("/tasks/:id/toggle-important", func(c *gin.Context) { ToggleTaskImportant(c, db, taskService) })
}

// parseTaskFilter reads the GET /tasks query. due_date=none selects tasks
// without a due date.
func parseTaskFilter(c *gin.Context) (services.TaskFilter, error) {
	filter := services.TaskFilter{Title: c.Query("title")}

	if v := c.Query("list_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid list_id %q", v)
		}
		listID := uint(id)
		filter.ListID = &listID
	}
	for name, dst := range map[string]**bool{
		"is_completed": &filter.IsCompleted,
		"is_important": &filter.IsImportant,
	} {
		if v := c.Query(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return filter, fmt.Errorf("invalid %s %q", name, v)
			}
			*dst = &b
		}
	}
	if v := c.Query("due_date"); v != "" {
		var due models.Date
		if v != "none" {
			d, err := models.ParseDate(v)
			if err != nil {
				return filter, err
			}
			due = d
		}
		filter.DueDate = &due
	}
	return filter, nil
}

func GetTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	filter, err := parseTaskFilter(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	var tasks []models.Task
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		tasks, err = taskService.GetAllTasks(s, filter)
		return err
	})
	if ok {
		c.JSON(http.StatusOK, tasks)
	}
}

func CreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	opts := services.TaskOptions{
		Description: req.Description,
		DueDate:     req.DueDate,
		IsCompleted: req.IsCompleted,
		IsImportant: req.IsImportant,
	}
	var task models.Task
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		task, err = taskService.CreateTask(s, req.ListID, req.Title, opts)
		return err
	})
	if ok {
		c.JSON(http.StatusCreated, task)
	}
}

func GetImportantTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var tasks []models.Task
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		tasks, err = taskService.GetImportantTasks(s)
		return err
	})
	if ok {
		c.JSON(http.StatusOK, tasks)
	}
}

func GetPlannedTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var tasks []models.Task
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		tasks, err = taskService.GetPlannedTasks(s)
		return err
	})
	if ok {
		c.JSON(http.StatusOK, tasks)
	}
}

func GetTaskById(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	var task *models.Task
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		task, err = taskService.GetTaskWithSubtasks(s, id)
		return err
	})
	if !ok {
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

var jsonNull = []byte("null")

// decodeTaskUpdate maps a PATCH body onto a TaskUpdate. Absent keys are left
// alone; a null description or due_date clears the stored value.
func decodeTaskUpdate(body map[string]json.RawMessage) (services.TaskUpdate, error) {
	var update services.TaskUpdate
	for key, raw := range body {
		isNull := bytes.Equal(bytes.TrimSpace(raw), jsonNull)
		if isNull && key != "description" && key != "due_date" {
			return update, fmt.Errorf("%s cannot be null", key)
		}
		var err error
		switch key {
		case "list_id":
			update.ListID = new(uint)
			err = json.Unmarshal(raw, update.ListID)
		case "title":
			update.Title = new(string)
			err = json.Unmarshal(raw, update.Title)
		case "description":
			empty := ""
			update.Description = &empty
			if !isNull {
				err = json.Unmarshal(raw, update.Description)
			}
		case "due_date":
			update.DueDate = &models.Date{}
			err = json.Unmarshal(raw, update.DueDate)
		case "is_completed":
			update.IsCompleted = new(bool)
			err = json.Unmarshal(raw, update.IsCompleted)
		case "is_important":
			update.IsImportant = new(bool)
			err = json.Unmarshal(raw, update.IsImportant)
		default:
			return update, fmt.Errorf("unknown field %q", key)
		}
		if err != nil {
			return update, fmt.Errorf("invalid %s: %v", key, err)
		}
	}
	return update, nil
}

func UpdateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	update, err := decodeTaskUpdate(body)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	var task models.Task
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		task, err = taskService.UpdateTask(s, id, update)
		return err
	})
	if ok {
		c.JSON(http.StatusOK, task)
	}
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	var deleted bool
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		deleted, err = taskService.DeleteTask(s, id)
		return err
	})
	if !ok {
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func ToggleTaskComplete(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	toggleTask(c, db, taskService.ToggleComplete)
}

func ToggleTaskImportant(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	toggleTask(c, db, taskService.ToggleImportant)
}

func toggleTask(c *gin.Context, db *database.Database, toggle func(*database.Session, uint) (models.Task, error)) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	var task models.Task
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		task, err = toggle(s, id)
		return err
	})
	if ok {
		c.JSON(http.StatusOK, task)
	}
}
