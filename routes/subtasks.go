package routes

import (
	"net/http"

	"vibe-todo/vibetodo/database"
	"vibe-todo/vibetodo/models"
	"vibe-todo/vibetodo/services"

	"github.com/gin-gonic/gin"
)

type subtaskRequest struct {
	Title       *string `json:"title"`
	IsCompleted *bool   `json:"is_completed"`
}

func RegisterSubtaskRoutes(group *gin.RouterGroup, db *database.Database, subtaskService services.SubtaskServiceInterface) {
	group.GET("/tasks/:id/subtasks", func(c *gin.Context) { GetSubtasks(c, db, subtaskService) })
	group.POST("/tasks/:id/subtasks", func(c *gin.Context) { CreateSubtask(c, db, subtaskService) })
	group.PATCH("/subtasks/:id", func(c *gin.Context) { UpdateSubtask(c, db, subtaskService) })
	group.DELETE("/subtasks/:id", func(c *gin.Context) { DeleteSubtask(c, db, subtaskService) })
	group.POST("/subtasks/:id/toggle-complete", func(c *gin.Context) { ToggleSubtaskComplete(c, db, subtaskService) })
}

func GetSubtasks(c *gin.Context, db *database.Database, subtaskService services.SubtaskServiceInterface) {
	taskID, valid := parseID(c, "id")
	if !valid {
		return
	}

	var subtasks []models.Subtask
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		subtasks, err = subtaskService.GetSubtasksByTask(s, taskID)
		return err
	})
	if ok {
		c.JSON(http.StatusOK, subtasks)
	}
}

func CreateSubtask(c *gin.Context, db *database.Database, subtaskService services.SubtaskServiceInterface) {
	taskID, valid := parseID(c, "id")
	if !valid {
		return
	}
	var req subtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	title := ""
	if req.Title != nil {
		title = *req.Title
	}

	var subtask models.Subtask
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		subtask, err = subtaskService.CreateSubtask(s, taskID, title)
		return err
	})
	if ok {
		c.JSON(http.StatusCreated, subtask)
	}
}

func UpdateSubtask(c *gin.Context, db *database.Database, subtaskService services.SubtaskServiceInterface) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var req subtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	var subtask models.Subtask
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		subtask, err = subtaskService.UpdateSubtask(s, id, services.SubtaskUpdate{
			Title:       req.Title,
			IsCompleted: req.IsCompleted,
		})
		return err
	})
	if ok {
		c.JSON(http.StatusOK, subtask)
	}
}

func DeleteSubtask(c *gin.Context, db *database.Database, subtaskService services.SubtaskServiceInterface) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	var deleted bool
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		deleted, err = subtaskService.DeleteSubtask(s, id)
		return err
	})
	if !ok {
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subtask not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func ToggleSubtaskComplete(c *gin.Context, db *database.Database, subtaskService services.SubtaskServiceInterface) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	var subtask models.Subtask
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		subtask, err = subtaskService.ToggleSubtaskComplete(s, id)
		return err
	})
	if ok {
		c.JSON(http.StatusOK, subtask)
	}
}
