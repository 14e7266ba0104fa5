package routes

import (
	"net/http"

	"vibe-todo/vibetodo/database"
	"vibe-todo/vibetodo/models"
	"vibe-todo/vibetodo/services"

	"github.com/gin-gonic/gin"
)

type listRequest struct {
	Name string `json:"name"`
}

func RegisterListRoutes(group *gin.RouterGroup, db *database.Database, listService services.ListServiceInterface, taskService services.TaskServiceInterface) {
	group.GET("/lists", func(c *gin.Context) { GetLists(c, db, listService) })
	group.POST("/lists", func(c *gin.Context) { CreateList(c, db, listService) })
	group.GET("/lists/system", func(c *gin.Context) { GetSystemLists(c, db, listService) })
	group.GET("/lists/:id", func(c *gin.Context) { GetListById(c, db, listService) })
	group.PUT("/lists/:id", func(c *gin.Context) { UpdateList(c, db, listService) })
	group.DELETE("/lists/:id", func(c *gin.Context) { DeleteList(c, db, listService) })
	group.GET("/lists/:id/tasks", func(c *gin.Context) { GetListTasks(c, db, taskService) })
}

func GetLists(c *gin.Context, db *database.Database, listService services.ListServiceInterface) {
	var lists []models.List
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		lists, err = listService.GetAllLists(s)
		return err
	})
	if ok {
		c.JSON(http.StatusOK, lists)
	}
}

func CreateList(c *gin.Context, db *database.Database, listService services.ListServiceInterface) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	var list models.List
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		list, err = listService.CreateList(s, req.Name)
		return err
	})
	if ok {
		c.JSON(http.StatusCreated, list)
	}
}

func GetSystemLists(c *gin.Context, db *database.Database, listService services.ListServiceInterface) {
	var lists []models.List
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		lists, err = listService.GetSystemLists(s)
		return err
	})
	if ok {
		c.JSON(http.StatusOK, lists)
	}
}

func GetListById(c *gin.Context, db *database.Database, listService services.ListServiceInterface) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	var list *models.List
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		list, err = listService.GetList(s, id)
		return err
	})
	if !ok {
		return
	}
	if list == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func UpdateList(c *gin.Context, db *database.Database, listService services.ListServiceInterface) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	var list models.List
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		list, err = listService.UpdateList(s, id, req.Name)
		return err
	})
	if ok {
		c.JSON(http.StatusOK, list)
	}
}

func DeleteList(c *gin.Context, db *database.Database, listService services.ListServiceInterface) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	var deleted bool
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		deleted, err = listService.DeleteList(s, id)
		return err
	})
	if !ok {
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "List not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func GetListTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	id, valid := parseID(c, "id")
	if !valid {
		return
	}

	var tasks []models.Task
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		tasks, err = taskService.GetTasksByList(s, id)
		return err
	})
	if ok {
		c.JSON(http.StatusOK, tasks)
	}
}
