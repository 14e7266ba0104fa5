package routes

import (
	"net/http"

	"vibe-todo/vibetodo/database"
	"vibe-todo/vibetodo/models"
	"vibe-todo/vibetodo/services"

	"github.com/gin-gonic/gin"
)

func RegisterMyDayRoutes(group *gin.RouterGroup, db *database.Database, myDayService services.MyDayServiceInterface) {
	group.GET("/my-day", func(c *gin.Context) { GetMyDay(c, db, myDayService) })
	group.PUT("/my-day/:date/tasks/:task_id", func(c *gin.Context) { AddToMyDay(c, db, myDayService) })
	group.DELETE("/my-day/:date/tasks/:task_id", func(c *gin.Context) { RemoveFromMyDay(c, db, myDayService) })
}

// GetMyDay lists the tasks planned for ?date=YYYY-MM-DD, today by default.
func GetMyDay(c *gin.Context, db *database.Database, myDayService services.MyDayServiceInterface) {
	date := models.Today()
	if v := c.Query("date"); v != "" {
		parsed, err := models.ParseDate(v)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		date = parsed
	}

	var tasks []models.Task
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		tasks, err = myDayService.GetMyDayTasks(s, date)
		return err
	})
	if ok {
		c.JSON(http.StatusOK, tasks)
	}
}

func myDayParams(c *gin.Context) (uint, models.Date, bool) {
	date, err := models.ParseDate(c.Param("date"))
	if err != nil {
		badRequest(c, err.Error())
		return 0, models.Date{}, false
	}
	taskID, valid := parseID(c, "task_id")
	return taskID, date, valid
}

func AddToMyDay(c *gin.Context, db *database.Database, myDayService services.MyDayServiceInterface) {
	taskID, date, valid := myDayParams(c)
	if !valid {
		return
	}

	var entry models.MyDayTask
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		entry, err = myDayService.AddToMyDay(s, taskID, date)
		return err
	})
	if ok {
		c.JSON(http.StatusOK, entry)
	}
}

func RemoveFromMyDay(c *gin.Context, db *database.Database, myDayService services.MyDayServiceInterface) {
	taskID, date, valid := myDayParams(c)
	if !valid {
		return
	}

	var removed bool
	ok := inSession(c, db, func(s *database.Session) error {
		var err error
		removed, err = myDayService.RemoveFromMyDay(s, taskID, date)
		return err
	})
	if !ok {
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task is not in My Day for that date"})
		return
	}
	c.Status(http.StatusNoContent)
}
