package routes

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"vibe-todo/vibetodo/apperrors"
	"vibe-todo/vibetodo/database"

	"github.com/gin-gonic/gin"
)

// respondError writes {"error": message} with the status of the error kind.
func respondError(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	msg := err.Error()
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// inSession runs fn as one unit of work bound to the request context and
// responds with the error when it fails. It reports whether fn succeeded.
func inSession(c *gin.Context, db *database.Database, fn func(s *database.Session) error) bool {
	if err := db.WithSession(c.Request.Context(), fn); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
