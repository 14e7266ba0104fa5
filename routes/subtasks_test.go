package routes

import (
	"net/http"
	"testing"

	"vibe-todo/vibetodo/apperrors"
	"vibe-todo/vibetodo/models"
	"vibe-todo/vibetodo/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSubtaskRoutes(t *testing.T) {
	ts := newTestServer(t)
	ts.subtasks.On("GetSubtasksByTask", mock.Anything, uint(1)).Return([]models.Subtask{{ID: 2, TaskID: 1, Title: "Sink"}}, nil)
	ts.subtasks.On("CreateSubtask", mock.Anything, uint(1), "Floor").Return(models.Subtask{ID: 3, TaskID: 1, Title: "Floor"}, nil)
	ts.subtasks.On("UpdateSubtask", mock.Anything, uint(3), services.SubtaskUpdate{IsCompleted: ptr(true)}).
		Return(models.Subtask{ID: 3, TaskID: 1, Title: "Floor", IsCompleted: true}, nil)
	ts.subtasks.On("ToggleSubtaskComplete", mock.Anything, uint(3)).Return(models.Subtask{ID: 3, TaskID: 1, Title: "Floor"}, nil)
	ts.subtasks.On("DeleteSubtask", mock.Anything, uint(3)).Return(true, nil)
	ts.subtasks.On("DeleteSubtask", mock.Anything, uint(4)).Return(false, nil)

	w := ts.do(http.MethodGet, "/api/v1/tasks/1/subtasks", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Sink"`)

	w = ts.do(http.MethodPost, "/api/v1/tasks/1/subtasks", map[string]string{"title": "Floor"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(http.MethodPatch, "/api/v1/subtasks/3", map[string]bool{"is_completed": true})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_completed":true`)

	w = ts.do(http.MethodPost, "/api/v1/subtasks/3/toggle-complete", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusNoContent, ts.do(http.MethodDelete, "/api/v1/subtasks/3", nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodDelete, "/api/v1/subtasks/4", nil).Code)
}

func TestCreateSubtaskForMissingTask(t *testing.T) {
	ts := newTestServer(t)
	ts.subtasks.On("CreateSubtask", mock.Anything, uint(9), "Floor").Return(models.Subtask{}, apperrors.NotFound("task", 9))

	w := ts.do(http.MethodPost, "/api/v1/tasks/9/subtasks", map[string]string{"title": "Floor"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
