package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"vibe-todo/vibetodo/apperrors"
	"vibe-todo/vibetodo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateListRoute(t *testing.T) {
	ts := newTestServer(t)
	ts.lists.On("CreateList", mock.Anything, "Groceries").
		Return(models.List{ID: 5, Name: "Groceries"}, nil)

	w := ts.do(http.MethodPost, "/api/v1/lists", map[string]string{"name": "Groceries"})

	assert.Equal(t, http.StatusCreated, w.Code)
	var got models.List
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, uint(5), got.ID)
	assert.Equal(t, "Groceries", got.Name)
}

func TestCreateListErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", apperrors.Validation("list name cannot be empty"), http.StatusBadRequest, "list name cannot be empty"},
		{"conflict", apperrors.Conflict(nil, "list with name 'Groceries' already exists"), http.StatusConflict, "list with name 'Groceries' already exists"},
		{"storage", apperrors.Storage("failed to create list", errors.New("disk full")), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.lists.On("CreateList", mock.Anything, "Groceries").Return(models.List{}, tc.err)

			w := ts.do(http.MethodPost, "/api/v1/lists", map[string]string{"name": "Groceries"})

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.msg, decodeError(t, w))
		})
	}
}

func TestCreateListMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/lists", "{not json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	ts.lists.AssertNotCalled(t, "CreateList", mock.Anything, mock.Anything)
}

func TestGetListRoutes(t *testing.T) {
	ts := newTestServer(t)
	ts.lists.On("GetList", mock.Anything, uint(1)).Return(&models.List{ID: 1, Name: "Tasks", IsSystem: true}, nil)
	ts.lists.On("GetList", mock.Anything, uint(2)).Return(nil, nil)
	ts.lists.On("GetAllLists", mock.Anything).Return([]models.List{{ID: 1, Name: "Tasks"}}, nil)
	ts.lists.On("GetSystemLists", mock.Anything).Return([]models.List{{ID: 1, Name: "Tasks", IsSystem: true}}, nil)

	w := ts.do(http.MethodGet, "/api/v1/lists/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/api/v1/lists/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodGet, "/api/v1/lists", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var all []models.List
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 1)

	w = ts.do(http.MethodGet, "/api/v1/lists/system", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateListRoute(t *testing.T) {
	ts := newTestServer(t)
	ts.lists.On("UpdateList", mock.Anything, uint(3), "Home").Return(models.List{ID: 3, Name: "Home"}, nil)
	ts.lists.On("UpdateList", mock.Anything, uint(4), "Home").Return(models.List{}, apperrors.NotFound("list", 4))

	w := ts.do(http.MethodPut, "/api/v1/lists/3", map[string]string{"name": "Home"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPut, "/api/v1/lists/4", map[string]string{"name": "Home"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "list with id 4 not found", decodeError(t, w))
}

func TestDeleteListRoute(t *testing.T) {
	ts := newTestServer(t)
	ts.lists.On("DeleteList", mock.Anything, uint(3)).Return(true, nil)
	ts.lists.On("DeleteList", mock.Anything, uint(4)).Return(false, nil)
	ts.lists.On("DeleteList", mock.Anything, uint(5)).Return(false, apperrors.Conflict(nil, "list 5 still has tasks"))

	assert.Equal(t, http.StatusNoContent, ts.do(http.MethodDelete, "/api/v1/lists/3", nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodDelete, "/api/v1/lists/4", nil).Code)
	assert.Equal(t, http.StatusConflict, ts.do(http.MethodDelete, "/api/v1/lists/5", nil).Code)
}

func TestGetListTasksRoute(t *testing.T) {
	ts := newTestServer(t)
	ts.tasks.On("GetTasksByList", mock.Anything, uint(1)).Return([]models.Task{{ID: 1, ListID: 1, Title: "Milk"}}, nil)
	ts.tasks.On("GetTasksByList", mock.Anything, uint(9)).Return([]models.Task(nil), apperrors.NotFound("list", 9))

	w := ts.do(http.MethodGet, "/api/v1/lists/1/tasks", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Milk"`)

	w = ts.do(http.MethodGet, "/api/v1/lists/9/tasks", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
