package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestKindsMatchWithErrorsIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotFound("list", 7))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "wrapped: list with id 7 not found", err.Error())
}

func TestFromStorage(t *testing.T) {
	assert.NoError(t, FromStorage("noop", nil))

	conflict := FromStorage("creating list", gorm.ErrDuplicatedKey)
	assert.ErrorIs(t, conflict, ErrConflict)
	assert.ErrorIs(t, conflict, gorm.ErrDuplicatedKey)

	fk := FromStorage("deleting list", gorm.ErrForeignKeyViolated)
	assert.ErrorIs(t, fk, ErrConflict)

	raw := errors.New("disk I/O error")
	storage := FromStorage("reading task", raw)
	assert.ErrorIs(t, storage, ErrStorage)
	assert.ErrorIs(t, storage, raw)
	assert.Equal(t, "reading task: disk I/O error", storage.Error())

	validation := Validation("title cannot be empty")
	assert.Same(t, validation, FromStorage("creating task", validation))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(Validation("bad")))
	assert.Equal(t, http.StatusNotFound, StatusCode(NotFound("task", 1)))
	assert.Equal(t, http.StatusConflict, StatusCode(Conflict(nil, "taken")))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(Storage("op", errors.New("x"))))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("unknown")))
}
