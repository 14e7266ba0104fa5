package services

import (
	"context"
	"path/filepath"
	"testing"

	"vibe-todo/vibetodo/config"
	"vibe-todo/vibetodo/database"
	"vibe-todo/vibetodo/models"

	"github.com/stretchr/testify/require"
)

// setupTestDB mirrors testutils.SetupTestDB. Tests in this package cannot
// import testutils because its service mocks import services.
func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.Setup(config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "todos.db"),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(db.Close)
	return db
}

// inSession runs fn in its own unit of work and fails the test if it errors.
func inSession(t *testing.T, db *database.Database, fn func(s *database.Session) error) {
	t.Helper()
	require.NoError(t, db.WithSession(context.Background(), fn))
}

func mustCreateList(t *testing.T, db *database.Database, name string) models.List {
	t.Helper()
	var list models.List
	inSession(t, db, func(s *database.Session) error {
		var err error
		list, err = ListServiceInstance.CreateList(s, name)
		return err
	})
	return list
}

func mustCreateTask(t *testing.T, db *database.Database, listID uint, title string, opts TaskOptions) models.Task {
	t.Helper()
	var task models.Task
	inSession(t, db, func(s *database.Session) error {
		var err error
		task, err = TaskServiceInstance.CreateTask(s, listID, title, opts)
		return err
	})
	return task
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func uintPtr(u uint) *uint    { return &u }
