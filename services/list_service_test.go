package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"vibe-todo/vibetodo/database"
	"vibe-todo/vibetodo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateListAndGetList(t *testing.T) {
	db := setupTestDB(t)
	created := mustCreateList(t, db, "  Groceries  ")

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Groceries", created.Name)
	assert.False(t, created.IsSystem)

	inSession(t, db, func(s *database.Session) error {
		got, err := ListServiceInstance.GetList(s, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Groceries", got.Name)
		return nil
	})
}

func TestCreateListRejectsBlankNames(t *testing.T) {
	db := setupTestDB(t)

	for _, name := range []string{"", "   "} {
		err := db.WithSession(context.Background(), func(s *database.Session) error {
			_, err := ListServiceInstance.CreateList(s, name)
			return err
		})
		assert.ErrorIs(t, err, ErrValidation, "name %q", name)
	}
}

func TestCreateListDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	mustCreateList(t, db, "Groceries")

	err := db.WithSession(context.Background(), func(s *database.Session) error {
		_, err := ListServiceInstance.CreateList(s, "Groceries")
		return err
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "already exists")

	var count int64
	require.NoError(t, db.DB.Model(&models.List{}).Where("name = ?", "Groceries").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateListConflictKeepsSessionUsable(t *testing.T) {
	db := setupTestDB(t)
	mustCreateList(t, db, "Work")

	inSession(t, db, func(s *database.Session) error {
		_, err := ListServiceInstance.CreateList(s, "Work")
		assert.ErrorIs(t, err, ErrConflict)

		_, err = ListServiceInstance.CreateList(s, "Home")
		return err
	})

	inSession(t, db, func(s *database.Session) error {
		lists, err := ListServiceInstance.GetAllLists(s)
		require.NoError(t, err)
		require.Len(t, lists, 2)
		assert.Equal(t, "Work", lists[0].Name)
		assert.Equal(t, "Home", lists[1].Name)
		return nil
	})
}

func TestGetListMissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)

	inSession(t, db, func(s *database.Session) error {
		got, err := ListServiceInstance.GetList(s, 404)
		assert.NoError(t, err)
		assert.Nil(t, got)
		return nil
	})
}

func TestUpdateList(t *testing.T) {
	db := setupTestDB(t)
	list := mustCreateList(t, db, "Groceries")
	mustCreateList(t, db, "Work")

	inSession(t, db, func(s *database.Session) error {
		updated, err := ListServiceInstance.UpdateList(s, list.ID, " Shopping ")
		require.NoError(t, err)
		assert.Equal(t, "Shopping", updated.Name)
		assert.Equal(t, list.ID, updated.ID)
		return nil
	})

	cases := []struct {
		name string
		id   uint
		to   string
		kind error
	}{
		{"empty name", list.ID, " ", ErrValidation},
		{"missing list", 999, "Anything", ErrNotFound},
		{"name taken", list.ID, "Work", ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := db.WithSession(context.Background(), func(s *database.Session) error {
				_, err := ListServiceInstance.UpdateList(s, tc.id, tc.to)
				return err
			})
			assert.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestDeleteList(t *testing.T) {
	db := setupTestDB(t)
	list := mustCreateList(t, db, "Temporary")

	inSession(t, db, func(s *database.Session) error {
		deleted, err := ListServiceInstance.DeleteList(s, list.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = ListServiceInstance.DeleteList(s, list.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
		return nil
	})
}

func TestDeleteListWithTasksConflicts(t *testing.T) {
	db := setupTestDB(t)
	list := mustCreateList(t, db, "Groceries")
	task := mustCreateTask(t, db, list.ID, "Milk", TaskOptions{})

	err := db.WithSession(context.Background(), func(s *database.Session) error {
		_, err := ListServiceInstance.DeleteList(s, list.ID)
		return err
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "has associated tasks")

	inSession(t, db, func(s *database.Session) error {
		got, err := ListServiceInstance.GetList(s, list.ID)
		require.NoError(t, err)
		assert.NotNil(t, got)

		tasks, err := TaskServiceInstance.GetTasksByList(s, list.ID)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, task.ID, tasks[0].ID)
		return nil
	})
}

func TestGetOrCreateSystemList(t *testing.T) {
	db := setupTestDB(t)

	var first, second models.List
	inSession(t, db, func(s *database.Session) error {
		var err error
		first, err = ListServiceInstance.GetOrCreateSystemList(s, "Tasks")
		return err
	})
	inSession(t, db, func(s *database.Session) error {
		var err error
		second, err = ListServiceInstance.GetOrCreateSystemList(s, "Tasks")
		return err
	})

	assert.True(t, first.IsSystem)
	assert.Equal(t, first.ID, second.ID)

	err := db.WithSession(context.Background(), func(s *database.Session) error {
		_, err := ListServiceInstance.GetOrCreateSystemList(s, "  ")
		return err
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetOrCreateSystemListConcurrent(t *testing.T) {
	db := setupTestDB(t)

	var wg sync.WaitGroup
	ids := make([]uint, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = db.WithSession(context.Background(), func(s *database.Session) error {
				list, err := ListServiceInstance.GetOrCreateSystemList(s, "Tasks")
				ids[i] = list.ID
				return err
			})
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, ids[0], ids[1])

	var count int64
	require.NoError(t, db.DB.Model(&models.List{}).Where("name = ? AND is_system = ?", "Tasks", true).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// registerRacingInsert makes the first empty lookup on lists behave as if
// another writer inserted the "Tasks" system list right after it ran.
func registerRacingInsert(t *testing.T, db *database.Database) {
	t.Helper()
	fired := false
	err := db.DB.Callback().Query().After("gorm:query").Register("test:racing_insert", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != "lists" || tx.RowsAffected != 0 {
			return
		}
		fired = true
		_, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"INSERT INTO lists (name, is_system, created_at) VALUES (?, ?, ?)", "Tasks", true, time.Now())
		require.NoError(t, err)
	})
	require.NoError(t, err)
}

func TestGetOrCreateSystemListRetriesAfterLostRace(t *testing.T) {
	db := setupTestDB(t)
	registerRacingInsert(t, db)

	var list models.List
	var events int
	inSession(t, db, func(s *database.Session) error {
		var err error
		list, err = ListServiceInstance.GetOrCreateSystemList(s, "Tasks")
		events = len(s.Events())
		return err
	})

	assert.NotZero(t, list.ID)
	assert.Equal(t, "Tasks", list.Name)
	assert.True(t, list.IsSystem)
	assert.Zero(t, events, "the winner created the row, not us")

	var count int64
	require.NoError(t, db.DB.Model(&models.List{}).Where("name = ?", "Tasks").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateSystemListReraisesWhenRetryFindsNothing(t *testing.T) {
	db := setupTestDB(t)
	// A user list holding the name blocks the insert but is not a system list.
	mustCreateList(t, db, "Tasks")

	inSession(t, db, func(s *database.Session) error {
		_, err := ListServiceInstance.GetOrCreateSystemList(s, "Tasks")
		assert.ErrorIs(t, err, ErrConflict)

		system, err := ListServiceInstance.GetSystemLists(s)
		require.NoError(t, err)
		assert.Empty(t, system)
		return nil
	})
}

func TestInitializeSystemLists(t *testing.T) {
	db := setupTestDB(t)

	var report SeedReport
	inSession(t, db, func(s *database.Session) error {
		report = ListServiceInstance.InitializeSystemLists(s)
		return nil
	})

	require.NoError(t, report.Err())
	lists := report.Lists()
	require.Len(t, lists, 4)
	for i, name := range models.SystemListNames {
		assert.Equal(t, name, lists[i].Name)
		assert.True(t, lists[i].IsSystem)
	}
}

func TestInitializeSystemListsIsolatesFailures(t *testing.T) {
	db := setupTestDB(t)
	mustCreateList(t, db, "Important")

	var report SeedReport
	inSession(t, db, func(s *database.Session) error {
		report = ListServiceInstance.InitializeSystemLists(s)
		return nil
	})

	require.Len(t, report, 4)
	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "Important", failed[0].Name)
	assert.ErrorIs(t, failed[0].Err, ErrConflict)
	assert.ErrorIs(t, report.Err(), ErrConflict)

	outcomes := report.Outcomes()
	assert.Equal(t, "ok", outcomes["My Day"])
	assert.Equal(t, "ok", outcomes["Planned"])
	assert.Equal(t, "ok", outcomes["Tasks"])
	assert.NotEqual(t, "ok", outcomes["Important"])

	inSession(t, db, func(s *database.Session) error {
		system, err := ListServiceInstance.GetSystemLists(s)
		require.NoError(t, err)
		names := make([]string, 0, len(system))
		for _, l := range system {
			names = append(names, l.Name)
		}
		assert.Equal(t, []string{"My Day", "Planned", "Tasks"}, names)
		return nil
	})
}
