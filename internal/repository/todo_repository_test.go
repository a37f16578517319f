package repository_test

import (
	"testing"
	"time"

	"github.com/ceidev/taskboard/internal/models"
	"github.com/ceidev/taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestTodoRepository_ListByUsername(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	todoRepo := repository.NewTodoRepository(gormDB)

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `todos` WHERE username = \\? ORDER BY id DESC").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "task", "status", "done", "target_datetime", "updated"}).
			AddRow(2, "alice", "Write report", "Doing", false, nil, now).
			AddRow(1, "alice", "Buy milk", "Done", true, nil, now))

	todos, err := todoRepo.ListByUsername("alice")

	require.NoError(t, err)
	require.Len(t, todos, 2)
	require.Equal(t, uint64(2), todos[0].ID)
	require.Equal(t, "Write report", todos[0].Task)
	require.Equal(t, models.TodoStatusDoing, todos[0].Status)
	require.Equal(t, uint64(1), todos[1].ID)
	require.True(t, todos[1].Done)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_Create(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	todoRepo := repository.NewTodoRepository(gormDB)

	todo := &models.Todo{
		Username: "alice",
		Task:     "Buy milk",
		Status:   models.TodoStatusTodo,
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `todos`").
		WithArgs("alice", "Buy milk", "Todo", false, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	err := todoRepo.Create(todo)

	require.NoError(t, err)
	require.Equal(t, uint64(7), todo.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_UpdateFields(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	todoRepo := repository.NewTodoRepository(gormDB)

	status := models.TodoStatusDone
	done := true

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `todos` SET").
		WithArgs(true, "Done", sqlmock.AnyArg(), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	affected, err := todoRepo.UpdateFields(3, repository.TodoUpdate{Status: &status, Done: &done})

	require.NoError(t, err)
	require.Equal(t, int64(1), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_UpdateFields_Missing(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	todoRepo := repository.NewTodoRepository(gormDB)

	status := models.TodoStatusDoing

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `todos` SET").
		WithArgs("Doing", sqlmock.AnyArg(), uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	affected, err := todoRepo.UpdateFields(99, repository.TodoUpdate{Status: &status})

	require.NoError(t, err)
	require.Zero(t, affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepository_Delete(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	todoRepo := repository.NewTodoRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `todos` WHERE").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	affected, err := todoRepo.Delete(5)

	require.NoError(t, err)
	require.Equal(t, int64(1), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}
