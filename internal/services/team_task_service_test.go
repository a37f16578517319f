package services

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

func setupTaskServiceMockDB(t *testing.T) (*TeamTaskService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	svc := NewTeamTaskService(
		repository.NewTeamTaskRepository(gormDB),
		repository.NewTeamRepository(gormDB),
	)
	return svc, mock
}

func taskRows(teamID, assignedTo uint64, status models.TaskStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "team_id", "task_name", "description", "assigned_to",
		"created_by", "status", "target_datetime", "created_at", "updated_at",
	}).AddRow(3, teamID, "Ship release", "", assignedTo, 1, string(status), nil, now, now)
}

func teamRows(adminID uint64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "team_name", "team_description", "admin_id", "created_at"}).
		AddRow(10, "Platform", "", adminID, time.Now())
}

// The MySQL driver reports changed rows, not matched rows, so re-writing a
// task's current status affects zero rows. That must still be a success for
// an authorized caller.
func TestTeamTaskService_UpdateStatus_NoopWrite(t *testing.T) {
	svc, mock := setupTaskServiceMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `team_tasks` WHERE `team_tasks`.`id` = \\?").
		WillReturnRows(taskRows(10, 2, models.TaskStatusDone))
	mock.ExpectQuery("SELECT \\* FROM `teams` WHERE `teams`.`id` = \\?").
		WillReturnRows(teamRows(1))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `team_tasks` SET").
		WithArgs("Done", sqlmock.AnyArg(), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := svc.UpdateStatus(3, models.TaskStatusDone, 2)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamTaskService_UpdateStatus_NotAuthorized(t *testing.T) {
	svc, mock := setupTaskServiceMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `team_tasks` WHERE `team_tasks`.`id` = \\?").
		WillReturnRows(taskRows(10, 2, models.TaskStatusTodo))
	mock.ExpectQuery("SELECT \\* FROM `teams` WHERE `teams`.`id` = \\?").
		WillReturnRows(teamRows(1))

	err := svc.UpdateStatus(3, models.TaskStatusDone, 7)

	require.ErrorIs(t, err, ErrNotStatusAuthorized)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamTaskService_UpdateStatus_TaskMissing(t *testing.T) {
	svc, mock := setupTaskServiceMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `team_tasks` WHERE `team_tasks`.`id` = \\?").
		WillReturnError(gorm.ErrRecordNotFound)

	err := svc.UpdateStatus(99, models.TaskStatusDone, 1)

	require.ErrorIs(t, err, ErrTaskNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
