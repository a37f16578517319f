package repository

import (
	"github.com/ceidev/taskboard/internal/models"
	"gorm.io/gorm"
)

// GormTeamTaskRepository is a GORM implementation of TeamTaskRepository
type GormTeamTaskRepository struct {
	db *gorm.DB
}

// NewTeamTaskRepository creates a new TeamTaskRepository
func NewTeamTaskRepository(db *gorm.DB) TeamTaskRepository {
	return &GormTeamTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTeamTaskRepository) Create(task *models.TeamTask) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTeamTaskRepository) FindByID(id uint64) (*models.TeamTask, error) {
	var task models.TeamTask
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByTeam lists a team's tasks joined with assignee and creator usernames
func (r *GormTeamTaskRepository) ListByTeam(teamID uint64) ([]TeamTaskRow, error) {
	var rows []TeamTaskRow
	err := r.db.Table("team_tasks").
		Select("team_tasks.id, team_tasks.team_id, team_tasks.task_name, team_tasks.description, " +
			"team_tasks.assigned_to, assignee.username AS assigned_to_username, assignee.full_name AS assigned_to_fullname, " +
			"team_tasks.created_by, creator.username AS created_by_username, " +
			"team_tasks.status, team_tasks.target_datetime, team_tasks.created_at, team_tasks.updated_at").
		Joins("INNER JOIN users assignee ON team_tasks.assigned_to = assignee.id").
		Joins("INNER JOIN users creator ON team_tasks.created_by = creator.id").
		Where("team_tasks.team_id = ?", teamID).
		Order("team_tasks.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus sets a task's status. The affected-row count is not
// meaningful here: the MySQL driver reports changed rows, so re-writing
// the current status yields zero even though the row exists.
func (r *GormTeamTaskRepository) UpdateStatus(id uint64, status models.TaskStatus) error {
	return r.db.Model(&models.TeamTask{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// UpdateFields applies the supplied fields and returns the number of affected rows
func (r *GormTeamTaskRepository) UpdateFields(id uint64, update TaskUpdate) (int64, error) {
	values := map[string]interface{}{}
	if update.TaskName != nil {
		values["task_name"] = *update.TaskName
	}
	if update.Description != nil {
		values["description"] = *update.Description
	}
	if update.AssignedTo != nil {
		values["assigned_to"] = *update.AssignedTo
	}
	if update.TargetDatetime != nil {
		values["target_datetime"] = *update.TargetDatetime
	}

	result := r.db.Model(&models.TeamTask{}).Where("id = ?", id).Updates(values)
	return result.RowsAffected, result.Error
}

// Delete removes a task and returns the number of affected rows
func (r *GormTeamTaskRepository) Delete(id uint64) (int64, error) {
	result := r.db.Delete(&models.TeamTask{}, id)
	return result.RowsAffected, result.Error
}
