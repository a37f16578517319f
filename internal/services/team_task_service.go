package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ceidev/taskboard/internal/models"
	"github.com/ceidev/taskboard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskFieldsRequired  = errors.New("task_name, assigned_to and created_by_id are required")
	ErrTaskNotFound        = errors.New("task not found")
	ErrAssigneeNotMember   = errors.New("assigned_to must be a team member")
	ErrInvalidTaskStatus   = errors.New("invalid status, must be: Todo, In Progress, or Done")
	ErrNotStatusAuthorized = errors.New("only the team admin and the assigned user can change task status")
	ErrNoTaskFields        = errors.New("no fields to update")
)

// TeamTaskService provides business logic for team board tasks. Creation,
// editing, and deletion are admin-only; status transitions are open to the
// admin and the current assignee.
type TeamTaskService struct {
	taskRepo repository.TeamTaskRepository
	teamRepo repository.TeamRepository
}

// NewTeamTaskService creates a new TeamTaskService.
func NewTeamTaskService(taskRepo repository.TeamTaskRepository, teamRepo repository.TeamRepository) *TeamTaskService {
	return &TeamTaskService{
		taskRepo: taskRepo,
		teamRepo: teamRepo,
	}
}

// CreateTaskInput represents parameters to create a new task.
type CreateTaskInput struct {
	TeamID         uint64
	TaskName       string
	Description    string
	AssignedTo     uint64
	CreatedByID    uint64
	TargetDatetime *time.Time
}

// CreateTask creates a task with status Todo. The creator must be the team
// admin and the assignee a current member.
func (s *TeamTaskService) CreateTask(input CreateTaskInput) (*models.TeamTask, error) {
	if strings.TrimSpace(input.TaskName) == "" || input.AssignedTo == 0 || input.CreatedByID == 0 {
		return nil, ErrTaskFieldsRequired
	}

	if err := s.requireAdmin(input.TeamID, input.CreatedByID); err != nil {
		return nil, err
	}

	isMember, err := s.teamRepo.IsMember(input.TeamID, input.AssignedTo)
	if err != nil {
		return nil, fmt.Errorf("failed to check team membership: %w", err)
	}
	if !isMember {
		return nil, ErrAssigneeNotMember
	}

	task := &models.TeamTask{
		TeamID:         input.TeamID,
		TaskName:       input.TaskName,
		Description:    input.Description,
		AssignedTo:     input.AssignedTo,
		CreatedBy:      input.CreatedByID,
		Status:         models.TaskStatusTodo,
		TargetDatetime: input.TargetDatetime,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTeamTasks returns a team's tasks joined with assignee and creator
// usernames, newest first.
func (s *TeamTaskService) ListTeamTasks(teamID uint64) ([]repository.TeamTaskRow, error) {
	rows, err := s.taskRepo.ListByTeam(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return rows, nil
}

// UpdateStatus transitions a task's status. Allowed for the team admin and
// the task's current assignee only.
func (s *TeamTaskService) UpdateStatus(taskID uint64, newStatus models.TaskStatus, requestedByID uint64) error {
	if !models.ValidTaskStatus(newStatus) {
		return ErrInvalidTaskStatus
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	team, err := s.teamRepo.FindByID(task.TeamID)
	if err != nil {
		return fmt.Errorf("failed to verify permissions: %w", err)
	}

	if team.AdminID != requestedByID && task.AssignedTo != requestedByID {
		return ErrNotStatusAuthorized
	}

	// Existence is established by the lookup above; the write's affected-row
	// count cannot distinguish a missing task from an unchanged status.
	if err := s.taskRepo.UpdateStatus(taskID, newStatus); err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	return nil
}

// UpdateTask applies the supplied fields to a task. Admin-only; a new
// assignee must already belong to the task's team.
func (s *TeamTaskService) UpdateTask(taskID uint64, update repository.TaskUpdate, requestedByID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.requireAdmin(task.TeamID, requestedByID); err != nil {
		return err
	}

	if update.AssignedTo != nil {
		isMember, err := s.teamRepo.IsMember(task.TeamID, *update.AssignedTo)
		if err != nil {
			return fmt.Errorf("failed to check team membership: %w", err)
		}
		if !isMember {
			return ErrAssigneeNotMember
		}
	}

	if update.Empty() {
		return ErrNoTaskFields
	}

	if _, err := s.taskRepo.UpdateFields(taskID, update); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// DeleteTask removes a task. Admin-only.
func (s *TeamTaskService) DeleteTask(taskID, requestedByID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.requireAdmin(task.TeamID, requestedByID); err != nil {
		return err
	}

	affected, err := s.taskRepo.Delete(taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// requireAdmin fails with ErrNotTeamAdmin unless userID is the team's
// admin. A missing team is reported as a permission failure, matching the
// original admin-check query.
func (s *TeamTaskService) requireAdmin(teamID, userID uint64) error {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotTeamAdmin
		}
		return fmt.Errorf("failed to verify permissions: %w", err)
	}
	if team.AdminID != userID {
		return ErrNotTeamAdmin
	}
	return nil
}
