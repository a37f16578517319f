package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	apierrors "github.com/ceidev/taskboard/internal/errors"
	"github.com/ceidev/taskboard/internal/models"
	"github.com/ceidev/taskboard/internal/repository"
	"github.com/ceidev/taskboard/internal/services"
	"github.com/gin-gonic/gin"
)

// TaskHandler coordinates team task HTTP handlers.
type TaskHandler struct {
	taskService *services.TeamTaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TeamTaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task on a team board. Admin-only; the assignee must
// be a current team member.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	type CreateTaskRequest struct {
		TaskName       string     `json:"task_name" binding:"required"`
		Description    string     `json:"description"`
		AssignedTo     uint64     `json:"assigned_to" binding:"required"`
		CreatedByID    uint64     `json:"created_by_id" binding:"required"`
		TargetDatetime *time.Time `json:"target_datetime"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "task_name, assigned_to and created_by_id are required")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		TeamID:         teamID,
		TaskName:       req.TaskName,
		Description:    req.Description,
		AssignedTo:     req.AssignedTo,
		CreatedByID:    req.CreatedByID,
		TargetDatetime: req.TargetDatetime,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Task created successfully",
		"task":    task,
	})
}

// ListTeamTasks returns all tasks on a team board, newest first.
func (h *TaskHandler) ListTeamTasks(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	tasks, err := h.taskService.ListTeamTasks(teamID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tasks":   tasks,
	})
}

// UpdateTaskStatus transitions a task's status. Allowed for the team admin
// and the current assignee.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateStatusRequest struct {
		NewStatus     models.TaskStatus `json:"new_status" binding:"required"`
		RequestedByID uint64            `json:"requested_by_id" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "new_status and requested_by_id are required")
		return
	}

	if err := h.taskService.UpdateStatus(taskID, req.NewStatus, req.RequestedByID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task status updated successfully",
	})
}

// UpdateTask modifies the supplied task fields. Admin-only.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		TaskName       *string    `json:"task_name"`
		Description    *string    `json:"description"`
		AssignedTo     *uint64    `json:"assigned_to"`
		TargetDatetime *time.Time `json:"target_datetime"`
		RequestedByID  uint64     `json:"requested_by_id" binding:"required"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "requested_by_id is required")
		return
	}

	update := repository.TaskUpdate{
		TaskName:       req.TaskName,
		Description:    req.Description,
		AssignedTo:     req.AssignedTo,
		TargetDatetime: req.TargetDatetime,
	}

	if err := h.taskService.UpdateTask(taskID, update, req.RequestedByID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task updated successfully",
	})
}

// DeleteTask removes a task. Admin-only.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	requestedByID, err := strconv.ParseUint(c.Query("requested_by_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "requested_by_id is required")
		return
	}

	if err := h.taskService.DeleteTask(taskID, requestedByID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted successfully",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskFieldsRequired),
		errors.Is(err, services.ErrAssigneeNotMember),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrNoTaskFields):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotTeamAdmin),
		errors.Is(err, services.ErrNotStatusAuthorized):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
