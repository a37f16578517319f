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

// TodoHandler coordinates personal list HTTP handlers.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// ListTodos returns a user's items, newest first.
func (h *TodoHandler) ListTodos(c *gin.Context) {
	username := c.Param("username")

	todos, err := h.todoService.ListTodos(username)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, todos)
}

// CreateTodo adds a new item.
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	type CreateTodoRequest struct {
		Username       string            `json:"username" binding:"required"`
		Task           string            `json:"task" binding:"required"`
		Status         models.TodoStatus `json:"status"`
		TargetDatetime *time.Time        `json:"target_datetime"`
	}

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "username and task are required")
		return
	}

	todo, err := h.todoService.CreateTodo(services.CreateTodoInput{
		Username:       req.Username,
		Task:           req.Task,
		Status:         req.Status,
		TargetDatetime: req.TargetDatetime,
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, todo)
}

// UpdateTodo modifies the supplied fields of an item.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid todo ID")
		return
	}

	type UpdateTodoRequest struct {
		Status         *models.TodoStatus `json:"status"`
		TargetDatetime *time.Time         `json:"target_datetime"`
		Done           *bool              `json:"done"`
	}

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err = h.todoService.UpdateTodo(id, repository.TodoUpdate{
		Status:         req.Status,
		TargetDatetime: req.TargetDatetime,
		Done:           req.Done,
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo updated successfully",
	})
}

// DeleteTodo removes an item.
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid todo ID")
		return
	}

	if err := h.todoService.DeleteTodo(id); err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo deleted successfully",
	})
}

func respondTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTodoFieldsRequired),
		errors.Is(err, services.ErrNoTodoFields),
		errors.Is(err, services.ErrInvalidTodoStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTodoNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
