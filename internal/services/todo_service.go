package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ceidev/taskboard/internal/models"
	"github.com/ceidev/taskboard/internal/repository"
)

var (
	ErrTodoFieldsRequired = errors.New("username and task are required")
	ErrNoTodoFields       = errors.New("no fields to update")
	ErrInvalidTodoStatus  = errors.New("invalid status")
	ErrTodoNotFound       = errors.New("todo not found")
)

// TodoService provides business logic for personal list items.
type TodoService struct {
	todoRepo repository.TodoRepository
}

// NewTodoService creates a new TodoService.
func NewTodoService(todoRepo repository.TodoRepository) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
	}
}

// ListTodos returns a user's items, newest first.
func (s *TodoService) ListTodos(username string) ([]models.Todo, error) {
	todos, err := s.todoRepo.ListByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// CreateTodoInput represents parameters to create a new item.
type CreateTodoInput struct {
	Username       string
	Task           string
	Status         models.TodoStatus
	TargetDatetime *time.Time
}

// CreateTodo creates a new item, defaulting status to Todo.
func (s *TodoService) CreateTodo(input CreateTodoInput) (*models.Todo, error) {
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Task) == "" {
		return nil, ErrTodoFieldsRequired
	}

	status := input.Status
	if status == "" {
		status = models.TodoStatusTodo
	}
	if !models.ValidTodoStatus(status) {
		return nil, ErrInvalidTodoStatus
	}

	todo := &models.Todo{
		Username:       input.Username,
		Task:           input.Task,
		Status:         status,
		TargetDatetime: input.TargetDatetime,
	}

	if err := s.todoRepo.Create(todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

// UpdateTodo applies the supplied fields to an item.
func (s *TodoService) UpdateTodo(id uint64, update repository.TodoUpdate) error {
	if update.Empty() {
		return ErrNoTodoFields
	}
	if update.Status != nil && !models.ValidTodoStatus(*update.Status) {
		return ErrInvalidTodoStatus
	}

	affected, err := s.todoRepo.UpdateFields(id, update)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	if affected == 0 {
		return ErrTodoNotFound
	}

	return nil
}

// DeleteTodo removes an item.
func (s *TodoService) DeleteTodo(id uint64) error {
	affected, err := s.todoRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if affected == 0 {
		return ErrTodoNotFound
	}

	return nil
}
