package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ceidev/taskboard/internal/database"
	"github.com/ceidev/taskboard/internal/models"
	"github.com/ceidev/taskboard/internal/repository"
	"github.com/ceidev/taskboard/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type todoTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	todoService *services.TodoService
}

func setupTodoTestEnv(t *testing.T) todoTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Todo{}))

	database.SetDB(db)

	todoService := services.NewTodoService(repository.NewTodoRepository(db))
	handler := NewTodoHandler(todoService)

	r := gin.New()
	r.GET("/api/todos/:username", handler.ListTodos)
	r.POST("/api/todos", handler.CreateTodo)
	r.PUT("/api/todos/:id", handler.UpdateTodo)
	r.DELETE("/api/todos/:id", handler.DeleteTodo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return todoTestEnv{
		db:          db,
		router:      r,
		todoService: todoService,
	}
}

func todoRequest(t *testing.T, r *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTodoHandler_CreateAndList(t *testing.T) {
	env := setupTodoTestEnv(t)

	w := todoRequest(t, env.router, http.MethodPost, "/api/todos", map[string]interface{}{
		"username": "alice",
		"task":     "write report",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, models.TodoStatusTodo, created.Status)

	w = todoRequest(t, env.router, http.MethodPost, "/api/todos", map[string]interface{}{
		"username": "alice",
		"task":     "review slides",
		"status":   "Doing",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = todoRequest(t, env.router, http.MethodGet, "/api/todos/alice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var todos []models.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todos))
	require.Len(t, todos, 2)
	// Newest first
	require.Equal(t, "review slides", todos[0].Task)
	require.Equal(t, "write report", todos[1].Task)

	// Another user's list stays empty
	w = todoRequest(t, env.router, http.MethodGet, "/api/todos/bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &todos))
	require.Empty(t, todos)
}

func TestTodoHandler_Create_MissingFields(t *testing.T) {
	env := setupTodoTestEnv(t)

	w := todoRequest(t, env.router, http.MethodPost, "/api/todos", map[string]interface{}{
		"username": "alice",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTodoHandler_Update(t *testing.T) {
	env := setupTodoTestEnv(t)

	todo, err := env.todoService.CreateTodo(services.CreateTodoInput{
		Username: "alice",
		Task:     "write report",
	})
	require.NoError(t, err)

	w := todoRequest(t, env.router, http.MethodPut, fmt.Sprintf("/api/todos/%d", todo.ID), map[string]interface{}{
		"status": "Done",
		"done":   true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Todo
	require.NoError(t, env.db.First(&updated, todo.ID).Error)
	require.Equal(t, models.TodoStatusDone, updated.Status)
	require.True(t, updated.Done)
}

func TestTodoHandler_Update_NoFields(t *testing.T) {
	env := setupTodoTestEnv(t)

	todo, err := env.todoService.CreateTodo(services.CreateTodoInput{
		Username: "alice",
		Task:     "write report",
	})
	require.NoError(t, err)

	w := todoRequest(t, env.router, http.MethodPut, fmt.Sprintf("/api/todos/%d", todo.ID), map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTodoHandler_Update_InvalidStatus(t *testing.T) {
	env := setupTodoTestEnv(t)

	todo, err := env.todoService.CreateTodo(services.CreateTodoInput{
		Username: "alice",
		Task:     "write report",
	})
	require.NoError(t, err)

	w := todoRequest(t, env.router, http.MethodPut, fmt.Sprintf("/api/todos/%d", todo.ID), map[string]interface{}{
		"status": "Blocked",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTodoHandler_Update_NotFound(t *testing.T) {
	env := setupTodoTestEnv(t)

	w := todoRequest(t, env.router, http.MethodPut, "/api/todos/999", map[string]interface{}{
		"status": "Done",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTodoHandler_Delete(t *testing.T) {
	env := setupTodoTestEnv(t)

	todo, err := env.todoService.CreateTodo(services.CreateTodoInput{
		Username: "alice",
		Task:     "write report",
	})
	require.NoError(t, err)

	url := fmt.Sprintf("/api/todos/%d", todo.ID)

	w := todoRequest(t, env.router, http.MethodDelete, url, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Second delete of the same item reports not found
	w = todoRequest(t, env.router, http.MethodDelete, url, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
