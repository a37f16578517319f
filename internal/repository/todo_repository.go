package repository

import (
	"github.com/ceidev/taskboard/internal/models"
	"gorm.io/gorm"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// ListByUsername lists a user's items, newest first
func (r *GormTodoRepository) ListByUsername(username string) ([]models.Todo, error) {
	var todos []models.Todo
	if err := r.db.Where("username = ?", username).
		Order("id DESC").
		Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// Create creates a new item
func (r *GormTodoRepository) Create(todo *models.Todo) error {
	return r.db.Create(todo).Error
}

// UpdateFields applies the supplied fields and returns the number of affected rows
func (r *GormTodoRepository) UpdateFields(id uint64, update TodoUpdate) (int64, error) {
	values := map[string]interface{}{}
	if update.Status != nil {
		values["status"] = *update.Status
	}
	if update.TargetDatetime != nil {
		values["target_datetime"] = *update.TargetDatetime
	}
	if update.Done != nil {
		values["done"] = *update.Done
	}

	result := r.db.Model(&models.Todo{}).Where("id = ?", id).Updates(values)
	return result.RowsAffected, result.Error
}

// Delete removes an item and returns the number of affected rows
func (r *GormTodoRepository) Delete(id uint64) (int64, error) {
	result := r.db.Delete(&models.Todo{}, id)
	return result.RowsAffected, result.Error
}
