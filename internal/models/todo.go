package models

import "time"

type TodoStatus string

const (
	TodoStatusTodo  TodoStatus = "Todo"
	TodoStatusDoing TodoStatus = "Doing"
	TodoStatusDone  TodoStatus = "Done"
)

// ValidTodoStatus reports whether s is one of the three personal list states.
func ValidTodoStatus(s TodoStatus) bool {
	switch s {
	case TodoStatusTodo, TodoStatusDoing, TodoStatusDone:
		return true
	}
	return false
}

// Todo is a personal list item. It is keyed by username rather than a user
// foreign key; the item survives independently of the users table.
type Todo struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	Username       string     `gorm:"type:varchar(100);index;not null" json:"username"`
	Task           string     `gorm:"type:text;not null" json:"task"`
	Status         TodoStatus `gorm:"type:varchar(20);not null;default:'Todo'" json:"status"`
	Done           bool       `json:"done"`
	TargetDatetime *time.Time `json:"target_datetime"`
	Updated        time.Time  `gorm:"autoUpdateTime" json:"updated"`
}
