package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "Todo"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

// ValidTaskStatus reports whether s is one of the three team board states.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// TeamTask is a task on a team board. AssignedTo must be a member of the
// task's team whenever it is set or changed.
type TeamTask struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	TeamID         uint64     `gorm:"not null;index" json:"team_id"`
	TaskName       string     `gorm:"type:varchar(255);not null" json:"task_name"`
	Description    string     `gorm:"type:text" json:"description"`
	AssignedTo     uint64     `gorm:"not null;index" json:"assigned_to"`
	CreatedBy      uint64     `gorm:"not null" json:"created_by"`
	Status         TaskStatus `gorm:"type:varchar(20);not null;default:'Todo'" json:"status"`
	TargetDatetime *time.Time `json:"target_datetime"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relations
	Team     Team `gorm:"foreignKey:TeamID" json:"-"`
	Assignee User `gorm:"foreignKey:AssignedTo" json:"-"`
	Creator  User `gorm:"foreignKey:CreatedBy" json:"-"`
}
