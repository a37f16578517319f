package repository

import (
	"time"

	"github.com/ceidev/taskboard/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByGoogleID finds a user by linked Google account ID
	FindByGoogleID(googleID string) (*models.User, error)

	// Update persists changes to an existing user
	Update(user *models.User) error
}

// TodoUpdate holds the optional fields of a personal item update.
// Nil fields are left untouched.
type TodoUpdate struct {
	Status         *models.TodoStatus
	TargetDatetime *time.Time
	Done           *bool
}

// Empty reports whether no field is set.
func (u TodoUpdate) Empty() bool {
	return u.Status == nil && u.TargetDatetime == nil && u.Done == nil
}

// TodoRepository defines the interface for personal todo data access
type TodoRepository interface {
	// ListByUsername lists a user's items, newest first
	ListByUsername(username string) ([]models.Todo, error)

	// Create creates a new item
	Create(todo *models.Todo) error

	// UpdateFields applies the supplied fields and returns the number of
	// affected rows
	UpdateFields(id uint64, update TodoUpdate) (int64, error)

	// Delete removes an item and returns the number of affected rows
	Delete(id uint64) (int64, error)
}

// TeamSummary is a team row annotated for a particular viewer.
type TeamSummary struct {
	ID              uint64    `json:"id"`
	TeamName        string    `json:"team_name"`
	TeamDescription string    `json:"team_description"`
	AdminID         uint64    `json:"admin_id"`
	CreatedAt       time.Time `json:"created_at"`
	IsAdmin         bool      `json:"is_admin"`
	MemberCount     int64     `json:"member_count"`
}

// TeamRepository defines the interface for team and membership data access
type TeamRepository interface {
	// CreateWithAdmin creates the team and its first membership (the
	// creator) in a single transaction
	CreateWithAdmin(team *models.Team, member *models.TeamMember) error

	// FindByID finds a team by ID
	FindByID(id uint64) (*models.Team, error)

	// ListByUserID lists the teams a user belongs to, annotated with the
	// viewer's admin flag and the team's member count
	ListByUserID(userID uint64) ([]TeamSummary, error)

	// ListMembers lists a team's members with users preloaded, ordered by
	// join time ascending
	ListMembers(teamID uint64) ([]models.TeamMember, error)

	// AddMember inserts a membership, failing with ErrDuplicateMember if
	// the pair already exists; the check and insert share a transaction
	AddMember(member *models.TeamMember) error

	// RemoveMember deletes a membership and returns the number of affected
	// rows
	RemoveMember(teamID, userID uint64) (int64, error)

	// IsMember reports whether the user belongs to the team
	IsMember(teamID, userID uint64) (bool, error)

	// DeleteCascade removes the team, its memberships, and its tasks in a
	// single transaction
	DeleteCascade(teamID uint64) error
}

// TaskUpdate holds the optional fields of a team task update.
// Nil fields are left untouched.
type TaskUpdate struct {
	TaskName       *string
	Description    *string
	AssignedTo     *uint64
	TargetDatetime *time.Time
}

// Empty reports whether no field is set.
func (u TaskUpdate) Empty() bool {
	return u.TaskName == nil && u.Description == nil && u.AssignedTo == nil && u.TargetDatetime == nil
}

// TeamTaskRow is a task joined with its assignee and creator usernames.
type TeamTaskRow struct {
	ID                 uint64            `json:"id"`
	TeamID             uint64            `json:"team_id"`
	TaskName           string            `json:"task_name"`
	Description        string            `json:"description"`
	AssignedTo         uint64            `json:"assigned_to"`
	AssignedToUsername string            `json:"assigned_to_username"`
	AssignedToFullname string            `json:"assigned_to_fullname"`
	CreatedBy          uint64            `json:"created_by"`
	CreatedByUsername  string            `json:"created_by_username"`
	Status             models.TaskStatus `json:"status"`
	TargetDatetime     *time.Time        `json:"target_datetime"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// TeamTaskRepository defines the interface for team task data access
type TeamTaskRepository interface {
	// Create creates a new task
	Create(task *models.TeamTask) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.TeamTask, error)

	// ListByTeam lists a team's tasks joined with assignee and creator
	// usernames, newest first
	ListByTeam(teamID uint64) ([]TeamTaskRow, error)

	// UpdateStatus sets a task's status. Writing the current status again
	// is a success; MySQL reports zero affected rows for such no-op
	// updates, so the count is not surfaced
	UpdateStatus(id uint64, status models.TaskStatus) error

	// UpdateFields applies the supplied fields and returns the number of
	// affected rows
	UpdateFields(id uint64, update TaskUpdate) (int64, error)

	// Delete removes a task and returns the number of affected rows
	Delete(id uint64) (int64, error)
}
