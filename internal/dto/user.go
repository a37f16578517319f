package dto

import (
	"time"

	"github.com/ceidev/taskboard/internal/models"
)

// UserDTO represents a user summary in API responses
type UserDTO struct {
	ID           uint64     `json:"id"`
	Username     string     `json:"username"`
	FullName     string     `json:"full_name"`
	ProfileImage string     `json:"profile_image"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Username:     user.Username,
		FullName:     user.FullName,
		ProfileImage: user.ProfileImage,
		LastLogin:    user.LastLogin,
	}
}
