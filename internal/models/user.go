package models

import "time"

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	FullName     string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Username     string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"type:varchar(255)" json:"-"`
	ProfileImage string     `gorm:"type:varchar(512)" json:"profile_image"`
	GoogleID     *string    `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`

	// Relations
	Memberships  []TeamMember `gorm:"foreignKey:UserID" json:"-"`
	CreatedTasks []TeamTask   `gorm:"foreignKey:CreatedBy" json:"-"`
}
