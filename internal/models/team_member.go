package models

import "time"

type TeamMember struct {
	ID       uint64    `gorm:"primarykey" json:"id"`
	UserID   uint64    `gorm:"not null;uniqueIndex:idx_team_member_user_team" json:"user_id"`
	TeamID   uint64    `gorm:"not null;uniqueIndex:idx_team_member_user_team" json:"team_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
	Team Team `gorm:"foreignKey:TeamID" json:"-"`
}
