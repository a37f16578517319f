package models

import "time"

// Team has exactly one admin, fixed at creation. Admin status is derived by
// comparing AdminID against the acting user; membership rows carry no role.
type Team struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	TeamName        string    `gorm:"type:varchar(255);not null" json:"team_name"`
	TeamDescription string    `gorm:"type:text" json:"team_description"`
	AdminID         uint64    `gorm:"not null;index" json:"admin_id"`
	CreatedAt       time.Time `json:"created_at"`

	// Relations
	Members []TeamMember `gorm:"foreignKey:TeamID" json:"-"`
	Tasks   []TeamTask   `gorm:"foreignKey:TeamID" json:"-"`
}
