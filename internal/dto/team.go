package dto

import (
	"time"

	"github.com/ceidev/taskboard/internal/models"
)

// TeamMemberDTO represents a member row in team detail responses
type TeamMemberDTO struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	ProfileImage string    `json:"profile_image"`
	JoinedAt     time.Time `json:"joined_at"`
}

// TeamDetailDTO represents a team with its full member list
type TeamDetailDTO struct {
	ID              uint64          `json:"id"`
	TeamName        string          `json:"team_name"`
	TeamDescription string          `json:"team_description"`
	AdminID         uint64          `json:"admin_id"`
	CreatedAt       time.Time       `json:"created_at"`
	Members         []TeamMemberDTO `json:"members"`
}

// ToTeamMemberDTO converts a membership with its preloaded user
func ToTeamMemberDTO(member models.TeamMember) TeamMemberDTO {
	return TeamMemberDTO{
		ID:           member.User.ID,
		Username:     member.User.Username,
		FullName:     member.User.FullName,
		ProfileImage: member.User.ProfileImage,
		JoinedAt:     member.JoinedAt,
	}
}

// ToTeamDetailDTO converts a team and its members to a detail response
func ToTeamDetailDTO(team models.Team, members []models.TeamMember) TeamDetailDTO {
	memberDTOs := make([]TeamMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToTeamMemberDTO(member)
	}

	return TeamDetailDTO{
		ID:              team.ID,
		TeamName:        team.TeamName,
		TeamDescription: team.TeamDescription,
		AdminID:         team.AdminID,
		CreatedAt:       team.CreatedAt,
		Members:         memberDTOs,
	}
}
