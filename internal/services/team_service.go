package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ceidev/taskboard/internal/models"
	"github.com/ceidev/taskboard/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTeamFieldsRequired = errors.New("team_name and created_by_id are required")
	ErrTeamNotFound       = errors.New("team not found")
	ErrNotTeamAdmin       = errors.New("only the team admin can perform this action")
	ErrAlreadyTeamMember  = errors.New("user already a member of this team")
	ErrMemberNotFound     = errors.New("member not found in team")
)

// TeamService provides business logic for teams and membership. Mutations
// are restricted to the team's admin.
type TeamService struct {
	teamRepo repository.TeamRepository
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
	}
}

// CreateTeamInput represents parameters to create a new team.
type CreateTeamInput struct {
	TeamName        string
	TeamDescription string
	CreatedByID     uint64
}

// CreateTeam creates a team with the creator as admin and first member.
func (s *TeamService) CreateTeam(input CreateTeamInput) (*models.Team, error) {
	if strings.TrimSpace(input.TeamName) == "" || input.CreatedByID == 0 {
		return nil, ErrTeamFieldsRequired
	}

	team := &models.Team{
		TeamName:        input.TeamName,
		TeamDescription: input.TeamDescription,
		AdminID:         input.CreatedByID,
	}
	member := &models.TeamMember{}

	if err := s.teamRepo.CreateWithAdmin(team, member); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

// ListUserTeams returns the teams a user belongs to, annotated with the
// viewer's admin flag and member counts.
func (s *TeamService) ListUserTeams(userID uint64) ([]repository.TeamSummary, error) {
	teams, err := s.teamRepo.ListByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// GetTeamDetails returns a team and its full member list.
func (s *TeamService) GetTeamDetails(teamID uint64) (*models.Team, []models.TeamMember, error) {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTeamNotFound
		}
		return nil, nil, fmt.Errorf("failed to find team: %w", err)
	}

	members, err := s.teamRepo.ListMembers(teamID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list team members: %w", err)
	}

	return team, members, nil
}

// AddMember adds a user to a team. Only the admin may add members.
func (s *TeamService) AddMember(teamID, userIDToAdd, requestedByID uint64) error {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to find team: %w", err)
	}

	if team.AdminID != requestedByID {
		return ErrNotTeamAdmin
	}

	member := &models.TeamMember{
		TeamID: teamID,
		UserID: userIDToAdd,
	}
	if err := s.teamRepo.AddMember(member); err != nil {
		if errors.Is(err, repository.ErrDuplicateMember) {
			return ErrAlreadyTeamMember
		}
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// RemoveMember removes a user from a team. Only the admin may remove
// members; removing the admin themselves is not prevented, matching the
// original contract.
func (s *TeamService) RemoveMember(teamID, userID, requestedByID uint64) error {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to find team: %w", err)
	}

	if team.AdminID != requestedByID {
		return ErrNotTeamAdmin
	}

	affected, err := s.teamRepo.RemoveMember(teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	if affected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

// DeleteTeam removes a team with its memberships and tasks. Only the admin
// may delete the team.
func (s *TeamService) DeleteTeam(teamID, requestedByID uint64) error {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to find team: %w", err)
	}

	if team.AdminID != requestedByID {
		return ErrNotTeamAdmin
	}

	if err := s.teamRepo.DeleteCascade(teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	return nil
}
