package repository

import (
	"errors"
	"fmt"

	"github.com/ceidev/taskboard/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateMember is returned when adding a user who already belongs to
// the team.
var ErrDuplicateMember = errors.New("team repository: user already a member")

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// CreateWithAdmin creates the team and its first membership atomically.
func (r *GormTeamRepository) CreateWithAdmin(team *models.Team, member *models.TeamMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return fmt.Errorf("create team: %w", err)
		}

		member.TeamID = team.ID
		member.UserID = team.AdminID

		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("create admin membership: %w", err)
		}

		return nil
	})
}

// FindByID finds a team by ID
func (r *GormTeamRepository) FindByID(id uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// ListByUserID lists the teams a user belongs to. Each row carries the
// viewer's admin flag and a count over all members, not just the viewer's row.
func (r *GormTeamRepository) ListByUserID(userID uint64) ([]TeamSummary, error) {
	var summaries []TeamSummary
	err := r.db.Table("teams").
		Select("teams.id, teams.team_name, teams.team_description, teams.admin_id, teams.created_at, "+
			"(teams.admin_id = ?) AS is_admin, "+
			"(SELECT COUNT(*) FROM team_members m WHERE m.team_id = teams.id) AS member_count", userID).
		Joins("INNER JOIN team_members tm ON tm.team_id = teams.id").
		Where("tm.user_id = ?", userID).
		Order("teams.created_at DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// ListMembers lists a team's members with users preloaded
func (r *GormTeamRepository) ListMembers(teamID uint64) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := r.db.Preload("User").
		Where("team_id = ?", teamID).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember inserts a membership. The duplicate check and the insert run in
// one transaction so concurrent adds cannot both pass the check.
func (r *GormTeamRepository) AddMember(member *models.TeamMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.TeamMember
		err := tx.Where("team_id = ? AND user_id = ?", member.TeamID, member.UserID).
			First(&existing).Error
		if err == nil {
			return ErrDuplicateMember
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check membership: %w", err)
		}

		return tx.Create(member).Error
	})
}

// RemoveMember deletes a membership and returns the number of affected rows
func (r *GormTeamRepository) RemoveMember(teamID, userID uint64) (int64, error) {
	result := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{})
	return result.RowsAffected, result.Error
}

// IsMember reports whether the user belongs to the team
func (r *GormTeamRepository) IsMember(teamID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteCascade removes the team, its memberships, and its tasks atomically.
func (r *GormTeamRepository) DeleteCascade(teamID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", teamID).Delete(&models.TeamTask{}).Error; err != nil {
			return err
		}

		if err := tx.Where("team_id = ?", teamID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Team{}, teamID).Error; err != nil {
			return err
		}

		return nil
	})
}
