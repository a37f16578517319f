package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ceidev/taskboard/internal/dto"
	apierrors "github.com/ceidev/taskboard/internal/errors"
	"github.com/ceidev/taskboard/internal/services"
	"github.com/gin-gonic/gin"
)

// TeamHandler coordinates team and membership HTTP handlers.
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeam creates a team with the requester as admin and first member.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	type CreateTeamRequest struct {
		TeamName        string `json:"team_name" binding:"required"`
		TeamDescription string `json:"team_description"`
		CreatedByID     uint64 `json:"created_by_id" binding:"required"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "team_name and created_by_id are required")
		return
	}

	team, err := h.teamService.CreateTeam(services.CreateTeamInput{
		TeamName:        req.TeamName,
		TeamDescription: req.TeamDescription,
		CreatedByID:     req.CreatedByID,
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Team created successfully",
		"team":    team,
	})
}

// ListUserTeams returns the teams a user belongs to.
func (h *TeamHandler) ListUserTeams(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	teams, err := h.teamService.ListUserTeams(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"teams":   teams,
	})
}

// GetTeamDetails returns team attributes and the full member list.
func (h *TeamHandler) GetTeamDetails(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	team, members, err := h.teamService.GetTeamDetails(teamID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"team":    dto.ToTeamDetailDTO(*team, members),
	})
}

// AddMember adds a user to the team. Admin-only.
func (h *TeamHandler) AddMember(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	type AddMemberRequest struct {
		UserIDToAdd   uint64 `json:"user_id_to_add" binding:"required"`
		RequestedByID uint64 `json:"requested_by_id" binding:"required"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "user_id_to_add and requested_by_id are required")
		return
	}

	if err := h.teamService.AddMember(teamID, req.UserIDToAdd, req.RequestedByID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Member added successfully",
	})
}

// RemoveMember removes a user from the team. Admin-only.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	requestedByID, err := strconv.ParseUint(c.Query("requested_by_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "requested_by_id is required")
		return
	}

	if err := h.teamService.RemoveMember(teamID, userID, requestedByID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Member removed successfully",
	})
}

// DeleteTeam removes the team with its memberships and tasks. Admin-only.
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	requestedByID, err := strconv.ParseUint(c.Query("requested_by_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "requested_by_id is required")
		return
	}

	if err := h.teamService.DeleteTeam(teamID, requestedByID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Team deleted successfully",
	})
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTeamFieldsRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAlreadyTeamMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotTeamAdmin):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
