package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ceidev/taskboard/internal/constants"
	"github.com/ceidev/taskboard/internal/dto"
	apierrors "github.com/ceidev/taskboard/internal/errors"
	"github.com/ceidev/taskboard/internal/middleware"
	"github.com/ceidev/taskboard/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates identity-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new account from a multipart form with an optional
// profile image.
func (h *AuthHandler) Register(c *gin.Context) {
	input := services.RegisterInput{
		FullName: c.PostForm("full_name"),
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}
	if file, err := c.FormFile("profile_image"); err == nil {
		input.ProfileImage = file
	}

	user, err := h.authService.Register(input)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := saveSession(c, user.ID); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful",
		"user":    dto.ToUserDTO(*user),
	})
}

// Login authenticates with username, password, and a CAPTCHA token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Captcha  string `json:"captcha" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "username, password and captcha are required")
		return
	}

	user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Username:     req.Username,
		Password:     req.Password,
		CaptchaToken: req.Captcha,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := saveSession(c, user.ID); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    dto.ToUserDTO(*user),
	})
}

// GoogleLogin authenticates with a Google ID token, creating the account
// on first login.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	type GoogleLoginRequest struct {
		Token string `json:"token" binding:"required"`
	}

	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "token is required")
		return
	}

	user, err := h.authService.LoginWithGoogle(c.Request.Context(), req.Token)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if err := saveSession(c, user.ID); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    dto.ToUserDTO(*user),
	})
}

// UpdateProfile applies optional profile fields from a multipart form.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	username := c.Param("username")

	input := services.UpdateProfileInput{
		FullName: c.PostForm("full_name"),
		Password: c.PostForm("password"),
	}
	if file, err := c.FormFile("profile_image"); err == nil {
		input.ProfileImage = file
	}

	user, err := h.authService.UpdateProfile(username, input)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    dto.ToUserDTO(*user),
	})
}

// SearchUser looks up a user by exact username.
func (h *AuthHandler) SearchUser(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		apierrors.BadRequest(c, "username is required")
		return
	}

	user, err := h.authService.SearchByUsername(username)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    dto.ToUserDTO(*user),
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the session's user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func saveSession(c *gin.Context, userID uint64) error {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, userID)
	return session.Save()
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRegistrationFields),
		errors.Is(err, services.ErrNoProfileFields):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidIDToken):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCaptchaFailed):
		apierrors.InternalError(c, services.ErrCaptchaFailed.Error())
	case errors.Is(err, services.ErrGoogleLoginDisabled):
		apierrors.ServiceUnavailable(c, services.ErrGoogleLoginDisabled.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
