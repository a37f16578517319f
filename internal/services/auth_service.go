package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/ceidev/taskboard/internal/constants"
	"github.com/ceidev/taskboard/internal/models"
	"github.com/ceidev/taskboard/internal/repository"
	"github.com/ceidev/taskboard/internal/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrRegistrationFields   = errors.New("full_name, username and password are required")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrCaptchaFailed        = errors.New("captcha verification failed")
	ErrNoProfileFields      = errors.New("no fields to update")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToSaveImage    = errors.New("failed to store profile image")
	ErrGoogleLoginDisabled  = errors.New("google login is not configured")
)

// AuthService handles registration, authentication, and profile updates.
type AuthService struct {
	userRepo repository.UserRepository
	captcha  CaptchaVerifier
	google   IDTokenVerifier
	images   *storage.ImageStore
}

// NewAuthService creates a new AuthService. captcha and google may be nil
// when the corresponding credentials are not configured; the flows that
// need them then skip external verification.
func NewAuthService(userRepo repository.UserRepository, captcha CaptchaVerifier, google IDTokenVerifier, images *storage.ImageStore) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		captcha:  captcha,
		google:   google,
		images:   images,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	FullName     string
	Username     string
	Password     string
	ProfileImage *multipart.FileHeader
}

// Register creates a new local-credential user.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	username := strings.TrimSpace(input.Username)
	if fullName == "" || username == "" || input.Password == "" {
		return nil, ErrRegistrationFields
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		FullName:     fullName,
		Username:     username,
		PasswordHash: string(hashedPassword),
	}

	if input.ProfileImage != nil {
		path, err := s.images.Save(input.ProfileImage)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToSaveImage, err)
		}
		user.ProfileImage = path
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for password authentication.
type LoginInput struct {
	Username     string
	Password     string
	CaptchaToken string
}

// Login verifies the CAPTCHA token and the credentials, refreshing the
// user's last-login timestamp on success.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	if s.captcha != nil {
		if err := s.captcha.Verify(ctx, input.CaptchaToken); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCaptchaFailed, err)
		}
	}

	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.touchLastLogin(user); err != nil {
		return nil, err
	}

	return user, nil
}

// LoginWithGoogle authenticates via a verified Google ID token, creating
// the account on first login.
func (s *AuthService) LoginWithGoogle(ctx context.Context, token string) (*models.User, error) {
	if s.google == nil {
		return nil, ErrGoogleLoginDisabled
	}

	claims, err := s.google.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByGoogleID(claims.Subject)
	if err == nil {
		user.FullName = claims.Name
		// A locally uploaded image is never clobbered by the provider's
		// avatar; only empty or external (http) values are refreshed.
		if claims.Picture != "" && externalImage(user.ProfileImage) {
			user.ProfileImage = claims.Picture
		}
		now := time.Now()
		user.LastLogin = &now
		if err := s.userRepo.Update(user); err != nil {
			return nil, fmt.Errorf("failed to refresh user: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up google account: %w", err)
	}

	username, err := s.availableUsername(usernameFromEmail(claims.Email))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user = &models.User{
		FullName:     claims.Name,
		Username:     username,
		ProfileImage: claims.Picture,
		GoogleID:     &claims.Subject,
		LastLogin:    &now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput represents the optional fields of a profile update.
type UpdateProfileInput struct {
	FullName     string
	Password     string
	ProfileImage *multipart.FileHeader
}

// UpdateProfile applies the supplied fields and refreshes last-login.
func (s *AuthService) UpdateProfile(username string, input UpdateProfileInput) (*models.User, error) {
	if input.FullName == "" && input.Password == "" && input.ProfileImage == nil {
		return nil, ErrNoProfileFields
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Password != "" {
		if len(input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashed)
	}

	if input.FullName != "" {
		user.FullName = strings.TrimSpace(input.FullName)
	}

	if input.ProfileImage != nil {
		path, err := s.images.Save(input.ProfileImage)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToSaveImage, err)
		}
		user.ProfileImage = path
	}

	now := time.Now()
	user.LastLogin = &now

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// SearchByUsername looks up a user by exact username.
func (s *AuthService) SearchByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *AuthService) touchLastLogin(user *models.User) error {
	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// availableUsername appends a numeric suffix until the candidate is unused,
// so federated signup never fails on a username collision.
func (s *AuthService) availableUsername(base string) (string, error) {
	for i := 0; ; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s%d", base, i+1)
		}

		_, err := s.userRepo.FindByUsername(candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check username: %w", err)
		}
	}
}

func usernameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return "user"
	}
	return local
}

func externalImage(image string) bool {
	return image == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://")
}
