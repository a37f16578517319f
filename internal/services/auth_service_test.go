package services

import (
	"context"
	"testing"

	"github.com/ceidev/taskboard/internal/models"
	"github.com/ceidev/taskboard/internal/repository"
	"github.com/ceidev/taskboard/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixedTokenVerifier struct {
	claims *GoogleClaims
}

func (f fixedTokenVerifier) Verify(ctx context.Context, token string) (*GoogleClaims, error) {
	return f.claims, nil
}

func setupAuthService(t *testing.T, google IDTokenVerifier) (*AuthService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	images, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)

	return NewAuthService(repository.NewUserRepository(db), nil, google, images), db
}

func TestLoginWithGoogle_UsernameSuffixOnCollision(t *testing.T) {
	google := fixedTokenVerifier{claims: &GoogleClaims{
		Subject: "google-uid-1",
		Email:   "alice@example.com",
		Name:    "Alice Google",
	}}
	svc, db := setupAuthService(t, google)

	// The bare local part of the email is already taken by a local account.
	require.NoError(t, db.Create(&models.User{
		FullName: "Alice Local",
		Username: "alice",
	}).Error)

	user, err := svc.LoginWithGoogle(context.Background(), "token")
	require.NoError(t, err)
	require.Equal(t, "alice2", user.Username)
	require.Equal(t, "Alice Google", user.FullName)
	require.NotNil(t, user.LastLogin)

	// A second distinct Google account with the same email local part
	// keeps counting up.
	google2 := fixedTokenVerifier{claims: &GoogleClaims{
		Subject: "google-uid-2",
		Email:   "alice@other.example.com",
		Name:    "Other Alice",
	}}
	svc2 := NewAuthService(repository.NewUserRepository(db), nil, google2, svc.images)

	user2, err := svc2.LoginWithGoogle(context.Background(), "token")
	require.NoError(t, err)
	require.Equal(t, "alice3", user2.Username)
}

func TestLoginWithGoogle_RefreshesExternalAvatar(t *testing.T) {
	google := fixedTokenVerifier{claims: &GoogleClaims{
		Subject: "google-uid-1",
		Email:   "bob@example.com",
		Name:    "Bob",
		Picture: "https://lh3.example.com/new.jpg",
	}}
	svc, db := setupAuthService(t, google)

	googleID := "google-uid-1"
	require.NoError(t, db.Create(&models.User{
		FullName:     "Bob",
		Username:     "bob",
		GoogleID:     &googleID,
		ProfileImage: "https://lh3.example.com/old.jpg",
	}).Error)

	user, err := svc.LoginWithGoogle(context.Background(), "token")
	require.NoError(t, err)
	require.Equal(t, "https://lh3.example.com/new.jpg", user.ProfileImage)
}

func TestLoginWithGoogle_KeepsUploadedAvatar(t *testing.T) {
	google := fixedTokenVerifier{claims: &GoogleClaims{
		Subject: "google-uid-1",
		Email:   "bob@example.com",
		Name:    "Bob",
		Picture: "https://lh3.example.com/new.jpg",
	}}
	svc, db := setupAuthService(t, google)

	googleID := "google-uid-1"
	require.NoError(t, db.Create(&models.User{
		FullName:     "Bob",
		Username:     "bob",
		GoogleID:     &googleID,
		ProfileImage: "/uploads/bob-selfie.png",
	}).Error)

	user, err := svc.LoginWithGoogle(context.Background(), "token")
	require.NoError(t, err)
	require.Equal(t, "/uploads/bob-selfie.png", user.ProfileImage)
}

func TestLoginWithGoogle_Unconfigured(t *testing.T) {
	svc, _ := setupAuthService(t, nil)

	_, err := svc.LoginWithGoogle(context.Background(), "token")
	require.ErrorIs(t, err, ErrGoogleLoginDisabled)
}

func TestUsernameFromEmail(t *testing.T) {
	require.Equal(t, "carol.danvers", usernameFromEmail("carol.danvers@example.com"))
	require.Equal(t, "user", usernameFromEmail("not-an-email"))
	require.Equal(t, "user", usernameFromEmail("@example.com"))
}
