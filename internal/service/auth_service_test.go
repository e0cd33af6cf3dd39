package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"unitly-be/internal/entities"
	"unitly-be/internal/jwt"
	"unitly-be/internal/models"
	"unitly-be/internal/schema"
)

func newTestAuthService() (AuthService, *jwt.JWTService) {
	jwtService := jwt.NewJWTService("secret", time.Hour)
	svc := NewAuthService(newFakeUserRepo(), jwtService).(*authService)
	svc.hashCost = bcrypt.MinCost
	return svc, jwtService
}

func TestRegisterAndLogin(t *testing.T) {
	svc, jwtService := newTestAuthService()
	ctx := context.Background()
	name := "Ada"

	resp, err := svc.Register(ctx, &models.RegisterRequest{Email: " Ada@Example.com ", Password: "secret1", Name: &name})
	require.NoError(t, err)
	require.NotNil(t, resp.Auth.User.Email)
	assert.Equal(t, "ada@example.com", *resp.Auth.User.Email)

	claims, err := jwtService.ValidateToken(resp.Auth.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Auth.User.ID, claims.UserID)

	login, err := svc.Login(ctx, &models.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, resp.Auth.User.ID, login.User.ID)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "bob@example.com", Password: "secret1"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()
	req := &models.RegisterRequest{Email: "ada@example.com", Password: "secret1"}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)
	_, err = svc.Register(ctx, req)
	assert.True(t, errors.Is(err, ErrUserExists))
}

func TestMeReturnsSchemaValidUser(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, &models.RegisterRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	user, err := svc.Me(ctx, resp.Auth.User.ID)
	require.NoError(t, err)
	assert.Nil(t, user.Name)
	assert.NoError(t, schema.New().Check(schema.EntityUser, user))

	_, err = svc.Me(ctx, "3f2b8c1e-9a4d-4e6f-8b7a-1c2d3e4f5a6b")
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestMeRejectsInvalidStoredUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, jwt.NewJWTService("secret", time.Hour))

	repo.accounts["legacy-1"] = &entities.Account{
		ID:        "legacy-1",
		Email:     "not-an-email",
		CreatedAt: fixedAt,
		UpdatedAt: fixedAt,
	}

	user, err := svc.Me(context.Background(), "legacy-1")
	assert.Nil(t, user)
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrValidation))
	assert.False(t, errors.Is(err, ErrUserNotFound))

	var verr *schema.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 2)
	assert.Equal(t, []string{"id", "email"}, []string{verr.Fields[0].Field, verr.Fields[1].Field})
}
