package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"unitly-be/internal/entities"
	"unitly-be/internal/jwt"
	"unitly-be/internal/models"
	"unitly-be/internal/repository"
	"unitly-be/internal/schema"
)

var (
	ErrUserExists         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Me(ctx context.Context, userID string) (*entities.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
	validator  *schema.Validator
	hashCost   int
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		validator:  schema.New(),
		hashCost:   bcrypt.DefaultCost,
	}
}

// Register creates a new user account and logs it in
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := s.userRepo.Create(ctx, email, string(hashedPassword), req.Name)
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	auth, err := s.issue(account)
	if err != nil {
		return nil, err
	}

	log.WithField("user_id", account.ID).Info("user registered")
	return &models.RegisterResponse{
		Message: "User registered successfully",
		Auth:    *auth,
	}, nil
}

// Login authenticates a user and returns user info with JWT token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	account, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(account)
}

// Me returns the public profile of the authenticated user. Rows that no
// longer satisfy the user schema are reported instead of served.
func (s *authService) Me(ctx context.Context, userID string) (*entities.User, error) {
	account, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user := account.User()
	if err := s.validator.Check(schema.EntityUser, user); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("stored user failed validation")
		return nil, fmt.Errorf("stored user %s: %w", userID, err)
	}
	return user, nil
}

func (s *authService) issue(account *entities.Account) (*models.AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{
		User:  account.User(),
		Token: token,
	}, nil
}
