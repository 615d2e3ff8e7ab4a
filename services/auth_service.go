package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Lari-oliv/olive-beauty/models"
	"github.com/Lari-oliv/olive-beauty/repository"
)

type AuthService struct {
	users  repository.UserRepository
	tokens *TokenService
	log    *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens *TokenService, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a customer account and signs it in.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, *ServiceError) {
	email := normalizeEmail(req.Email)

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, conflict("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(s.log, "auth.find_user", err)
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, storeError(s.log, "auth.hash_password", err)
	}

	user := &models.User{
		Email:    email,
		Name:     strings.TrimSpace(req.Name),
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("email already registered")
		}
		return nil, storeError(s.log, "auth.create_user", err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

// Login verifies credentials. Unknown email and wrong password look the same.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unauthorized("invalid email or password")
		}
		return nil, storeError(s.log, "auth.find_user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, unauthorized("invalid email or password")
	}
	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, *ServiceError) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fromStore(s.log, "auth.me", err, "user not found")
	}
	return user, nil
}

// CreateAdmin inserts an admin or promotes and resets the existing account
// with the same email.
func (s *AuthService) CreateAdmin(ctx context.Context, name, email, password string) (*models.User, error) {
	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:    normalizeEmail(email),
		Name:     strings.TrimSpace(name),
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*models.AuthResponse, *ServiceError) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, storeError(s.log, "auth.sign_token", err)
	}
	return &models.AuthResponse{
		Token:     token,
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
		User:      user,
	}, nil
}
