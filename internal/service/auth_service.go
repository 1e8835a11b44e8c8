package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/repository"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("an account with this email already exists")
)

const (
	demoName     = "Demo User"
	demoEmail    = "demo@socialflow.ai"
	demoPassword = "password"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	// DemoLogin signs in the shared demo account, creating it on first use.
	DemoLogin(ctx context.Context) (*models.User, error)
}

type authService struct {
	u repository.UserRepository
}

func NewAuthService(u repository.UserRepository) AuthService {
	return &authService{u: u}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password are required")
	}

	_, exists, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		slog.Info("registration for existing email", "email", email)
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.u.Create(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, exists, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Info("failed login", "email", email)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) DemoLogin(ctx context.Context) (*models.User, error) {
	user, exists, err := s.u.GetByEmail(ctx, demoEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		return user, nil
	}
	return s.Register(ctx, demoName, demoEmail, demoPassword)
}
