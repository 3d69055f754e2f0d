package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spaceexplorer/internal/models"
	"spaceexplorer/internal/repository"
)

// AuthService — регистрация и сессии. Токен сессии живет в Redis
// под ключом session:<token> со своим TTL.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
	UserFromToken(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	cacheRepo  repository.CacheRepository
	sessionTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	sessionTTL time.Duration,
) AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &authService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		sessionTTL: sessionTTL,
	}
}

func (s *authService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("query user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("query user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	key := sessionKey(token)
	if err := s.cacheRepo.Set(ctx, key, strconv.FormatUint(uint64(user.ID), 10), s.sessionTTL); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.cacheRepo.Delete(ctx, sessionKey(token))
}

func (s *authService) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	val, err := s.cacheRepo.Get(ctx, sessionKey(token))
	if err != nil {
		if errors.Is(err, repository.ErrCacheMiss) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return user, nil
}

func sessionKey(token string) string {
	return "session:" + token
}
