package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/modavista/storefront/internal/hash"
	"github.com/modavista/storefront/internal/models"
	"github.com/modavista/storefront/internal/repo"
	"github.com/modavista/storefront/internal/tokens"
	"github.com/modavista/storefront/internal/transport"
	"github.com/modavista/storefront/internal/util"
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	if _, err := s.Repo.UserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username taken", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         "user",
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*transport.TokenPair, error) {
	user, err := s.Repo.UserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bad credentials", ErrUnauthorized)
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: bad credentials", ErrUnauthorized)
	}

	return s.issuePair(ctx, user.ID, user.Role)
}

// Refresh rotates a valid refresh token: the old one is revoked and a new
// pair is issued.
func (s *AuthService) Refresh(ctx context.Context, raw string) (*transport.TokenPair, error) {
	claims, err := tokens.Parse(raw, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return nil, fmt.Errorf("%w: not a refresh token", ErrUnauthorized)
	}

	stored, err := s.Repo.RefreshTokenByValue(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown refresh token", ErrUnauthorized)
	}
	if stored.Revoked || time.Now().Unix() > stored.ExpiresAt {
		return nil, fmt.Errorf("%w: refresh token expired or revoked", ErrUnauthorized)
	}

	userID, err := tokens.UserID(claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	if err := s.Repo.RevokeRefreshToken(ctx, raw); err != nil {
		return nil, err
	}

	return s.issuePair(ctx, userID, tokens.Role(claims))
}

func (s *AuthService) Logout(ctx context.Context, raw string) error {
	return s.Repo.RevokeRefreshToken(ctx, raw)
}

func (s *AuthService) issuePair(ctx context.Context, userID uint, role string) (*transport.TokenPair, error) {
	access, err := tokens.SignAccessToken(userID, role, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	refresh, err := tokens.SignRefreshToken(userID, role, s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SaveRefreshToken(ctx, &models.RefreshToken{
		Token:     refresh,
		UserID:    userID,
		ExpiresAt: time.Now().Add(tokens.RefreshTTL).Unix(),
	}); err != nil {
		return nil, err
	}

	return &transport.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) ListUsers(ctx context.Context, page int) (int64, []models.User, error) {
	offset, limit := util.Calculate(page, util.DefaultPageSize)
	return s.Repo.ListUsers(ctx, offset, limit)
}

func (s *AuthService) SetUserRole(ctx context.Context, id uint, role string) error {
	if role != "user" && role != "admin" {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	return s.Repo.SetUserRole(ctx, id, role)
}
