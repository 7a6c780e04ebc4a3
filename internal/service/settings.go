package service

import (
	"context"
	"fmt"

	"github.com/modavista/storefront/internal/models"
	"github.com/modavista/storefront/internal/repo"
)

type SettingsService struct {
	Repo *repo.GormRepo
}

func (s *SettingsService) Get(ctx context.Context, key string) (*models.Setting, error) {
	return s.Repo.GetSetting(ctx, key)
}

func (s *SettingsService) Put(ctx context.Context, key, value string) (*models.Setting, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: key required", ErrValidation)
	}
	setting := &models.Setting{Key: key, Value: value}
	if err := s.Repo.PutSetting(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingsService) List(ctx context.Context) ([]models.Setting, error) {
	return s.Repo.ListSettings(ctx)
}
