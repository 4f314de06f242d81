package repository

import (
	"context"

	"hotelsLookerBot/internal/domain/models"
)

// Store интерфейс долговременного хранилища конфигураций и истории поисков
type Store interface {
	// GetConfig возвращает конфигурацию пользователя, nil если ее еще нет
	GetConfig(ctx context.Context, userID int64) (*models.UserConfig, error)
	SaveConfig(ctx context.Context, cfg *models.UserConfig) error
	UpdateConfig(ctx context.Context, cfg *models.UserConfig) error

	// AppendHistory добавляет запись истории, записи не изменяются
	AppendHistory(ctx context.Context, rec *models.HistoryRecord) error
	// History возвращает записи пользователя, свежие первыми
	History(ctx context.Context, userID int64, limit int) ([]models.HistoryRecord, error)
}
