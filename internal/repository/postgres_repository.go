package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hotelsLookerBot/internal/domain/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetConfig получает конфигурацию пользователя по user_id
func (r *PostgresRepository) GetConfig(ctx context.Context, userID int64) (*models.UserConfig, error) {
	query := `
		SELECT user_id, image_limit, result_limit, history_limit, created_at, updated_at
		FROM user_configs WHERE user_id = $1
	`

	var cfg models.UserConfig
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&cfg.UserID,
		&cfg.ImageLimit,
		&cfg.ResultLimit,
		&cfg.HistoryLimit,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig создает конфигурацию пользователя
func (r *PostgresRepository) SaveConfig(ctx context.Context, cfg *models.UserConfig) error {
	query := `
		INSERT INTO user_configs (user_id, image_limit, result_limit, history_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`

	_, err := r.db.Exec(ctx, query, cfg.UserID, cfg.ImageLimit, cfg.ResultLimit, cfg.HistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}

// UpdateConfig обновляет лимиты в конфигурации пользователя
func (r *PostgresRepository) UpdateConfig(ctx context.Context, cfg *models.UserConfig) error {
	query := `
		UPDATE user_configs
		SET image_limit = $1, result_limit = $2, history_limit = $3, updated_at = NOW()
		WHERE user_id = $4
	`

	_, err := r.db.Exec(ctx, query, cfg.ImageLimit, cfg.ResultLimit, cfg.HistoryLimit, cfg.UserID)
	if err != nil {
		return fmt.Errorf("failed to update user config: %w", err)
	}

	return nil
}

// AppendHistory добавляет запись в историю поисков
func (r *PostgresRepository) AppendHistory(ctx context.Context, rec *models.HistoryRecord) error {
	snapshot, err := json.Marshal(rec.Snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO search_history (id, user_id, created_at, display_name, chat_id, snapshot)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.db.Exec(ctx, query, rec.ID, rec.UserID, rec.CreatedAt, rec.DisplayName, rec.ChatID, snapshot)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}

	return nil
}

// History возвращает записи истории пользователя, свежие первыми
func (r *PostgresRepository) History(ctx context.Context, userID int64, limit int) ([]models.HistoryRecord, error) {
	query := `
		SELECT id, user_id, created_at, display_name, chat_id, snapshot
		FROM search_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var records []models.HistoryRecord
	for rows.Next() {
		var rec models.HistoryRecord
		var snapshot []byte
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.CreatedAt, &rec.DisplayName, &rec.ChatID, &snapshot); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if err := json.Unmarshal(snapshot, &rec.Snapshot); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	return records, nil
}
