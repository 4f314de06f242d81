// Package session хранит оперативные данные диалогов: формы запросов
// и конфигурации пользователей с ленивой загрузкой из хранилища.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hotelsLookerBot/internal/domain/models"
	"hotelsLookerBot/internal/repository"
	"hotelsLookerBot/pkg/logger/sl"

	"github.com/google/uuid"
)

// Store единственное разделяемое изменяемое состояние бота. Карты защищены
// RWMutex, а сообщения одного пользователя сериализуются отдельным
// пользовательским мьютексом: не больше одного перехода диалога за раз.
type Store struct {
	log  *slog.Logger
	repo repository.Store

	mu      sync.RWMutex
	configs map[int64]*models.UserConfig
	forms   map[int64]*models.SearchForm
	locks   map[int64]*sync.Mutex
}

func NewStore(log *slog.Logger, repo repository.Store) *Store {
	return &Store{
		log:     log,
		repo:    repo,
		configs: make(map[int64]*models.UserConfig),
		forms:   make(map[int64]*models.SearchForm),
		locks:   make(map[int64]*sync.Mutex),
	}
}

// UserLock возвращает мьютекс сериализации сообщений одного пользователя
func (s *Store) UserLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// Config возвращает конфигурацию пользователя. При первом обращении она
// читается из хранилища, для нового пользователя создается с дефолтами
// и сохраняется. Ошибка хранилища не мешает работе: используются дефолты
// в памяти до конца сессии.
func (s *Store) Config(ctx context.Context, userID int64) *models.UserConfig {
	const op = "session.Config"

	s.mu.RLock()
	cfg, ok := s.configs[userID]
	s.mu.RUnlock()
	if ok {
		return cfg
	}

	log := s.log.With(slog.String("op", op), slog.Int64("user_id", userID))

	cfg, err := s.repo.GetConfig(ctx, userID)
	if err != nil {
		log.Error("не удалось прочитать конфигурацию, используются дефолты", sl.Err(err))
		cfg = models.NewUserConfig(userID)
	} else if cfg == nil {
		cfg = models.NewUserConfig(userID)
		if err := s.repo.SaveConfig(ctx, cfg); err != nil {
			log.Error("не удалось сохранить конфигурацию нового пользователя", sl.Err(err))
		}
	}
	cfg.Clamp()

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.configs[userID]; ok {
		return existing
	}
	s.configs[userID] = cfg
	return cfg
}

// UpdateConfig меняет персональные лимиты пользователя. Значения в памяти
// обновляются всегда, ошибка записи в хранилище только логируется.
func (s *Store) UpdateConfig(ctx context.Context, userID int64, imageLimit, resultLimit, historyLimit int) *models.UserConfig {
	const op = "session.UpdateConfig"

	cfg := s.Config(ctx, userID)

	s.mu.Lock()
	cfg.ImageLimit = imageLimit
	cfg.ResultLimit = resultLimit
	cfg.HistoryLimit = historyLimit
	cfg.UpdatedAt = time.Now()
	cfg.Clamp()
	s.mu.Unlock()

	if err := s.repo.UpdateConfig(ctx, cfg); err != nil {
		s.log.Error("не удалось записать конфигурацию",
			slog.String("op", op), slog.Int64("user_id", userID), sl.Err(err))
	}
	return cfg
}

// Form возвращает изменяемую форму диалога пользователя,
// создавая пустую при первом обращении
func (s *Store) Form(userID int64) *models.SearchForm {
	s.mu.Lock()
	defer s.mu.Unlock()

	form, ok := s.forms[userID]
	if !ok {
		form = &models.SearchForm{State: models.StateIdle}
		s.forms[userID] = form
	}
	return form
}

// CommitHistory сохраняет итоговый снимок завершенного поиска в историю
// и в конфигурацию пользователя для быстрого показа по /showdata
func (s *Store) CommitHistory(ctx context.Context, userID int64, displayName string, chatID int64, snap *models.CompletedSearch) error {
	const op = "session.CommitHistory"

	cfg := s.Config(ctx, userID)
	s.mu.Lock()
	cfg.LastQuery = snap
	s.mu.Unlock()

	rec := &models.HistoryRecord{
		ID:          uuid.New(),
		UserID:      userID,
		CreatedAt:   time.Now(),
		DisplayName: displayName,
		ChatID:      chatID,
		Snapshot:    *snap,
	}
	if err := s.repo.AppendHistory(ctx, rec); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// History возвращает записи истории пользователя, свежие первыми
func (s *Store) History(ctx context.Context, userID int64, limit int) ([]models.HistoryRecord, error) {
	const op = "session.History"

	records, err := s.repo.History(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return records, nil
}
