package models

import "time"

// UserConfig персональные настройки пользователя. Создаются с дефолтами
// при первом обращении, меняются только через диалог /customising.
type UserConfig struct {
	UserID       int64     `json:"user_id"`
	ImageLimit   int       `json:"image_limit"`
	ResultLimit  int       `json:"result_limit"`
	HistoryLimit int       `json:"history_limit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// LastQuery снимок последнего завершенного поиска, только в памяти
	LastQuery *CompletedSearch `json:"-"`
}

// NewUserConfig создает конфигурацию с значениями по умолчанию
func NewUserConfig(userID int64) *UserConfig {
	now := time.Now()
	return &UserConfig{
		UserID:       userID,
		ImageLimit:   DefaultImageLimit,
		ResultLimit:  DefaultResultLimit,
		HistoryLimit: DefaultHistoryLimit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Clamp ограничивает персональные значения глобальными максимумами
func (c *UserConfig) Clamp() {
	if c.ImageLimit < 1 || c.ImageLimit > MaxImageSize {
		c.ImageLimit = MaxImageSize
	}
	if c.ResultLimit < 1 || c.ResultLimit > MaxResultSize {
		c.ResultLimit = MaxResultSize
	}
	if c.HistoryLimit < 1 || c.HistoryLimit > MaxStorySize {
		c.HistoryLimit = MaxStorySize
	}
}
