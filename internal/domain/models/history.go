package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryRecord запись истории поисков. Создается ровно один раз при
// завершении диалога и дальше не изменяется.
type HistoryRecord struct {
	ID          uuid.UUID       `json:"id"`
	UserID      int64           `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
	DisplayName string          `json:"display_name"`
	ChatID      int64           `json:"chat_id"`
	Snapshot    CompletedSearch `json:"snapshot"`
}
