package models

import "time"

// DialogState представляет возможные состояния диалога заполнения запроса
type DialogState string

const (
	StateIdle                DialogState = "idle"
	StateAwaitingRegionName  DialogState = "awaiting_region_name"
	StateAwaitingRegionIndex DialogState = "awaiting_region_index"
	StateAwaitingDates       DialogState = "awaiting_dates"
	StateAwaitingAdults      DialogState = "awaiting_adults"
	StateAwaitingChildren    DialogState = "awaiting_children"
	StateAwaitingHotelIndex  DialogState = "awaiting_hotel_index"
	StateAwaitingConfig      DialogState = "awaiting_config"
)

// MessageRef ссылка на отправленное сообщение в чате
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// SearchForm данные диалога одного пользователя. Поля заполняются строго
// по шагам: поле шага N+1 записывается только после фиксации шага N.
// Очищается целиком по /cancel и по завершению поиска.
type SearchForm struct {
	State DialogState

	RegionName       string
	RegionCandidates []Region
	Region           *Region

	CheckIn  time.Time
	CheckOut time.Time

	Adults   int
	Children []int

	HotelCandidates []Hotel
	SortMethod      string
	Hotel           *Hotel
	Summary         *HotelSummary

	// MenuMsg текущее сообщение-приглашение/меню, заменяется при переходе.
	// WarningMsg единственное видимое предупреждение, новое заменяет старое.
	MenuMsg    *MessageRef
	WarningMsg *MessageRef
}

// Clear сбрасывает форму в исходное состояние
func (f *SearchForm) Clear() {
	*f = SearchForm{State: StateIdle}
}

// Nights количество ночей между датами заезда и отъезда
func (f *SearchForm) Nights() int {
	return int(f.CheckOut.Sub(f.CheckIn).Hours()/24) + 1
}

// CompletedSearch итоговый снимок завершенного поиска. Сохраняется в
// историю и в конфигурацию пользователя для быстрого показа по /showdata.
type CompletedSearch struct {
	Region   Region        `json:"region"`
	CheckIn  time.Time     `json:"check_in"`
	CheckOut time.Time     `json:"check_out"`
	Adults   int           `json:"adults"`
	Children []int         `json:"children"`
	Hotel    Hotel         `json:"hotel"`
	Summary  *HotelSummary `json:"summary,omitempty"`
}

// Nights количество ночей сохраненного поиска
func (c *CompletedSearch) Nights() int {
	return int(c.CheckOut.Sub(c.CheckIn).Hours()/24) + 1
}
