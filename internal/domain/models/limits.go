package models

// Глобальные ограничения поиска. Персональные настройки пользователя
// не могут превышать соответствующие максимумы.
const (
	MaxAdults   = 4  // максимальное число взрослых путешественников
	MaxChildren = 4  // максимальное число детей
	MaxDays     = 30 // максимальное количество запрашиваемых дней проживания
	MinAgeChild = 1  // минимальный возраст детей
	MaxAgeChild = 10 // максимальный возраст детей (не включительно)

	MaxImageSize  = 10 // максимум фотографий отеля в выдаче
	MaxResultSize = 10 // максимум отелей в выдаче
	MaxStorySize  = 10 // максимум записей в выдаче истории запросов
)

// Значения по умолчанию для нового пользователя.
const (
	DefaultImageLimit   = 7
	DefaultResultLimit  = 10
	DefaultHistoryLimit = 9
)
