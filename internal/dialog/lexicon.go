package dialog

import (
	"fmt"
	"strings"
	"time"

	"hotelsLookerBot/internal/domain/models"
)

// Тексты сообщений бота. HTML-разметка рендерится транспортом.
const (
	msgStart = "привет. Я бот для поиска отеля.\n"

	msgHelp = "<b>/start</b>\t\tперезапуск бота\n" +
		"<b>/cancel</b>\t\tпрервать поиск\n" +
		"<b>/fillform</b>\tначать поиск\n" +
		"<b>/config</b>\t\tустановки\n"

	msgHelpInfo = "Введи команду <b>/fillform</b>, " +
		"потом название города или региона, где ищешь отель. " +
		"Если я найду такое место, то выбери из предложенных вариантов. Дальше уже не заблудишься."

	msgFinish = "Поиск завершен. Найди другой отель, введи команду <b>/fillform</b>."

	msgFillform = "Веди название города или региона, например:\n" +
		"<code>Manchester</code>, <code>Berlin</code>, <code>Milan</code>, <code>New York</code>"

	msgCancelHint   = "\n\n<em>Если хочешь прервать поиск - отправь команду /cancel</em>"
	msgNotInCancel  = "Ты еще не заполнял запрос. \nДля заполнения - отправь команду /fillform"
	msgInfoCancel   = "Ты вышел из заполнения запроса\nЧтобы снова перейти к заполнению запроса - отправь команду /fillform"
	msgWait         = "<em>подожди немного</em>"
	msgLookRegion   = "Ищу варианты регионов:"
	msgChoiceRegion = "Выбери из списка <b>номер</b> региона который тебе нужен:\n"

	msgWrongRegion = "не похоже на название региона.\n" +
		"Используй только буквы, дефис и пробел.\n" +
		"Пожалуйста, введи название региона, например: 'milan', 'Manchester'...  "

	msgWrongRegionIndex = "При выборе региона используй только цифры от 1 до"
	msgFinalRegion      = "Выбрано место:\n"
	msgNoFindRegion     = "Не могу найти такой регион. Попробуй еще."

	msgInputDates  = "Введи дату заезда и отъезда:\nнапример так:\n"
	msgResultDates = "выбраны даты:\n"
	msgCheckIn     = "дата заезда:"
	msgCheckOut    = "дата отъезда:"

	msgInputAdults  = "введи количество взрослых:"
	msgResultAdults = "взрослых:"

	msgWrongChildren    = "используй любой разделитель, если один ребенок 7 лет, введи: 7"
	msgBadListChildren  = "это неправильно: "
	msgLookHotels       = "ищу отели в регионе: "
	msgChoiceHotels     = "Выбери из списка <b>номер</b> отеля который тебе нужен:\n(<em>название, цена, расстояние от центра</em>)\n"
	msgSortHotels       = "сортировка:"
	msgNoFindHotels     = "Не могу найти отели по твоему запросу. Попробуй другие параметры."
	msgWrongHotelIndex  = "При выборе отеля используй его номер, цифры от 1 до"
	msgZeroHotelList    = "список отелей пуст, сортировать нечего"
	msgFinalHotel       = "Выбран отель:\n"
	msgWrongShowImage   = "Нет доступных фотографий."
	msgSwearWord        = "я тебе уже писал:\n"
	msgOtherAnswer      = "Извини, мне непонятно..."
	msgHistoryHeader    = "История запросов:\n"
	msgHistoryEmpty     = "У тебя еще нет истории."
	msgWrongHistory     = "Заверши текущий поиск отеля, потом набери команду /history"
	msgWrongShowdata    = "Ты еще не заполнял данные для запроса.\nДля заполнения - отправь команду /fillform"
	msgConfigHeader     = "Установлены параметры:\n\n"
	msgConfigImage      = "фотографий в выдаче:"
	msgConfigHotels     = "отелей в выдаче:"
	msgConfigHistory    = "результатов в истории:"
	msgConfigSetting    = "если хочешь изменить набери /customising"
	msgCustomising      = "Введи три числа через запятую или пробел:\n"
	msgWrongConstant    = "Надо ввести <b>3</b> числа,\nсколько хочешь получить результатов:\n"
	msgShowImageCommand = "Чтобы посмотреть фотографии отправь команду " +
		"<code>/showimage 3</code>, где 3 количество фотографий, " +
		"если без параметра, то увидишь все доступные."
	msgPushButton = "Лень набирать команду, нажми кнопку с нужным количеством."
)

func msgWrongDates() string {
	return fmt.Sprintf("при вводе дат что-то не то\n"+
		"нужно ввести 2 даты, заезда и отъезда\n день/месяц/год\n"+
		"используй разделители в дате: (. / -)\n"+
		"например 2-2-2023 12-02-23\n"+
		"дата заезда должна быть меньше даты отъезда максимум на %d дней:\n"+
		"попробуй еще раз: ", models.MaxDays)
}

func msgWrongAdults() string {
	return fmt.Sprintf("Пожалуйста, введи число от 1 до %d.", models.MaxAdults)
}

func msgInputChildren() string {
	return fmt.Sprintf("введи возраст детей от %d до %d лет через запятую или пробел,\n"+
		"например, с вами два ребенка 3 и 12 лет, введи: 3, 12\nесли детей нет, отправь: 0\n",
		models.MinAgeChild, models.MaxAgeChild)
}

func msgInfoConstant() string {
	return fmt.Sprintf("  фотографий от 1 до %d,\n"+
		"  отелей от 1 до %d\n"+
		"  глубину истории от 1 до %d.\n"+
		"  <em>например:</em>  <code>4, 9, 5</code> или  <code>8 10 7</code>",
		models.MaxImageSize, models.MaxResultSize, models.MaxStorySize)
}

func msgImageQuantity(n int) string {
	return fmt.Sprintf("Всего есть <b>%d</b> фотографий.", n)
}

// sampleDates строка-образец для ввода дат: текущая дата плюс неделя
// и еще четыре дня от нее
func sampleDates(now time.Time) string {
	checkIn := now.AddDate(0, 0, 7).Format("02/01/06")
	checkOut := now.AddDate(0, 0, 11).Format("02/01/06")
	return fmt.Sprintf("<code>%s %s</code>", checkIn, checkOut)
}

// makePlacesMenu текст меню с номерами найденных регионов
func makePlacesMenu(regions []models.Region) string {
	lines := make([]string, 0, len(regions))
	for i, region := range regions {
		lines = append(lines, fmt.Sprintf("<b>%d</b>.\t%s, %s",
			i+1, region.Name, models.RegionTypeNames[region.Type]))
	}
	return strings.Join(lines, "\n")
}

// makeHotelsMenu текст меню с номерами найденных отелей
func makeHotelsMenu(hotels []models.Hotel) string {
	if len(hotels) == 0 {
		return msgNoFindHotels
	}
	lines := make([]string, 0, len(hotels))
	for i, hotel := range hotels {
		lines = append(lines, fmt.Sprintf("<b>%d</b>.\t%s %.2f %s %s",
			i+1, hotel.Name, hotel.Price, strings.ToLower(hotel.Currency),
			distanceToKm(hotel.Distance, hotel.DistanceUnit)))
	}
	return strings.Join(lines, "\n")
}

// distanceToKm мили переводятся в километры, остальные единицы как есть
func distanceToKm(distance float64, unit string) string {
	const mileKm = 1.60934
	if unit == "MILE" {
		return fmt.Sprintf("%.2f km", distance*mileKm)
	}
	return fmt.Sprintf("%.2f %s", distance, strings.ToLower(unit))
}

// childrenInfo читабельная строка про детей: 'детей: 2. возраст: 3, 6 лет'
func childrenInfo(children []int) string {
	if len(children) == 0 {
		return ""
	}
	oldest := children[0]
	ages := make([]string, len(children))
	for i, age := range children {
		ages[i] = fmt.Sprintf("%d", age)
		if age > oldest {
			oldest = age
		}
	}
	suffix := "лет"
	switch {
	case len(children) == 1 && oldest == 1:
		suffix = "год"
	case oldest < 5:
		suffix = "года"
	}
	return fmt.Sprintf("детей: <b>%d</b>. возраст: <b>%s</b> %s",
		len(children), strings.Join(ages, ", "), suffix)
}
