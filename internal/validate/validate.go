// Package validate содержит чистые функции разбора пользовательского ввода
// в типизированные значения шагов диалога.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"hotelsLookerBot/internal/domain/models"
)

var (
	reRegionName = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё— -]+$`)
	reDigits     = regexp.MustCompile(`\d+`)
	reDate       = regexp.MustCompile(`(?:[0-9]{1,2}[-/.]){2}[0-9]{2,4}`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// RegionName проверяет введенное название региона: после чистки строка
// должна состоять только из букв (включая кириллицу), дефиса и пробела.
// Возвращает нормализованное название и признак валидности.
func RegionName(text string) (string, bool) {
	name := strings.ToLower(reSpaces.ReplaceAllString(strings.TrimSpace(text), " "))
	if name == "" || !reRegionName.MatchString(name) {
		return "", false
	}
	return name, true
}

// Index разбирает номер пункта меню, допустимы только цифры
// и значение в диапазоне [1, upper].
func Index(text string, upper int) (int, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > upper {
		return 0, false
	}
	return n, true
}

// parseDayFirst разбирает подстроку похожую на дату в порядке
// день/месяц/год. Двузначный год считается годом 20xx.
func parseDayFirst(s string) (time.Time, bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '/' || r == '.'
	})
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date нормализует переполнение (31.04 -> 01.05), такие даты отбрасываем
	if d.Day() != day || d.Month() != time.Month(month) || d.Year() != year {
		return time.Time{}, false
	}
	return d, true
}

// DatePair выделяет из текста подстроки похожие на даты и разбирает их
// в даты заезда и отъезда. Валидно, если распозналось минимум две даты,
// заезд не позже отъезда и количество ночей в пределах [1, MaxDays].
func DatePair(text string) (checkIn, checkOut time.Time, ok bool) {
	var dates []time.Time
	for _, raw := range reDate.FindAllString(text, -1) {
		if d, valid := parseDayFirst(raw); valid {
			dates = append(dates, d)
		}
	}
	if len(dates) < 2 {
		return time.Time{}, time.Time{}, false
	}
	checkIn, checkOut = dates[0], dates[1]
	nights := Nights(checkIn, checkOut)
	if checkIn.After(checkOut) || nights < 1 || nights > models.MaxDays {
		return time.Time{}, time.Time{}, false
	}
	return checkIn, checkOut, true
}

// Nights количество ночей между датами: разница в днях плюс один
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours()/24) + 1
}

// Adults разбирает количество взрослых: только цифры, в (0, MaxAdults]
func Adults(text string) (int, bool) {
	return Index(text, models.MaxAdults)
}

// ChildrenAges выделяет из текста все группы цифр как возраста детей.
// Ввод состоящий только из нулей означает "детей нет": (true, пустой список).
// Иначе каждый возраст должен попасть в [MinAgeChild, MaxAgeChild),
// список ограничен MaxChildren. Если есть недопустимые возраста,
// возвращается (false, список недопустимых) для показа пользователю.
func ChildrenAges(text string) (bool, []int) {
	var ages []int
	for _, raw := range reDigits.FindAllString(text, -1) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		ages = append(ages, n)
	}
	if len(ages) == 0 {
		return false, nil
	}

	onlyZeros := true
	for _, a := range ages {
		if a != 0 {
			onlyZeros = false
			break
		}
	}
	if onlyZeros {
		return true, nil
	}

	valid := make([]int, 0, models.MaxChildren)
	for _, a := range ages {
		if a >= models.MinAgeChild && a < models.MaxAgeChild && len(valid) < models.MaxChildren {
			valid = append(valid, a)
		}
	}

	var broken []int
	for _, a := range ages {
		if !containsInt(valid, a) {
			broken = append(broken, a)
		}
	}
	if len(broken) > 0 {
		return false, broken
	}
	return true, valid
}

// ConfigTriple разбирает строку настроек: три числа через любой
// разделитель - лимит фотографий, отелей в выдаче и глубины истории.
func ConfigTriple(text string) (imageLimit, resultLimit, historyLimit int, ok bool) {
	raw := reDigits.FindAllString(text, -1)
	if len(raw) < 3 {
		return 0, 0, 0, false
	}
	var nums [3]int
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(raw[i])
		if err != nil {
			return 0, 0, 0, false
		}
		nums[i] = n
	}
	if nums[0] < 1 || nums[0] > models.MaxImageSize ||
		nums[1] < 1 || nums[1] > models.MaxResultSize ||
		nums[2] < 1 || nums[2] > models.MaxStorySize {
		return 0, 0, 0, false
	}
	return nums[0], nums[1], nums[2], true
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
