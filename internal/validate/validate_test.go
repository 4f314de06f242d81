package validate

import (
	"testing"
	"time"
)

func TestRegionName(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		valid bool
	}{
		{"Manchester", "manchester", true},
		{"  New   York ", "new york", true},
		{"Нижний Новгород", "нижний новгород", true},
		{"Ростов-на-Дону", "ростов-на-дону", true},
		{"", "", false},
		{"   ", "", false},
		{"Paris75", "", false},
		{"city!", "", false},
	}
	for _, tc := range cases {
		got, ok := RegionName(tc.in)
		if ok != tc.valid || got != tc.want {
			t.Errorf("RegionName(%q) = (%q, %v), ожидалось (%q, %v)", tc.in, got, ok, tc.want, tc.valid)
		}
	}
}

func TestIndex(t *testing.T) {
	cases := []struct {
		in    string
		upper int
		want  int
		valid bool
	}{
		{"1", 5, 1, true},
		{"5", 5, 5, true},
		{"6", 5, 0, false},
		{"0", 5, 0, false},
		{"-1", 5, 0, false},
		{"two", 5, 0, false},
		{"", 5, 0, false},
		{" 3 ", 5, 3, true},
	}
	for _, tc := range cases {
		got, ok := Index(tc.in, tc.upper)
		if ok != tc.valid || got != tc.want {
			t.Errorf("Index(%q, %d) = (%d, %v), ожидалось (%d, %v)", tc.in, tc.upper, got, ok, tc.want, tc.valid)
		}
		// значение никогда не выходит за [1, upper]
		if ok && (got < 1 || got > tc.upper) {
			t.Errorf("Index(%q, %d) вернул значение вне диапазона: %d", tc.in, tc.upper, got)
		}
	}
}

func TestDatePair(t *testing.T) {
	in, out, ok := DatePair("02/02/2023 05/02/2023")
	if !ok {
		t.Fatal("корректная пара дат не распозналась")
	}
	if got := Nights(in, out); got != 4 {
		t.Errorf("ночей = %d, ожидалось 4", got)
	}
	if in.Day() != 2 || out.Day() != 5 || in.Month() != time.February {
		t.Errorf("даты разобраны неверно: %v %v", in, out)
	}
}

func TestDatePairSeparatorsAndShortYear(t *testing.T) {
	in, out, ok := DatePair("2-2-23 12.02.23")
	if !ok {
		t.Fatal("даты с разными разделителями не распознались")
	}
	if in.Year() != 2023 || out.Year() != 2023 {
		t.Errorf("двузначный год должен стать 20xx: %v %v", in, out)
	}
	if in.Day() != 2 || out.Day() != 12 {
		t.Errorf("даты разобраны неверно: %v %v", in, out)
	}
}

func TestDatePairInvalid(t *testing.T) {
	cases := []string{
		"05/02/2023 02/02/2023", // отъезд раньше заезда
		"02/02/2023",            // только одна дата
		"просто текст",
		"01/01/2023 05/03/2023", // больше MaxDays ночей
		"31/04/2023 02/05/2023", // несуществующий день
	}
	for _, tc := range cases {
		if _, _, ok := DatePair(tc); ok {
			t.Errorf("DatePair(%q) не должен быть валидным", tc)
		}
	}
}

func TestDatePairSameDay(t *testing.T) {
	// одинаковые даты - одна ночь, валидно
	in, out, ok := DatePair("02/02/2023 02/02/2023")
	if !ok {
		t.Fatal("пара одинаковых дат должна быть валидной")
	}
	if got := Nights(in, out); got != 1 {
		t.Errorf("ночей = %d, ожидалось 1", got)
	}
}

func TestAdults(t *testing.T) {
	if n, ok := Adults("2"); !ok || n != 2 {
		t.Errorf("Adults(\"2\") = (%d, %v)", n, ok)
	}
	for _, tc := range []string{"0", "5", "abc", ""} {
		if _, ok := Adults(tc); ok {
			t.Errorf("Adults(%q) не должен быть валидным", tc)
		}
	}
}

func TestChildrenAges(t *testing.T) {
	// только нули - детей нет
	ok, ages := ChildrenAges("0")
	if !ok || len(ages) != 0 {
		t.Errorf("ChildrenAges(\"0\") = (%v, %v), ожидалось (true, [])", ok, ages)
	}

	ok, ages = ChildrenAges("0 0 0")
	if !ok || len(ages) != 0 {
		t.Errorf("ChildrenAges(\"0 0 0\") = (%v, %v), ожидалось (true, [])", ok, ages)
	}

	// корректные возраста
	ok, ages = ChildrenAges("3, 7")
	if !ok || len(ages) != 2 || ages[0] != 3 || ages[1] != 7 {
		t.Errorf("ChildrenAges(\"3, 7\") = (%v, %v)", ok, ages)
	}

	// возраст вне диапазона возвращается для показа пользователю
	ok, ages = ChildrenAges("3,12")
	if ok || len(ages) != 1 || ages[0] != 12 {
		t.Errorf("ChildrenAges(\"3,12\") = (%v, %v), ожидалось (false, [12])", ok, ages)
	}

	// без цифр - невалидно
	if ok, _ := ChildrenAges("нет"); ok {
		t.Error("ChildrenAges без цифр не должен быть валидным")
	}

	// больше MaxChildren разных возрастов - лишние считаются недопустимыми
	ok, ages = ChildrenAges("1 2 3 4 5")
	if ok || len(ages) != 1 || ages[0] != 5 {
		t.Errorf("ChildrenAges(\"1 2 3 4 5\") = (%v, %v), ожидалось (false, [5])", ok, ages)
	}
}

func TestConfigTriple(t *testing.T) {
	img, res, story, ok := ConfigTriple("4, 9, 5")
	if !ok || img != 4 || res != 9 || story != 5 {
		t.Errorf("ConfigTriple(\"4, 9, 5\") = (%d, %d, %d, %v)", img, res, story, ok)
	}

	if _, _, _, ok := ConfigTriple("4 9"); ok {
		t.Error("двух чисел недостаточно")
	}
	if _, _, _, ok := ConfigTriple("11 9 5"); ok {
		t.Error("лимит фотографий больше максимума должен отклоняться")
	}
	if _, _, _, ok := ConfigTriple("0 9 5"); ok {
		t.Error("нулевой лимит должен отклоняться")
	}
}
