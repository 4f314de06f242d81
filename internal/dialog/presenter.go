package dialog

import (
	"fmt"
	"strings"

	"hotelsLookerBot/internal/domain/models"
)

const dateLayout = "02.01.2006"

// renderConfig текст с текущими лимитами пользователя
func renderConfig(cfg *models.UserConfig) string {
	var b strings.Builder
	b.WriteString(msgConfigHeader)
	fmt.Fprintf(&b, "%s <b>%d</b>\n", msgConfigImage, cfg.ImageLimit)
	fmt.Fprintf(&b, "%s <b>%d</b>\n", msgConfigHotels, cfg.ResultLimit)
	fmt.Fprintf(&b, "%s <b>%d</b>\n\n", msgConfigHistory, cfg.HistoryLimit)
	b.WriteString(msgConfigSetting)
	return b.String()
}

// renderLastQuery карточка завершенного поиска для /showdata
func renderLastQuery(q *models.CompletedSearch) string {
	var b strings.Builder

	b.WriteString(msgFinalRegion)
	fmt.Fprintf(&b, "<b>%s</b>, %s, %s\n\n",
		q.Region.Name, models.RegionTypeNames[q.Region.Type], q.Region.CountryName)

	fmt.Fprintf(&b, "%s <b>%s</b>\n", msgCheckIn, q.CheckIn.Format(dateLayout))
	fmt.Fprintf(&b, "%s <b>%s</b>\n", msgCheckOut, q.CheckOut.Format(dateLayout))
	nights := q.Nights()
	fmt.Fprintf(&b, "ночей: <b>%d</b>\n", nights)
	fmt.Fprintf(&b, "%s <b>%d</b>\n", msgResultAdults, q.Adults)
	if info := childrenInfo(q.Children); info != "" {
		b.WriteString(info)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(msgFinalHotel)
	fmt.Fprintf(&b, "<b>%s</b>\n", q.Hotel.Name)
	if q.Summary != nil {
		if q.Summary.Address != "" {
			fmt.Fprintf(&b, "адрес: %s\n", q.Summary.Address)
		}
		if q.Summary.Stars != nil {
			fmt.Fprintf(&b, "звезд: %.1f\n", *q.Summary.Stars)
		}
	}
	currency := strings.ToLower(q.Hotel.Currency)
	fmt.Fprintf(&b, "расстояние от центра: %s\n",
		distanceToKm(q.Hotel.Distance, q.Hotel.DistanceUnit))
	fmt.Fprintf(&b, "цена за ночь: <b>%.2f</b> %s\n", q.Hotel.Price, currency)
	fmt.Fprintf(&b, "за %d ночей: <b>%.2f</b> %s\n",
		nights, q.Hotel.Price*float64(nights), currency)

	return b.String()
}

// renderHistory строки истории поисков, свежие первыми
func renderHistory(records []models.HistoryRecord) string {
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		q := rec.Snapshot
		lines = append(lines, fmt.Sprintf("<b>%s</b>\t%s, %s - %s, %s %.2f %s",
			rec.CreatedAt.Format("02.01.2006 15:04"),
			q.Region.Name,
			q.CheckIn.Format(dateLayout),
			q.CheckOut.Format(dateLayout),
			q.Hotel.Name,
			q.Hotel.Price,
			strings.ToLower(q.Hotel.Currency)))
	}
	return strings.Join(lines, "\n")
}

// photoCounts варианты количества фотографий для кнопок:
// до трех фотографий - одна кнопка, иначе все, половина и четверть
func photoCounts(n int) []int {
	if n < 1 {
		return nil
	}
	if n <= 3 {
		return []int{n}
	}
	counts := []int{n, n - n/2}
	if quarter := n/2 - 1; quarter > 0 && quarter != counts[1] {
		counts = append(counts, quarter)
	}
	return counts
}
