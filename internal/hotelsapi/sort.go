package hotelsapi

import (
	"sort"

	"hotelsLookerBot/internal/domain/models"
)

// SortHotels сортирует список отелей на месте по возрастанию ключа:
// lowprice - цена, highprice - цена с обратным знаком, bestdeal - показатель
// "лучшая сделка", любой другой метод - пара (цена, расстояние).
// Сортировка стабильная, показатель "лучшая сделка" не пересчитывается.
func SortHotels(hotels []models.Hotel, method string) {
	var less func(a, b models.Hotel) bool

	switch method {
	case models.SortLowPrice:
		less = func(a, b models.Hotel) bool { return a.Price < b.Price }
	case models.SortHighPrice:
		less = func(a, b models.Hotel) bool { return a.Price > b.Price }
	case models.SortBestDeal:
		less = func(a, b models.Hotel) bool { return a.BestDealScore < b.BestDealScore }
	default:
		less = func(a, b models.Hotel) bool {
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			return a.Distance < b.Distance
		}
	}

	sort.SliceStable(hotels, func(i, j int) bool { return less(hotels[i], hotels[j]) })
}
