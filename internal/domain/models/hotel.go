package models

// Hotel представляет отель из списка предложений по региону.
// BestDealScore вычисляется один раз при получении списка:
// |цена - мин.цена| + |расстояние - мин.расстояние| по всему списку.
// Последующие пересортировки его не меняют.
type Hotel struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	Distance      float64 `json:"dist"`
	DistanceUnit  string  `json:"unit"`
	ImageURL      string  `json:"image"`
	BestDealScore float64 `json:"bestdeal"`
}

// HotelSummary подробная информация о выбранном отеле
type HotelSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	CountryCode string   `json:"country"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Stars       *float64 `json:"stars,omitempty"`
	ImageURLs   []string `json:"image_urls"`
	MapImageURL string   `json:"map_url,omitempty"`
}

// Методы сортировки списка отелей
const (
	SortLowPrice  = "lowprice"
	SortHighPrice = "highprice"
	SortBestDeal  = "bestdeal"
)

// SortMethods порядок кнопок сортировки в меню
var SortMethods = []string{SortLowPrice, SortHighPrice, SortBestDeal}
