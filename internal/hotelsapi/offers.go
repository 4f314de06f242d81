package hotelsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hotelsLookerBot/internal/domain/models"
)

// OfferParams параметры поиска отелей в регионе
type OfferParams struct {
	RegionID    string
	CheckIn     time.Time
	CheckOut    time.Time
	Adults      int
	Children    []int
	ResultLimit int
	SortMethod  string
}

type ymd struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

func toYMD(t time.Time) ymd {
	return ymd{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

type childAge struct {
	Age int `json:"age"`
}

type offerRoom struct {
	Adults   int        `json:"adults"`
	Children []childAge `json:"children"`
}

// offerRequest тело запроса properties/v2/list
type offerRequest struct {
	Destination          struct{ RegionID string `json:"regionId"` } `json:"destination"`
	CheckInDate          ymd         `json:"checkInDate"`
	CheckOutDate         ymd         `json:"checkOutDate"`
	Rooms                []offerRoom `json:"rooms"`
	ResultsStartingIndex int         `json:"resultsStartingIndex"`
	ResultsSize          int         `json:"resultsSize"`
	Sort                 string      `json:"sort"`
	Currency             string      `json:"currency"`
	Locale               string      `json:"locale"`
}

// offersResponse ответ запроса properties/v2/list. Вложенные объекты
// могут отсутствовать, поэтому все уровни - указатели.
type offersResponse struct {
	Data *struct {
		PropertySearch *struct {
			Properties []offerProperty `json:"properties"`
		} `json:"propertySearch"`
	} `json:"data"`
}

type offerProperty struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DestinationInfo *struct {
		DistanceFromDestination *struct {
			Value float64 `json:"value"`
			Unit  string  `json:"unit"`
		} `json:"distanceFromDestination"`
	} `json:"destinationInfo"`
	Price *struct {
		Lead *struct {
			Amount       float64 `json:"amount"`
			CurrencyInfo *struct {
				Code string `json:"code"`
			} `json:"currencyInfo"`
		} `json:"lead"`
	} `json:"price"`
	PropertyImage *struct {
		Image *struct {
			URL string `json:"url"`
		} `json:"image"`
	} `json:"propertyImage"`
}

// SearchHotels ищет отели в регионе. Показатель "лучшая сделка"
// вычисляется по всему полученному списку до сортировки, после чего
// список сортируется указанным методом.
func (c *Client) SearchHotels(ctx context.Context, p OfferParams) ([]models.Hotel, error) {
	const op = "hotelsapi.SearchHotels"

	regionID := strings.TrimSpace(p.RegionID)
	if regionID == "" {
		return nil, nil
	}

	body := offerRequest{
		CheckInDate:  toYMD(p.CheckIn),
		CheckOutDate: toYMD(p.CheckOut),
		Rooms:        []offerRoom{makeRoom(p.Adults, p.Children)},
		ResultsSize:  p.ResultLimit,
		Sort:         "PRICE_LOW_TO_HIGH",
		Currency:     "USD",
		Locale:       "en_US",
	}
	body.Destination.RegionID = regionID
	if body.ResultsSize < 1 || body.ResultsSize > models.MaxResultSize {
		body.ResultsSize = models.MaxResultSize
	}

	key := offersCacheKey(p)
	data, err := c.cachedRequest(ctx, key, http.MethodPost, "/properties/v2/list", nil, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var resp offersResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	if resp.Data == nil || resp.Data.PropertySearch == nil {
		return nil, nil
	}

	hotels := make([]models.Hotel, 0, len(resp.Data.PropertySearch.Properties))
	for _, prop := range resp.Data.PropertySearch.Properties {
		hotels = append(hotels, mapHotel(prop))
	}
	if len(hotels) == 0 {
		return nil, nil
	}

	scoreBestDeals(hotels)
	SortHotels(hotels, p.SortMethod)
	return hotels, nil
}

// makeRoom один номер: взрослые и возраста детей
func makeRoom(adults int, children []int) offerRoom {
	room := offerRoom{Adults: adults, Children: []childAge{}}
	if room.Adults < 1 || room.Adults > models.MaxAdults {
		room.Adults = 1
	}
	for _, age := range children {
		if len(room.Children) == models.MaxChildren {
			break
		}
		room.Children = append(room.Children, childAge{Age: age})
	}
	return room
}

// mapHotel защищенное отображение ответа сервера в доменный тип:
// отсутствующие вложенные объекты дают нулевые значения
func mapHotel(prop offerProperty) models.Hotel {
	h := models.Hotel{ID: prop.ID, Name: prop.Name}

	if prop.DestinationInfo != nil && prop.DestinationInfo.DistanceFromDestination != nil {
		h.Distance = prop.DestinationInfo.DistanceFromDestination.Value
		h.DistanceUnit = prop.DestinationInfo.DistanceFromDestination.Unit
	}
	if prop.Price != nil && prop.Price.Lead != nil {
		h.Price = prop.Price.Lead.Amount
		if prop.Price.Lead.CurrencyInfo != nil {
			h.Currency = prop.Price.Lead.CurrencyInfo.Code
		}
	}
	if prop.PropertyImage != nil && prop.PropertyImage.Image != nil {
		h.ImageURL = prop.PropertyImage.Image.URL
	}
	return h
}

// scoreBestDeals вычисляет показатель "лучшая сделка" для каждого отеля:
// |цена - мин.цена| + |расстояние - мин.расстояние| по всему списку
func scoreBestDeals(hotels []models.Hotel) {
	if len(hotels) == 0 {
		return
	}
	minPrice, minDist := hotels[0].Price, hotels[0].Distance
	for _, h := range hotels[1:] {
		if h.Price < minPrice {
			minPrice = h.Price
		}
		if h.Distance < minDist {
			minDist = h.Distance
		}
	}
	for i := range hotels {
		score := math.Abs(hotels[i].Price-minPrice) + math.Abs(hotels[i].Distance-minDist)
		hotels[i].BestDealScore = math.Round(score*100) / 100
	}
}

func offersCacheKey(p OfferParams) string {
	return cacheKey(
		p.RegionID,
		p.CheckIn.Format("02-01-2006"),
		p.CheckOut.Format("02-01-2006"),
		strconv.Itoa(p.Adults),
		childrenKey(p.Children),
		strconv.Itoa(p.ResultLimit),
	)
}

func childrenKey(children []int) string {
	if len(children) == 0 {
		return "no-children"
	}
	parts := make([]string, len(children))
	for i, age := range children {
		parts[i] = strconv.Itoa(age)
	}
	return strings.Join(parts, "-")
}
