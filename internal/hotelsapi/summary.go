package hotelsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"hotelsLookerBot/internal/domain/models"
)

// summaryRequest тело запроса properties/v2/get-summary
type summaryRequest struct {
	PropertyID string `json:"propertyId"`
	Currency   string `json:"currency"`
	Locale     string `json:"locale"`
}

// summaryResponse ответ запроса properties/v2/get-summary
type summaryResponse struct {
	Data *struct {
		PropertyInfo *struct {
			Summary *struct {
				ID       string `json:"id"`
				Name     string `json:"name"`
				Location *struct {
					Address *struct {
						AddressLine string `json:"addressLine"`
						CountryCode string `json:"countryCode"`
					} `json:"address"`
					Coordinates *struct {
						Latitude  float64 `json:"latitude"`
						Longitude float64 `json:"longitude"`
					} `json:"coordinates"`
					StaticImage *struct {
						URL string `json:"url"`
					} `json:"staticImage"`
				} `json:"location"`
				Overview *struct {
					PropertyRating *struct {
						Rating float64 `json:"rating"`
					} `json:"propertyRating"`
				} `json:"overview"`
			} `json:"summary"`
			PropertyGallery *struct {
				Images []struct {
					Image struct {
						URL string `json:"url"`
					} `json:"image"`
				} `json:"images"`
			} `json:"propertyGallery"`
		} `json:"propertyInfo"`
	} `json:"data"`
}

// FetchHotelSummary получает сводку по отелю. Если в ответе сервера нет
// ожидаемого раздела summary, возвращается nil без ошибки. Список фотографий
// ограничен глобальным максимумом, персональный лимит применяется при показе.
func (c *Client) FetchHotelSummary(ctx context.Context, hotelID string) (*models.HotelSummary, error) {
	const op = "hotelsapi.FetchHotelSummary"

	hotelID = strings.TrimSpace(hotelID)
	if hotelID == "" {
		return nil, nil
	}

	body := summaryRequest{PropertyID: hotelID, Currency: "USD", Locale: "en_US"}

	data, err := c.cachedRequest(ctx, cacheKey("summary", hotelID), http.MethodPost, "/properties/v2/get-summary", nil, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var resp summaryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	if resp.Data == nil || resp.Data.PropertyInfo == nil || resp.Data.PropertyInfo.Summary == nil {
		return nil, nil
	}

	info := resp.Data.PropertyInfo.Summary
	out := &models.HotelSummary{
		ID:   info.ID,
		Name: info.Name,
	}
	if info.Location != nil {
		if info.Location.Address != nil {
			out.Address = info.Location.Address.AddressLine
			out.CountryCode = info.Location.Address.CountryCode
		}
		if info.Location.Coordinates != nil {
			out.Latitude = info.Location.Coordinates.Latitude
			out.Longitude = info.Location.Coordinates.Longitude
		}
		if info.Location.StaticImage != nil {
			out.MapImageURL = info.Location.StaticImage.URL
		}
	}
	if info.Overview != nil && info.Overview.PropertyRating != nil {
		rating := info.Overview.PropertyRating.Rating
		out.Stars = &rating
	}

	if gallery := resp.Data.PropertyInfo.PropertyGallery; gallery != nil {
		for _, img := range gallery.Images {
			if len(out.ImageURLs) == models.MaxImageSize {
				break
			}
			if img.Image.URL != "" {
				out.ImageURLs = append(out.ImageURLs, img.Image.URL)
			}
		}
	}

	return out, nil
}
