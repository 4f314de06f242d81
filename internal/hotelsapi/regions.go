package hotelsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"hotelsLookerBot/internal/domain/models"
)

// regionsResponse ответ запроса locations/v3/search
type regionsResponse struct {
	RC string `json:"rc"`
	SR []struct {
		GaiaID      string `json:"gaiaId"`
		Type        string `json:"type"`
		RegionNames struct {
			FullName string `json:"fullName"`
		} `json:"regionNames"`
		HierarchyInfo struct {
			Country struct {
				ISOCode3 string `json:"isoCode3"`
				Name     string `json:"name"`
			} `json:"country"`
		} `json:"hierarchyInfo"`
	} `json:"sr"`
}

// SearchRegions ищет регионы по свободному тексту. В выдаче остаются
// только регионы разрешенных типов (город, аэропорт, район). Пустой ответ
// сервера - это пустой список, не ошибка.
func (c *Client) SearchRegions(ctx context.Context, freeText string) ([]models.Region, error) {
	const op = "hotelsapi.SearchRegions"

	freeText = strings.ToLower(strings.TrimSpace(freeText))
	if freeText == "" {
		return nil, nil
	}

	query := url.Values{}
	query.Set("q", freeText)
	query.Set("locale", "en_US")

	data, err := c.cachedRequest(ctx, cacheKey(freeText), http.MethodGet, "/locations/v3/search", query, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var resp regionsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	if resp.RC != "OK" {
		return nil, nil
	}

	regions := make([]models.Region, 0, len(resp.SR))
	for _, sr := range resp.SR {
		if sr.GaiaID == "" || !models.AllowedRegionTypes[models.RegionType(sr.Type)] {
			continue
		}
		regions = append(regions, models.Region{
			ID:          sr.GaiaID,
			Name:        sr.RegionNames.FullName,
			Type:        models.RegionType(sr.Type),
			CountryCode: sr.HierarchyInfo.Country.ISOCode3,
			CountryName: sr.HierarchyInfo.Country.Name,
		})
	}
	return regions, nil
}
