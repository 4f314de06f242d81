package models

// RegionType тип региона из ответа travel-API
type RegionType string

const (
	RegionCity         RegionType = "CITY"
	RegionAirport      RegionType = "AIRPORT"
	RegionNeighborhood RegionType = "NEIGHBORHOOD"
)

// AllowedRegionTypes регионы остальных типов в выдачу не попадают
var AllowedRegionTypes = map[RegionType]bool{
	RegionCity:         true,
	RegionAirport:      true,
	RegionNeighborhood: true,
}

// RegionTypeNames русские названия типов регионов для меню
var RegionTypeNames = map[RegionType]string{
	RegionCity:         "город",
	RegionAirport:      "аэропорт",
	RegionNeighborhood: "район",
}

// Region представляет регион, в котором ищется отель
type Region struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        RegionType `json:"type"`
	CountryCode string     `json:"country_code"`
	CountryName string     `json:"country_name"`
}
