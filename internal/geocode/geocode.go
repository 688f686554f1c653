package geocode

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Location is forward geocoding result for a single place
type Location struct {
	Latitude           float64 `json:"latitude" msgpack:"latitude"`
	Longitude          float64 `json:"longitude" msgpack:"longitude"`
	Name               string  `json:"name" msgpack:"name"`
	Type               string  `json:"type" msgpack:"type"`
	Number             string  `json:"number" msgpack:"number"`
	Street             string  `json:"street" msgpack:"street"`
	PostalCode         string  `json:"postalCode" msgpack:"postalCode"`
	Confidence         bool    `json:"confidence" msgpack:"confidence"`
	Region             string  `json:"region" msgpack:"region"`
	RegionCode         string  `json:"regionCode" msgpack:"regionCode"`
	AdministrativeArea string  `json:"administrativeArea" msgpack:"administrativeArea"`
	Neighbourhood      string  `json:"neighbourhood" msgpack:"neighbourhood"`
	Country            string  `json:"country" msgpack:"country"`
	CountryCode        string  `json:"countryCode" msgpack:"countryCode"`
	MapURL             string  `json:"mapURL" msgpack:"mapURL"`
}

// Geocoder resolves free-text place query to location. Implementations
// must return nil location when provider found nothing, never a
// zero-valued struct
type Geocoder interface {
	Forward(ctx context.Context, query string) (*Location, error)
}

type forwardData struct {
	Latitude           float64 `json:"latitude"`
	Longitude          float64 `json:"longitude"`
	Label              string  `json:"label"`
	Type               string  `json:"type"`
	Number             string  `json:"number"`
	Street             string  `json:"street"`
	PostalCode         string  `json:"postal_code"`
	Confidence         float64 `json:"confidence"`
	Region             string  `json:"region"`
	RegionCode         string  `json:"region_code"`
	AdministrativeArea string  `json:"administrative_area"`
	Neighbourhood      string  `json:"neighbourhood"`
	Country            string  `json:"country"`
	CountryCode        string  `json:"country_code"`
	MapURL             string  `json:"map_url"`
}

type forwardResponse struct {
	Data []forwardData `json:"data"`
}

type positionStackGeocoder struct {
	client *resty.Client
	apiKey string
}

// NewPositionStackGeocoder builds Geocoder backed by PositionStack forward geocoding API
func NewPositionStackGeocoder(baseURL string, apiKey string, timeout time.Duration) Geocoder {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &positionStackGeocoder{
		client: client,
		apiKey: apiKey,
	}
}

func (g *positionStackGeocoder) Forward(ctx context.Context, query string) (*Location, error) {
	var fwd forwardResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"access_key": g.apiKey,
			"query":      query,
			"limit":      "1",
		}).
		SetResult(&fwd).
		Get("/v1/forward")
	if err != nil {
		return nil, fmt.Errorf("failed to call geocoding provider - %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("geocoding provider responded with status %d", resp.StatusCode())
	}

	if len(fwd.Data) == 0 {
		return nil, nil
	}

	d := fwd.Data[0]
	return &Location{
		Latitude:           d.Latitude,
		Longitude:          d.Longitude,
		Name:               d.Label,
		Type:               d.Type,
		Number:             d.Number,
		Street:             d.Street,
		PostalCode:         d.PostalCode,
		Confidence:         d.Confidence >= confidenceThreshold,
		Region:             d.Region,
		RegionCode:         d.RegionCode,
		AdministrativeArea: d.AdministrativeArea,
		Neighbourhood:      d.Neighbourhood,
		Country:            d.Country,
		CountryCode:        d.CountryCode,
		MapURL:             d.MapURL,
	}, nil
}

// provider scores confidence in range [0, 1]
const confidenceThreshold = 0.8
