package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// MapQuestBaseURL is the MapQuest geocoding endpoint.
	MapQuestBaseURL = "https://www.mapquestapi.com/geocoding/v1/address"
	// DefaultTimeout bounds a single provider call.
	DefaultTimeout = 10 * time.Second
)

// MapQuest calls the MapQuest geocoding API.
type MapQuest struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// MapQuestConfig configures a MapQuest client.  BaseURL and Timeout fall
// back to MapQuestBaseURL and DefaultTimeout.
type MapQuestConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewMapQuest creates a MapQuest geocoder.
func NewMapQuest(cfg MapQuestConfig) *MapQuest {
	if cfg.BaseURL == "" {
		cfg.BaseURL = MapQuestBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &MapQuest{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type mqResponse struct {
	Info struct {
		StatusCode int      `json:"statuscode"`
		Messages   []string `json:"messages"`
	} `json:"info"`
	Results []struct {
		Locations []mqLocation `json:"locations"`
	} `json:"results"`
}

type mqLocation struct {
	Street     string `json:"street"`
	AdminArea5 string `json:"adminArea5"` // city
	AdminArea3 string `json:"adminArea3"` // state
	AdminArea1 string `json:"adminArea1"` // country
	PostalCode string `json:"postalCode"`
	LatLng     struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"latLng"`
}

// Geocode implements Geocoder.
func (m *MapQuest) Geocode(ctx context.Context, address string) ([]Match, error) {
	q := url.Values{}
	q.Set("key", m.apiKey)
	q.Set("location", address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mapquest request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("mapquest status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out mqResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode mapquest response: %w", err)
	}
	if out.Info.StatusCode != 0 {
		return nil, fmt.Errorf("mapquest error %d: %s", out.Info.StatusCode, strings.Join(out.Info.Messages, "; "))
	}

	var matches []Match
	for _, r := range out.Results {
		for _, loc := range r.Locations {
			matches = append(matches, Match{
				Longitude:        loc.LatLng.Lng,
				Latitude:         loc.LatLng.Lat,
				FormattedAddress: formatAddress(loc),
				Street:           loc.Street,
				City:             loc.AdminArea5,
				State:            loc.AdminArea3,
				Zipcode:          loc.PostalCode,
				CountryCode:      loc.AdminArea1,
			})
		}
	}
	return matches, nil
}

// formatAddress renders "street, city, state zip, country" skipping blanks.
func formatAddress(loc mqLocation) string {
	stateZip := strings.TrimSpace(loc.AdminArea3 + " " + loc.PostalCode)
	parts := make([]string, 0, 4)
	for _, p := range []string{loc.Street, loc.AdminArea5, stateZip, loc.AdminArea1} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
