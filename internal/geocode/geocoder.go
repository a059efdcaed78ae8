// Package geocode resolves postal addresses into coordinates and address
// components.  The provider is a black box behind the Geocoder interface;
// MapQuest is the production implementation and Cached adds a Redis layer
// in front of any Geocoder.
package geocode

import "context"

// Match is one candidate location returned by a provider.
type Match struct {
	Longitude        float64 `json:"longitude"`
	Latitude         float64 `json:"latitude"`
	FormattedAddress string  `json:"formattedAddress"`
	Street           string  `json:"street"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	Zipcode          string  `json:"zipcode"`
	CountryCode      string  `json:"countryCode"`
}

// Geocoder resolves an address into zero or more matches ordered by
// relevance.  An empty slice with a nil error means the provider found
// nothing; transport and provider failures are returned as errors.
type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]Match, error)
}

// Func adapts a plain function to the Geocoder interface.
type Func func(ctx context.Context, address string) ([]Match, error)

// Geocode calls f.
func (f Func) Geocode(ctx context.Context, address string) ([]Match, error) {
	return f(ctx, address)
}
