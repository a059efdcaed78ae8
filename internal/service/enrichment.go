package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/bootcamp-directory/internal/apperr"
	"github.com/iliyamo/bootcamp-directory/internal/geocode"
	"github.com/iliyamo/bootcamp-directory/internal/model"
	"github.com/iliyamo/bootcamp-directory/internal/slug"
)

// Stage is one named step of the enrichment pipeline.  A stage mutates the
// in-flight record or returns a typed failure that aborts the run.
type Stage struct {
	Name string
	Run  func(ctx context.Context, b *model.Bootcamp) error
}

// EnrichmentPipeline turns a candidate bootcamp into the record that is
// handed to the repository: slug, then geocoded location, then address
// removal.  Stages run strictly in order because each consumes the output of
// the previous one.
type EnrichmentPipeline struct {
	stages []Stage
}

// NewEnrichmentPipeline wires the default stages around g.
func NewEnrichmentPipeline(g geocode.Geocoder) *EnrichmentPipeline {
	return &EnrichmentPipeline{stages: []Stage{
		{Name: "slug", Run: deriveSlug},
		{Name: "geocode", Run: geocodeAddress(g)},
		{Name: "redact-address", Run: redactAddress},
	}}
}

// Stages returns the stage names in execution order.
func (p *EnrichmentPipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Run applies every stage to a copy of in and returns the enriched record.
// in is never modified, so a failed run leaves the caller's record exactly
// as it was: no slug change, no partial location.
func (p *EnrichmentPipeline) Run(ctx context.Context, in *model.Bootcamp) (*model.Bootcamp, error) {
	out := *in
	if in.Location != nil {
		loc := *in.Location
		out.Location = &loc
	}
	for _, s := range p.stages {
		if err := s.Run(ctx, &out); err != nil {
			return nil, fmt.Errorf("enrich stage %s: %w", s.Name, err)
		}
	}
	return &out, nil
}

func deriveSlug(_ context.Context, b *model.Bootcamp) error {
	b.Slug = slug.Derive(b.Name)
	return nil
}

// geocodeAddress resolves b.Address and replaces b.Location with the first
// match.  Without an address the stored location is kept as is.
func geocodeAddress(g geocode.Geocoder) func(context.Context, *model.Bootcamp) error {
	return func(ctx context.Context, b *model.Bootcamp) error {
		addr := strings.TrimSpace(b.Address)
		if addr == "" {
			return nil
		}
		matches, err := g.Geocode(ctx, addr)
		if err != nil {
			return &apperr.GeocodingError{Address: addr, Cause: err}
		}
		if len(matches) == 0 {
			return &apperr.GeocodingError{Address: addr, Cause: apperr.ErrNoMatches}
		}
		b.Location = locationFrom(matches[0])
		return nil
	}
}

func redactAddress(_ context.Context, b *model.Bootcamp) error {
	b.Address = ""
	return nil
}

func locationFrom(m geocode.Match) *model.Location {
	return &model.Location{
		Type:             model.PointType,
		Coordinates:      [2]float64{m.Longitude, m.Latitude},
		FormattedAddress: m.FormattedAddress,
		Street:           m.Street,
		City:             m.City,
		State:            m.State,
		Zipcode:          m.Zipcode,
		Country:          m.CountryCode,
	}
}
