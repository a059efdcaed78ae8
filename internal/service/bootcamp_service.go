package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/bootcamp-directory/internal/apperr"
	"github.com/iliyamo/bootcamp-directory/internal/geocode"
	"github.com/iliyamo/bootcamp-directory/internal/model"
	q "github.com/iliyamo/bootcamp-directory/internal/queue"
	"github.com/iliyamo/bootcamp-directory/internal/repository"
	"github.com/iliyamo/bootcamp-directory/internal/validate"
)

// Radius units accepted by WithinRadius.
const (
	UnitMiles      = "mi"
	UnitKilometers = "km"
)

// BootcampStore is the persistence surface the service needs.  The MySQL
// implementation lives in repository.BootcampRepo.
type BootcampStore interface {
	Create(ctx context.Context, b *model.Bootcamp) error
	GetByID(ctx context.Context, id string) (*model.Bootcamp, error)
	List(ctx context.Context) ([]*model.Bootcamp, error)
	Update(ctx context.Context, b *model.Bootcamp) error
	Delete(ctx context.Context, id string) error
	WithinRadius(ctx context.Context, lng, lat, meters float64) ([]*model.Bootcamp, error)
}

// Validator checks struct tags; validate.Validator satisfies it.
type Validator interface {
	Validate(i interface{}) error
}

// BootcampService runs the bootcamp write path: validation, enrichment,
// persistence, cascade on delete and event publication.
type BootcampService struct {
	store     BootcampStore
	pipeline  *EnrichmentPipeline
	cascade   *CascadeDeleter
	geocoder  geocode.Geocoder
	validator Validator
	events    EventPublisher
	now       func() time.Time
}

// NewBootcampService wires a BootcampService.  A nil publisher disables events.
func NewBootcampService(store BootcampStore, courses CourseRemover, g geocode.Geocoder, v Validator, events EventPublisher) *BootcampService {
	if store == nil || g == nil || v == nil {
		panic("nil dependency passed to NewBootcampService")
	}
	if events == nil {
		events = NopPublisher{}
	}
	return &BootcampService{
		store:     store,
		pipeline:  NewEnrichmentPipeline(g),
		cascade:   NewCascadeDeleter(courses),
		geocoder:  g,
		validator: v,
		events:    events,
		now:       time.Now,
	}
}

// Create validates in, enriches it and persists the result.  The address is
// required here because every new bootcamp must carry a location.
func (s *BootcampService) Create(ctx context.Context, in *model.Bootcamp) (*model.Bootcamp, error) {
	b := *in
	b.ID = uuid.NewString()
	b.Name = strings.TrimSpace(b.Name)
	b.CreatedAt = s.now().UTC().Truncate(time.Second)
	b.Location = nil
	if b.Photo == "" {
		b.Photo = model.DefaultPhoto
	}
	if err := s.validateNew(&b); err != nil {
		return nil, err
	}
	out, err := s.pipeline.Run(ctx, &b)
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, out); err != nil {
		return nil, err
	}
	s.publish(ctx, q.EventBootcampCreated, out)
	return out, nil
}

// Get returns one bootcamp.  Malformed and unknown ids both yield an
// *apperr.IdentifierFormatError.
func (s *BootcampService) Get(ctx context.Context, id string) (*model.Bootcamp, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	b, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrBootcampNotFound) {
		return nil, &apperr.IdentifierFormatError{Value: id, Cause: err}
	}
	return b, err
}

// List returns every bootcamp.
func (s *BootcampService) List(ctx context.Context) ([]*model.Bootcamp, error) {
	return s.store.List(ctx)
}

// Update applies patch to the stored bootcamp.  The slug is recomputed from
// the (possibly new) name on every update and a supplied address is geocoded
// again; without one the stored location is kept.
func (s *BootcampService) Update(ctx context.Context, id string, patch model.BootcampPatch) (*model.Bootcamp, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := *current
	patch.Apply(&next)
	next.Name = strings.TrimSpace(next.Name)
	if err := s.validator.Validate(&next); err != nil {
		return nil, err
	}
	out, err := s.pipeline.Run(ctx, &next)
	if err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, out); err != nil {
		if errors.Is(err, repository.ErrBootcampNotFound) {
			return nil, &apperr.IdentifierFormatError{Value: id, Cause: err}
		}
		return nil, err
	}
	s.publish(ctx, q.EventBootcampUpdated, out)
	return out, nil
}

// Delete removes the courses of the bootcamp and then the bootcamp.  The two
// steps are sequential and not atomic: when the cascade fails the bootcamp
// stays and the caller receives an *apperr.CascadeError.
func (s *BootcampService) Delete(ctx context.Context, id string) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.cascade.OnDelete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBootcampNotFound) {
			return &apperr.IdentifierFormatError{Value: id, Cause: err}
		}
		return fmt.Errorf("delete bootcamp %s: %w", id, err)
	}
	s.publish(ctx, q.EventBootcampDeleted, b)
	return nil
}

// WithinRadius geocodes zipcode and returns the bootcamps located within
// distance of it.  unit is "mi" (default) or "km".
func (s *BootcampService) WithinRadius(ctx context.Context, zipcode string, distance float64, unit string) ([]*model.Bootcamp, error) {
	zipcode = strings.TrimSpace(zipcode)
	verr := &apperr.ValidationError{}
	if zipcode == "" {
		verr.Add("zipcode", "Please add a zipcode")
	}
	if distance <= 0 {
		verr.Add("distance", "Distance must be greater than 0")
	}
	meters, ok := toMeters(distance, unit)
	if !ok {
		verr.Add("unit", "Unit must be mi or km")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}
	matches, err := s.geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return nil, &apperr.GeocodingError{Address: zipcode, Cause: err}
	}
	if len(matches) == 0 {
		return nil, &apperr.GeocodingError{Address: zipcode, Cause: apperr.ErrNoMatches}
	}
	return s.store.WithinRadius(ctx, matches[0].Longitude, matches[0].Latitude, meters)
}

func (s *BootcampService) validateNew(b *model.Bootcamp) error {
	err := s.validator.Validate(b)
	var verr *apperr.ValidationError
	switch {
	case err == nil:
		verr = &apperr.ValidationError{}
	case !errors.As(err, &verr):
		return err
	}
	if strings.TrimSpace(b.Address) == "" {
		verr.Add("address", validate.MsgAddressRequired)
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func (s *BootcampService) publish(ctx context.Context, typ string, b *model.Bootcamp) {
	ev := q.BootcampEvent{
		Type:       typ,
		BootcampID: b.ID,
		Name:       b.Name,
		Slug:       b.Slug,
		OccurredAt: s.now().UTC().Format(time.RFC3339),
	}
	if b.Location != nil {
		ev.City = b.Location.City
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		log.Warnf("publish %s for bootcamp %s: %v", typ, b.ID, err)
	}
}

// checkID rejects identifiers that are not UUIDs.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &apperr.IdentifierFormatError{Value: id, Cause: err}
	}
	return nil
}

func toMeters(distance float64, unit string) (float64, bool) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", UnitMiles:
		return distance * 1609.344, true
	case UnitKilometers:
		return distance * 1000, true
	}
	return 0, false
}
