package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/iliyamo/bootcamp-directory/internal/apperr"
	"github.com/iliyamo/bootcamp-directory/internal/geocode"
	"github.com/iliyamo/bootcamp-directory/internal/model"
	q "github.com/iliyamo/bootcamp-directory/internal/queue"
	"github.com/iliyamo/bootcamp-directory/internal/repository"
)

// memBootcamps is an in-memory BootcampStore with a unique name index.
type memBootcamps struct {
	mu    sync.Mutex
	rows  map[string]model.Bootcamp
	calls []string
}

func newMemBootcamps() *memBootcamps { return &memBootcamps{rows: map[string]model.Bootcamp{}} }

func (m *memBootcamps) Create(_ context.Context, b *model.Bootcamp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "create")
	for _, r := range m.rows {
		if r.Name == b.Name {
			return &apperr.UniquenessError{Field: "name"}
		}
	}
	m.rows[b.ID] = *b
	return nil
}

func (m *memBootcamps) GetByID(_ context.Context, id string) (*model.Bootcamp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrBootcampNotFound
	}
	return &r, nil
}

func (m *memBootcamps) List(context.Context) ([]*model.Bootcamp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Bootcamp, 0, len(m.rows))
	for _, r := range m.rows {
		r := r
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memBootcamps) Update(_ context.Context, b *model.Bootcamp) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "update")
	for id, r := range m.rows {
		if id != b.ID && r.Name == b.Name {
			return &apperr.UniquenessError{Field: "name"}
		}
	}
	m.rows[b.ID] = *b
	return nil
}

func (m *memBootcamps) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "delete")
	if _, ok := m.rows[id]; !ok {
		return repository.ErrBootcampNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memBootcamps) WithinRadius(_ context.Context, lng, lat, meters float64) ([]*model.Bootcamp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "radius")
	var out []*model.Bootcamp
	for _, r := range m.rows {
		r := r
		// Exact point match stands in for the spherical distance check.
		if r.Location != nil && r.Location.Coordinates == [2]float64{lng, lat} && meters > 0 {
			out = append(out, &r)
		}
	}
	return out, nil
}

// memCourses is an in-memory CourseStore.  Setting failCascade makes
// DeleteByBootcamp fail.
type memCourses struct {
	mu          sync.Mutex
	rows        map[string]model.Course
	cascades    []string
	failCascade error
	order       *[]string
}

func newMemCourses() *memCourses { return &memCourses{rows: map[string]model.Course{}} }

func (m *memCourses) DeleteByBootcamp(_ context.Context, bootcampID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cascades = append(m.cascades, bootcampID)
	if m.order != nil {
		*m.order = append(*m.order, "cascade")
	}
	if m.failCascade != nil {
		return m.failCascade
	}
	for id, c := range m.rows {
		if c.BootcampID == bootcampID {
			delete(m.rows, id)
		}
	}
	return nil
}

func (m *memCourses) Create(_ context.Context, c *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[c.ID] = *c
	return nil
}

func (m *memCourses) GetByID(_ context.Context, id string) (*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrCourseNotFound
	}
	return &c, nil
}

func (m *memCourses) ListAll(context.Context) ([]*model.Course, error) {
	return m.filter(func(model.Course) bool { return true }), nil
}

func (m *memCourses) ListByBootcamp(_ context.Context, bootcampID string) ([]*model.Course, error) {
	return m.filter(func(c model.Course) bool { return c.BootcampID == bootcampID }), nil
}

func (m *memCourses) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return repository.ErrCourseNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memCourses) filter(keep func(model.Course) bool) []*model.Course {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Course
	for _, c := range m.rows {
		c := c
		if keep(c) {
			out = append(out, &c)
		}
	}
	return out
}

func (m *memCourses) countFor(bootcampID string) int {
	list, _ := m.ListByBootcamp(context.Background(), bootcampID)
	return len(list)
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []q.BootcampEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev q.BootcampEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

// Geocoders used across the tests.

var errProviderDown = errors.New("provider down")

func fixedGeocoder(matches ...geocode.Match) (geocode.Geocoder, *[]string) {
	var seen []string
	return geocode.Func(func(_ context.Context, address string) ([]geocode.Match, error) {
		seen = append(seen, address)
		return matches, nil
	}), &seen
}

func failingGeocoder(err error) geocode.Geocoder {
	return geocode.Func(func(context.Context, string) ([]geocode.Match, error) { return nil, err })
}

var sanFrancisco = geocode.Match{
	Longitude:        -122.4,
	Latitude:         37.8,
	FormattedAddress: "1 Market St, San Francisco, CA 94105, US",
	Street:           "1 Market St",
	City:             "San Francisco",
	State:            "CA",
	Zipcode:          "94105",
	CountryCode:      "US",
}
