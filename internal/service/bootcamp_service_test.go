package service

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/bootcamp-directory/internal/apperr"
	"github.com/iliyamo/bootcamp-directory/internal/geocode"
	"github.com/iliyamo/bootcamp-directory/internal/model"
	q "github.com/iliyamo/bootcamp-directory/internal/queue"
	"github.com/iliyamo/bootcamp-directory/internal/validate"
)

type fixture struct {
	svc       *BootcampService
	courses   *CourseService
	store     *memBootcamps
	courseDB  *memCourses
	publisher *recordingPublisher
}

func newFixture(t *testing.T, g geocode.Geocoder) *fixture {
	t.Helper()
	f := &fixture{store: newMemBootcamps(), courseDB: newMemCourses(), publisher: &recordingPublisher{}}
	v := validate.New()
	f.svc = NewBootcampService(f.store, f.courseDB, g, v, f.publisher)
	f.svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	f.courses = NewCourseService(f.courseDB, f.svc, v)
	return f
}

func candidate(name string) *model.Bootcamp {
	return &model.Bootcamp{
		Name:        name,
		Description: "Full stack web development",
		Website:     "https://devworks.com",
		Email:       "enroll@devworks.com",
		Address:     "1 Market St, San Francisco, CA 94105",
		Careers:     []string{"Web Development", "UI/UX"},
	}
}

func TestCreateEnrichesAndRedacts(t *testing.T) {
	g, seen := fixedGeocoder(sanFrancisco)
	f := newFixture(t, g)

	b, err := f.svc.Create(context.Background(), candidate("Web Dev Academy!!"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	stored, err := f.svc.Get(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Slug != "web-dev-academy" {
		t.Errorf("slug = %q", stored.Slug)
	}
	if stored.Location == nil || stored.Location.Coordinates != [2]float64{-122.4, 37.8} {
		t.Fatalf("location = %+v", stored.Location)
	}
	if stored.Location.Type != model.PointType || stored.Location.City != "San Francisco" || stored.Location.Country != "US" {
		t.Errorf("location fields = %+v", stored.Location)
	}
	if stored.Address != "" {
		t.Errorf("address persisted: %q", stored.Address)
	}
	if stored.Photo != model.DefaultPhoto || !stored.CreatedAt.Equal(f.svc.now()) {
		t.Errorf("defaults = %q/%s", stored.Photo, stored.CreatedAt)
	}
	if _, err := uuid.Parse(stored.ID); err != nil {
		t.Errorf("id %q is not a uuid", stored.ID)
	}
	if len(*seen) != 1 || (*seen)[0] != "1 Market St, San Francisco, CA 94105" {
		t.Errorf("geocoder calls = %v", *seen)
	}
	if got := f.publisher.types(); !reflect.DeepEqual(got, []string{q.EventBootcampCreated}) {
		t.Errorf("events = %v", got)
	}
	if f.publisher.events[0].City != "San Francisco" {
		t.Errorf("event city = %q", f.publisher.events[0].City)
	}
}

func TestCreateDoesNotMutateInput(t *testing.T) {
	g, _ := fixedGeocoder(sanFrancisco)
	f := newFixture(t, g)
	in := candidate("Devworks")
	if _, err := f.svc.Create(context.Background(), in); err != nil {
		t.Fatal(err)
	}
	if in.Address == "" || in.Slug != "" || in.Location != nil || in.ID != "" {
		t.Fatalf("input mutated: %+v", in)
	}
}

func TestCreateGeocodingFailurePersistsNothing(t *testing.T) {
	cases := []struct {
		name      string
		g         geocode.Geocoder
		noMatches bool
	}{
		{"zero matches", func() geocode.Geocoder { g, _ := fixedGeocoder(); return g }(), true},
		{"provider error", failingGeocoder(errProviderDown), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.g)
			_, err := f.svc.Create(context.Background(), candidate("Devworks"))

			var geoErr *apperr.GeocodingError
			if !errors.As(err, &geoErr) {
				t.Fatalf("err = %v, want GeocodingError", err)
			}
			if geoErr.NoMatches() != tc.noMatches {
				t.Errorf("NoMatches = %v", geoErr.NoMatches())
			}
			if len(f.store.rows) != 0 || len(f.store.calls) != 0 {
				t.Errorf("store touched: rows=%d calls=%v", len(f.store.rows), f.store.calls)
			}
			if len(f.publisher.events) != 0 {
				t.Errorf("events published: %v", f.publisher.types())
			}
		})
	}
}

func TestCreateValidation(t *testing.T) {
	g, seen := fixedGeocoder(sanFrancisco)
	f := newFixture(t, g)

	_, err := f.svc.Create(context.Background(), &model.Bootcamp{Careers: []string{"Web Development"}})
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	want := "Please add a name, Please add a description, " + validate.MsgAddressRequired
	if verr.Message() != want {
		t.Fatalf("message = %q\nwant      %q", verr.Message(), want)
	}
	if len(*seen) != 0 {
		t.Fatal("geocoder called for an invalid record")
	}
}

func TestCreateDuplicateName(t *testing.T) {
	g, _ := fixedGeocoder(sanFrancisco)
	f := newFixture(t, g)
	if _, err := f.svc.Create(context.Background(), candidate("Devworks")); err != nil {
		t.Fatal(err)
	}
	_, err := f.svc.Create(context.Background(), candidate("Devworks"))
	if n := apperr.Classify(err); n.Status != 400 || n.Message != apperr.MsgDuplicate {
		t.Fatalf("classified = %+v", n)
	}
	if len(f.store.rows) != 1 {
		t.Fatalf("rows = %d", len(f.store.rows))
	}
}

func TestGetUnknownAndMalformedIDs(t *testing.T) {
	g, _ := fixedGeocoder(sanFrancisco)
	f := newFixture(t, g)
	for _, id := range []string{"5d713995b721c3bb38c1f5d0", uuid.NewString()} {
		_, err := f.svc.Get(context.Background(), id)
		n := apperr.Classify(err)
		if n.Status != 404 || n.Message != "Resource not found with id of "+id {
			t.Errorf("Get(%q) classified = %+v", id, n)
		}
	}
}

func TestUpdateRecomputesSlugAndKeepsLocation(t *testing.T) {
	g, seen := fixedGeocoder(sanFrancisco)
	f := newFixture(t, g)
	b, err := f.svc.Create(context.Background(), candidate("Devworks"))
	if err != nil {
		t.Fatal(err)
	}

	name := "Devworks Bootcamp"
	out, err := f.svc.Update(context.Background(), b.ID, model.BootcampPatch{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if out.Slug != "devworks-bootcamp" {
		t.Errorf("slug = %q", out.Slug)
	}
	if out.Location == nil || out.Location.Coordinates != b.Location.Coordinates {
		t.Errorf("location lost: %+v", out.Location)
	}
	if len(*seen) != 1 {
		t.Errorf("geocoder called %d times, want 1", len(*seen))
	}
	if got := f.publisher.types(); !reflect.DeepEqual(got, []string{q.EventBootcampCreated, q.EventBootcampUpdated}) {
		t.Errorf("events = %v", got)
	}
}

func TestUpdateWithAddressRegeocodes(t *testing.T) {
	calls := 0
	g := geocode.Func(func(_ context.Context, address string) ([]geocode.Match, error) {
		calls++
		if calls == 1 {
			return []geocode.Match{sanFrancisco}, nil
		}
		return []geocode.Match{{Longitude: -71.1, Latitude: 42.3, City: "Boston", CountryCode: "US"}}, nil
	})
	f := newFixture(t, g)
	b, err := f.svc.Create(context.Background(), candidate("Devworks"))
	if err != nil {
		t.Fatal(err)
	}

	addr := "233 Bay State Road Boston MA 02215"
	out, err := f.svc.Update(context.Background(), b.ID, model.BootcampPatch{Address: &addr})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if out.Location.City != "Boston" || out.Address != "" {
		t.Fatalf("update result = %+v", out)
	}
}

func TestUpdateGeocodingFailureKeepsStoredRecord(t *testing.T) {
	first := true
	g := geocode.Func(func(context.Context, string) ([]geocode.Match, error) {
		if first {
			first = false
			return []geocode.Match{sanFrancisco}, nil
		}
		return nil, nil
	})
	f := newFixture(t, g)
	b, err := f.svc.Create(context.Background(), candidate("Devworks"))
	if err != nil {
		t.Fatal(err)
	}
	addr, name := "nowhere", "Renamed"
	if _, err := f.svc.Update(context.Background(), b.ID, model.BootcampPatch{Name: &name, Address: &addr}); err == nil {
		t.Fatal("expected geocoding failure")
	}
	stored, _ := f.svc.Get(context.Background(), b.ID)
	if stored.Name != "Devworks" || stored.Location.City != "San Francisco" {
		t.Fatalf("stored record changed: %+v", stored)
	}
}

func TestDeleteCascades(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		g, _ := fixedGeocoder(sanFrancisco)
		f := newFixture(t, g)
		ctx := context.Background()
		b, err := f.svc.Create(ctx, candidate("Devworks"))
		if err != nil {
			t.Fatal(err)
		}
		other, err := f.svc.Create(ctx, candidate("Codemasters"))
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < n; i++ {
			if _, err := f.courses.Create(ctx, b.ID, course("Course")); err != nil {
				t.Fatal(err)
			}
		}
		if _, err := f.courses.Create(ctx, other.ID, course("Unrelated")); err != nil {
			t.Fatal(err)
		}

		order := []string{}
		f.courseDB.order = &order
		if err := f.svc.Delete(ctx, b.ID); err != nil {
			t.Fatalf("n=%d: Delete: %v", n, err)
		}
		if got := f.courseDB.countFor(b.ID); got != 0 {
			t.Errorf("n=%d: %d courses left", n, got)
		}
		if got := f.courseDB.countFor(other.ID); got != 1 {
			t.Errorf("n=%d: unrelated courses = %d", n, got)
		}
		if !reflect.DeepEqual(f.courseDB.cascades, []string{b.ID}) {
			t.Errorf("n=%d: cascades = %v", n, f.courseDB.cascades)
		}
		if _, err := f.svc.Get(ctx, b.ID); err == nil {
			t.Errorf("n=%d: bootcamp still stored", n)
		}
		if last := f.store.calls[len(f.store.calls)-1]; last != "delete" || len(order) != 1 {
			t.Errorf("n=%d: calls = %v order = %v", n, f.store.calls, order)
		}
	}
}

func TestDeleteCascadeFailureKeepsBootcamp(t *testing.T) {
	g, _ := fixedGeocoder(sanFrancisco)
	f := newFixture(t, g)
	b, err := f.svc.Create(context.Background(), candidate("Devworks"))
	if err != nil {
		t.Fatal(err)
	}
	f.courseDB.failCascade = errors.New("lock wait timeout")

	err = f.svc.Delete(context.Background(), b.ID)
	var cerr *apperr.CascadeError
	if !errors.As(err, &cerr) || cerr.BootcampID != b.ID {
		t.Fatalf("err = %v, want CascadeError", err)
	}
	if _, err := f.svc.Get(context.Background(), b.ID); err != nil {
		t.Fatalf("bootcamp removed after failed cascade: %v", err)
	}
	if got := f.publisher.types(); len(got) != 1 {
		t.Fatalf("events = %v", got)
	}
}

func TestDeleteUnknownSkipsCascade(t *testing.T) {
	g, _ := fixedGeocoder(sanFrancisco)
	f := newFixture(t, g)
	err := f.svc.Delete(context.Background(), uuid.NewString())
	if apperr.Classify(err).Status != 404 {
		t.Fatalf("err = %v", err)
	}
	if len(f.courseDB.cascades) != 0 {
		t.Fatal("cascade ran for unknown bootcamp")
	}
}

func TestWithinRadius(t *testing.T) {
	g, seen := fixedGeocoder(sanFrancisco)
	f := newFixture(t, g)
	if _, err := f.svc.Create(context.Background(), candidate("Devworks")); err != nil {
		t.Fatal(err)
	}

	list, err := f.svc.WithinRadius(context.Background(), "94105", 10, "")
	if err != nil || len(list) != 1 {
		t.Fatalf("WithinRadius = %v, %v", list, err)
	}
	if (*seen)[len(*seen)-1] != "94105" {
		t.Errorf("geocoded %q", (*seen)[len(*seen)-1])
	}

	_, err = f.svc.WithinRadius(context.Background(), "", -1, "furlongs")
	var verr *apperr.ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) != 3 {
		t.Fatalf("err = %v", err)
	}
}

func TestToMeters(t *testing.T) {
	cases := []struct {
		d    float64
		unit string
		want float64
		ok   bool
	}{
		{10, "", 16093.44, true},
		{10, "MI", 16093.44, true},
		{10, "km", 10000, true},
		{10, "yd", 0, false},
	}
	for _, tc := range cases {
		got, ok := toMeters(tc.d, tc.unit)
		if ok != tc.ok || math.Abs(got-tc.want) > 1e-6 {
			t.Errorf("toMeters(%v, %q) = %v, %v", tc.d, tc.unit, got, ok)
		}
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	g, _ := fixedGeocoder(sanFrancisco)
	f := newFixture(t, g)
	f.publisher.err = errors.New("broker down")
	if _, err := f.svc.Create(context.Background(), candidate("Devworks")); err != nil {
		t.Fatalf("Create: %v", err)
	}
}
