package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iliyamo/bootcamp-directory/internal/model"
)

// bootcampColumns is the column list shared by every bootcamp SELECT; scanBootcamp
// reads them in this order.
const bootcampColumns = `id, name, slug, description, website, phone, email,
	location_type, longitude, latitude, formatted_address, street, city, state, zipcode, country,
	careers, average_rating, average_cost, photo, housing, job_assistance, job_guarantee, accept_gi, created_at`

// BootcampRepo encapsulates all database queries related to bootcamps.
type BootcampRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewBootcampRepo constructs a BootcampRepo with the provided DB handle.
func NewBootcampRepo(db *sql.DB) *BootcampRepo {
	return &BootcampRepo{db: db}
}

// Create inserts an enriched bootcamp.  The address is never written; only
// the derived location columns are.  A name or slug collision is returned as
// *apperr.UniquenessError.
func (r *BootcampRepo) Create(ctx context.Context, b *model.Bootcamp) error {
	const q = `INSERT INTO bootcamps (id, name, slug, description, website, phone, email,
		location_type, longitude, latitude, formatted_address, street, city, state, zipcode, country,
		careers, average_rating, average_cost, photo, housing, job_assistance, job_guarantee, accept_gi, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	careers, err := json.Marshal(b.Careers)
	if err != nil {
		return fmt.Errorf("encode careers: %w", err)
	}
	args := []any{b.ID, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email}
	args = append(args, locationArgs(b.Location)...)
	args = append(args, careers, nullFloat(b.AverageRating), nullFloat(b.AverageCost), b.Photo,
		b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGi, b.CreatedAt)
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return translateWriteErr(err)
	}
	return nil
}

// GetByID fetches a bootcamp by its id.  It returns ErrBootcampNotFound if no
// row is found.
func (r *BootcampRepo) GetByID(ctx context.Context, id string) (*model.Bootcamp, error) {
	q := "SELECT " + bootcampColumns + " FROM bootcamps WHERE id = ?"
	b, err := scanBootcamp(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBootcampNotFound
		}
		return nil, err
	}
	return b, nil
}

// List returns every bootcamp ordered by creation time.
func (r *BootcampRepo) List(ctx context.Context) ([]*model.Bootcamp, error) {
	q := "SELECT " + bootcampColumns + " FROM bootcamps ORDER BY created_at, id"
	return r.query(ctx, q)
}

// WithinRadius returns the bootcamps whose location lies within meters of
// the point (lng, lat).  Bootcamps without a location are never returned.
func (r *BootcampRepo) WithinRadius(ctx context.Context, lng, lat, meters float64) ([]*model.Bootcamp, error) {
	q := "SELECT " + bootcampColumns + ` FROM bootcamps
		WHERE location_type IS NOT NULL
		  AND ST_Distance_Sphere(POINT(longitude, latitude), POINT(?, ?)) <= ?
		ORDER BY created_at, id`
	return r.query(ctx, q, lng, lat, meters)
}

// Update overwrites every persisted column of b.  Existence is checked by the
// caller; MySQL reports zero affected rows for an unchanged row, so the count
// is not used here.
func (r *BootcampRepo) Update(ctx context.Context, b *model.Bootcamp) error {
	const q = `UPDATE bootcamps SET name = ?, slug = ?, description = ?, website = ?, phone = ?, email = ?,
		location_type = ?, longitude = ?, latitude = ?, formatted_address = ?, street = ?, city = ?, state = ?, zipcode = ?, country = ?,
		careers = ?, average_rating = ?, average_cost = ?, photo = ?, housing = ?, job_assistance = ?, job_guarantee = ?, accept_gi = ?
		WHERE id = ?`
	careers, err := json.Marshal(b.Careers)
	if err != nil {
		return fmt.Errorf("encode careers: %w", err)
	}
	args := []any{b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email}
	args = append(args, locationArgs(b.Location)...)
	args = append(args, careers, nullFloat(b.AverageRating), nullFloat(b.AverageCost), b.Photo,
		b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGi, b.ID)
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return translateWriteErr(err)
	}
	return nil
}

// Delete removes the bootcamp row only.  Courses must have been removed
// beforehand by the cascade.  ErrBootcampNotFound is returned when no row
// was deleted.
func (r *BootcampRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM bootcamps WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBootcampNotFound
	}
	return nil
}

func (r *BootcampRepo) query(ctx context.Context, q string, args ...any) ([]*model.Bootcamp, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Bootcamp
	for rows.Next() {
		b, err := scanBootcamp(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBootcamp(s rowScanner) (*model.Bootcamp, error) {
	var (
		b       model.Bootcamp
		locType sql.NullString
		lng     sql.NullFloat64
		lat     sql.NullFloat64
		formatted, street, city, state, zipcode, country sql.NullString
		careers []byte
		rating  sql.NullFloat64
		cost    sql.NullFloat64
	)
	err := s.Scan(&b.ID, &b.Name, &b.Slug, &b.Description, &b.Website, &b.Phone, &b.Email,
		&locType, &lng, &lat, &formatted, &street, &city, &state, &zipcode, &country,
		&careers, &rating, &cost, &b.Photo, &b.Housing, &b.JobAssistance, &b.JobGuarantee, &b.AcceptGi, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(careers) > 0 {
		if err := json.Unmarshal(careers, &b.Careers); err != nil {
			return nil, fmt.Errorf("decode careers of bootcamp %s: %w", b.ID, err)
		}
	}
	if locType.Valid {
		b.Location = &model.Location{
			Type:             locType.String,
			Coordinates:      [2]float64{lng.Float64, lat.Float64},
			FormattedAddress: formatted.String,
			Street:           street.String,
			City:             city.String,
			State:            state.String,
			Zipcode:          zipcode.String,
			Country:          country.String,
		}
	}
	if rating.Valid {
		v := rating.Float64
		b.AverageRating = &v
	}
	if cost.Valid {
		v := cost.Float64
		b.AverageCost = &v
	}
	return &b, nil
}

// locationArgs returns the nine location column values; all NULL when loc is nil.
func locationArgs(loc *model.Location) []any {
	if loc == nil {
		return []any{nil, nil, nil, nil, nil, nil, nil, nil, nil}
	}
	return []any{loc.Type, loc.Coordinates[0], loc.Coordinates[1], loc.FormattedAddress,
		loc.Street, loc.City, loc.State, loc.Zipcode, loc.Country}
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
