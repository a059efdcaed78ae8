package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/bootcamp-directory/internal/model"
)

const courseColumns = `id, title, description, weeks, tuition, minimum_skill, scholarship_available, bootcamp_id, created_at`

// CourseRepo encapsulates all database queries related to courses.
type CourseRepo struct {
	db *sql.DB
}

// NewCourseRepo constructs a CourseRepo with the provided DB handle.
func NewCourseRepo(db *sql.DB) *CourseRepo {
	return &CourseRepo{db: db}
}

// Create inserts a course.  The parent bootcamp is checked by the caller.
func (r *CourseRepo) Create(ctx context.Context, c *model.Course) error {
	const q = `INSERT INTO courses (` + courseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q, c.ID, c.Title, c.Description, c.Weeks, c.Tuition,
		c.MinimumSkill, c.ScholarshipAvailable, c.BootcampID, c.CreatedAt)
	return translateWriteErr(err)
}

// GetByID fetches a course by id or returns ErrCourseNotFound.
func (r *CourseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	const q = `SELECT ` + courseColumns + ` FROM courses WHERE id = ?`
	c, err := scanCourse(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListAll returns every course ordered by creation time.
func (r *CourseRepo) ListAll(ctx context.Context) ([]*model.Course, error) {
	const q = `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at, id`
	return r.query(ctx, q)
}

// ListByBootcamp returns the courses whose back-reference equals bootcampID.
func (r *CourseRepo) ListByBootcamp(ctx context.Context, bootcampID string) ([]*model.Course, error) {
	const q = `SELECT ` + courseColumns + ` FROM courses WHERE bootcamp_id = ? ORDER BY created_at, id`
	return r.query(ctx, q, bootcampID)
}

// Delete removes one course or returns ErrCourseNotFound.
func (r *CourseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCourseNotFound
	}
	return nil
}

// DeleteByBootcamp removes every course of a bootcamp in one statement.
// Zero matching rows is not an error.
func (r *CourseRepo) DeleteByBootcamp(ctx context.Context, bootcampID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE bootcamp_id = ?`, bootcampID)
	return err
}

func (r *CourseRepo) query(ctx context.Context, q string, args ...any) ([]*model.Course, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCourse(s rowScanner) (*model.Course, error) {
	var c model.Course
	if err := s.Scan(&c.ID, &c.Title, &c.Description, &c.Weeks, &c.Tuition, &c.MinimumSkill,
		&c.ScholarshipAvailable, &c.BootcampID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
