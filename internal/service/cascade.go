package service

import (
	"context"

	"github.com/iliyamo/bootcamp-directory/internal/apperr"
)

// CourseRemover deletes every course that references a bootcamp.
type CourseRemover interface {
	DeleteByBootcamp(ctx context.Context, bootcampID string) error
}

// CascadeDeleter removes the dependents of a bootcamp before the bootcamp
// itself is erased.  It is invoked once per delete and never on reads or
// updates.
type CascadeDeleter struct {
	courses CourseRemover
}

// NewCascadeDeleter panics on a nil remover so miswiring fails at startup.
func NewCascadeDeleter(courses CourseRemover) *CascadeDeleter {
	if courses == nil {
		panic("nil course remover passed to NewCascadeDeleter")
	}
	return &CascadeDeleter{courses: courses}
}

// OnDelete bulk deletes the courses of bootcampID.  A partial failure is
// reported as *apperr.CascadeError and nothing is rolled back.
func (d *CascadeDeleter) OnDelete(ctx context.Context, bootcampID string) error {
	if err := d.courses.DeleteByBootcamp(ctx, bootcampID); err != nil {
		return &apperr.CascadeError{BootcampID: bootcampID, Cause: err}
	}
	return nil
}
