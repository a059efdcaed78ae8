package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/bootcamp-directory/internal/apperr"
	"github.com/iliyamo/bootcamp-directory/internal/model"
	"github.com/iliyamo/bootcamp-directory/internal/repository"
)

// CourseStore is the persistence surface for courses.
type CourseStore interface {
	CourseRemover
	Create(ctx context.Context, c *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	ListAll(ctx context.Context) ([]*model.Course, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]*model.Course, error)
	Delete(ctx context.Context, id string) error
}

// CourseService manages the courses that hang off a bootcamp.
type CourseService struct {
	courses   CourseStore
	bootcamps *BootcampService
	validator Validator
	now       func() time.Time
}

// NewCourseService wires a CourseService.  Parent lookups go through the
// bootcamp service so id handling stays identical on both resources.
func NewCourseService(courses CourseStore, bootcamps *BootcampService, v Validator) *CourseService {
	if courses == nil || bootcamps == nil || v == nil {
		panic("nil dependency passed to NewCourseService")
	}
	return &CourseService{courses: courses, bootcamps: bootcamps, validator: v, now: time.Now}
}

// Create adds a course under bootcampID, which must address a stored bootcamp.
func (s *CourseService) Create(ctx context.Context, bootcampID string, in *model.Course) (*model.Course, error) {
	if _, err := s.bootcamps.Get(ctx, bootcampID); err != nil {
		return nil, err
	}
	c := *in
	c.ID = uuid.NewString()
	c.Title = strings.TrimSpace(c.Title)
	c.BootcampID = bootcampID
	c.CreatedAt = s.now().UTC().Truncate(time.Second)
	if err := s.validator.Validate(&c); err != nil {
		return nil, err
	}
	if err := s.courses.Create(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Get returns one course.
func (s *CourseService) Get(ctx context.Context, id string) (*model.Course, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	c, err := s.courses.GetByID(ctx, id)
	if errors.Is(err, repository.ErrCourseNotFound) {
		return nil, &apperr.IdentifierFormatError{Value: id, Cause: err}
	}
	return c, err
}

// List returns every course, or the courses of one bootcamp when bootcampID
// is not empty.
func (s *CourseService) List(ctx context.Context, bootcampID string) ([]*model.Course, error) {
	if bootcampID == "" {
		return s.courses.ListAll(ctx)
	}
	if _, err := s.bootcamps.Get(ctx, bootcampID); err != nil {
		return nil, err
	}
	return s.courses.ListByBootcamp(ctx, bootcampID)
}

// Delete removes a single course.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return &apperr.IdentifierFormatError{Value: id, Cause: err}
		}
		return err
	}
	return nil
}
