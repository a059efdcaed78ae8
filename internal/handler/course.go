package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bootcamp-directory/internal/model"
	"github.com/iliyamo/bootcamp-directory/internal/response"
	"github.com/iliyamo/bootcamp-directory/internal/service"
)

// CourseHandler serves /api/v1/courses and the courses nested under a
// bootcamp.
type CourseHandler struct {
	Courses *service.CourseService
}

func NewCourseHandler(s *service.CourseService) *CourseHandler {
	return &CourseHandler{Courses: s}
}

// List handles GET /api/v1/courses and GET /api/v1/bootcamps/:bootcampId/courses.
func (h *CourseHandler) List(c echo.Context) error {
	list, err := h.Courses.List(c.Request().Context(), c.Param("bootcampId"))
	if err != nil {
		return err
	}
	return response.List(c, list)
}

// Get handles GET /api/v1/courses/:id.
func (h *CourseHandler) Get(c echo.Context) error {
	course, err := h.Courses.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, course)
}

// Create handles POST /api/v1/bootcamps/:bootcampId/courses.
func (h *CourseHandler) Create(c echo.Context) error {
	var in model.Course
	if err := c.Bind(&in); err != nil {
		return err
	}
	course, err := h.Courses.Create(c.Request().Context(), c.Param("bootcampId"), &in)
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusCreated, course)
}

// Delete handles DELETE /api/v1/courses/:id.
func (h *CourseHandler) Delete(c echo.Context) error {
	if err := h.Courses.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return response.Empty(c)
}
