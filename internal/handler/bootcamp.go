package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bootcamp-directory/internal/model"
	"github.com/iliyamo/bootcamp-directory/internal/response"
	"github.com/iliyamo/bootcamp-directory/internal/service"
)

// BootcampHandler serves /api/v1/bootcamps.
type BootcampHandler struct {
	Bootcamps *service.BootcampService
}

func NewBootcampHandler(s *service.BootcampService) *BootcampHandler {
	return &BootcampHandler{Bootcamps: s}
}

// List handles GET /api/v1/bootcamps.
func (h *BootcampHandler) List(c echo.Context) error {
	list, err := h.Bootcamps.List(c.Request().Context())
	if err != nil {
		return err
	}
	return response.List(c, list)
}

// Get handles GET /api/v1/bootcamps/:id.
func (h *BootcampHandler) Get(c echo.Context) error {
	b, err := h.Bootcamps.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, b)
}

// Create handles POST /api/v1/bootcamps.
func (h *BootcampHandler) Create(c echo.Context) error {
	var in model.Bootcamp
	if err := c.Bind(&in); err != nil {
		return err
	}
	b, err := h.Bootcamps.Create(c.Request().Context(), &in)
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusCreated, b)
}

// Update handles PUT /api/v1/bootcamps/:id.
func (h *BootcampHandler) Update(c echo.Context) error {
	var patch model.BootcampPatch
	if err := c.Bind(&patch); err != nil {
		return err
	}
	b, err := h.Bootcamps.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, b)
}

// Delete handles DELETE /api/v1/bootcamps/:id.  Courses go first.
func (h *BootcampHandler) Delete(c echo.Context) error {
	if err := h.Bootcamps.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return response.Empty(c)
}

// WithinRadius handles GET /api/v1/bootcamps/radius/:zipcode/:distance.
// The optional unit query parameter is "mi" (default) or "km".
func (h *BootcampHandler) WithinRadius(c echo.Context) error {
	// An unparsable distance is reported by the service like a non-positive one.
	distance, _ := strconv.ParseFloat(c.Param("distance"), 64)
	list, err := h.Bootcamps.WithinRadius(c.Request().Context(), c.Param("zipcode"), distance, c.QueryParam("unit"))
	if err != nil {
		return err
	}
	return response.List(c, list)
}
