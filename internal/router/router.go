package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bootcamp-directory/internal/handler"
	"github.com/iliyamo/bootcamp-directory/internal/middleware"
	"github.com/iliyamo/bootcamp-directory/internal/model"
)

// Deps bundles the handlers and the Redis-backed middleware the routes need.
// Cache, Purge and RateLimit may be nil.
type Deps struct {
	JWTSecret string
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Bootcamps *handler.BootcampHandler
	Courses   *handler.CourseHandler
	Cache     echo.MiddlewareFunc
	Purge     echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
}

// RegisterRoutes mounts every endpoint on e.  Reads are public and cached;
// writes require a publisher or admin token and purge the cache.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", d.Health.Health)

	api := e.Group("/api/v1", optional(d.RateLimit))
	registerAuth(api, d)

	auth := middleware.JWTAuth(d.JWTSecret)
	writer := []echo.MiddlewareFunc{auth, middleware.RequireRole(model.RolePublisher, model.RoleAdmin), optional(d.Purge)}
	cache := optional(d.Cache)

	b := api.Group("/bootcamps")
	b.GET("", d.Bootcamps.List, cache)
	b.GET("/radius/:zipcode/:distance", d.Bootcamps.WithinRadius, cache)
	b.GET("/:id", d.Bootcamps.Get, cache)
	b.POST("", d.Bootcamps.Create, writer...)
	b.PUT("/:id", d.Bootcamps.Update, writer...)
	b.DELETE("/:id", d.Bootcamps.Delete, writer...)

	b.GET("/:bootcampId/courses", d.Courses.List, cache)
	b.POST("/:bootcampId/courses", d.Courses.Create, writer...)

	cs := api.Group("/courses")
	cs.GET("", d.Courses.List, cache)
	cs.GET("/:id", d.Courses.Get, cache)
	cs.DELETE("/:id", d.Courses.Delete, writer...)
}

func registerAuth(api *echo.Group, d Deps) {
	g := api.Group("/auth")
	g.POST("/register", d.Auth.Register)
	g.POST("/login", d.Auth.Login)
	g.POST("/refresh", d.Auth.Refresh)
	g.POST("/logout", d.Auth.Logout)
	g.GET("/me", d.Auth.Me, middleware.JWTAuth(d.JWTSecret))
}

func optional(mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	if mw == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return mw
}
