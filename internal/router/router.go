package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/sportfitx/class-booking/internal/config"
	"github.com/sportfitx/class-booking/internal/handler"
	"github.com/sportfitx/class-booking/internal/middleware"
)

// Handlers bundles everything the route table needs.  The role source is
// the user repository; it backs the admin and instructor gates with a live
// role lookup per request.
type Handlers struct {
	Token      *handler.TokenHandler
	Users      *handler.UserHandler
	Classes    *handler.ClassHandler
	Selections *handler.SelectionHandler
	Payments   *handler.PaymentHandler
	Roles      middleware.RoleSource
}

// Register wires the full HTTP surface.  Routes fall into four tiers:
// public, token-verified, admin-gated and instructor-gated.  The popular
// listings additionally sit behind the Redis response cache, which is a
// pass-through when rdb is nil.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client, cacheCfg config.CacheConfig) {
	// Liveness and token issuance are open.
	e.GET("/", handler.Root)
	e.POST("/jwt", h.Token.Issue)

	// Public user routes.  Creation happens on first sign-in, before any
	// token exists, so these carry no auth.
	e.GET("/users", h.Users.List)
	e.GET("/users/:email", h.Users.GetByEmail)
	e.POST("/users", h.Users.Create)
	e.PATCH("/users/:id", h.Users.PatchRole)
	e.GET("/instructor", h.Users.Instructors)

	// Public class routes.  The listing filters to approved classes.
	e.GET("/classes", h.Classes.List)
	e.POST("/classes", h.Classes.Create)
	e.PUT("/classes/:id", h.Classes.Update)

	// Popular listings, cached.
	cache := middleware.ResponseCache(rdb, cacheCfg)
	e.GET("/popular-classes", h.Classes.Popular, cache)
	e.GET("/popular-instructor", h.Users.PopularInstructors, cache)

	// Intent creation carries no auth (kept as-is from the upstream contract).
	e.POST("/create-payment-intent", h.Payments.CreateIntent)

	// Token-verified routes.
	auth := e.Group("", middleware.JWTAuth(jwtSecret))
	auth.GET("/classes/:id", h.Classes.GetByID)
	auth.GET("/selected-class", h.Selections.List)
	auth.POST("/selected-class", h.Selections.Create)
	auth.DELETE("/selected-class/:id", h.Selections.Delete)
	auth.GET("/payments", h.Payments.List)
	auth.POST("/payments", h.Payments.Settle)

	// Admin routes: token plus a stored-role check on every request.
	admin := e.Group("", middleware.JWTAuth(jwtSecret), middleware.RequireRole(h.Roles, "admin"))
	admin.GET("/manage-users", h.Users.Manage)
	admin.GET("/manage-classes", h.Classes.Manage)

	// Instructor routes.
	instructor := e.Group("", middleware.JWTAuth(jwtSecret), middleware.RequireRole(h.Roles, "instructor"))
	instructor.GET("/my-classes", h.Classes.My)
	instructor.POST("/add-class", h.Classes.Add)
}
