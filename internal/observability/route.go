package observability

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// UnmatchedRoute is the metrics key for requests that never reached a route
// handler: unknown paths and requests rejected by a middleware.
const UnmatchedRoute = "unmatched"

type routeMatchedKey struct{}

// Matched wraps a route handler so metrics key the request by its route
// pattern instead of UnmatchedRoute.
func Matched(handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(routeMatchedKey{}, true)
		return handler(c)
	}
}

// RouteKey returns the bounded metrics key for the request. It is only
// meaningful after the handler chain has run.
func RouteKey(c *fiber.Ctx) string {
	if matched, _ := c.Locals(routeMatchedKey{}).(bool); !matched {
		return UnmatchedRoute
	}
	if r := c.Route(); r != nil && r.Path != "" {
		return utils.CopyString(r.Path)
	}
	return UnmatchedRoute
}
