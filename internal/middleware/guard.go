package middleware

import (
	"github.com/gofiber/fiber/v2"

	"klontong/internal/services"
)

// Navigation guard policy, evaluated in order: routes requiring auth
// redirect unauthenticated sessions to /login; routes requiring admin
// redirect non-admin sessions to /products; login and register redirect
// already-authenticated sessions to /products. None of the redirect
// targets require conditions their visitors can fail, so the chain
// terminates.

// RequireAuth redirects unauthenticated sessions to the login screen.
// Attached to a route group, it covers every route below it.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !auth.IsAuthenticated() {
			return c.Redirect("/login")
		}
		return c.Next()
	}
}

// RequireAdmin redirects non-admin sessions to the product list. It runs
// after RequireAuth on admin routes, preserving the evaluation order of
// the guard policy.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !auth.IsAdmin() {
			return c.Redirect("/products")
		}
		return c.Next()
	}
}

// RedirectIfAuthenticated sends sessions that are already logged in away
// from the login and register screens.
func RedirectIfAuthenticated(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if auth.IsAuthenticated() {
			return c.Redirect("/products")
		}
		return c.Next()
	}
}
