// Package webapi exposes the core over HTTP with fiber. Handlers parse
// and validate DTOs, call the services, and translate domain errors
// into problem-details responses; no business rules live here.
package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/altinbank/core/pkg/engine"
	accountsvc "github.com/altinbank/core/pkg/service/account"
	currencysvc "github.com/altinbank/core/pkg/service/currency"
	requestsvc "github.com/altinbank/core/pkg/service/request"
	usersvc "github.com/altinbank/core/pkg/service/user"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Engine   *engine.Engine
	Accounts *accountsvc.Service
	Currency *currencysvc.Service
	Requests *requestsvc.Service
	Users    *usersvc.Service
}

// NewApp builds the fiber application with all routes mounted.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	TransactionRoutes(app, deps.Engine)
	AccountRoutes(app, deps.Accounts)
	CurrencyRoutes(app, deps.Currency)
	RequestRoutes(app, deps.Requests)
	UserRoutes(app, deps.Users)

	return app
}
