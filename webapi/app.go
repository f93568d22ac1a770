package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/goldcrest/banking/pkg/config"
	"github.com/goldcrest/banking/pkg/service"
)

// Deps are the services the HTTP surface is built on.
type Deps struct {
	UserSvc    *service.UserService
	AccountSvc *service.AccountService
	AuthSvc    *service.AuthService
	Cfg        *config.App
}

// NewApp builds the Fiber app with middleware and all routes registered.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			detail := err.Error()
			if status == fiber.StatusInternalServerError {
				detail = "an unexpected error occurred"
			}
			return ProblemDetailsJSON(c, status, utils.StatusMessage(status), detail)
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        deps.Cfg.RateLimit.MaxRequests,
		Expiration: deps.Cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ProblemDetailsJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	AuthRoutes(app, deps.AuthSvc)
	UserRoutes(app, deps.UserSvc, deps.AuthSvc, deps.Cfg)
	AccountRoutes(app, deps.AccountSvc, deps.AuthSvc, deps.Cfg)
	TransactionRoutes(app, deps.AccountSvc, deps.AuthSvc, deps.Cfg)

	return app
}
