package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/goldcrest/banking/pkg/service"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// AuthRoutes registers the authentication endpoints.
func AuthRoutes(app *fiber.App, authSvc *service.AuthService) {
	app.Post("/v1/auth/login", Login(authSvc))
}

// Login verifies credentials and issues a bearer token.
// @Summary Log in
// @Description Verifies username and password and returns a JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /v1/auth/login [post]
func Login(authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginRequest](c)
		if input == nil {
			return err
		}
		user, err := authSvc.Login(c.Context(), input.Username, input.Password)
		if err != nil {
			return DomainErrorJSON(c, "Login failed", err)
		}
		token, err := authSvc.GenerateToken(user)
		if err != nil {
			log.Errorf("failed to sign token: %v", err)
			return DomainErrorJSON(c, "Login failed", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Logged in",
			Data:    LoginResponse{Token: token},
		})
	}
}
