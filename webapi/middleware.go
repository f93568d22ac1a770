package webapi

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/goldcrest/banking/pkg/config"
	"github.com/goldcrest/banking/pkg/domain"
	"github.com/goldcrest/banking/pkg/service"
	"github.com/google/uuid"
)

// JwtProtected verifies the bearer token and stores the parsed token in
// the request context under "user".
func JwtProtected(cfg config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Missing or malformed JWT", err.Error())
	}
	return ProblemDetailsJSON(c, fiber.StatusUnauthorized, "Invalid or expired JWT", err.Error())
}

// currentUserID extracts the verified caller identity from the request
// context. A request that reached a protected handler without one is
// rejected as forbidden.
func currentUserID(c *fiber.Ctx, authSvc *service.AuthService) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, domain.ErrForbidden
	}
	return authSvc.Subject(token)
}
