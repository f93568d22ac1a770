package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/goldcrest/banking/pkg/config"
	"github.com/goldcrest/banking/pkg/domain"
	"github.com/goldcrest/banking/pkg/service"
	"github.com/google/uuid"
)

// CreateUserRequest is the signup payload.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UpdateUserRequest is a partial update; absent fields stay unchanged.
type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=100"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
}

// UserRoutes registers the user endpoints. Signup is public; everything
// else is owner-only behind the JWT middleware.
func UserRoutes(app *fiber.App, userSvc *service.UserService, authSvc *service.AuthService, cfg *config.App) {
	app.Post("/v1/users", CreateUser(userSvc))
	app.Get("/v1/users/:id", JwtProtected(*cfg.Jwt), GetUser(userSvc, authSvc))
	app.Patch("/v1/users/:id", JwtProtected(*cfg.Jwt), UpdateUser(userSvc, authSvc))
	app.Delete("/v1/users/:id", JwtProtected(*cfg.Jwt), DeleteUser(userSvc, authSvc))
}

// ownUserID parses the path id and checks it against the caller identity.
func ownUserID(c *fiber.Ctx, authSvc *service.AuthService) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid user ID", err.Error())
	}
	callerID, err := currentUserID(c, authSvc)
	if err != nil {
		return uuid.Nil, DomainErrorJSON(c, "Unauthorized", err)
	}
	if id != callerID {
		return uuid.Nil, DomainErrorJSON(c, "Forbidden", domain.ErrForbidden)
	}
	return id, nil
}

// CreateUser registers a new user.
// @Summary Create a new user
// @Description Creates a user with username, full name and password.
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User creation data"
// @Success 201 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /v1/users [post]
func CreateUser(userSvc *service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateUserRequest](c)
		if input == nil {
			return err
		}
		user, err := userSvc.CreateUser(c.Context(), input.Username, input.FullName, input.Password)
		if err != nil {
			log.Errorf("failed to create user: %v", err)
			return DomainErrorJSON(c, "Couldn't create user", err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Created user",
			Data:    user,
		})
	}
}

// GetUser returns the caller's own user record.
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Response
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /v1/users/{id} [get]
// @Security Bearer
func GetUser(userSvc *service.UserService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := ownUserID(c, authSvc)
		if err != nil {
			return err
		}
		user, err := userSvc.GetUser(c.Context(), id)
		if err != nil {
			return DomainErrorJSON(c, "User not found", err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "User found", Data: user})
	}
}

// UpdateUser partially updates the caller's own user record.
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /v1/users/{id} [patch]
// @Security Bearer
func UpdateUser(userSvc *service.UserService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[UpdateUserRequest](c)
		if input == nil {
			return err
		}
		id, err := ownUserID(c, authSvc)
		if err != nil {
			return err
		}
		user, err := userSvc.UpdateUser(c.Context(), id, service.UserUpdate{
			FullName: input.FullName,
			Password: input.Password,
		})
		if err != nil {
			return DomainErrorJSON(c, "Failed to update user", err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "User updated", Data: user})
	}
}

// DeleteUser deletes the caller's own user record. Deletion is blocked
// while the user still owns accounts.
// @Summary Delete user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 204
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /v1/users/{id} [delete]
// @Security Bearer
func DeleteUser(userSvc *service.UserService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := ownUserID(c, authSvc)
		if err != nil {
			return err
		}
		if err := userSvc.DeleteUser(c.Context(), id); err != nil {
			return DomainErrorJSON(c, "Failed to delete user", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
