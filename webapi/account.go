package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/goldcrest/banking/pkg/config"
	"github.com/goldcrest/banking/pkg/service"
	"github.com/google/uuid"
)

// CreateAccountRequest is the account-opening payload.
type CreateAccountRequest struct {
	AccountType string `json:"account_type" validate:"required,max=32"`
}

// UpdateAccountRequest patches the account type, the only mutable field.
type UpdateAccountRequest struct {
	AccountType string `json:"account_type" validate:"required,max=32"`
}

// AccountRoutes registers the account endpoints, all owner-only.
func AccountRoutes(app *fiber.App, accountSvc *service.AccountService, authSvc *service.AuthService, cfg *config.App) {
	protected := JwtProtected(*cfg.Jwt)
	app.Post("/v1/accounts", protected, CreateAccount(accountSvc, authSvc))
	app.Get("/v1/accounts", protected, ListAccounts(accountSvc, authSvc))
	app.Get("/v1/accounts/:id", protected, GetAccount(accountSvc, authSvc))
	app.Patch("/v1/accounts/:id", protected, UpdateAccount(accountSvc, authSvc))
	app.Delete("/v1/accounts/:id", protected, DeleteAccount(accountSvc, authSvc))
}

func accountParams(c *fiber.Ctx, authSvc *service.AuthService) (userID, accountID uuid.UUID, err error) {
	accountID, err = uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
	}
	userID, err = currentUserID(c, authSvc)
	if err != nil {
		return uuid.Nil, uuid.Nil, DomainErrorJSON(c, "Unauthorized", err)
	}
	return userID, accountID, nil
}

// CreateAccount opens a new account for the caller.
// @Summary Create a new account
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account details"
// @Success 201 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /v1/accounts [post]
// @Security Bearer
func CreateAccount(accountSvc *service.AccountService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return DomainErrorJSON(c, "Unauthorized", err)
		}
		input, err := BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.CreateAccount(c.Context(), userID, input.AccountType)
		if err != nil {
			log.Errorf("failed to create account: %v", err)
			return DomainErrorJSON(c, "Failed to create account", err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Account created",
			Data:    a,
		})
	}
}

// ListAccounts returns the caller's accounts.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} ProblemDetails
// @Router /v1/accounts [get]
// @Security Bearer
func ListAccounts(accountSvc *service.AccountService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return DomainErrorJSON(c, "Unauthorized", err)
		}
		accounts, err := accountSvc.ListAccounts(c.Context(), userID)
		if err != nil {
			return DomainErrorJSON(c, "Failed to list accounts", err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Accounts", Data: accounts})
	}
}

// GetAccount returns one account owned by the caller.
// @Summary Get account by ID
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} Response
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /v1/accounts/{id} [get]
// @Security Bearer
func GetAccount(accountSvc *service.AccountService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, accountID, err := accountParams(c, authSvc)
		if err != nil {
			return err
		}
		a, err := accountSvc.GetAccount(c.Context(), userID, accountID)
		if err != nil {
			return DomainErrorJSON(c, "Failed to get account", err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Account", Data: a})
	}
}

// UpdateAccount patches the account type.
// @Summary Update account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body UpdateAccountRequest true "Fields to update"
// @Success 200 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /v1/accounts/{id} [patch]
// @Security Bearer
func UpdateAccount(accountSvc *service.AccountService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[UpdateAccountRequest](c)
		if input == nil {
			return err
		}
		userID, accountID, err := accountParams(c, authSvc)
		if err != nil {
			return err
		}
		a, err := accountSvc.UpdateAccountType(c.Context(), userID, accountID, input.AccountType)
		if err != nil {
			return DomainErrorJSON(c, "Failed to update account", err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Account updated", Data: a})
	}
}

// DeleteAccount removes the account and its transaction history.
// @Summary Delete account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 204
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /v1/accounts/{id} [delete]
// @Security Bearer
func DeleteAccount(accountSvc *service.AccountService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, accountID, err := accountParams(c, authSvc)
		if err != nil {
			return err
		}
		if err := accountSvc.DeleteAccount(c.Context(), userID, accountID); err != nil {
			return DomainErrorJSON(c, "Failed to delete account", err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
