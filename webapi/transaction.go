package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/goldcrest/banking/pkg/config"
	"github.com/goldcrest/banking/pkg/domain"
	"github.com/goldcrest/banking/pkg/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostTransactionRequest is a single posting. Type is accepted
// case-insensitively; a missing amount is zero and rejected by the engine.
type PostTransactionRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type" validate:"required"`
}

// TransactionRoutes registers the ledger endpoints, all owner-only.
func TransactionRoutes(app *fiber.App, accountSvc *service.AccountService, authSvc *service.AuthService, cfg *config.App) {
	protected := JwtProtected(*cfg.Jwt)
	app.Post("/v1/accounts/:id/transactions", protected, PostTransaction(accountSvc, authSvc))
	app.Get("/v1/accounts/:id/transactions", protected, ListTransactions(accountSvc, authSvc))
	app.Get("/v1/accounts/:id/transactions/:txId", protected, GetTransaction(accountSvc, authSvc))
}

// PostTransaction applies a deposit or withdrawal to the account.
// @Summary Post a transaction
// @Description Applies a single deposit or withdrawal and returns the ledger entry.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body PostTransactionRequest true "Posting"
// @Success 201 {object} Response
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 422 {object} ProblemDetails
// @Router /v1/accounts/{id}/transactions [post]
// @Security Bearer
func PostTransaction(accountSvc *service.AccountService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[PostTransactionRequest](c)
		if input == nil {
			return err
		}
		userID, accountID, err := accountParams(c, authSvc)
		if err != nil {
			return err
		}
		txType, err := domain.ParseTransactionType(input.Type)
		if err != nil {
			return DomainErrorJSON(c, "Invalid transaction type", err)
		}
		tx, err := accountSvc.Post(c.Context(), userID, accountID, input.Amount, txType)
		if err != nil {
			log.Errorf("posting failed for account %s: %v", accountID, err)
			return DomainErrorJSON(c, "Failed to post transaction", err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Transaction created",
			Data:    tx,
		})
	}
}

// ListTransactions returns the account's ledger in creation order.
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} Response
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /v1/accounts/{id}/transactions [get]
// @Security Bearer
func ListTransactions(accountSvc *service.AccountService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, accountID, err := accountParams(c, authSvc)
		if err != nil {
			return err
		}
		txs, err := accountSvc.ListTransactions(c.Context(), userID, accountID)
		if err != nil {
			return DomainErrorJSON(c, "Failed to list transactions", err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Transactions", Data: txs})
	}
}

// GetTransaction returns one ledger entry.
// @Summary Get transaction by ID
// @Tags transactions
// @Produce json
// @Param id path string true "Account ID"
// @Param txId path string true "Transaction ID"
// @Success 200 {object} Response
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /v1/accounts/{id}/transactions/{txId} [get]
// @Security Bearer
func GetTransaction(accountSvc *service.AccountService, authSvc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, accountID, err := accountParams(c, authSvc)
		if err != nil {
			return err
		}
		txID, err := uuid.Parse(c.Params("txId"))
		if err != nil {
			return ProblemDetailsJSON(c, fiber.StatusBadRequest, "Invalid transaction ID", err.Error())
		}
		tx, err := accountSvc.GetTransaction(c.Context(), userID, accountID, txID)
		if err != nil {
			return DomainErrorJSON(c, "Failed to get transaction", err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Transaction", Data: tx})
	}
}
