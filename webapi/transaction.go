package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/domain/transaction"
	"github.com/altinbank/core/pkg/engine"
	"github.com/altinbank/core/pkg/money"
)

// TransactionRoutes mounts the transaction endpoints.
func TransactionRoutes(app *fiber.App, eng *engine.Engine) {
	group := app.Group("/api/transactions")
	group.Post("/", SubmitTransaction(eng))
}

// SubmitTransactionRequest is the DTO for submitting a movement.
// Amount is a decimal string to avoid float precision loss in transit.
type SubmitTransactionRequest struct {
	Type          string  `json:"type" validate:"required,oneof=DEBIT CREDIT TRANSFER"`
	Amount        string  `json:"amount" validate:"required"`
	Currency      string  `json:"currency" validate:"required,len=3"`
	FromAccountID *string `json:"from_account_id,omitempty" validate:"omitempty,uuid"`
	ToAccountID   *string `json:"to_account_id,omitempty" validate:"omitempty,uuid"`
}

// SubmitTransaction validates the request and hands the intent to the
// engine.
func SubmitTransaction(eng *engine.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[SubmitTransactionRequest](c)
		if err != nil {
			return nil // Error already written by helper
		}

		code, err := currency.ParseCode(input.Currency)
		if err != nil {
			return DomainErrorResponse(c, "Invalid currency", err)
		}
		amount, err := money.NewFromString(input.Amount, code)
		if err != nil {
			return DomainErrorResponse(c, "Invalid amount", err)
		}
		txType, err := transaction.ParseType(input.Type)
		if err != nil {
			return DomainErrorResponse(c, "Invalid transaction type", err)
		}

		intent := transaction.Intent{Type: txType, Amount: amount}
		if input.FromAccountID != nil {
			id, err := uuid.Parse(*input.FromAccountID)
			if err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid identifier", "from_account_id must be a UUID")
			}
			intent.FromAccountID = &id
		}
		if input.ToAccountID != nil {
			id, err := uuid.Parse(*input.ToAccountID)
			if err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid identifier", "to_account_id must be a UUID")
			}
			intent.ToAccountID = &id
		}

		tx, err := eng.Submit(c.Context(), intent)
		if err != nil {
			return DomainErrorResponse(c, "Transaction rejected", err)
		}

		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Transaction recorded",
			Data:    tx,
		})
	}
}
