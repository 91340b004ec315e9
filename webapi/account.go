package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/money"
	accountsvc "github.com/altinbank/core/pkg/service/account"
)

// AccountRoutes mounts the account endpoints.
func AccountRoutes(app *fiber.App, svc *accountsvc.Service) {
	group := app.Group("/api/accounts")
	group.Post("/", OpenAccount(svc))
	group.Get("/:id", GetAccount(svc))
	group.Get("/:id/transactions", ListAccountTransactions(svc))
	group.Put("/:id/deactivate", DeactivateAccount(svc))
	app.Get("/api/users/:id/accounts", ListUserAccounts(svc))
}

// OpenAccountRequest is the DTO for opening an account directly,
// outside the request workflow.
type OpenAccountRequest struct {
	UserID   string `json:"user_id" validate:"required,uuid"`
	Balance  string `json:"balance" validate:"required"`
	Currency string `json:"currency" validate:"required,len=3"`
}

func OpenAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[OpenAccountRequest](c)
		if err != nil {
			return nil // Error already written by helper
		}
		userID, err := uuid.Parse(input.UserID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid identifier", "user_id must be a UUID")
		}
		code, err := currency.ParseCode(input.Currency)
		if err != nil {
			return DomainErrorResponse(c, "Invalid currency", err)
		}
		balance, err := money.NewFromString(input.Balance, code)
		if err != nil {
			return DomainErrorResponse(c, "Invalid balance", err)
		}

		acc, err := svc.Open(c.Context(), userID, balance)
		if err != nil {
			return DomainErrorResponse(c, "Failed to open account", err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Account opened",
			Data:    acc,
		})
	}
}

func GetAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		acc, err := svc.Get(c.Context(), id)
		if err != nil {
			return DomainErrorResponse(c, "Failed to fetch account", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Account fetched",
			Data:    acc,
		})
	}
}

func ListAccountTransactions(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		txs, err := svc.Transactions(c.Context(), id)
		if err != nil {
			return DomainErrorResponse(c, "Failed to fetch transactions", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Transactions fetched",
			Data:    txs,
		})
	}
}

func DeactivateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		if err := svc.Deactivate(c.Context(), id); err != nil {
			return DomainErrorResponse(c, "Failed to deactivate account", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Account deactivated",
		})
	}
}

func ListUserAccounts(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		accounts, err := svc.ListByUser(c.Context(), id)
		if err != nil {
			return DomainErrorResponse(c, "Failed to list accounts", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Accounts fetched",
			Data:    accounts,
		})
	}
}
