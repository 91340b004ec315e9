package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/domain/card"
	"github.com/altinbank/core/pkg/money"
	requestsvc "github.com/altinbank/core/pkg/service/request"
)

// RequestRoutes mounts the account-request and card-request endpoints.
func RequestRoutes(app *fiber.App, svc *requestsvc.Service) {
	accounts := app.Group("/api/account-requests")
	accounts.Post("/", SubmitAccountRequest(svc))
	accounts.Get("/:id", GetAccountRequest(svc))
	accounts.Put("/:id/approve", ApproveAccountRequest(svc))
	accounts.Put("/:id/reject", RejectAccountRequest(svc))

	cards := app.Group("/api/card-requests")
	cards.Post("/", SubmitCardRequest(svc))
	cards.Get("/:id", GetCardRequest(svc))
	cards.Put("/:id/approve", ApproveCardRequest(svc))
	cards.Put("/:id/reject", RejectCardRequest(svc))
}

// SubmitAccountRequestBody is the DTO for filing an account request.
type SubmitAccountRequestBody struct {
	UserID          string `json:"user_id" validate:"required,uuid"`
	AccountType     string `json:"account_type" validate:"required,max=20"`
	InitialDeposit  string `json:"initial_deposit" validate:"required"`
	DepositCurrency string `json:"deposit_currency" validate:"required,len=3"`
}

// SubmitCardRequestBody is the DTO for filing a card request.
type SubmitCardRequestBody struct {
	AccountID      string `json:"account_id" validate:"required,uuid"`
	CardType       string `json:"card_type" validate:"required,oneof=DEBIT CREDIT PREPAID"`
	Salary         string `json:"salary" validate:"required"`
	SalaryCurrency string `json:"salary_currency" validate:"required,len=3"`
}

// RejectRequestBody carries the operator-supplied rejection reason.
type RejectRequestBody struct {
	Reason string `json:"reason" validate:"required,max=255"`
}

func SubmitAccountRequest(svc *requestsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[SubmitAccountRequestBody](c)
		if err != nil {
			return nil // Error already written by helper
		}
		userID, err := uuid.Parse(input.UserID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid identifier", "user_id must be a UUID")
		}
		code, err := currency.ParseCode(input.DepositCurrency)
		if err != nil {
			return DomainErrorResponse(c, "Invalid currency", err)
		}
		deposit, err := money.NewFromString(input.InitialDeposit, code)
		if err != nil {
			return DomainErrorResponse(c, "Invalid deposit", err)
		}

		req, err := svc.SubmitAccountRequest(c.Context(), userID, input.AccountType, deposit)
		if err != nil {
			return DomainErrorResponse(c, "Failed to submit request", err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Account request submitted",
			Data:    req,
		})
	}
}

func GetAccountRequest(svc *requestsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		req, err := svc.AccountRequest(c.Context(), id)
		if err != nil {
			return DomainErrorResponse(c, "Failed to fetch request", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Account request fetched",
			Data:    req,
		})
	}
}

func ApproveAccountRequest(svc *requestsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		acc, err := svc.ApproveAccountRequest(c.Context(), id)
		if err != nil {
			return DomainErrorResponse(c, "Failed to approve request", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Account request approved",
			Data:    acc,
		})
	}
}

func RejectAccountRequest(svc *requestsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		input, err := BindAndValidate[RejectRequestBody](c)
		if err != nil {
			return nil // Error already written by helper
		}
		if err := svc.RejectAccountRequest(c.Context(), id, input.Reason); err != nil {
			return DomainErrorResponse(c, "Failed to reject request", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Account request rejected",
		})
	}
}

func SubmitCardRequest(svc *requestsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[SubmitCardRequestBody](c)
		if err != nil {
			return nil // Error already written by helper
		}
		accountID, err := uuid.Parse(input.AccountID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid identifier", "account_id must be a UUID")
		}
		cardType, err := card.ParseType(input.CardType)
		if err != nil {
			return DomainErrorResponse(c, "Invalid card type", err)
		}
		code, err := currency.ParseCode(input.SalaryCurrency)
		if err != nil {
			return DomainErrorResponse(c, "Invalid currency", err)
		}
		salary, err := money.NewFromString(input.Salary, code)
		if err != nil {
			return DomainErrorResponse(c, "Invalid salary", err)
		}

		req, err := svc.SubmitCardRequest(c.Context(), accountID, cardType, salary)
		if err != nil {
			return DomainErrorResponse(c, "Failed to submit request", err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Card request submitted",
			Data:    req,
		})
	}
}

func GetCardRequest(svc *requestsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		req, err := svc.CardRequest(c.Context(), id)
		if err != nil {
			return DomainErrorResponse(c, "Failed to fetch request", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Card request fetched",
			Data:    req,
		})
	}
}

// ApproveCardRequest approves a pending card request. The salary gate
// may auto-reject it instead; that outcome is reported as a 200 with no
// card in the payload.
func ApproveCardRequest(svc *requestsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		issued, err := svc.ApproveCardRequest(c.Context(), id)
		if err != nil {
			return DomainErrorResponse(c, "Failed to approve request", err)
		}
		if issued == nil {
			return c.JSON(Response{
				Status:  fiber.StatusOK,
				Message: "Card request rejected: salary below minimum",
			})
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Card request approved",
			Data:    issued,
		})
	}
}

func RejectCardRequest(svc *requestsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		input, err := BindAndValidate[RejectRequestBody](c)
		if err != nil {
			return nil // Error already written by helper
		}
		if err := svc.RejectCardRequest(c.Context(), id, input.Reason); err != nil {
			return DomainErrorResponse(c, "Failed to reject request", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Card request rejected",
		})
	}
}
