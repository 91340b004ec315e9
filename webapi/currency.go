package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/altinbank/core/pkg/currency"
	currencysvc "github.com/altinbank/core/pkg/service/currency"
)

// CurrencyRoutes mounts the currency registry endpoints.
func CurrencyRoutes(app *fiber.App, svc *currencysvc.Service) {
	group := app.Group("/api/currencies")
	group.Get("/", ListCurrencies(svc))
	group.Get("/:code", GetCurrency(svc))
	group.Post("/", RegisterCurrency(svc))
	group.Put("/:code/activate", ActivateCurrency(svc))
	group.Put("/:code/deactivate", DeactivateCurrency(svc))
	group.Delete("/:code", DeleteCurrency(svc))
}

// RegisterCurrencyRequest is the DTO for registering a currency.
type RegisterCurrencyRequest struct {
	Code string `json:"code" validate:"required,len=3"`
	Name string `json:"name" validate:"required,max=64"`
}

func ListCurrencies(svc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		currencies, err := svc.List(c.Context())
		if err != nil {
			return DomainErrorResponse(c, "Failed to list currencies", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Currencies fetched",
			Data:    currencies,
		})
	}
}

func GetCurrency(svc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := currency.ParseCode(c.Params("code"))
		if err != nil {
			return DomainErrorResponse(c, "Invalid currency code", err)
		}
		cur, err := svc.Get(c.Context(), code)
		if err != nil {
			return DomainErrorResponse(c, "Failed to fetch currency", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Currency fetched",
			Data:    cur,
		})
	}
}

func RegisterCurrency(svc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[RegisterCurrencyRequest](c)
		if err != nil {
			return nil // Error already written by helper
		}
		cur, err := svc.Register(c.Context(), currency.Code(input.Code), input.Name)
		if err != nil {
			return DomainErrorResponse(c, "Failed to register currency", err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "Currency registered",
			Data:    cur,
		})
	}
}

func ActivateCurrency(svc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := currency.ParseCode(c.Params("code"))
		if err != nil {
			return DomainErrorResponse(c, "Invalid currency code", err)
		}
		if err := svc.Activate(c.Context(), code); err != nil {
			return DomainErrorResponse(c, "Failed to activate currency", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Currency activated",
		})
	}
}

func DeactivateCurrency(svc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := currency.ParseCode(c.Params("code"))
		if err != nil {
			return DomainErrorResponse(c, "Invalid currency code", err)
		}
		if err := svc.Deactivate(c.Context(), code); err != nil {
			return DomainErrorResponse(c, "Failed to deactivate currency", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Currency deactivated",
		})
	}
}

func DeleteCurrency(svc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, err := currency.ParseCode(c.Params("code"))
		if err != nil {
			return DomainErrorResponse(c, "Invalid currency code", err)
		}
		if err := svc.Delete(c.Context(), code); err != nil {
			return DomainErrorResponse(c, "Failed to delete currency", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "Currency deleted",
		})
	}
}
