package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/altinbank/core/pkg/domain/user"
	usersvc "github.com/altinbank/core/pkg/service/user"
)

// UserRoutes mounts the user endpoints.
func UserRoutes(app *fiber.App, svc *usersvc.Service) {
	group := app.Group("/api/users")
	group.Post("/", RegisterUser(svc))
	group.Get("/:id", GetUser(svc))
}

// RegisterUserRequest is the DTO for creating a user.
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// userView hides the password hash from responses.
type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toUserView(u *user.User) userView {
	return userView{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
	}
}

func RegisterUser(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[RegisterUserRequest](c)
		if err != nil {
			return nil // Error already written by helper
		}
		u, err := svc.Register(c.Context(), input.Username, input.Email, input.Password)
		if err != nil {
			return DomainErrorResponse(c, "Failed to register user", err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status:  fiber.StatusCreated,
			Message: "User registered",
			Data:    toUserView(u),
		})
	}
}

func GetUser(svc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return nil
		}
		u, err := svc.Get(c.Context(), id)
		if err != nil {
			return DomainErrorResponse(c, "Failed to fetch user", err)
		}
		return c.JSON(Response{
			Status:  fiber.StatusOK,
			Message: "User fetched",
			Data:    toUserView(u),
		})
	}
}
