package mockapi

import (
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	applog "mulemobile/internal/log"
	"mulemobile/internal/validate"
)

type authHandler struct {
	auth *AuthService
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

const minPasswordLen = 6

func (h *authHandler) Register(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Name is required")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "A valid email is required")
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		return fail(c, fiber.StatusBadRequest, "Password must be at least 6 characters")
	}
	phone, ok := validate.Phone(in.Phone)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Phone number is too long")
	}
	if _, err := h.auth.Users.ByEmail(email); err == nil {
		return fail(c, fiber.StatusBadRequest, "User already exists")
	}
	u, err := h.auth.Register(email, name, phone, in.Password)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fail(c, fiber.StatusBadRequest, "User already exists")
		}
		return err
	}
	applog.Audit(c, "mockapi.auth.register", map[string]any{"user_id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully", "user": userView(*u)})
}

func (h *authHandler) Login(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	u, tok, err := h.auth.Login(strings.TrimSpace(in.Email), in.Password)
	if err != nil {
		applog.Security(c, "mockapi.auth.login.fail", map[string]any{"email": in.Email})
		if err == ErrBadCreds {
			return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return err
	}
	applog.Audit(c, "mockapi.auth.login", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{"user": userView(*u), "token": tok})
}
