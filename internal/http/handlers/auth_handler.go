package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"mulemobile/internal/log"
	"mulemobile/internal/store"
)

type AuthHandler struct{}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Login", "Email": ""}
	if c.Query("registered") != "" {
		data["Msg"] = "Account created. Please log in."
	}
	return render(c, "login", data)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	auth := current(c).Auth
	email := strings.TrimSpace(c.FormValue("email"))
	if err := auth.Login(email, c.FormValue("password")); err != nil {
		status := fiber.StatusUnauthorized
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			status = fiber.StatusBadRequest
		}
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": err.Error()})
		return render(c.Status(status), "login", fiber.Map{"Title": "Login", "Email": email, "Err": auth.LastError()})
	}
	sess, _ := auth.Session()
	c.Locals("user_id", sess.ID)
	log.Audit(c, "auth.login.success", map[string]any{"email": email, "role": sess.Role})

	to := auth.TakeNavigation()
	if to == "" {
		to = store.HomeRoute
	}
	return c.Redirect(to)
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	auth := current(c).Auth
	in := store.SignupInput{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
		Confirm:  c.FormValue("confirm"),
		Phone:    c.FormValue("phone"),
	}
	if err := auth.Signup(in); err != nil {
		status := fiber.StatusBadRequest
		var verr *store.ValidationError
		if !errors.As(err, &verr) {
			status = failureStatus(err)
		}
		log.Security(c, "auth.signup.fail", map[string]any{"email": in.Email, "reason": err.Error()})
		return render(c.Status(status), "login", fiber.Map{"Title": "Login", "Email": "", "SignupErr": auth.LastError()})
	}
	log.Audit(c, "auth.signup.success", map[string]any{"email": in.Email})
	return c.Redirect("/login?registered=1")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	s := current(c)
	s.Auth.Logout()
	log.Audit(c, "auth.logout", map[string]any{"sid": s.ID})
	return c.Redirect("/")
}
