package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"mulemobile/internal/domain"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// Login exchanges credentials for a session. The API answers
// {"user": {...}, "token": "..."}; older builds put the user fields at the
// top level next to the token, which is accepted too.
func (c *Client) Login(email, password string) (domain.Session, error) {
	const fallback = "Login failed"
	body, err := c.send(call{
		method:   fiber.MethodPost,
		route:    "/auth/login",
		path:     "/auth/login",
		body:     map[string]string{"email": email, "password": password},
		fallback: fallback,
	})
	if err != nil {
		return domain.Session{}, err
	}
	r, err := parse(body, fallback)
	if err != nil {
		return domain.Session{}, err
	}
	u := r.Get("user")
	if !u.IsObject() {
		u = r
	}
	s := domain.Session{User: userOf(u), Token: r.Get("token").String()}
	if s.Token == "" || !s.Valid() {
		return domain.Session{}, &Error{Message: fallback, Err: errors.New("api: login response without user or token")}
	}
	return s, nil
}

func (c *Client) Register(in RegisterInput) error {
	_, err := c.send(call{
		method:   fiber.MethodPost,
		route:    "/auth/register",
		path:     "/auth/register",
		body:     in,
		fallback: "Signup failed",
	})
	return err
}
