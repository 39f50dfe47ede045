package handlers

import "github.com/gofiber/fiber/v2"

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	count := 0
	if s := current(c); s != nil {
		count = s.Cart.Count()
	}
	data["CartCount"] = count
	if _, ok := data["SearchText"]; !ok {
		data["SearchText"] = ""
	}
	// Pick up the token the CSRF middleware put into Locals, else the cookie.
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	return c.Render(tmpl, data)
}

func notFound(c *fiber.Ctx, status int, msg string) error {
	return render(c.Status(status), "notfound", fiber.Map{"Message": msg})
}

// ErrorPage renders the friendly error page from outside the route table,
// e.g. error handlers and rate limiters.
func ErrorPage(c *fiber.Ctx, status int, msg string) error {
	return notFound(c, status, msg)
}
