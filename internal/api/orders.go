package api

import (
	"github.com/gofiber/fiber/v2"

	"mulemobile/internal/domain"
)

// OrderInput is one order line. TotalMoney is Amount x unit price, before tax.
type OrderInput struct {
	ProductID  string  `json:"productId"`
	Amount     int     `json:"amount"`
	TotalMoney float64 `json:"totalMoney"`
}

func (c *Client) CreateOrder(token string, in OrderInput) error {
	_, err := c.send(call{
		method:   fiber.MethodPost,
		route:    "/orders",
		path:     "/orders",
		token:    token,
		body:     in,
		fallback: "Failed to place order",
	})
	return err
}

func (c *Client) MyOrders(token string) ([]domain.Order, error) {
	return c.orders(token, "/orders", "Failed to fetch orders")
}

func (c *Client) AllOrders(token string) ([]domain.Order, error) {
	return c.orders(token, "/orders/getallorders", "Failed to fetch all orders")
}

func (c *Client) orders(token, path, fallback string) ([]domain.Order, error) {
	body, err := c.send(call{method: fiber.MethodGet, route: path, path: path, token: token, fallback: fallback})
	if err != nil {
		return nil, err
	}
	r, err := parseArray(body, fallback)
	if err != nil {
		return nil, err
	}
	return mapArray(r, orderOf), nil
}
