package api

import (
	"github.com/gofiber/fiber/v2"

	"mulemobile/internal/domain"
)

func (c *Client) Products() ([]domain.Product, error) {
	const fallback = "Failed to fetch products"
	body, err := c.send(call{method: fiber.MethodGet, route: "/products", path: "/products", fallback: fallback})
	if err != nil {
		return nil, err
	}
	r, err := parseArray(body, fallback)
	if err != nil {
		return nil, err
	}
	return mapArray(r, productOf), nil
}

func (c *Client) Categories() ([]domain.Category, error) {
	const fallback = "Failed to fetch categories"
	body, err := c.send(call{method: fiber.MethodGet, route: "/categories", path: "/categories", fallback: fallback})
	if err != nil {
		return nil, err
	}
	r, err := parseArray(body, fallback)
	if err != nil {
		return nil, err
	}
	return mapArray(r, categoryOf), nil
}

func (c *Client) Services() ([]domain.Service, error) {
	const fallback = "Failed to fetch services"
	body, err := c.send(call{method: fiber.MethodGet, route: "/services", path: "/services", fallback: fallback})
	if err != nil {
		return nil, err
	}
	r, err := parseArray(body, fallback)
	if err != nil {
		return nil, err
	}
	return mapArray(r, serviceOf), nil
}
