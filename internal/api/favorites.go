package api

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"mulemobile/internal/domain"
)

func (c *Client) ListFavorites(token string) ([]domain.Favorite, error) {
	const fallback = "Failed to fetch favorites"
	body, err := c.send(call{method: fiber.MethodGet, route: "/favorites", path: "/favorites", token: token, fallback: fallback})
	if err != nil {
		return nil, err
	}
	r, err := parseArray(body, fallback)
	if err != nil {
		return nil, err
	}
	return mapArray(r, favoriteOf), nil
}

// AddFavorite returns the created favorite record.
func (c *Client) AddFavorite(token, productID string) (domain.Favorite, error) {
	const fallback = "Failed to add favorite"
	body, err := c.send(call{
		method:   fiber.MethodPost,
		route:    "/favorites",
		path:     "/favorites",
		token:    token,
		body:     map[string]string{"productId": productID},
		fallback: fallback,
	})
	if err != nil {
		return domain.Favorite{}, err
	}
	r, err := parse(body, fallback)
	if err != nil {
		return domain.Favorite{}, err
	}
	fav := favoriteOf(r)
	if fav.Product.ID == "" {
		fav.Product.ID = productID
	}
	return fav, nil
}

func (c *Client) RemoveFavorite(token, productID string) error {
	_, err := c.send(call{
		method:   fiber.MethodDelete,
		route:    "/favorites/:id",
		path:     "/favorites/" + url.PathEscape(productID),
		token:    token,
		fallback: "Failed to remove favorite",
	})
	return err
}

func (c *Client) CheckFavorite(token, productID string) (bool, error) {
	const fallback = "Failed to check favorite"
	body, err := c.send(call{
		method:   fiber.MethodGet,
		route:    "/favorites/:id/check",
		path:     "/favorites/" + url.PathEscape(productID) + "/check",
		token:    token,
		fallback: fallback,
	})
	if err != nil {
		return false, err
	}
	r, err := parse(body, fallback)
	if err != nil {
		return false, err
	}
	return r.Get("isFavorite").Bool(), nil
}
