package api

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"

	"mulemobile/internal/domain"
)

type ProductInput struct {
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
	Image         []string `json:"image"`
	InStock       bool     `json:"inStock"`
	IsNew         bool     `json:"isNew"`
	OnSale        bool     `json:"onSale"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type ServiceInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon,omitempty"`
	Features    []string `json:"features"`
}

func (c *Client) AdminProducts(token string) ([]domain.Product, error) {
	const fallback = "Failed to fetch products"
	r, err := c.adminList(token, "/admin/products", fallback)
	if err != nil {
		return nil, err
	}
	return mapArray(r, productOf), nil
}

func (c *Client) CreateProduct(token string, in ProductInput) error {
	return c.adminWrite(token, fiber.MethodPost, "/admin/products", "", in, "Failed to save product")
}

func (c *Client) UpdateProduct(token, id string, in ProductInput) error {
	return c.adminWrite(token, fiber.MethodPut, "/admin/products", id, in, "Failed to save product")
}

func (c *Client) DeleteProduct(token, id string) error {
	return c.adminWrite(token, fiber.MethodDelete, "/admin/products", id, nil, "Failed to delete product")
}

func (c *Client) AdminCategories(token string) ([]domain.Category, error) {
	r, err := c.adminList(token, "/admin/categories", "Failed to fetch categories")
	if err != nil {
		return nil, err
	}
	return mapArray(r, categoryOf), nil
}

func (c *Client) CreateCategory(token string, in CategoryInput) error {
	return c.adminWrite(token, fiber.MethodPost, "/admin/categories", "", in, "Failed to save category")
}

func (c *Client) UpdateCategory(token, id string, in CategoryInput) error {
	return c.adminWrite(token, fiber.MethodPut, "/admin/categories", id, in, "Failed to save category")
}

func (c *Client) DeleteCategory(token, id string) error {
	return c.adminWrite(token, fiber.MethodDelete, "/admin/categories", id, nil, "Failed to delete category")
}

func (c *Client) AdminServices(token string) ([]domain.Service, error) {
	r, err := c.adminList(token, "/admin/services", "Failed to fetch services")
	if err != nil {
		return nil, err
	}
	return mapArray(r, serviceOf), nil
}

func (c *Client) CreateService(token string, in ServiceInput) error {
	return c.adminWrite(token, fiber.MethodPost, "/admin/services", "", in, "Failed to save service")
}

func (c *Client) UpdateService(token, id string, in ServiceInput) error {
	return c.adminWrite(token, fiber.MethodPut, "/admin/services", id, in, "Failed to save service")
}

func (c *Client) DeleteService(token, id string) error {
	return c.adminWrite(token, fiber.MethodDelete, "/admin/services", id, nil, "Failed to delete service")
}

func (c *Client) Dashboard(token string) (domain.Dashboard, error) {
	const fallback = "Failed to load dashboard"
	body, err := c.send(call{method: fiber.MethodGet, route: "/admin/dashboard", path: "/admin/dashboard", token: token, fallback: fallback})
	if err != nil {
		return domain.Dashboard{}, err
	}
	r, err := parse(body, fallback)
	if err != nil {
		return domain.Dashboard{}, err
	}
	return dashboardOf(r), nil
}

// UploadImages relays image files as multipart field "images" and returns
// the public URLs the API stored them under.
func (c *Client) UploadImages(token string, files []File) ([]string, error) {
	const fallback = "Failed to upload images"
	if len(files) == 0 {
		return []string{}, nil
	}
	body, err := c.send(call{
		method:   fiber.MethodPost,
		route:    "/upload/images",
		path:     "/upload/images",
		token:    token,
		files:    files,
		fallback: fallback,
	})
	if err != nil {
		return nil, err
	}
	r, err := parse(body, fallback)
	if err != nil {
		return nil, err
	}
	return stringList(r.Get("imageUrls")), nil
}

func (c *Client) adminList(token, path, fallback string) (gjson.Result, error) {
	body, err := c.send(call{method: fiber.MethodGet, route: path, path: path, token: token, fallback: fallback})
	if err != nil {
		return gjson.Result{}, err
	}
	return parseArray(body, fallback)
}

func (c *Client) adminWrite(token, method, collection, id string, in any, fallback string) error {
	route, path := collection, collection
	if id != "" {
		route += "/:id"
		path += "/" + url.PathEscape(id)
	}
	_, err := c.send(call{method: method, route: route, path: path, token: token, body: in, fallback: fallback})
	return err
}
