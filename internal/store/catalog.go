package store

import (
	"mulemobile/internal/domain"
	"mulemobile/internal/log"
)

type CatalogAPI interface {
	Products() ([]domain.Product, error)
	Categories() ([]domain.Category, error)
	Services() ([]domain.Service, error)
}

// Catalog is the read side of the shop. Nothing is cached: every page
// fetches fresh data.
type Catalog struct {
	api CatalogAPI
}

func NewCatalog(a CatalogAPI) *Catalog { return &Catalog{api: a} }

func (c *Catalog) Products() ([]domain.Product, error) {
	ps, err := c.api.Products()
	if err != nil {
		log.Error(nil, "catalog.products.fail", err, nil)
		return []domain.Product{}, err
	}
	return ps, nil
}

func (c *Catalog) Categories() ([]domain.Category, error) {
	cs, err := c.api.Categories()
	if err != nil {
		log.Error(nil, "catalog.categories.fail", err, nil)
		return []domain.Category{}, err
	}
	return cs, nil
}

func (c *Catalog) Services() ([]domain.Service, error) {
	ss, err := c.api.Services()
	if err != nil {
		log.Error(nil, "catalog.services.fail", err, nil)
		return []domain.Service{}, err
	}
	return ss, nil
}

// Product looks one product up in the full catalog.
func (c *Catalog) Product(id string) (domain.Product, bool, error) {
	ps, err := c.Products()
	if err != nil {
		return domain.Product{}, false, err
	}
	p, ok := FindProduct(ps, id)
	return p, ok, nil
}

// CategoryNames lists category names for filter dropdowns, falling back to
// the names seen on products when the categories call fails.
func (c *Catalog) CategoryNames(products []domain.Product) []string {
	names := []string{}
	seen := map[string]bool{}
	add := func(n string) {
		if n != "" && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	if cs, err := c.Categories(); err == nil {
		for _, cat := range cs {
			add(cat.Name)
		}
		return names
	}
	for _, p := range products {
		add(p.Category.Name)
	}
	return names
}
