package handlers

import (
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"mulemobile/internal/api"
	applog "mulemobile/internal/log"
	"mulemobile/internal/store"
	"mulemobile/internal/validate"
)

type AdminHandler struct {
	API     *api.Client
	Catalog *store.Catalog
}

func token(c *fiber.Ctx) string { return current(c).Auth.Token() }

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Dashboard"}
	dash, err := h.API.Dashboard(token(c))
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		data["Err"] = err.Error()
	}
	orders, err := current(c).Orders.FetchAllAdmin()
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		data["Err"] = err.Error()
	}
	data["Dashboard"] = dash
	data["Summary"] = store.Summarize(orders, time.Now())
	return render(c, "admin_dashboard", data)
}

// GET /admin/orders?q=&category=
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	term := strings.TrimSpace(c.Query("q"))
	category := strings.TrimSpace(c.Query("category", store.CategoryAll))
	data := fiber.Map{"Title": "Orders", "Term": term, "Category": category}
	orders, err := current(c).Orders.FetchAllAdmin()
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		data["Err"] = err.Error()
	}
	visible := store.FilterOrdersByCategory(store.FilterOrders(orders, term), category)
	data["Orders"] = visible
	data["Summary"] = store.Summarize(visible, time.Now())
	data["Categories"] = h.Catalog.CategoryNames(nil)
	return render(c, "admin_orders", data)
}

// GET /admin/users lists the most recent sign-ups from the dashboard.
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	data := fiber.Map{"Title": "Users"}
	dash, err := h.API.Dashboard(token(c))
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		data["Err"] = err.Error()
	}
	data["Users"] = dash.RecentUsers
	data["Total"] = dash.Stats.TotalUsers
	return render(c, "admin_users", data)
}

// ---------- Products ----------

func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	return h.productsPage(c, fiber.StatusOK, "")
}

func (h *AdminHandler) productsPage(c *fiber.Ctx, status int, errMsg string) error {
	data := fiber.Map{"Title": "Products", "Err": errMsg}
	products, err := h.API.AdminProducts(token(c))
	if err != nil {
		applog.Error(c, "admin.products.list.fail", err, nil)
		data["Err"] = err.Error()
	}
	categories, err := h.API.AdminCategories(token(c))
	if err != nil {
		applog.Error(c, "admin.categories.list.fail", err, nil)
	}
	data["Products"] = products
	data["Categories"] = categories
	return render(c.Status(status), "admin_products", data)
}

func productForm(c *fiber.Ctx) (api.ProductInput, string) {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return api.ProductInput{}, "Product name is required (max 60 characters)"
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return api.ProductInput{}, "Enter a valid price"
	}
	in := api.ProductInput{
		Name:        name,
		Price:       price,
		Category:    strings.TrimSpace(c.FormValue("category")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Features:    validate.List(c.FormValue("features")),
		Image:       validate.List(c.FormValue("images")),
		InStock:     validate.Checkbox(c.FormValue("inStock")),
		IsNew:       validate.Checkbox(c.FormValue("isNew")),
		OnSale:      validate.Checkbox(c.FormValue("onSale")),
	}
	if raw := strings.TrimSpace(c.FormValue("originalPrice")); raw != "" {
		orig, ok := validate.Price(raw)
		if !ok {
			return api.ProductInput{}, "Enter a valid original price"
		}
		in.OriginalPrice = &orig
	}
	if in.Category == "" {
		return api.ProductInput{}, "Choose a category"
	}
	return in, ""
}

func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	in, msg := productForm(c)
	if msg != "" {
		applog.Security(c, "validation.fail", map[string]any{"form": "product", "reason": msg})
		return h.productsPage(c, fiber.StatusBadRequest, msg)
	}
	if err := h.API.CreateProduct(token(c), in); err != nil {
		applog.Error(c, "admin.products.create.fail", err, map[string]any{"name": in.Name})
		return h.productsPage(c, failureStatus(err), err.Error())
	}
	applog.Audit(c, "admin.products.create", map[string]any{"name": in.Name, "price": in.Price})
	return c.Redirect("/admin/products")
}

func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}
	in, msg := productForm(c)
	if msg != "" {
		applog.Security(c, "validation.fail", map[string]any{"form": "product", "reason": msg})
		return h.productsPage(c, fiber.StatusBadRequest, msg)
	}
	if err := h.API.UpdateProduct(token(c), id, in); err != nil {
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"product": id})
		return h.productsPage(c, failureStatus(err), err.Error())
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}
	if err := h.API.DeleteProduct(token(c), id); err != nil {
		applog.Error(c, "admin.products.delete.fail", err, map[string]any{"product": id})
		return h.productsPage(c, failureStatus(err), err.Error())
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

// ---------- Categories ----------

func (h *AdminHandler) CategoriesPage(c *fiber.Ctx) error {
	return h.categoriesPage(c, fiber.StatusOK, "")
}

func (h *AdminHandler) categoriesPage(c *fiber.Ctx, status int, errMsg string) error {
	data := fiber.Map{"Title": "Categories", "Err": errMsg}
	categories, err := h.API.AdminCategories(token(c))
	if err != nil {
		applog.Error(c, "admin.categories.list.fail", err, nil)
		data["Err"] = err.Error()
	}
	data["Categories"] = categories
	return render(c.Status(status), "admin_categories", data)
}

func categoryForm(c *fiber.Ctx) (api.CategoryInput, bool) {
	name, ok := validate.Name(c.FormValue("name"))
	return api.CategoryInput{Name: name, Description: strings.TrimSpace(c.FormValue("description"))}, ok
}

func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	in, ok := categoryForm(c)
	if !ok {
		return h.categoriesPage(c, fiber.StatusBadRequest, "Category name is required")
	}
	if err := h.API.CreateCategory(token(c), in); err != nil {
		applog.Error(c, "admin.categories.create.fail", err, map[string]any{"name": in.Name})
		return h.categoriesPage(c, failureStatus(err), err.Error())
	}
	applog.Audit(c, "admin.categories.create", map[string]any{"name": in.Name})
	return c.Redirect("/admin/categories")
}

func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	in, ok := categoryForm(c)
	if !okID || !ok {
		return h.categoriesPage(c, fiber.StatusBadRequest, "Category name is required")
	}
	if err := h.API.UpdateCategory(token(c), id, in); err != nil {
		applog.Error(c, "admin.categories.update.fail", err, map[string]any{"category": id})
		return h.categoriesPage(c, failureStatus(err), err.Error())
	}
	applog.Audit(c, "admin.categories.update", map[string]any{"category": id})
	return c.Redirect("/admin/categories")
}

func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}
	if err := h.API.DeleteCategory(token(c), id); err != nil {
		applog.Error(c, "admin.categories.delete.fail", err, map[string]any{"category": id})
		return h.categoriesPage(c, failureStatus(err), err.Error())
	}
	applog.Audit(c, "admin.categories.delete", map[string]any{"category": id})
	return c.Redirect("/admin/categories")
}

// ---------- Services ----------

func (h *AdminHandler) ServicesPage(c *fiber.Ctx) error {
	return h.servicesPage(c, fiber.StatusOK, "")
}

func (h *AdminHandler) servicesPage(c *fiber.Ctx, status int, errMsg string) error {
	data := fiber.Map{"Title": "Services", "Err": errMsg}
	services, err := h.API.AdminServices(token(c))
	if err != nil {
		applog.Error(c, "admin.services.list.fail", err, nil)
		data["Err"] = err.Error()
	}
	data["Services"] = services
	return render(c.Status(status), "admin_services", data)
}

func serviceForm(c *fiber.Ctx) (api.ServiceInput, bool) {
	title, ok := validate.Name(c.FormValue("title"))
	return api.ServiceInput{
		Title:       title,
		Description: strings.TrimSpace(c.FormValue("description")),
		Icon:        strings.TrimSpace(c.FormValue("icon")),
		Features:    validate.List(c.FormValue("features")),
	}, ok
}

func (h *AdminHandler) CreateService(c *fiber.Ctx) error {
	in, ok := serviceForm(c)
	if !ok {
		return h.servicesPage(c, fiber.StatusBadRequest, "Service title is required")
	}
	if err := h.API.CreateService(token(c), in); err != nil {
		applog.Error(c, "admin.services.create.fail", err, map[string]any{"title": in.Title})
		return h.servicesPage(c, failureStatus(err), err.Error())
	}
	applog.Audit(c, "admin.services.create", map[string]any{"title": in.Title})
	return c.Redirect("/admin/services")
}

func (h *AdminHandler) UpdateService(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	in, ok := serviceForm(c)
	if !okID || !ok {
		return h.servicesPage(c, fiber.StatusBadRequest, "Service title is required")
	}
	if err := h.API.UpdateService(token(c), id, in); err != nil {
		applog.Error(c, "admin.services.update.fail", err, map[string]any{"service": id})
		return h.servicesPage(c, failureStatus(err), err.Error())
	}
	applog.Audit(c, "admin.services.update", map[string]any{"service": id})
	return c.Redirect("/admin/services")
}

func (h *AdminHandler) DeleteService(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid id")
	}
	if err := h.API.DeleteService(token(c), id); err != nil {
		applog.Error(c, "admin.services.delete.fail", err, map[string]any{"service": id})
		return h.servicesPage(c, failureStatus(err), err.Error())
	}
	applog.Audit(c, "admin.services.delete", map[string]any{"service": id})
	return c.Redirect("/admin/services")
}

// ---------- Upload ----------

// Upload relays product images to the API and answers with their URLs.
func (h *AdminHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "expected multipart form"})
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no images"})
	}
	files := make([]api.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return err
		}
		files = append(files, api.File{Name: fh.Filename, Content: content})
	}
	urls, err := h.API.UploadImages(token(c), files)
	if err != nil {
		applog.Error(c, "admin.upload.fail", err, map[string]any{"files": len(files)})
		return c.Status(failureStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	applog.Audit(c, "admin.upload", map[string]any{"files": len(files)})
	return c.JSON(fiber.Map{"imageUrls": urls})
}
