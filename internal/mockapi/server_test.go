package mockapi_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"mulemobile/internal/config"
	"mulemobile/internal/mockapi"
	"mulemobile/internal/mockapi/repos"
)

func newAPI(t *testing.T) (*fiber.App, string) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	media := t.TempDir()
	cfg := config.MockConfig{MediaDir: media, PublicURL: "http://api.test", JWTSecret: "test-secret"}
	return mockapi.New(db, cfg).App(), media
}

func call(t *testing.T, app *fiber.App, method, path, token, body string) (int, gjson.Result) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, gjson.ParseBytes(raw)
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	code, res := call(t, app, http.MethodPost, "/auth/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, code, res.Raw)
	return res.Get("token").String()
}

func TestLoginAndRegister(t *testing.T) {
	app, _ := newAPI(t)

	code, res := call(t, app, http.MethodPost, "/auth/login", "", `{"email":"admin@mulemobile.et","password":"Admin123!"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "admin", res.Get("user.role").String())
	assert.Equal(t, "u-admin", res.Get("user._id").String())
	assert.NotEmpty(t, res.Get("token").String())

	code, res = call(t, app, http.MethodPost, "/auth/login", "", `{"email":"admin@mulemobile.et","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password", res.Get("message").String())

	code, _ = call(t, app, http.MethodPost, "/auth/register", "", `{"name":"Hana","email":"hana@mule.et","password":"hana123","phone":"0911223344"}`)
	require.Equal(t, http.StatusCreated, code)
	code, res = call(t, app, http.MethodPost, "/auth/register", "", `{"name":"Hana","email":"HANA@mule.et","password":"hana123"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User already exists", res.Get("message").String())

	assert.NotEmpty(t, login(t, app, "hana@mule.et", "hana123"))

	code, res = call(t, app, http.MethodPost, "/auth/register", "", `{"name":"Abel","email":"abel@mule.et","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Password must be at least 6 characters", res.Get("message").String())
	code, _ = call(t, app, http.MethodPost, "/auth/register", "", `{"name":"Abel","email":"abel@mule.et","password":"secretpw","phone":"+1 415 555 0100"}`)
	assert.Equal(t, http.StatusCreated, code)
}

func TestProductsArePopulated(t *testing.T) {
	app, _ := newAPI(t)
	code, res := call(t, app, http.MethodGet, "/products", "", "")
	require.Equal(t, http.StatusOK, code)
	require.True(t, res.IsArray())
	assert.Len(t, res.Array(), 10)

	var iphone gjson.Result
	for _, p := range res.Array() {
		if p.Get("_id").String() == "iphone-15-pro" {
			iphone = p
		}
	}
	require.True(t, iphone.Exists())
	assert.Equal(t, "Smartphones", iphone.Get("category.name").String())
	assert.Equal(t, 155000.0, iphone.Get("originalPrice").Float())
	assert.True(t, iphone.Get("image").IsArray())

	code, res = call(t, app, http.MethodGet, "/services", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, res.Get("0.title").String())
}

func TestFavoritesFlow(t *testing.T) {
	app, _ := newAPI(t)
	code, _ := call(t, app, http.MethodGet, "/favorites", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = call(t, app, http.MethodGet, "/favorites", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	tok := login(t, app, "sara@mulemobile.et", "Customer123!")

	code, res := call(t, app, http.MethodPost, "/favorites", tok, `{"productId":"pixel-8"}`)
	require.Equal(t, http.StatusCreated, code, res.Raw)
	assert.Equal(t, "pixel-8", res.Get("product._id").String())
	assert.Equal(t, "u-sara", res.Get("user").String())

	code, res = call(t, app, http.MethodPost, "/favorites", tok, `{"productId":"pixel-8"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Product already in favorites", res.Get("message").String())

	_, res = call(t, app, http.MethodGet, "/favorites/pixel-8/check", tok, "")
	assert.True(t, res.Get("isFavorite").Bool())

	_, res = call(t, app, http.MethodGet, "/favorites", tok, "")
	assert.Len(t, res.Array(), 1)

	code, _ = call(t, app, http.MethodDelete, "/favorites/pixel-8", tok, "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(t, app, http.MethodDelete, "/favorites/pixel-8", tok, "")
	assert.Equal(t, http.StatusNotFound, code)

	_, res = call(t, app, http.MethodGet, "/favorites/pixel-8/check", tok, "")
	assert.False(t, res.Get("isFavorite").Bool())
}

func TestOrders(t *testing.T) {
	app, _ := newAPI(t)
	tok := login(t, app, "sara@mulemobile.et", "Customer123!")

	code, res := call(t, app, http.MethodPost, "/orders", tok, `{"productId":"usb-c-cable","amount":2,"totalMoney":900}`)
	require.Equal(t, http.StatusCreated, code, res.Raw)
	assert.Equal(t, 900.0, res.Get("totalMoney").Float())

	code, res = call(t, app, http.MethodPost, "/orders", tok, `{"productId":"ipad-air","amount":1,"totalMoney":89000}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, res.Get("message").String(), "out of stock")

	_, res = call(t, app, http.MethodGet, "/orders", tok, "")
	require.Len(t, res.Array(), 1)
	assert.Equal(t, "USB-C Cable 2m", res.Get("0.productId.name").String())
	assert.Equal(t, "u-sara", res.Get("0.userId").String())

	code, _ = call(t, app, http.MethodGet, "/orders/getallorders", tok, "")
	assert.Equal(t, http.StatusForbidden, code)

	admin := login(t, app, "admin@mulemobile.et", "Admin123!")
	code, res = call(t, app, http.MethodGet, "/orders/getallorders", admin, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "sara@mulemobile.et", res.Get("0.userId.email").String())
	assert.Equal(t, "Accessories", res.Get("0.productId.category.name").String())
}

func TestAdminCRUDAndDashboard(t *testing.T) {
	app, _ := newAPI(t)
	admin := login(t, app, "admin@mulemobile.et", "Admin123!")

	code, res := call(t, app, http.MethodPost, "/admin/products", admin,
		`{"name":"Nokia G42","price":21000,"category":"smartphones","features":["5G"],"image":["/media/x.jpg"],"inStock":true,"isNew":true}`)
	require.Equal(t, http.StatusCreated, code, res.Raw)
	id := res.Get("_id").String()
	assert.Equal(t, "Smartphones", res.Get("category.name").String())

	code, res = call(t, app, http.MethodPut, "/admin/products/"+id, admin, `{"name":"Nokia G42 5G","price":20000,"category":"Smartphones"}`)
	require.Equal(t, http.StatusOK, code, res.Raw)
	assert.Equal(t, "Nokia G42 5G", res.Get("name").String())

	code, _ = call(t, app, http.MethodPost, "/admin/products", admin, `{"name":"X","price":1,"category":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, app, http.MethodDelete, "/admin/products/"+id, admin, "")
	assert.Equal(t, http.StatusOK, code)

	code, res = call(t, app, http.MethodPost, "/admin/categories", admin, `{"name":"Laptops"}`)
	require.Equal(t, http.StatusCreated, code)
	catID := res.Get("_id").String()
	code, _ = call(t, app, http.MethodPut, "/admin/categories/"+catID, admin, `{"name":"Notebooks"}`)
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(t, app, http.MethodDelete, "/admin/categories/smartphones", admin, "")
	assert.Equal(t, http.StatusBadRequest, code, "category with products is protected")

	code, res = call(t, app, http.MethodPost, "/admin/services", admin, `{"title":"Unlocking","features":["All carriers"]}`)
	require.Equal(t, http.StatusCreated, code)
	code, _ = call(t, app, http.MethodDelete, "/admin/services/"+res.Get("_id").String(), admin, "")
	assert.Equal(t, http.StatusOK, code)

	code, res = call(t, app, http.MethodGet, "/admin/dashboard", admin, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(10), res.Get("stats.totalProducts").Int())
	assert.Equal(t, int64(6), res.Get("stats.totalCategories").Int())
	assert.Equal(t, int64(2), res.Get("stats.totalUsers").Int())
	assert.Len(t, res.Get("recent.products").Array(), 5)

	customer := login(t, app, "sara@mulemobile.et", "Customer123!")
	code, _ = call(t, app, http.MethodGet, "/admin/dashboard", customer, "")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestUploadImages(t *testing.T) {
	app, media := newAPI(t)
	admin := login(t, app, "admin@mulemobile.et", "Admin123!")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("images", "front.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("not really a png"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload/images", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	urls := gjson.GetBytes(raw, "imageUrls").Array()
	require.Len(t, urls, 1)
	assert.True(t, strings.HasPrefix(urls[0].String(), "http://api.test/media/uploads/"))
	_, err = os.Stat(filepath.Join(media, "uploads", filepath.Base(urls[0].String())))
	assert.NoError(t, err)
}
