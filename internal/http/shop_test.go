package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestHomeShowsFeaturedAndServices(t *testing.T) {
	b := newBrowser(t, newStorefront(t))
	p := b.get("/")
	require.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, "iPhone 15 Pro")
	assert.Contains(t, p.Body, "Galaxy Buds FE")
	assert.NotContains(t, p.Body, "USB-C Cable 2m", "only new or discounted items are featured")
	assert.Contains(t, p.Body, "Screen Repair")
	assert.NotEmpty(t, b.cookies["sid"], "first visit gets a session cookie")
}

func TestShopFiltersAndSorts(t *testing.T) {
	b := newBrowser(t, newStorefront(t))

	p := b.get("/shop?category=Smartphones&sort=price-low")
	require.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, "Showing 5 of 10 products")
	assert.NotContains(t, p.Body, "Galaxy Buds FE")
	tecno := strings.Index(p.Body, "Tecno Spark 20")
	redmi := strings.Index(p.Body, "Redmi Note 13")
	iphone := strings.Index(p.Body, "iPhone 15 Pro")
	require.True(t, tecno > 0 && redmi > 0 && iphone > 0)
	assert.Less(t, tecno, redmi)
	assert.Less(t, redmi, iphone)

	p = b.get("/shop?price=under-10000")
	assert.Contains(t, p.Body, "Showing 4 of 10 products")

	p = b.get("/shop?search=galaxy&price=bogus&sort=bogus")
	require.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, "Showing 3 of 10 products")

	p = b.get("/shop?search=zzz-nothing")
	require.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, "No products match your filters.")
}

func TestShopSearchIsFreeText(t *testing.T) {
	b := newBrowser(t, newStorefront(t))

	p := b.get("/shop?search=" + url.QueryEscape("USB-C!"))
	require.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, "Showing 0 of 10 products")
	assert.Contains(t, p.Body, `value="USB-C!"`)

	p = b.get("/shop?search=" + url.QueryEscape("  usb-c "))
	require.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, "Showing 1 of 10 products")
	assert.Contains(t, p.Body, "USB-C Cable 2m")

	p = b.get("/shop?search=" + url.QueryEscape("<script>"))
	require.Equal(t, http.StatusOK, p.Status)
	assert.NotContains(t, p.Body, `value="<script>"`)
	assert.Contains(t, p.Body, "No products match your filters.")
}

func TestShopRejectsOverLongSearch(t *testing.T) {
	b := newBrowser(t, newStorefront(t))
	p := b.get("/shop?search=" + strings.Repeat("a", 81))
	assert.Equal(t, http.StatusBadRequest, p.Status)
	assert.Contains(t, p.Body, "Search must be 80 characters or fewer")
}

func TestProductDetail(t *testing.T) {
	b := newBrowser(t, newStorefront(t))

	p := b.get("/product/pixel-8")
	require.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, "Google Pixel 8")
	assert.Contains(t, p.Body, "-10%")
	assert.Contains(t, p.Body, "Related products")
	assert.NotContains(t, p.Body, "Add to favorites", "favorites need a session")

	p = b.get("/product/ipad-air")
	assert.Contains(t, p.Body, "Out of stock")

	p = b.get("/product/does-not-exist")
	assert.Equal(t, http.StatusNotFound, p.Status)
	assert.Contains(t, p.Body, "no longer available")
}

func TestTypeAheadSearch(t *testing.T) {
	b := newBrowser(t, newStorefront(t))

	p := b.get("/api/search?q=galaxy")
	require.Equal(t, http.StatusOK, p.Status)
	assert.Equal(t, int64(3), gjson.Get(p.Body, "total").Int())
	assert.Len(t, gjson.Get(p.Body, "results").Array(), 3)

	p = b.get("/api/search?q=e")
	assert.Greater(t, gjson.Get(p.Body, "total").Int(), int64(5))
	assert.Len(t, gjson.Get(p.Body, "results").Array(), 5)

	p = b.get("/api/search?q=")
	assert.Equal(t, int64(0), gjson.Get(p.Body, "total").Int())

	p = b.get("/api/search?q=" + url.QueryEscape("USB-C!"))
	require.Equal(t, http.StatusOK, p.Status)
	assert.Equal(t, int64(0), gjson.Get(p.Body, "total").Int())

	p = b.get("/api/search?q=" + strings.Repeat("a", 81))
	assert.Equal(t, http.StatusBadRequest, p.Status)
}

func TestStaticPagesAndNotFound(t *testing.T) {
	b := newBrowser(t, newStorefront(t))
	for _, path := range []string{"/services", "/about", "/contact", "/login"} {
		assert.Equal(t, http.StatusOK, b.get(path).Status, path)
	}
	p := b.get("/nowhere")
	assert.Equal(t, http.StatusNotFound, p.Status)
	assert.Contains(t, p.Body, "Page not found")
}
