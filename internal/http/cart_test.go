package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addToCart(b *browser, id string) page {
	b.t.Helper()
	return b.post("/cart", url.Values{"productId": {id}})
}

func TestCartLifecycle(t *testing.T) {
	b := newBrowser(t, newStorefront(t))

	p := addToCart(b, "usb-c-cable")
	require.Equal(t, http.StatusFound, p.Status)
	assert.Equal(t, "/cart", p.Location)
	addToCart(b, "usb-c-cable")

	p = b.get("/cart")
	require.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, "Cart (2)")
	assert.Contains(t, p.Body, `value="2"`)
	assert.Contains(t, p.Body, "ETB 900.00")
	assert.Contains(t, p.Body, "ETB 135.00", "15% VAT")
	assert.Contains(t, p.Body, "ETB 200.00", "shipping under the free threshold")

	p = b.post("/cart/quantity", url.Values{"productId": {"usb-c-cable"}, "qty": {"5"}})
	assert.Equal(t, http.StatusFound, p.Status)
	assert.Contains(t, b.get("/cart").Body, "Cart (5)")

	p = b.post("/cart/quantity", url.Values{"productId": {"usb-c-cable"}, "qty": {"lots"}})
	assert.Equal(t, http.StatusBadRequest, p.Status)

	p = b.post("/cart/quantity", url.Values{"productId": {"usb-c-cable"}, "qty": {"0"}})
	assert.Equal(t, http.StatusFound, p.Status)
	assert.Contains(t, b.get("/cart").Body, "Your cart is empty")
}

func TestCartRemoveAndClear(t *testing.T) {
	b := newBrowser(t, newStorefront(t))
	addToCart(b, "usb-c-cable")
	addToCart(b, "anker-65w")

	b.post("/cart/remove", url.Values{"productId": {"usb-c-cable"}})
	p := b.get("/cart")
	assert.NotContains(t, p.Body, "USB-C Cable 2m")
	assert.Contains(t, p.Body, "Anker 65W Charger")

	b.post("/cart/clear", nil)
	assert.Contains(t, b.get("/cart").Body, "Your cart is empty")
}

func TestCartRejectsUnknownAndOutOfStock(t *testing.T) {
	b := newBrowser(t, newStorefront(t))

	p := addToCart(b, "ipad-air")
	assert.Equal(t, http.StatusConflict, p.Status)
	assert.Contains(t, p.Body, "out of stock")

	p = addToCart(b, "no-such-phone")
	assert.Equal(t, http.StatusNotFound, p.Status)

	p = addToCart(b, "../etc/passwd")
	assert.Equal(t, http.StatusBadRequest, p.Status)
}

func TestCartIsPerBrowserSession(t *testing.T) {
	app := newStorefront(t)
	alice := newBrowser(t, app)
	bob := newBrowser(t, app)

	addToCart(alice, "anker-65w")
	assert.Contains(t, alice.get("/cart").Body, "Anker 65W Charger")
	assert.Contains(t, bob.get("/cart").Body, "Your cart is empty")
}

func TestCheckoutSubmitsOrdersAndClearsCart(t *testing.T) {
	b := newBrowser(t, newStorefront(t))
	addToCart(b, "usb-c-cable")
	addToCart(b, "usb-c-cable")
	addToCart(b, "anker-65w")

	p := b.post("/checkout", nil)
	require.Equal(t, http.StatusFound, p.Status)
	assert.Equal(t, "/login", p.Location, "checkout needs a session")
	assert.Contains(t, b.get("/cart").Body, "Cart (3)", "cart survives the redirect")

	p = b.login(customerEmail, customerPass)
	require.Equal(t, http.StatusFound, p.Status)
	assert.Equal(t, "/", p.Location)

	p = b.post("/checkout", nil)
	require.Equal(t, http.StatusFound, p.Status)
	assert.Equal(t, "/profile?ordered=1", p.Location)

	p = b.get(p.Location)
	require.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, "Thank you")
	assert.Contains(t, p.Body, "USB-C Cable 2m")
	assert.Contains(t, p.Body, "Anker 65W Charger")
	assert.Regexp(t, `ETB 1,?035\.00`, p.Body, "900 plus VAT")

	assert.Contains(t, b.get("/cart").Body, "Your cart is empty")
}

func TestCartFormsNeedCSRFToken(t *testing.T) {
	app := newStorefront(t, csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	b := newBrowser(t, app)

	b.get("/shop")
	tok := b.cookies["csrf_"]
	require.NotEmpty(t, tok)

	p := b.post("/cart", url.Values{"productId": {"anker-65w"}})
	assert.Equal(t, http.StatusForbidden, p.Status)

	p = b.post("/cart", url.Values{"productId": {"anker-65w"}, "csrf": {tok}})
	assert.Equal(t, http.StatusFound, p.Status)
}

func TestConcurrentAddsFromOneBrowserAllCount(t *testing.T) {
	app := newStorefront(t)
	b := newBrowser(t, app)
	addToCart(b, "usb-c-cable")
	sid := b.cookies["sid"]
	require.NotEmpty(t, sid)

	const n = 20
	var wg sync.WaitGroup
	statuses := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body := url.Values{"productId": {"usb-c-cable"}}.Encode()
			req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
			resp, err := app.Test(req, -1)
			if err != nil {
				return
			}
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	for _, st := range statuses {
		assert.Equal(t, http.StatusFound, st)
	}
	p := b.get("/cart")
	assert.Contains(t, p.Body, "Cart (21)")
	assert.Contains(t, p.Body, `value="21"`)
}
