package handlers_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"

	"mulemobile/internal/api"
	"mulemobile/internal/config"
	"mulemobile/internal/http/handlers"
	"mulemobile/internal/localstore"
	applog "mulemobile/internal/log"
	"mulemobile/internal/mockapi"
	"mulemobile/internal/mockapi/repos"
	"mulemobile/web"
)

const (
	adminEmail    = "admin@mulemobile.et"
	adminPass     = "Admin123!"
	customerEmail = "sara@mulemobile.et"
	customerPass  = "Customer123!"
)

// newStorefront wires the storefront against a seeded mock API served over
// real HTTP. Extra middleware runs before the route table.
func newStorefront(t *testing.T, middleware ...fiber.Handler) *fiber.App {
	t.Helper()
	apiDB, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = apiDB.Close() })
	mock := mockapi.New(apiDB, config.MockConfig{
		JWTSecret: "test-secret",
		MediaDir:  t.TempDir(),
		PublicURL: "http://media.test",
	}).App()
	srv := httptest.NewServer(adaptor.FiberApp(mock))
	t.Cleanup(srv.Close)

	localDB, err := localstore.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = localDB.Close() })

	app := fiber.New(fiber.Config{Views: web.NewEngine()})
	app.Use(requestid.New())
	for _, m := range middleware {
		app.Use(m)
	}
	deps := handlers.NewDeps(api.New(srv.URL, 5*time.Second), localstore.New(localDB))
	handlers.Routes(app, deps, handlers.Throttles{})
	app.Use(handlers.NotFound)
	return app
}

// browser keeps cookies between requests like a real one would.
type browser struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newBrowser(t *testing.T, app *fiber.App) *browser {
	return &browser{t: t, app: app, cookies: map[string]string{}}
}

type page struct {
	Status   int
	Location string
	Body     string
}

func (b *browser) send(req *http.Request) page {
	b.t.Helper()
	for k, v := range b.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	resp, err := b.app.Test(req, -1)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	for _, c := range resp.Cookies() {
		b.cookies[c.Name] = c.Value
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return page{Status: resp.StatusCode, Location: resp.Header.Get("Location"), Body: string(raw)}
}

func (b *browser) get(path string) page {
	b.t.Helper()
	return b.send(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) page {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.send(req)
}

func (b *browser) upload(path, field, name string, content []byte) page {
	b.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, name)
	require.NoError(b.t, err)
	_, _ = part.Write(content)
	require.NoError(b.t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return b.send(req)
}

func (b *browser) login(email, password string) page {
	b.t.Helper()
	return b.post("/login", url.Values{"email": {email}, "password": {password}})
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu sync.Mutex
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// captureLogs returns the action log lines written while fn ran.
func captureLogs(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	lw := &lockedWriter{w: &buf}
	applog.Logger().SetOutput(lw)
	defer applog.Logger().SetOutput(os.Stdout)
	fn()
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return buf.String()
}
