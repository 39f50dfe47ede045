package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallsAreCountedByRouteAndStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/services" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()
	c := New(srv.URL, 2*time.Second)

	ok := requestsTotal.WithLabelValues("GET", "/categories", "200")
	down := requestsTotal.WithLabelValues("GET", "/services", "503")
	okBefore, downBefore := testutil.ToFloat64(ok), testutil.ToFloat64(down)

	_, err := c.Categories()
	require.NoError(t, err)
	_, err = c.Services()
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, StatusOf(err))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, downBefore+1, testutil.ToFloat64(down))
}
