package store_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mulemobile/internal/api"
	"mulemobile/internal/domain"
	"mulemobile/internal/localstore"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func memStorage(t *testing.T) *localstore.Scoped {
	t.Helper()
	db, err := localstore.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return localstore.New(db).Scope("test-sid")
}

func stubAPI(t *testing.T, h http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, 2*time.Second)
}

func product(id, name string, price float64, category string) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Category: domain.CategoryRef{Name: category},
		Images:   []string{},
		Features: []string{},
		InStock:  true,
	}
}
