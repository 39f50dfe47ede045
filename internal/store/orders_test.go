package store_test

import (
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"mulemobile/internal/domain"
	"mulemobile/internal/store"
)

func TestSubmitCartOneCallPerLine(t *testing.T) {
	var mu sync.Mutex
	totals := map[string]float64{}
	client := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		id := gjson.GetBytes(body, "productId").String()
		mu.Lock()
		totals[id] = gjson.GetBytes(body, "totalMoney").Float()
		mu.Unlock()
		if id == "b" {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"message":"Product out of stock"}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"_id":"o1"}`)
	})

	cart := store.NewCart(memStorage(t))
	cart.Replace([]domain.CartLine{
		{Product: product("a", "A", 100, "X"), Quantity: 2},
		{Product: product("b", "B", 50, "X"), Quantity: 1},
	})

	orders := store.NewOrders(client, staticToken("tok"))
	err := orders.SubmitCart(cart.Lines())
	if err == nil {
		cart.Clear()
	}

	require.Error(t, err)
	assert.Equal(t, "Product out of stock", orders.LastError())
	assert.Equal(t, map[string]float64{"a": 200, "b": 50}, totals)
	assert.Len(t, cart.Lines(), 2, "cart survives a failed submission")
}

func TestSubmitCartWithoutSession(t *testing.T) {
	client := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no call expected")
	})
	orders := store.NewOrders(client, staticToken(""))
	lines := []domain.CartLine{{Product: product("a", "A", 100, "X"), Quantity: 1}}
	require.ErrorIs(t, orders.SubmitCart(lines), store.ErrNoSession)
	require.NoError(t, orders.SubmitCart(nil))
}

func TestFetchMineAndAll(t *testing.T) {
	client := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/orders":
			io.WriteString(w, `[{"_id":"o1","productId":{"_id":"p1","name":"Pixel 8","price":100},"userId":"u1","amount":2,"totalMoney":200}]`)
		case "/orders/getallorders":
			w.WriteHeader(http.StatusForbidden)
			io.WriteString(w, `{"message":"Admin access required"}`)
		}
	})
	orders := store.NewOrders(client, staticToken("tok"))

	mine, err := orders.FetchMine()
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Pixel 8", mine[0].Product.Name)

	all, err := orders.FetchAllAdmin()
	require.Error(t, err)
	assert.Empty(t, all)
	assert.Equal(t, "Admin access required", orders.LastError())
}

func TestFilterAndSummarizeOrders(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	orders := []domain.Order{
		{ID: "1", User: domain.UserRef{Name: "Sara", Email: "sara@mule.et"}, Product: domain.ProductRef{Name: "Pixel 8", Category: domain.CategoryRef{Name: "Phones"}}, TotalMoney: 100, CreatedAt: now.Add(-time.Hour)},
		{ID: "2", User: domain.UserRef{Name: "Abebe", Email: "abebe@mule.et"}, Product: domain.ProductRef{Name: "Buds", Category: domain.CategoryRef{Name: "Audio"}}, TotalMoney: 300, CreatedAt: now.AddDate(0, 0, -3)},
		{ID: "3", User: domain.UserRef{Name: "Sara", Email: "sara@mule.et"}, Product: domain.ProductRef{Name: "Cable"}, TotalMoney: 600, CreatedAt: now.AddDate(0, -1, 0)},
	}

	assert.Len(t, store.FilterOrders(orders, "SARA"), 2)
	assert.Len(t, store.FilterOrders(orders, "buds"), 1)
	assert.Len(t, store.FilterOrders(orders, ""), 3)
	assert.Len(t, store.FilterOrdersByCategory(orders, "Phones"), 1)
	assert.Len(t, store.FilterOrdersByCategory(orders, "all"), 3)

	s := store.Summarize(orders, now)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1000.0, s.Revenue)
	assert.InDelta(t, 1150.0, s.RevenueWithVAT, 1e-9)
	assert.InDelta(t, 1150.0/3, s.AverageWithVAT, 1e-9)
	assert.Equal(t, 1, s.Today)
	assert.Equal(t, 2, s.LastWeek)
	assert.Equal(t, 2, s.ThisMonth)

	assert.Zero(t, store.Summarize(nil, now).AverageWithVAT)
}
