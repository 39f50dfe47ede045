package store

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"mulemobile/internal/api"
	"mulemobile/internal/domain"
)

type OrdersAPI interface {
	CreateOrder(token string, in api.OrderInput) error
	MyOrders(token string) ([]domain.Order, error)
	AllOrders(token string) ([]domain.Order, error)
}

type Orders struct {
	mu      sync.Mutex
	api     OrdersAPI
	tokens  TokenSource
	lastErr string
}

func NewOrders(a OrdersAPI, tokens TokenSource) *Orders {
	return &Orders{api: a, tokens: tokens}
}

// SubmitCart creates one order per cart line, all in flight at once. The
// first failure is returned; orders that already succeeded stay created.
func (o *Orders) SubmitCart(lines []domain.CartLine) error {
	if len(lines) == 0 {
		return nil
	}
	token := o.tokens.Token()
	if token == "" {
		return o.fail(ErrNoSession)
	}
	var g errgroup.Group
	for _, l := range lines {
		in := api.OrderInput{ProductID: l.ID, Amount: l.Quantity, TotalMoney: l.Subtotal()}
		g.Go(func() error { return o.api.CreateOrder(token, in) })
	}
	if err := g.Wait(); err != nil {
		return o.fail(err)
	}
	o.clearErr()
	return nil
}

func (o *Orders) FetchMine() ([]domain.Order, error) {
	return o.fetch(o.api.MyOrders)
}

func (o *Orders) FetchAllAdmin() ([]domain.Order, error) {
	return o.fetch(o.api.AllOrders)
}

func (o *Orders) fetch(call func(string) ([]domain.Order, error)) ([]domain.Order, error) {
	token := o.tokens.Token()
	if token == "" {
		return []domain.Order{}, o.fail(ErrNoSession)
	}
	orders, err := call(token)
	if err != nil {
		return []domain.Order{}, o.fail(err)
	}
	o.clearErr()
	return orders, nil
}

func (o *Orders) LastError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

func (o *Orders) fail(err error) error {
	o.mu.Lock()
	o.lastErr = err.Error()
	o.mu.Unlock()
	return err
}

func (o *Orders) clearErr() {
	o.mu.Lock()
	o.lastErr = ""
	o.mu.Unlock()
}

// FilterOrders matches user name, user email or product name,
// case-insensitively. A blank term keeps everything.
func FilterOrders(orders []domain.Order, term string) []domain.Order {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]domain.Order, 0, len(orders))
	for _, ord := range orders {
		if term == "" || containsFold(term, ord.User.Name, ord.User.Email, ord.Product.Name) {
			out = append(out, ord)
		}
	}
	return out
}

// FilterOrdersByCategory keeps orders whose product belongs to category;
// "" or "all" keeps everything.
func FilterOrdersByCategory(orders []domain.Order, category string) []domain.Order {
	if category == "" || category == CategoryAll {
		return orders
	}
	out := make([]domain.Order, 0, len(orders))
	for _, ord := range orders {
		if ord.Product.Category.Name == category {
			out = append(out, ord)
		}
	}
	return out
}

type OrderSummary struct {
	Count          int
	Revenue        float64
	RevenueWithVAT float64
	AverageWithVAT float64
	Today          int
	LastWeek       int
	ThisMonth      int
}

// Summarize computes the dashboard order metrics relative to now.
func Summarize(orders []domain.Order, now time.Time) OrderSummary {
	s := OrderSummary{Count: len(orders)}
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)
	for _, o := range orders {
		s.Revenue += o.TotalMoney
		at := o.CreatedAt.In(now.Location())
		if o.CreatedAt.IsZero() {
			continue
		}
		if !at.Before(startOfDay) {
			s.Today++
		}
		if !at.Before(weekAgo) {
			s.LastWeek++
		}
		if !at.Before(startOfMonth) {
			s.ThisMonth++
		}
	}
	s.RevenueWithVAT = WithVAT(s.Revenue)
	if s.Count > 0 {
		s.AverageWithVAT = s.RevenueWithVAT / float64(s.Count)
	}
	return s
}
