package store

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mulemobile/internal/domain"
)

const (
	VATRate          = 0.15
	ShippingFee      = 200.0
	FreeShippingOver = 5000.0
)

type Totals struct {
	Items    int
	Subtotal float64
	VAT      float64
	Shipping float64
	Total    float64
}

// TotalsOf prices a cart for display. Nothing here is ever sent to the API:
// orders carry tax-exclusive totals only.
func TotalsOf(lines []domain.CartLine) Totals {
	var t Totals
	for _, l := range lines {
		t.Items += l.Quantity
		t.Subtotal += l.Subtotal()
	}
	t.VAT = VATOf(t.Subtotal)
	if t.Items > 0 && t.Subtotal <= FreeShippingOver {
		t.Shipping = ShippingFee
	}
	t.Total = t.Subtotal + t.VAT + t.Shipping
	return t
}

func VATOf(amount float64) float64 { return amount * VATRate }

func WithVAT(amount float64) float64 { return amount * (1 + VATRate) }

// DiscountPercent is the rounded markdown of price against originalPrice,
// 0 when there is none.
func DiscountPercent(price float64, original *float64) int {
	if original == nil || *original <= 0 || *original <= price {
		return 0
	}
	return int(math.Round((*original - price) / *original * 100))
}

func FormatETB(amount float64) string {
	return message.NewPrinter(language.English).Sprintf("ETB %.2f", amount)
}
