package store

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mulemobile/internal/domain"
)

type PriceBucket string

const (
	PriceAll       PriceBucket = "all"
	PriceUnder10k  PriceBucket = "under-10000"
	Price10kTo50k  PriceBucket = "10000-50000"
	Price50kTo100k PriceBucket = "50000-100000"
	PriceOver100k  PriceBucket = "over-100000"
)

var PriceBuckets = []PriceBucket{PriceAll, PriceUnder10k, Price10kTo50k, Price50kTo100k, PriceOver100k}

// bounds returns the half-open interval [lo, hi); hi < 0 means unbounded.
func (b PriceBucket) bounds() (lo, hi float64) {
	switch b {
	case PriceUnder10k:
		return 0, 10000
	case Price10kTo50k:
		return 10000, 50000
	case Price50kTo100k:
		return 50000, 100000
	case PriceOver100k:
		return 100000, -1
	}
	return 0, -1
}

func (b PriceBucket) Contains(price float64) bool {
	if b == PriceAll {
		return true
	}
	lo, hi := b.bounds()
	return price >= lo && (hi < 0 || price < hi)
}

func (b PriceBucket) Label() string {
	switch b {
	case PriceUnder10k:
		return "Under 10,000 ETB"
	case Price10kTo50k:
		return "10,000 - 50,000 ETB"
	case Price50kTo100k:
		return "50,000 - 100,000 ETB"
	case PriceOver100k:
		return "Over 100,000 ETB"
	}
	return "All prices"
}

func ParsePriceBucket(s string) PriceBucket {
	for _, b := range PriceBuckets {
		if string(b) == s {
			return b
		}
	}
	return PriceAll
}

type SortKey string

const (
	SortName      SortKey = "name"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortNewest    SortKey = "newest"
)

var SortKeys = []SortKey{SortName, SortPriceLow, SortPriceHigh, SortNewest}

func ParseSortKey(s string) SortKey {
	for _, k := range SortKeys {
		if string(k) == s {
			return k
		}
	}
	return SortName
}

const CategoryAll = "all"

// Query is the shop's search/filter/sort state.
type Query struct {
	Text     string
	Category string
	Price    PriceBucket
	Sort     SortKey
}

// ActiveFilters counts the non-default filters. Sort does not count.
func (q Query) ActiveFilters() int {
	n := 0
	if strings.TrimSpace(q.Text) != "" {
		n++
	}
	if q.Category != "" && q.Category != CategoryAll {
		n++
	}
	if q.Price != "" && q.Price != PriceAll {
		n++
	}
	return n
}

// Filter derives the visible product list. It never modifies products.
func Filter(products []domain.Product, q Query) []domain.Product {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if text != "" && !containsFold(text, p.Name, p.Category.Name, p.Description) {
			continue
		}
		if q.Category != "" && q.Category != CategoryAll && p.Category.Name != q.Category {
			continue
		}
		if !ParsePriceBucket(string(q.Price)).Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}
	sortProducts(out, ParseSortKey(string(q.Sort)))
	return out
}

func sortProducts(ps []domain.Product, key SortKey) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price < ps[j].Price })
	case SortPriceHigh:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Price > ps[j].Price })
	case SortNewest:
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].IsNew && !ps[j].IsNew })
	default:
		col := collate.New(language.English)
		sort.SliceStable(ps, func(i, j int) bool { return col.CompareString(ps[i].Name, ps[j].Name) < 0 })
	}
}

// TypeAhead is the navbar search: substring match over name, description,
// category and features, catalog order, no sorting. A blank query matches
// nothing.
func TypeAhead(products []domain.Product, text string) []domain.Product {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return []domain.Product{}
	}
	out := []domain.Product{}
	for _, p := range products {
		if containsFold(text, p.Name, p.Description, p.Category.Name) || containsFold(text, p.Features...) {
			out = append(out, p)
		}
	}
	return out
}

// Featured returns new or on-sale products in catalog order.
func Featured(products []domain.Product) []domain.Product {
	out := []domain.Product{}
	for _, p := range products {
		if p.IsNew || p.OnSale {
			out = append(out, p)
		}
	}
	return out
}

// Related returns up to n other products of the same category.
func Related(product domain.Product, all []domain.Product, n int) []domain.Product {
	out := []domain.Product{}
	for _, p := range all {
		if len(out) == n {
			break
		}
		if p.ID != product.ID && p.Category.Name == product.Category.Name {
			out = append(out, p)
		}
	}
	return out
}

func FindProduct(products []domain.Product, id string) (domain.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func containsFold(lowerNeedle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerNeedle) {
			return true
		}
	}
	return false
}
