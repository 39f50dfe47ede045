package store

import (
	"errors"
	"sync"

	"mulemobile/internal/domain"
	"mulemobile/internal/localstore"
	"mulemobile/internal/log"
)

const CartKey = "cart"

// Cart is the cart state machine of one session. Every transition is total:
// it replaces the line list with a new one and mirrors it to storage.
type Cart struct {
	mu      sync.Mutex
	storage Storage
	lines   []domain.CartLine
}

// NewCart rehydrates the cart from storage. Missing or corrupt data yields an
// empty cart.
func NewCart(s Storage) *Cart {
	c := &Cart{storage: s, lines: []domain.CartLine{}}
	raw, err := s.Get(CartKey)
	switch {
	case errors.Is(err, localstore.ErrNoKey):
	case err != nil:
		log.Error(nil, "cart.load.fail", err, nil)
	default:
		var lines []domain.CartLine
		if err := json.UnmarshalFromString(raw, &lines); err != nil {
			log.Warn(nil, "cart.load.corrupt", map[string]any{"err": err.Error()})
			break
		}
		c.lines = normalizeLines(lines)
	}
	return c
}

func (c *Cart) Add(p domain.Product) {
	c.apply(func(lines []domain.CartLine) []domain.CartLine { return addLine(lines, p) })
}

func (c *Cart) Remove(productID string) {
	c.apply(func(lines []domain.CartLine) []domain.CartLine { return removeLine(lines, productID) })
}

// SetQuantity replaces a line's quantity; qty <= 0 removes the line.
func (c *Cart) SetQuantity(productID string, qty int) {
	c.apply(func(lines []domain.CartLine) []domain.CartLine { return setQuantity(lines, productID, qty) })
}

func (c *Cart) Clear() {
	c.apply(func([]domain.CartLine) []domain.CartLine { return []domain.CartLine{} })
}

func (c *Cart) Replace(lines []domain.CartLine) {
	c.apply(func([]domain.CartLine) []domain.CartLine { return normalizeLines(lines) })
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Totals() Totals {
	return TotalsOf(c.Lines())
}

func (c *Cart) apply(next func([]domain.CartLine) []domain.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = next(c.lines)
	c.persist()
}

func (c *Cart) persist() {
	raw, err := json.MarshalToString(c.lines)
	if err == nil {
		err = c.storage.Set(CartKey, raw)
	}
	if err != nil {
		log.Error(nil, "cart.persist.fail", err, map[string]any{"lines": len(c.lines)})
	}
}

func addLine(lines []domain.CartLine, p domain.Product) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines)+1)
	found := false
	for _, l := range lines {
		if l.ID == p.ID {
			l.Quantity++
			found = true
		}
		out = append(out, l)
	}
	if !found {
		out = append(out, domain.CartLine{Product: p, Quantity: 1})
	}
	return out
}

func removeLine(lines []domain.CartLine, productID string) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines))
	for _, l := range lines {
		if l.ID != productID {
			out = append(out, l)
		}
	}
	return out
}

func setQuantity(lines []domain.CartLine, productID string, qty int) []domain.CartLine {
	if qty <= 0 {
		return removeLine(lines, productID)
	}
	out := make([]domain.CartLine, len(lines))
	for i, l := range lines {
		if l.ID == productID {
			l.Quantity = qty
		}
		out[i] = l
	}
	return out
}

// normalizeLines folds duplicate ids into the first occurrence and drops
// lines without an id or a positive quantity.
func normalizeLines(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines))
	at := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.ID == "" || l.Quantity < 1 {
			continue
		}
		if i, ok := at[l.ID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		at[l.ID] = len(out)
		out = append(out, l)
	}
	return out
}
