package store

import (
	"sync"

	"mulemobile/internal/domain"
	"mulemobile/internal/log"
)

type FavoritesAPI interface {
	ListFavorites(token string) ([]domain.Favorite, error)
	AddFavorite(token, productID string) (domain.Favorite, error)
	RemoveFavorite(token, productID string) error
	CheckFavorite(token, productID string) (bool, error)
}

// Favorites mirrors the signed-in user's favorites. Local state only changes
// after the API confirmed the change.
type Favorites struct {
	mu      sync.Mutex
	api     FavoritesAPI
	tokens  TokenSource
	items   []domain.Favorite
	lastErr string
}

func NewFavorites(a FavoritesAPI, tokens TokenSource) *Favorites {
	return &Favorites{api: a, tokens: tokens, items: []domain.Favorite{}}
}

func (f *Favorites) FetchAll() error {
	token := f.tokens.Token()
	if token == "" {
		return f.fail(ErrNoSession)
	}
	items, err := f.api.ListFavorites(token)
	if err != nil {
		return f.fail(err)
	}
	f.mu.Lock()
	f.items = items
	f.lastErr = ""
	f.mu.Unlock()
	return nil
}

func (f *Favorites) Add(productID string) error {
	token := f.tokens.Token()
	if token == "" {
		return f.fail(ErrNoSession)
	}
	fav, err := f.api.AddFavorite(token, productID)
	if err != nil {
		return f.fail(err)
	}
	f.mu.Lock()
	f.items = append(append(make([]domain.Favorite, 0, len(f.items)+1), f.items...), fav)
	f.lastErr = ""
	f.mu.Unlock()
	return nil
}

func (f *Favorites) Remove(productID string) error {
	token := f.tokens.Token()
	if token == "" {
		return f.fail(ErrNoSession)
	}
	if err := f.api.RemoveFavorite(token, productID); err != nil {
		return f.fail(err)
	}
	f.mu.Lock()
	kept := make([]domain.Favorite, 0, len(f.items))
	for _, fav := range f.items {
		if fav.Product.ID != productID {
			kept = append(kept, fav)
		}
	}
	f.items = kept
	f.lastErr = ""
	f.mu.Unlock()
	return nil
}

// CheckIsFavorite never fails: no session or a failed call both read as
// false.
func (f *Favorites) CheckIsFavorite(productID string) bool {
	token := f.tokens.Token()
	if token == "" {
		return false
	}
	ok, err := f.api.CheckFavorite(token, productID)
	if err != nil {
		log.Warn(nil, "favorites.check.fail", map[string]any{"product_id": productID, "err": err.Error()})
		return false
	}
	return ok
}

func (f *Favorites) Items() []domain.Favorite {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Favorite, len(f.items))
	copy(out, f.items)
	return out
}

// Contains reports whether productID is among the fetched favorites.
func (f *Favorites) Contains(productID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fav := range f.items {
		if fav.Product.ID == productID {
			return true
		}
	}
	return false
}

func (f *Favorites) LastError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

func (f *Favorites) fail(err error) error {
	f.mu.Lock()
	f.lastErr = err.Error()
	f.mu.Unlock()
	return err
}
