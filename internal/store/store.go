// Package store holds the per-session state containers of the storefront:
// the cart, the auth session, favorites and orders, plus the pure catalog
// query pipeline that feeds the shop pages.
package store

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Storage is the durable key/value space of one browser session.
// localstore.Scoped is the production implementation.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}

// TokenSource yields the bearer token of the current session, or "".
type TokenSource interface {
	Token() string
}

// ErrNoSession is returned by authenticated operations attempted without a
// session token. No network call is made in that case.
var ErrNoSession = errors.New("no authentication token")
