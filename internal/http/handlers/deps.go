package handlers

import (
	"mulemobile/internal/api"
	"mulemobile/internal/localstore"
	"mulemobile/internal/store"
)

type Deps struct {
	API   *api.Client
	Local *localstore.Store

	CatalogHandler   *CatalogHandler
	ProductHandler   *ProductHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	FavoritesHandler *FavoritesHandler
	AuthHandler      *AuthHandler
	AdminHandler     *AdminHandler
}

func NewDeps(client *api.Client, local *localstore.Store) *Deps {
	catalog := store.NewCatalog(client)
	return &Deps{
		API:              client,
		Local:            local,
		CatalogHandler:   &CatalogHandler{Catalog: catalog},
		ProductHandler:   &ProductHandler{Catalog: catalog},
		CartHandler:      &CartHandler{Catalog: catalog},
		OrderHandler:     &OrderHandler{},
		FavoritesHandler: &FavoritesHandler{},
		AuthHandler:      &AuthHandler{},
		AdminHandler:     &AdminHandler{API: client, Catalog: catalog},
	}
}
