package server

import (
	"net/http"
	"time"

	"github.com/smashscrap/marketplace/pkg/server/handler"
	"github.com/smashscrap/marketplace/pkg/server/middleware"
	"github.com/smashscrap/marketplace/pkg/service"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 5 * time.Second
)

func New(addr string, biddingSvc service.Bidding, itemSvc service.Item, packageSvc service.Package, saleSvc service.Sale) (*http.Server, error) {
	mux := http.NewServeMux()

	mux.Handle("/bid", handler.PlaceBid(biddingSvc))
	mux.Handle("/items/bids", handler.BidListForItem(biddingSvc))
	mux.Handle("/items", handler.ItemListPage(itemSvc))
	mux.Handle("/packages", handler.PackageListPage(packageSvc))
	mux.Handle("/sales", handler.SaleListPage(saleSvc))

	chain := middleware.Chain{
		middleware.Log,
		middleware.Recovery,
	}

	return &http.Server{
		Addr:         addr,
		Handler:      chain.Then(mux),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}, nil
}
