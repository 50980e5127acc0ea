package service

import (
	"context"

	"github.com/smashscrap/marketplace/pkg/database"
	"github.com/smashscrap/marketplace/pkg/model"
)

const (
	DefaultPageNum  = 1
	DefaultPageSize = 20
)

type Item interface {
	ListPage(ctx context.Context, filter database.ItemFilter, pageNum, pageSize int) ([]model.Item, int, error)
	Get(ctx context.Context, id int) (*model.Item, error)
}

type ItemGeneric struct {
	ItemRepository database.ItemRepository
}

func (ig *ItemGeneric) ListPage(ctx context.Context, filter database.ItemFilter, pageNum, pageSize int) ([]model.Item, int, error) {
	return ig.ItemRepository.GetPage(ctx, filter, pageNum, pageSize)
}

func (ig *ItemGeneric) Get(ctx context.Context, id int) (*model.Item, error) {
	return ig.ItemRepository.Get(ctx, id)
}

type Package interface {
	ListPage(ctx context.Context, pageNum, pageSize int) ([]model.Package, int, error)
}

type PackageGeneric struct {
	PackageRepository database.PackageRepository
}

func (pg *PackageGeneric) ListPage(ctx context.Context, pageNum, pageSize int) ([]model.Package, int, error) {
	return pg.PackageRepository.GetPage(ctx, pageNum, pageSize)
}

type Sale interface {
	ListPage(ctx context.Context, status model.SaleStatus, pageNum, pageSize int) ([]model.Sale, int, error)
}

type SaleGeneric struct {
	SaleRepository database.SaleRepository
}

func (sg *SaleGeneric) ListPage(ctx context.Context, status model.SaleStatus, pageNum, pageSize int) ([]model.Sale, int, error) {
	return sg.SaleRepository.GetPage(ctx, status, pageNum, pageSize)
}
