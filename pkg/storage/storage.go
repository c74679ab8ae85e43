package storage

import (
	"context"
	"errors"

	"github.com/kasuboski/episodez/pkg/catalog"
)

var ErrNotFound = errors.New("not found in storage")

// CatalogStorage persists series and their episodes
type CatalogStorage interface {
	catalog.Store
	SaveSeries(ctx context.Context, series *catalog.Series) error
	ListSeries(ctx context.Context) ([]SeriesSummary, error)
	DeleteSeries(ctx context.Context, id int64) error
	RunMigrations(ctx context.Context) error
	Close() error
}

// SeriesSummary is a series without its episodes
type SeriesSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Episodes int    `json:"episodes"`
}
