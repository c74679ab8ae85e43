package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

var (
	ErrEpisodeNotFound = errors.New("episode not found")
	ErrSeriesNotFound  = errors.New("series not found")
)

// Order is an episode numbering scheme. A show commits to exactly one.
type Order string

const (
	OrderAired Order = "aired"
	OrderDVD   Order = "dvd"
)

// Store looks up series metadata by id
type Store interface {
	GetSeries(ctx context.Context, id int64) (*Series, error)
}

// Show is a series tracked by the library along with where its files live
type Show struct {
	ID            int64            `json:"id" yaml:"id" mapstructure:"id" validate:"required"`
	SeriesID      int64            `json:"seriesID" yaml:"seriesID" mapstructure:"seriesID" validate:"required"`
	Name          string           `json:"name" yaml:"name" mapstructure:"name" validate:"required"`
	Order         Order            `json:"order" yaml:"order" mapstructure:"order" validate:"omitempty,oneof=aired dvd"`
	IgnoreSeasons []int            `json:"ignoreSeasons,omitempty" yaml:"ignoreSeasons" mapstructure:"ignoreSeasons"`
	Path          string           `json:"path,omitempty" yaml:"path" mapstructure:"path"`
	Folders       map[int][]string `json:"folders,omitempty" yaml:"folders" mapstructure:"folders"`
}

// Ignores reports whether a season is excluded for this show
func (s Show) Ignores(season int) bool {
	return slices.Contains(s.IgnoreSeasons, season)
}

// Episode carries both numbering schemes. DVD fields are nil when the catalog has no DVD data.
type Episode struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name,omitempty"`
	AiredSeason int        `json:"airedSeason"`
	AiredNumber int        `json:"airedNumber"`
	DVDSeason   *int       `json:"dvdSeason,omitempty"`
	DVDNumber   *int       `json:"dvdNumber,omitempty"`
	AirDate     *time.Time `json:"airDate,omitempty"`
}

// Key returns the canonical season and number for the given order.
// DVD order falls back to aired numbering when the episode has no DVD data.
func (e Episode) Key(order Order) (season int, number int) {
	if order == OrderDVD && e.DVDSeason != nil && e.DVDNumber != nil {
		return *e.DVDSeason, *e.DVDNumber
	}

	return e.AiredSeason, e.AiredNumber
}

func (e Episode) String() string {
	return fmt.Sprintf("S%02dE%02d %s", e.AiredSeason, e.AiredNumber, e.Name)
}

// Series is the catalog view of a show and all of its episodes
type Series struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Episodes []Episode `json:"episodes"`
}

// Seasons groups episodes by season under the given order, each season sorted by episode number
func (s *Series) Seasons(order Order) map[int][]Episode {
	seasons := make(map[int][]Episode)
	for _, e := range s.Episodes {
		season, _ := e.Key(order)
		seasons[season] = append(seasons[season], e)
	}

	for _, episodes := range seasons {
		slices.SortStableFunc(episodes, func(a, b Episode) int {
			_, an := a.Key(order)
			_, bn := b.Key(order)
			return an - bn
		})
	}

	return seasons
}

// Episode finds an episode by its season and number under the given order
func (s *Series) Episode(season, number int, order Order) (Episode, error) {
	for _, e := range s.Episodes {
		es, en := e.Key(order)
		if es == season && en == number {
			return e, nil
		}
	}

	return Episode{}, fmt.Errorf("%w: series %d season %d episode %d", ErrEpisodeNotFound, s.ID, season, number)
}

// Memory is a Store backed by a map
type Memory struct {
	mu     sync.RWMutex
	series map[int64]*Series
}

var _ Store = (*Memory)(nil)

func NewMemory(series ...*Series) *Memory {
	m := &Memory{series: make(map[int64]*Series)}
	for _, s := range series {
		m.Add(s)
	}

	return m
}

// Add stores or replaces a series
func (m *Memory) Add(s *Series) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.series[s.ID] = s
}

func (m *Memory) GetSeries(_ context.Context, id int64) (*Series, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.series[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrSeriesNotFound, id)
	}

	return s, nil
}
