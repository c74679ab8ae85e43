package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/kasuboski/episodez/pkg/catalog"
	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/kasuboski/episodez/pkg/storage"
	"github.com/kasuboski/episodez/pkg/storage/sqlite/schema/gen/model"
	"github.com/kasuboski/episodez/pkg/storage/sqlite/schema/gen/table"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type SQLite struct {
	db *sql.DB
	// serializes writers, sqlite allows one at a time
	mu sync.Mutex
}

var _ storage.CatalogStorage = (*SQLite)(nil)

// New opens the sqlite database at filePath. Call RunMigrations before use.
func New(ctx context.Context, filePath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", filePath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	return &SQLite{
		db: db,
	}, nil
}

// RunMigrations brings the schema up to date
func (s *SQLite) RunMigrations(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger.FromCtx(ctx).Debug("running catalog migrations")
	return runMigrations(s.db)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type seriesWithEpisodes struct {
	model.Series

	Episodes []model.Episode
}

// GetSeries loads a series and all of its episodes
func (s *SQLite) GetSeries(ctx context.Context, id int64) (*catalog.Series, error) {
	stmt := table.Series.
		SELECT(table.Series.AllColumns, table.Episode.AllColumns).
		FROM(table.Series.LEFT_JOIN(table.Episode, table.Episode.SeriesID.EQ(table.Series.ID))).
		WHERE(table.Series.ID.EQ(sqlite.Int64(id))).
		ORDER_BY(table.Episode.AiredSeason.ASC(), table.Episode.AiredNumber.ASC())

	var dest seriesWithEpisodes
	err := stmt.QueryContext(ctx, s.db, &dest)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d: %w", catalog.ErrSeriesNotFound, id, storage.ErrNotFound)
		}
		return nil, err
	}

	return toSeries(dest), nil
}

// SaveSeries stores the series and replaces its episodes
func (s *SQLite) SaveSeries(ctx context.Context, series *catalog.Series) error {
	log := logger.FromCtx(ctx)

	if series == nil {
		return errors.New("series is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt := table.Series.
		INSERT(table.Series.ID, table.Series.Name).
		MODEL(model.Series{ID: int32(series.ID), Name: series.Name}).
		ON_CONFLICT(table.Series.ID).
		DO_UPDATE(sqlite.SET(
			table.Series.Name.SET(table.Series.EXCLUDED.Name),
			table.Series.Updated.SET(sqlite.CURRENT_TIMESTAMP()),
		))

	if _, err := stmt.ExecContext(ctx, tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to save series %d: %w", series.ID, err)
	}

	del := table.Episode.DELETE().WHERE(table.Episode.SeriesID.EQ(sqlite.Int64(series.ID)))
	if _, err := del.ExecContext(ctx, tx); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear episodes of series %d: %w", series.ID, err)
	}

	// don't insert a zeroed ID
	var withID, withoutID []model.Episode
	for _, e := range series.Episodes {
		m := fromEpisode(series.ID, e)
		if m.ID == 0 {
			withoutID = append(withoutID, m)
			continue
		}
		withID = append(withID, m)
	}

	inserts := []struct {
		columns  sqlite.ColumnList
		episodes []model.Episode
	}{
		{table.Episode.AllColumns, withID},
		{table.Episode.MutableColumns, withoutID},
	}
	for _, i := range inserts {
		if len(i.episodes) == 0 {
			continue
		}

		insert := table.Episode.INSERT(i.columns).MODELS(i.episodes)
		if _, err := insert.ExecContext(ctx, tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save episodes of series %d: %w", series.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Debugw("saved series", "series", series.ID, "episodes", len(series.Episodes))
	return nil
}

// ListSeries returns every stored series with its episode count
func (s *SQLite) ListSeries(ctx context.Context) ([]storage.SeriesSummary, error) {
	// aggregate into a custom struct, raw sql is simpler here
	rows, err := s.db.QueryContext(ctx, `
		SELECT series.id, series.name, COUNT(episode.id) AS episodes
		FROM series
		LEFT JOIN episode ON episode.series_id = series.id
		GROUP BY series.id, series.name
		ORDER BY series.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]storage.SeriesSummary, 0)
	for rows.Next() {
		var summary storage.SeriesSummary
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.Episodes); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

// DeleteSeries removes a series. Its episodes are removed by the foreign key cascade.
func (s *SQLite) DeleteSeries(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	stmt := table.Series.DELETE().WHERE(table.Series.ID.EQ(sqlite.Int64(id)))
	result, err := stmt.ExecContext(ctx, s.db)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		log.Debug("failed to get rows affected", zap.Error(err))
		return nil
	}
	if n == 0 {
		return fmt.Errorf("series %d: %w", id, storage.ErrNotFound)
	}

	return nil
}

func toSeries(s seriesWithEpisodes) *catalog.Series {
	series := &catalog.Series{
		ID:       int64(s.ID),
		Name:     s.Name,
		Episodes: make([]catalog.Episode, 0, len(s.Episodes)),
	}

	for _, e := range s.Episodes {
		episode := catalog.Episode{
			ID:          int64(e.ID),
			AiredSeason: int(e.AiredSeason),
			AiredNumber: int(e.AiredNumber),
			AirDate:     e.AirDate,
		}
		if e.Name != nil {
			episode.Name = *e.Name
		}
		if e.DvdSeason != nil && e.DvdNumber != nil {
			season, number := int(*e.DvdSeason), int(*e.DvdNumber)
			episode.DVDSeason = &season
			episode.DVDNumber = &number
		}

		series.Episodes = append(series.Episodes, episode)
	}

	return series
}

func fromEpisode(seriesID int64, e catalog.Episode) model.Episode {
	m := model.Episode{
		ID:          int32(e.ID),
		SeriesID:    int32(seriesID),
		AiredSeason: int32(e.AiredSeason),
		AiredNumber: int32(e.AiredNumber),
		AirDate:     e.AirDate,
	}

	if e.Name != "" {
		m.Name = &e.Name
	}
	if e.DVDSeason != nil && e.DVDNumber != nil {
		season, number := int32(*e.DVDSeason), int32(*e.DVDNumber)
		m.DvdSeason = &season
		m.DvdNumber = &number
	}

	return m
}
