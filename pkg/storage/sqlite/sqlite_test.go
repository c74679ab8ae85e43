package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kasuboski/episodez/pkg/catalog"
	"github.com/kasuboski/episodez/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initSqlite(t *testing.T, ctx context.Context) *SQLite {
	t.Helper()

	store, err := New(ctx, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.RunMigrations(ctx))
	return store
}

func intPtr(i int) *int {
	return &i
}

func testSeries() *catalog.Series {
	airDate := time.Date(2020, time.March, 15, 0, 0, 0, 0, time.UTC)
	return &catalog.Series{
		ID:   42,
		Name: "Show",
		Episodes: []catalog.Episode{
			{ID: 102, Name: "Second", AiredSeason: 1, AiredNumber: 2},
			{ID: 101, Name: "Pilot", AiredSeason: 1, AiredNumber: 1, DVDSeason: intPtr(1), DVDNumber: intPtr(0), AirDate: &airDate},
			{ID: 201, AiredSeason: 2, AiredNumber: 1},
		},
	}
}

func TestMigrations(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)

	version, dirty, err := store.GetMigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	// running again is a no-op
	require.NoError(t, store.RunMigrations(ctx))
}

func TestSeriesStorage(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)

	_, err := store.GetSeries(ctx, 42)
	assert.ErrorIs(t, err, catalog.ErrSeriesNotFound)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.SaveSeries(ctx, testSeries()))

	got, err := store.GetSeries(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "Show", got.Name)
	require.Len(t, got.Episodes, 3)

	pilot := got.Episodes[0]
	assert.Equal(t, int64(101), pilot.ID)
	assert.Equal(t, "Pilot", pilot.Name)
	require.NotNil(t, pilot.AirDate)
	assert.Equal(t, "2020-03-15", pilot.AirDate.Format(time.DateOnly))
	s, n := pilot.Key(catalog.OrderDVD)
	assert.Equal(t, 1, s)
	assert.Equal(t, 0, n)

	second := got.Episodes[1]
	assert.Equal(t, int64(102), second.ID)
	assert.Nil(t, second.AirDate)
	assert.Nil(t, second.DVDSeason)

	assert.Equal(t, "", got.Episodes[2].Name)

	ep, err := got.Episode(2, 1, catalog.OrderAired)
	require.NoError(t, err)
	assert.Equal(t, int64(201), ep.ID)
}

func TestSaveSeries_ReplacesEpisodes(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)

	require.NoError(t, store.SaveSeries(ctx, testSeries()))

	updated := &catalog.Series{
		ID:       42,
		Name:     "Show (2020)",
		Episodes: []catalog.Episode{{ID: 301, AiredSeason: 3, AiredNumber: 1}},
	}
	require.NoError(t, store.SaveSeries(ctx, updated))

	got, err := store.GetSeries(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Show (2020)", got.Name)
	require.Len(t, got.Episodes, 1)
	assert.Equal(t, int64(301), got.Episodes[0].ID)

	empty := &catalog.Series{ID: 7, Name: "Empty"}
	require.NoError(t, store.SaveSeries(ctx, empty))
	got, err = store.GetSeries(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, got.Episodes)

	assert.Error(t, store.SaveSeries(ctx, nil))
}

func TestListAndDeleteSeries(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)

	summaries, err := store.ListSeries(ctx)
	require.NoError(t, err)
	assert.Empty(t, summaries)

	require.NoError(t, store.SaveSeries(ctx, testSeries()))
	require.NoError(t, store.SaveSeries(ctx, &catalog.Series{ID: 7, Name: "Another"}))

	summaries, err = store.ListSeries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []storage.SeriesSummary{
		{ID: 7, Name: "Another", Episodes: 0},
		{ID: 42, Name: "Show", Episodes: 3},
	}, summaries)

	require.NoError(t, store.DeleteSeries(ctx, 42))
	_, err = store.GetSeries(ctx, 42)
	assert.ErrorIs(t, err, catalog.ErrSeriesNotFound)

	var episodes int
	require.NoError(t, store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM episode`).Scan(&episodes))
	assert.Equal(t, 0, episodes)

	assert.ErrorIs(t, store.DeleteSeries(ctx, 42), storage.ErrNotFound)
}

func TestSaveSeries_EpisodesWithoutIDs(t *testing.T) {
	ctx := context.Background()
	store := initSqlite(t, ctx)

	series := &catalog.Series{
		ID:   9,
		Name: "Imported",
		Episodes: []catalog.Episode{
			{AiredSeason: 1, AiredNumber: 1},
			{AiredSeason: 1, AiredNumber: 2},
			{ID: 900, AiredSeason: 1, AiredNumber: 3},
		},
	}
	require.NoError(t, store.SaveSeries(ctx, series))

	got, err := store.GetSeries(ctx, 9)
	require.NoError(t, err)
	require.Len(t, got.Episodes, 3)
	assert.NotZero(t, got.Episodes[0].ID)
	assert.NotEqual(t, got.Episodes[0].ID, got.Episodes[1].ID)
	assert.Equal(t, int64(900), got.Episodes[2].ID)
}
