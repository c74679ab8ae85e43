package manager

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kasuboski/episodez/pkg/catalog"
	"github.com/kasuboski/episodez/pkg/download"
	downloadMocks "github.com/kasuboski/episodez/pkg/download/mocks"
	mio "github.com/kasuboski/episodez/pkg/io"
	"github.com/kasuboski/episodez/pkg/library"
	"github.com/kasuboski/episodez/pkg/match"
	"github.com/kasuboski/episodez/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("video"), 0o644))
}

func testSeries() *catalog.Series {
	return &catalog.Series{
		ID:   10,
		Name: "Fargo",
		Episodes: []catalog.Episode{
			{ID: 1, AiredSeason: 3, AiredNumber: 7},
			{ID: 2, AiredSeason: 3, AiredNumber: 8},
		},
	}
}

// newTestManager returns a manager for a library at root/tv/Fargo that already holds S03E08
func newTestManager(t *testing.T, root string, clients ...download.Client) *Manager {
	t.Helper()

	store := catalog.NewMemory(testSeries())
	fio := &mio.MediaFileSystem{}
	matcher := match.New(match.Config{Rules: rules.Defaults()}, store)
	reconciler := library.NewReconciler(matcher, store, fio, nil)
	shows := []catalog.Show{
		{ID: 1, SeriesID: 10, Name: "Fargo", Path: filepath.Join(root, "tv", "Fargo")},
		{ID: 2, SeriesID: 20, Name: "The Office"},
	}

	touch(t, filepath.Join(root, "tv", "Fargo", "Season 03", "Fargo.S03E08.mkv"))

	return New(matcher, reconciler, store, fio, clients, shows)
}

func TestManager_ReconcileDownloads(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	downloads := filepath.Join(root, "downloads")

	ctrl := gomock.NewController(t)
	transmission := downloadMocks.NewMockClient(ctrl)
	transmission.EXPECT().Name().Return(download.Transmission).AnyTimes()
	transmission.EXPECT().List(gomock.Any()).Return([]download.TorrentEntry{
		{Name: "Fargo.S03E08", Path: filepath.Join(downloads, "Fargo.S03E08.mkv"), PercentComplete: 100, Client: download.Transmission},
		{Name: "Fargo.S03E07", Path: filepath.Join(downloads, "Fargo.S03E07.mkv"), PercentComplete: 50, Client: download.Transmission},
	}, nil)

	qbittorrent := downloadMocks.NewMockClient(ctrl)
	qbittorrent.EXPECT().Name().Return(download.QBittorrent).AnyTimes()
	qbittorrent.EXPECT().List(gomock.Any()).Return(nil, errors.New("connection refused"))

	m := newTestManager(t, root, transmission, qbittorrent)

	decisions, err := m.ReconcileDownloads(ctx)
	require.NoError(t, err)
	require.Len(t, decisions, 2)

	assert.Equal(t, int64(1), decisions[0].ShowID)
	assert.Equal(t, 3, decisions[0].Result.Season)
	assert.Equal(t, 8, decisions[0].Result.Episode)
	assert.False(t, decisions[0].Needed)
	assert.Equal(t, ReasonOnDisk, decisions[0].Reason)

	assert.Equal(t, 7, decisions[1].Result.Episode)
	assert.True(t, decisions[1].Needed)
	assert.Equal(t, ReasonMissing, decisions[1].Reason)
}

func TestManager_ReconcileDownloads_NoClients(t *testing.T) {
	m := newTestManager(t, t.TempDir())

	decisions, err := m.ReconcileDownloads(context.Background())
	require.NoError(t, err)
	assert.Empty(t, decisions)
}

func TestManager_ReconcileEntries(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	downloads := filepath.Join(root, "downloads")
	m := newTestManager(t, root)

	tests := []struct {
		name       string
		entry      download.TorrentEntry
		wantShow   int64
		wantNeeded bool
		wantReason string
	}{
		{
			name:       "no show",
			entry:      download.TorrentEntry{Name: "Other.S01E01", Path: filepath.Join(downloads, "Other.S01E01.mkv")},
			wantNeeded: true,
			wantReason: ReasonNoShow,
		},
		{
			name:       "unidentified",
			entry:      download.TorrentEntry{Name: "Fargo.720p", Path: filepath.Join(downloads, "Fargo.720p.mkv")},
			wantShow:   1,
			wantNeeded: true,
			wantReason: ReasonUnidentified,
		},
		{
			name:       "show found by folder",
			entry:      download.TorrentEntry{Name: "pack", Path: filepath.Join(downloads, "Fargo", "S03E08.mkv")},
			wantShow:   1,
			wantNeeded: false,
			wantReason: ReasonOnDisk,
		},
		{
			name:       "episode missing from catalog",
			entry:      download.TorrentEntry{Name: "Fargo.S09E01", Path: filepath.Join(downloads, "Fargo.S09E01.mkv")},
			wantShow:   1,
			wantNeeded: true,
			wantReason: ReasonMissing,
		},
		{
			name:       "series missing from catalog",
			entry:      download.TorrentEntry{Name: "The.Office.S01E01", Path: filepath.Join(downloads, "The.Office.S01E01.mkv")},
			wantShow:   2,
			wantNeeded: true,
			wantReason: ReasonMissing,
		},
		{
			name:       "extension outside the library is part of the name",
			entry:      download.TorrentEntry{Name: "Fargo.S03E08", Path: filepath.Join(downloads, "Fargo.S03E08.nfo")},
			wantShow:   1,
			wantNeeded: false,
			wantReason: ReasonOnDisk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decisions, err := m.ReconcileEntries(ctx, []download.TorrentEntry{tt.entry})
			require.NoError(t, err)
			require.Len(t, decisions, 1)

			d := decisions[0]
			assert.Equal(t, tt.entry, d.Entry)
			assert.Equal(t, tt.wantShow, d.ShowID)
			assert.Equal(t, tt.wantNeeded, d.Needed)
			assert.Equal(t, tt.wantReason, d.Reason)
		})
	}
}

func TestManager_ReconcileEntries_Cancelled(t *testing.T) {
	m := newTestManager(t, t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	decisions, err := m.ReconcileEntries(ctx, []download.TorrentEntry{{Name: "Fargo.S03E08", Path: "/downloads/Fargo.S03E08.mkv"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, decisions)
}

func TestManager_showFor(t *testing.T) {
	m := New(nil, nil, nil, nil, nil, []catalog.Show{
		{ID: 1, Name: "The Office"},
		{ID: 2, Name: "Office"},
		{ID: 3, Name: "Fargo"},
	})

	tests := []struct {
		name   string
		entry  download.TorrentEntry
		want   int64
		wantOK bool
	}{
		{
			name:   "first configured wins",
			entry:  download.TorrentEntry{Name: "The.Office.S01E01"},
			want:   1,
			wantOK: true,
		},
		{
			name:   "case and separators are ignored",
			entry:  download.TorrentEntry{Name: "office_s01e01"},
			want:   2,
			wantOK: true,
		},
		{
			name:   "path",
			entry:  download.TorrentEntry{Name: "S02E01", Path: "/downloads/Fargo/S02E01.mkv"},
			want:   3,
			wantOK: true,
		},
		{
			name:  "whole words only",
			entry: download.TorrentEntry{Name: "Fargone.S01E01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			show, ok := m.showFor(tt.entry)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, show.ID)
		})
	}
}

func TestManager_ScanFolder(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	m := newTestManager(t, root)

	incoming := filepath.Join(root, "incoming")
	touch(t, filepath.Join(incoming, "Fargo.S03E07.mkv"))
	touch(t, filepath.Join(incoming, "Fargo.S03E08.mkv"))
	touch(t, filepath.Join(incoming, "Fargo.S03E08.txt"))
	require.NoError(t, os.MkdirAll(filepath.Join(incoming, "Fargo.S03E09"), 0o755))

	results, err := m.ScanFolder(ctx, incoming, 1)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Fargo.S03E07.mkv", results[0].File.Name)
	assert.Equal(t, 7, results[0].Result.Episode)
	assert.True(t, results[0].Needed)

	assert.Equal(t, "Fargo.S03E08.mkv", results[1].File.Name)
	assert.Equal(t, 8, results[1].Result.Episode)
	assert.False(t, results[1].Needed)

	t.Run("unknown show", func(t *testing.T) {
		_, err := m.ScanFolder(ctx, incoming, 99)
		assert.ErrorIs(t, err, ErrShowNotFound)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		results, err := m.ScanFolder(ctx, incoming, 1)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, results)
	})
}

func TestManager_Identify(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	m := newTestManager(t, root)

	got, err := m.Identify(ctx, "/downloads/Fargo.S03E07.mkv", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Season)
	assert.Equal(t, 7, got.Episode)

	got, err = m.Identify(ctx, "/downloads/Anything.1x05.mkv", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Season)
	assert.Equal(t, 5, got.Episode)

	dir := filepath.Join(root, "Fargo.S02E04")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	got, err = m.Identify(ctx, dir, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Season)
	assert.Equal(t, 4, got.Episode)

	_, err = m.Identify(ctx, "/downloads/Fargo.S03E07.mkv", 99)
	assert.ErrorIs(t, err, ErrShowNotFound)
}

func TestManager_EpisodeFiles(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	m := newTestManager(t, root)

	files, err := m.EpisodeFiles(ctx, 1, 3, 8)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(root, "tv", "Fargo", "Season 03", "Fargo.S03E08.mkv"), files[0].Path())

	files, err = m.EpisodeFiles(ctx, 1, 3, 7)
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)

	_, err = m.EpisodeFiles(ctx, 1, 4, 1)
	assert.ErrorIs(t, err, catalog.ErrEpisodeNotFound)

	_, err = m.EpisodeFiles(ctx, 2, 1, 1)
	assert.ErrorIs(t, err, catalog.ErrSeriesNotFound)

	_, err = m.EpisodeFiles(ctx, 99, 1, 1)
	assert.ErrorIs(t, err, ErrShowNotFound)
}

func TestManager_EpisodeNeeded(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, t.TempDir())

	needed, err := m.EpisodeNeeded(ctx, 1, 3, 8)
	require.NoError(t, err)
	assert.False(t, needed)

	needed, err = m.EpisodeNeeded(ctx, 1, 3, 7)
	require.NoError(t, err)
	assert.True(t, needed)

	_, err = m.EpisodeNeeded(ctx, 99, 3, 7)
	assert.ErrorIs(t, err, ErrShowNotFound)
}

func TestManager_Run(t *testing.T) {
	m := newTestManager(t, t.TempDir())

	t.Run("invalid schedule", func(t *testing.T) {
		err := m.Run(context.Background(), "not a schedule")
		assert.Error(t, err)
	})

	t.Run("stops with context", func(t *testing.T) {
		for _, schedule := range []string{"", "@every 1h"} {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			err := m.Run(ctx, schedule)
			cancel()
			assert.NoError(t, err)
		}
	})

	t.Run("runs on schedule", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := downloadMocks.NewMockClient(ctrl)
		client.EXPECT().Name().Return(download.Transmission).AnyTimes()

		listed := make(chan struct{}, 1)
		client.EXPECT().List(gomock.Any()).DoAndReturn(func(context.Context) ([]download.TorrentEntry, error) {
			select {
			case listed <- struct{}{}:
			default:
			}
			return nil, nil
		}).MinTimes(1)

		m := newTestManager(t, t.TempDir(), client)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- m.Run(ctx, "@every 1s") }()

		select {
		case <-listed:
		case <-time.After(5 * time.Second):
			t.Fatal("scheduled reconciliation never ran")
		}

		cancel()
		assert.NoError(t, <-done)
	})
}

func TestManager_reconcileJob(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := downloadMocks.NewMockClient(ctrl)
		client.EXPECT().Name().Return(download.Transmission).AnyTimes()
		client.EXPECT().List(gomock.Any()).Return([]download.TorrentEntry{
			{Name: "Fargo.S03E07", Path: "/downloads/Fargo.S03E07.mkv"},
			{Name: "Fargo.S03E08", Path: "/downloads/Fargo.S03E08.mkv"},
		}, nil)

		m := newTestManager(t, t.TempDir(), client)
		assert.Equal(t, JobIdle, m.DownloadJob().State)

		m.reconcileJob(ctx)

		status := m.DownloadJob()
		assert.Equal(t, JobDone, status.State)
		assert.Equal(t, 2, status.Entries)
		assert.Equal(t, 1, status.Needed)
		assert.NotNil(t, status.StartedAt)
		assert.NotNil(t, status.FinishedAt)
		assert.Empty(t, status.Error)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := downloadMocks.NewMockClient(ctrl)
		client.EXPECT().Name().Return(download.Transmission).AnyTimes()
		client.EXPECT().List(gomock.Any()).Return([]download.TorrentEntry{{Name: "Fargo.S03E07", Path: "/downloads/Fargo.S03E07.mkv"}}, nil)

		m := newTestManager(t, t.TempDir(), client)
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		m.reconcileJob(ctx)

		status := m.DownloadJob()
		assert.Equal(t, JobError, status.State)
		assert.NotEmpty(t, status.Error)
	})

	t.Run("already running", func(t *testing.T) {
		m := newTestManager(t, t.TempDir())
		require.NoError(t, m.job.Transition(JobRunning))

		m.reconcileJob(ctx)
		assert.Equal(t, JobRunning, m.DownloadJob().State)
		assert.Nil(t, m.DownloadJob().StartedAt)
	})
}
