package manager

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/kasuboski/episodez/pkg/catalog"
	"github.com/kasuboski/episodez/pkg/download"
	"github.com/kasuboski/episodez/pkg/io"
	"github.com/kasuboski/episodez/pkg/library"
	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/kasuboski/episodez/pkg/machine"
	"github.com/kasuboski/episodez/pkg/match"
	"github.com/kasuboski/episodez/pkg/rules"
	"go.uber.org/zap"
)

var ErrShowNotFound = errors.New("show not configured")

// Manager ties the matcher, the library and the download clients together
type Manager struct {
	matcher    *match.Matcher
	reconciler *library.Reconciler
	catalog    catalog.Store
	fio        io.FileIO
	clients    []download.Client
	shows      []catalog.Show

	job       *machine.StateMachine[JobState]
	jobMu     sync.Mutex
	jobStatus JobStatus
}

func New(matcher *match.Matcher, reconciler *library.Reconciler, store catalog.Store, fio io.FileIO, clients []download.Client, shows []catalog.Show) *Manager {
	return &Manager{
		matcher:    matcher,
		reconciler: reconciler,
		catalog:    store,
		fio:        fio,
		clients:    clients,
		shows:      shows,
		job:        newJobMachine(),
	}
}

// Shows returns the configured shows
func (m *Manager) Shows() []catalog.Show {
	return m.shows
}

// Show finds a configured show by id
func (m *Manager) Show(id int64) (catalog.Show, error) {
	for _, s := range m.shows {
		if s.ID == id {
			return s, nil
		}
	}

	return catalog.Show{}, fmt.Errorf("%w: %d", ErrShowNotFound, id)
}

// Identify works out the season and episode for a path. A showID of 0 identifies without a show.
func (m *Manager) Identify(ctx context.Context, path string, showID int64) (match.Result, error) {
	var show *catalog.Show
	if showID != 0 {
		s, err := m.Show(showID)
		if err != nil {
			return match.NoMatch(), err
		}
		show = &s
	}

	isDir := false
	if info, err := m.fio.Stat(path); err == nil {
		isDir = info.IsDir()
	}

	entry := library.NewFileEntry(filepath.Clean(path), 0, isDir)
	return m.matcher.Identify(ctx, entry.Entry(), show), nil
}

// EpisodeFiles lists the files in the library holding an episode, in the show's numbering
func (m *Manager) EpisodeFiles(ctx context.Context, showID int64, season, episode int) ([]library.FileEntry, error) {
	log := logger.FromCtx(ctx)

	show, err := m.Show(showID)
	if err != nil {
		return nil, err
	}

	ep, err := m.episode(ctx, show, season, episode)
	if err != nil {
		log.Debug("failed to find episode", zap.Int64("show", showID), zap.Error(err))
		return nil, err
	}

	files := m.reconciler.FindOnDisk(ctx, nil, show, ep, true)
	if files == nil {
		files = []library.FileEntry{}
	}

	return files, nil
}

// EpisodeNeeded reports whether the library is still missing an episode
func (m *Manager) EpisodeNeeded(ctx context.Context, showID int64, season, episode int) (bool, error) {
	show, err := m.Show(showID)
	if err != nil {
		return false, err
	}

	return m.reconciler.EpisodeNeeded(ctx, nil, show, season, episode, ""), nil
}

func (m *Manager) episode(ctx context.Context, show catalog.Show, season, episode int) (catalog.Episode, error) {
	if m.catalog == nil {
		return catalog.Episode{}, fmt.Errorf("%w: no catalog", catalog.ErrSeriesNotFound)
	}

	series, err := m.catalog.GetSeries(ctx, show.SeriesID)
	if err != nil {
		return catalog.Episode{}, err
	}

	return series.Episode(season, episode, show.Order)
}

// Rules returns the rules used to identify files, in priority order
func (m *Manager) Rules() rules.Set {
	return m.matcher.Rules()
}
