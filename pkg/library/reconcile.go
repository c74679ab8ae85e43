package library

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kasuboski/episodez/pkg/catalog"
	"github.com/kasuboski/episodez/pkg/io"
	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/kasuboski/episodez/pkg/match"
	"go.uber.org/zap"
)

// Reconciler checks what already exists in the library for a show
type Reconciler struct {
	matcher    *match.Matcher
	catalog    catalog.Store
	fio        io.FileIO
	extensions []string
}

// NewReconciler creates a reconciler. An empty extensions list means DefaultExtensions.
func NewReconciler(matcher *match.Matcher, store catalog.Store, fio io.FileIO, extensions []string) *Reconciler {
	return &Reconciler{
		matcher:    matcher,
		catalog:    store,
		fio:        fio,
		extensions: normalizeExtensions(extensions),
	}
}

// NewCache returns an empty directory cache backed by the reconciler's filesystem
func (r *Reconciler) NewCache() *DirCache {
	return NewDirCache(r.fio)
}

// Extensions returns the useful media extensions, lower cased
func (r *Reconciler) Extensions() []string {
	return slices.Clone(r.extensions)
}

// IsUseful reports whether name has one of the useful media extensions. Case is ignored.
func (r *Reconciler) IsUseful(name string) bool {
	return slices.Contains(r.extensions, strings.ToLower(filepath.Ext(name)))
}

// SeasonFolders lists the folders that may hold a season of the show.
// Configured folders win; otherwise "Season 01" and "Season 1" under the show path are used.
func (r *Reconciler) SeasonFolders(show catalog.Show, season int, checkExists bool) []string {
	folders := show.Folders[season]
	if len(folders) == 0 && show.Path != "" {
		folders = []string{
			filepath.Join(show.Path, formatSeasonDirectory(season)),
			filepath.Join(show.Path, fmt.Sprintf("Season %d", season)),
		}
		if season == 0 {
			folders = append(folders, filepath.Join(show.Path, "Specials"))
		}
		folders = slices.Compact(folders)
	}

	if !checkExists {
		return folders
	}

	existing := make([]string, 0, len(folders))
	for _, f := range folders {
		if r.fio.DirExists(f) {
			existing = append(existing, f)
		}
	}

	return existing
}

// FindOnDisk returns every useful file in the season's folders identified as episode.
// A file whose season can't be determined is assumed to belong to the season being searched.
func (r *Reconciler) FindOnDisk(ctx context.Context, dc *DirCache, show catalog.Show, episode catalog.Episode, checkDirectoryExists bool) []FileEntry {
	if dc == nil {
		dc = r.NewCache()
	}

	wantSeason, wantEpisode := episode.Key(show.Order)

	var found []FileEntry
	for _, folder := range r.SeasonFolders(show, wantSeason, checkDirectoryExists) {
		for _, file := range dc.Get(ctx, folder) {
			if file.IsDir || !r.IsUseful(file.Name) {
				continue
			}

			result := r.matcher.IdentifyPattern(ctx, file.Entry(), &show)
			if !result.Success() {
				continue
			}

			season := result.Season
			if season == match.Unknown {
				season = wantSeason
			}

			if season == wantSeason && result.Episode == wantEpisode {
				found = append(found, file)
			}
		}
	}

	return found
}

// EpisodeNeeded is true unless a file other than exclude already holds the episode.
// An episode missing from the catalog is still needed.
func (r *Reconciler) EpisodeNeeded(ctx context.Context, dc *DirCache, show catalog.Show, season, episode int, exclude string) bool {
	log := logger.FromCtx(ctx)

	ep, err := r.lookup(ctx, show, season, episode)
	if err != nil {
		if !errors.Is(err, catalog.ErrEpisodeNotFound) {
			log.Debug("episode lookup failed, assuming needed", zap.Int64("show", show.ID), zap.Error(err))
		}
		return true
	}

	exclude = cleanPath(exclude)
	for _, file := range r.FindOnDisk(ctx, dc, show, ep, true) {
		if cleanPath(file.Path()) == exclude {
			continue
		}

		log.Debugw("episode already on disk", "show", show.Name, "episode", ep.String(), "path", file.Path())
		return false
	}

	return true
}

// FileNeeded reports whether entry is still wanted by the library.
// Files that can't be identified are assumed to be needed.
func (r *Reconciler) FileNeeded(ctx context.Context, dc *DirCache, entry FileEntry, show catalog.Show) bool {
	return r.ResultNeeded(ctx, dc, entry, show, r.matcher.Identify(ctx, entry.Entry(), &show))
}

// ResultNeeded is FileNeeded for an entry that has already been identified.
func (r *Reconciler) ResultNeeded(ctx context.Context, dc *DirCache, entry FileEntry, show catalog.Show, result match.Result) bool {
	if !result.Success() {
		return true
	}

	return r.EpisodeNeeded(ctx, dc, show, result.Season, result.Episode, entry.Path())
}

func (r *Reconciler) lookup(ctx context.Context, show catalog.Show, season, episode int) (catalog.Episode, error) {
	if r.catalog == nil {
		return catalog.Episode{}, fmt.Errorf("%w: no catalog", catalog.ErrSeriesNotFound)
	}

	series, err := r.catalog.GetSeries(ctx, show.SeriesID)
	if err != nil {
		return catalog.Episode{}, err
	}

	return series.Episode(season, episode, show.Order)
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}

	return cacheKey(path)
}
