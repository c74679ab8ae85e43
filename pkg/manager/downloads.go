package manager

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/kasuboski/episodez/pkg/catalog"
	"github.com/kasuboski/episodez/pkg/download"
	"github.com/kasuboski/episodez/pkg/library"
	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/kasuboski/episodez/pkg/match"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
)

const (
	ReasonNoShow       = "no configured show matches"
	ReasonUnidentified = "season and episode could not be identified"
	ReasonMissing      = "episode is not in the library"
	ReasonOnDisk       = "episode is already in the library"
)

// DownloadDecision says whether a download is still wanted by the library
type DownloadDecision struct {
	Entry  download.TorrentEntry `json:"entry"`
	ShowID int64                 `json:"showID,omitempty"`
	Result match.Result          `json:"result"`
	Needed bool                  `json:"needed"`
	Reason string                `json:"reason"`
}

// ReconcileDownloads lists every download client and decides whether each entry is needed.
// A client that fails to list is logged and skipped.
func (m *Manager) ReconcileDownloads(ctx context.Context) ([]DownloadDecision, error) {
	log := logger.FromCtx(ctx, "pass", uuid.NewString())
	ctx = logger.WithCtx(ctx, log)

	listed := make([][]download.TorrentEntry, len(m.clients))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range m.clients {
		g.Go(func() error {
			entries, err := c.List(gctx)
			if err != nil {
				log.Error("failed to list downloads", zap.String("client", c.Name()), zap.Error(err))
				return nil
			}

			log.Debug("listed downloads", zap.String("client", c.Name()), zap.Int("count", len(entries)))
			listed[i] = entries
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var entries []download.TorrentEntry
	for _, l := range listed {
		entries = append(entries, l...)
	}

	return m.ReconcileEntries(ctx, entries)
}

// ReconcileEntries decides whether each entry is needed. All entries share one directory cache.
func (m *Manager) ReconcileEntries(ctx context.Context, entries []download.TorrentEntry) ([]DownloadDecision, error) {
	log := logger.FromCtx(ctx)
	dc := m.reconciler.NewCache()

	decisions := make([]DownloadDecision, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return decisions, err
		}

		d := m.decide(ctx, dc, e)
		log.Debugw("download decision", "path", e.Path, "result", d.Result.String(), "needed", d.Needed, "reason", d.Reason)
		decisions = append(decisions, d)
	}

	return decisions, nil
}

func (m *Manager) decide(ctx context.Context, dc *library.DirCache, e download.TorrentEntry) DownloadDecision {
	d := DownloadDecision{Entry: e, Result: match.NoMatch(), Needed: true}

	show, ok := m.showFor(e)
	if !ok {
		d.Reason = ReasonNoShow
		return d
	}
	d.ShowID = show.ID

	file := m.fileEntry(e)
	d.Result = m.matcher.Identify(ctx, file.Entry(), &show)
	if !d.Result.Success() {
		d.Reason = ReasonUnidentified
		return d
	}

	d.Needed = m.reconciler.EpisodeNeeded(ctx, dc, show, d.Result.Season, d.Result.Episode, file.Path())
	if d.Needed {
		d.Reason = ReasonMissing
	} else {
		d.Reason = ReasonOnDisk
	}

	return d
}

// fileEntry treats an extension the library doesn't care about as part of the name
func (m *Manager) fileEntry(e download.TorrentEntry) library.FileEntry {
	file := library.NewFileEntry(e.Path, e.Size, false)
	if !m.reconciler.IsUseful(file.Name) {
		file.Ext = ""
	}

	return file
}

// showFor picks the first configured show whose name appears in the entry's name or path
func (m *Manager) showFor(e download.TorrentEntry) (catalog.Show, bool) {
	haystack := " " + normalizeTitle(e.Name) + " " + normalizeTitle(filepath.ToSlash(e.Path)) + " "

	for _, s := range m.shows {
		needle := normalizeTitle(s.Name)
		if needle == "" {
			continue
		}

		if strings.Contains(haystack, " "+needle+" ") {
			return s, true
		}
	}

	return catalog.Show{}, false
}

// normalizeTitle lower cases and collapses separators into single spaces
func normalizeTitle(s string) string {
	s = cases.Fold().String(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '.', '_', '-', '/', '\\', ' ', '\t', '(', ')', '[', ']':
			return true
		}
		return false
	})

	return strings.Join(fields, " ")
}
