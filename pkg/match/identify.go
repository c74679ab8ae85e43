package match

import (
	"context"
	"strings"

	"github.com/kasuboski/episodez/pkg/catalog"
	"github.com/kasuboski/episodez/pkg/logger"
	"go.uber.org/zap"
)

// Entry is a file or directory to identify. Dir is the parent directory.
type Entry struct {
	Name  string
	Ext   string
	Dir   string
	IsDir bool
}

// Stem is the name without its extension
func (e Entry) Stem() string {
	return strings.TrimSuffix(e.Name, e.Ext)
}

// Identify works out the season and episode an entry refers to.
// Files are checked for a known air date first when date checking is enabled and a show is given.
// A nil entry is a no match.
func (m *Matcher) Identify(ctx context.Context, entry *Entry, show *catalog.Show) Result {
	return m.identify(ctx, entry, show, m.config.DateCheck)
}

// IdentifyPattern is Identify without the air date check
func (m *Matcher) IdentifyPattern(ctx context.Context, entry *Entry, show *catalog.Show) Result {
	return m.identify(ctx, entry, show, false)
}

func (m *Matcher) identify(ctx context.Context, entry *Entry, show *catalog.Show, dateCheck bool) Result {
	if entry == nil {
		return NoMatch()
	}

	// dates are only expected in file names
	if entry.IsDir {
		return m.Match(ctx, entry.Dir, entry.Name, show)
	}

	if dateCheck && show != nil {
		if result := m.matchByDate(ctx, entry.Name, *show); result.Success() {
			return result
		}
	}

	return m.Match(ctx, entry.Dir, entry.Stem(), show)
}

func (m *Matcher) matchByDate(ctx context.Context, filename string, show catalog.Show) Result {
	if m.catalog == nil {
		return NoMatch()
	}

	series, err := m.catalog.GetSeries(ctx, show.SeriesID)
	if err != nil {
		logger.FromCtx(ctx).Debug("skipping air date check", zap.Int64("series", show.SeriesID), zap.Error(err))
		return NoMatch()
	}

	return MatchByDate(filename, show, series, m.now())
}
