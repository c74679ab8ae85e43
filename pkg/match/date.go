package match

import (
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/kasuboski/episodez/pkg/catalog"
)

// yyyy-MM-dd, dd-MM-yyyy, MM-dd-yyyy, yy-MM-dd, dd-MM-yy, MM-dd-yy
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"01-02-2006",
	"06-01-02",
	"02-01-06",
	"01-02-06",
}

var dateSeparators = strings.NewReplacer("/", "-", ".", "-", ",", "-", " ", "-")

// MatchByDate looks for the air date of one of the series' episodes inside filename.
// Seasons the show ignores are skipped. When several air dates appear, the one closest to now wins.
func MatchByDate(filename string, show catalog.Show, series *catalog.Series, now time.Time) Result {
	if series == nil {
		return NoMatch()
	}

	normalized := dateSeparators.Replace(filename)

	best := NoMatch()
	closest := time.Duration(math.MaxInt64)

	seasons := series.Seasons(show.Order)
	for _, season := range slices.Sorted(maps.Keys(seasons)) {
		if show.Ignores(season) {
			continue
		}

		for _, episode := range seasons[season] {
			if episode.AirDate == nil {
				continue
			}

			for _, layout := range dateLayouts {
				if !strings.Contains(normalized, episode.AirDate.Format(layout)) {
					continue
				}

				distance := now.Sub(*episode.AirDate).Abs()
				if distance < closest {
					s, n := episode.Key(show.Order)
					best = Result{Season: s, Episode: n, MaxEpisode: Unknown}
					closest = distance
				}
			}
		}
	}

	return best
}
