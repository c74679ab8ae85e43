package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kasuboski/episodez/pkg/catalog"
	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "manage the series catalog",
	Long:  `manage the series catalog used for episode lookups and air date matching`,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "import series from a json file",
	Long: `Import series from a json file. The file holds one series or a list of them.
Importing a series replaces every episode stored for it.

Example file:
  {
    "id": 81189,
    "name": "Breaking Bad",
    "episodes": [
      {"airedSeason": 1, "airedNumber": 1, "dvdSeason": 1, "dvdNumber": 1, "airDate": "2008-01-20", "name": "Pilot"}
    ]
  }`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		log := logger.Get()

		b, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatal("failed to read catalog file", zap.Error(err))
		}

		series, err := parseCatalog(b)
		if err != nil {
			log.Fatal("failed to parse catalog file", zap.Error(err))
		}

		a := setup(ctx, false)
		defer a.Close()

		for _, s := range series {
			if err := a.store.SaveSeries(ctx, s); err != nil {
				log.Fatal("failed to save series", zap.Int64("series", s.ID), zap.Error(err))
			}
			log.Infow("imported series", "series", s.ID, "name", s.Name, "episodes", len(s.Episodes))
		}
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "list series in the catalog",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		log := logger.Get()

		a := setup(ctx, false)
		defer a.Close()

		summaries, err := a.store.ListSeries(ctx)
		if err != nil {
			log.Fatal("failed to list series", zap.Error(err))
		}

		rows := make([][]string, 0, len(summaries))
		for _, s := range summaries {
			rows = append(rows, []string{strconv.FormatInt(s.ID, 10), s.Name, strconv.Itoa(s.Episodes)})
		}
		renderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Episodes"}, rows)
	},
}

var catalogDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "delete a series and its episodes from the catalog",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		log := logger.Get()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			log.Fatal("invalid series id", zap.String("id", args[0]), zap.Error(err))
		}

		a := setup(ctx, false)
		defer a.Close()

		if err := a.store.DeleteSeries(ctx, id); err != nil {
			log.Fatal("failed to delete series", zap.Int64("series", id), zap.Error(err))
		}
		log.Infow("deleted series", "series", id)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogDeleteCmd)
}

type importSeries struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Episodes []importEpisode `json:"episodes"`
}

// importEpisode accepts air dates as plain dates or RFC 3339 timestamps
type importEpisode struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	AiredSeason int    `json:"airedSeason"`
	AiredNumber int    `json:"airedNumber"`
	DVDSeason   *int   `json:"dvdSeason"`
	DVDNumber   *int   `json:"dvdNumber"`
	AirDate     string `json:"airDate"`
}

func parseCatalog(b []byte) ([]*catalog.Series, error) {
	var raw []importSeries

	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var single importSeries
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, err
		}
		raw = append(raw, single)
	} else if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, err
	}

	series := make([]*catalog.Series, 0, len(raw))
	for _, rs := range raw {
		if rs.ID == 0 {
			return nil, fmt.Errorf("series %q has no id", rs.Name)
		}

		s := &catalog.Series{ID: rs.ID, Name: rs.Name, Episodes: make([]catalog.Episode, 0, len(rs.Episodes))}
		for _, re := range rs.Episodes {
			airDate, err := parseAirDate(re.AirDate)
			if err != nil {
				return nil, fmt.Errorf("series %d episode S%02dE%02d: %w", rs.ID, re.AiredSeason, re.AiredNumber, err)
			}

			s.Episodes = append(s.Episodes, catalog.Episode{
				ID:          re.ID,
				Name:        re.Name,
				AiredSeason: re.AiredSeason,
				AiredNumber: re.AiredNumber,
				DVDSeason:   re.DVDSeason,
				DVDNumber:   re.DVDNumber,
				AirDate:     airDate,
			})
		}
		series = append(series, s)
	}

	return series, nil
}

func parseAirDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}

	return nil, fmt.Errorf("invalid air date %q", s)
}
