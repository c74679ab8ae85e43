package cmd

import (
	"context"
	"fmt"

	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var neededCmd = &cobra.Command{
	Use:   "needed",
	Short: "check whether an episode is missing from the library",
	Long: `Check whether an episode is missing from the library.

Season and episode are in the show's configured numbering, aired or dvd.

Example:
  episodez needed --show 1 --season 3 --episode 8`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		log := logger.Get()

		showID, _ := cmd.Flags().GetInt64("show")
		season, _ := cmd.Flags().GetInt("season")
		episode, _ := cmd.Flags().GetInt("episode")

		a := setup(ctx, false)
		defer a.Close()

		needed, err := a.manager.EpisodeNeeded(ctx, showID, season, episode)
		if err != nil {
			log.Fatal("failed to check episode", zap.Error(err))
		}

		out := cmd.OutOrStdout()
		if needed {
			fmt.Fprintf(out, "S%02dE%02d is needed\n", season, episode)
			return
		}

		files, err := a.manager.EpisodeFiles(ctx, showID, season, episode)
		if err != nil {
			log.Fatal("failed to list episode files", zap.Error(err))
		}

		fmt.Fprintf(out, "S%02dE%02d is already in the library\n", season, episode)
		rows := make([][]string, 0, len(files))
		for _, f := range files {
			rows = append(rows, []string{f.Path(), f.HumanSize()})
		}
		renderTable(out, []string{"Path", "Size"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(neededCmd)
	neededCmd.Flags().Int64("show", 0, "id of the configured show")
	neededCmd.Flags().Int("season", 0, "season number")
	neededCmd.Flags().Int("episode", 0, "episode number")
	neededCmd.MarkFlagRequired("show")
	neededCmd.MarkFlagRequired("season")
	neededCmd.MarkFlagRequired("episode")
}
