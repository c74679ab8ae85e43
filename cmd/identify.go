package cmd

import (
	"context"

	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var identifyCmd = &cobra.Command{
	Use:   "identify PATH...",
	Short: "identify the season and episode of files",
	Long: `Identify the season and episode of each path using the configured rules.

When --show is given the show's name is stripped before matching and files are
also checked for an air date known to the catalog.

Example:
  episodez identify "/downloads/Show.Name.S01E02.720p.mkv"
  episodez identify --show 1 "/downloads/Show.Name.2020.03.15.mkv"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		log := logger.Get()

		showID, _ := cmd.Flags().GetInt64("show")

		a := setup(ctx, false)
		defer a.Close()

		rows := make([][]string, 0, len(args))
		for _, path := range args {
			result, err := a.manager.Identify(ctx, path, showID)
			if err != nil {
				log.Fatal("failed to identify", zap.String("path", path), zap.Error(err))
			}

			rule := ""
			if result.Rule != nil {
				rule = result.Rule.Notes
				if rule == "" {
					rule = result.Rule.Pattern
				}
			}

			rows = append(rows, []string{path, result.String(), rule})
		}

		renderTable(cmd.OutOrStdout(), []string{"Path", "Result", "Rule"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(identifyCmd)
	identifyCmd.Flags().Int64("show", 0, "id of the configured show the files belong to")
}
