package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scanCmd = &cobra.Command{
	Use:   "scan DIR",
	Short: "classify the media files in a folder as needed or duplicates",
	Long: `Classify every media file directly inside DIR as needed by the library or a
duplicate of an episode that is already there.

Example:
  episodez scan --show 1 /downloads/complete`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		log := logger.Get()

		showID, _ := cmd.Flags().GetInt64("show")

		a := setup(ctx, false)
		defer a.Close()

		results, err := a.manager.ScanFolder(ctx, args[0], showID)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Fatal("failed to scan folder", zap.String("dir", args[0]), zap.Error(err))
		}

		rows := make([][]string, 0, len(results))
		for _, r := range results {
			rows = append(rows, []string{r.File.Name, r.Result.String(), r.File.HumanSize(), yesNo(r.Needed)})
		}
		renderTable(cmd.OutOrStdout(), []string{"File", "Result", "Size", "Needed"}, rows)

		if err != nil {
			log.Warn("scan cancelled before finishing", zap.Int("scanned", len(results)))
		}
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().Int64("show", 0, "id of the configured show the folder belongs to")
	scanCmd.MarkFlagRequired("show")
}
