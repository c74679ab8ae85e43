package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var downloadsCmd = &cobra.Command{
	Use:   "downloads",
	Short: "check what the download clients hold against the library",
	Long: `List every file held by the configured download clients and whether the
library still needs it.

Example:
  episodez downloads
  episodez downloads --needed`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		log := logger.Get()

		onlyNeeded, _ := cmd.Flags().GetBool("needed")

		a := setup(ctx, true)
		defer a.Close()

		decisions, err := a.manager.ReconcileDownloads(ctx)
		if err != nil {
			log.Fatal("failed to reconcile downloads", zap.Error(err))
		}

		rows := make([][]string, 0, len(decisions))
		for _, d := range decisions {
			if onlyNeeded && !d.Needed {
				continue
			}

			show := ""
			if d.ShowID != 0 {
				show = strconv.FormatInt(d.ShowID, 10)
			}

			rows = append(rows, []string{
				d.Entry.Client,
				d.Entry.Path,
				fmt.Sprintf("%d%%", d.Entry.PercentComplete),
				humanize.IBytes(uint64(max(d.Entry.Size, 0))),
				show,
				d.Result.String(),
				yesNo(d.Needed),
				d.Reason,
			})
		}

		renderTable(cmd.OutOrStdout(), []string{"Client", "Path", "Done", "Size", "Show", "Result", "Needed", "Reason"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(downloadsCmd)
	downloadsCmd.Flags().Bool("needed", false, "only list downloads the library still needs")
}
