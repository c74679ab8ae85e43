package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "list the rules used to identify episodes",
	Long:  `List the rules used to identify episodes in the order they are tried`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		rows := make([][]string, 0, len(cfg.Matching.Rules))
		for i, r := range cfg.Matching.Rules {
			rows = append(rows, []string{
				strconv.Itoa(i),
				yesNo(r.Enabled),
				yesNo(r.UseFullPath),
				yesNo(r.Valid()),
				r.Pattern,
				r.Notes,
			})
		}

		renderTable(cmd.OutOrStdout(), []string{"#", "Enabled", "Full Path", "Valid", "Pattern", "Notes"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
