package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/kasuboski/episodez/pkg/library"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "episodez",
	Short: "episodez cli",
	Long:  `episodez identifies tv episodes from file names and checks them against your library`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
}

const (
	defaultDownloadSchedule = "@every 10m"
	defaultBackoff          = time.Millisecond * 500
)

func initConfig() {
	// the default config file is optional, an explicit one is not
	if _, err := os.Stat(cfgFile); err == nil || rootCmd.PersistentFlags().Changed("config") {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix("EPISODEZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("matching.dateCheck", true)
	viper.SetDefault("matching.extensions", library.DefaultExtensions)

	viper.SetDefault("catalog.filePath", "episodez.sqlite")

	viper.SetDefault("downloads.maxRetries", 3)
	viper.SetDefault("downloads.backoff", defaultBackoff)
	viper.SetDefault("downloads.transmission.scheme", "http")
	viper.SetDefault("downloads.transmission.port", 9091)
	viper.SetDefault("downloads.qbittorrent.scheme", "http")
	viper.SetDefault("downloads.qbittorrent.port", 8080)

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("jobs.downloads", defaultDownloadSchedule)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.json", false)
	viper.SetDefault("logging.maxSizeMB", 100)
	viper.SetDefault("logging.maxBackups", 3)
}
