package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/killallgit/video-hunter/pkg/config"
	"github.com/killallgit/video-hunter/pkg/logging"
)

// logger is configured once the root pre-run has loaded the settings
var logger = zerolog.Nop()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "video-hunter",
	Short: "Video Hunter API server",
	Long: `Video Hunter API - keyword video search and 480p clip downloads

The server renders a single search page, proxies keyword searches to
yt-dlp and streams the chosen video back as a downloadable attachment.

Features:
  • Keyword search returning title, link and thumbnail
  • Downloads capped at 480p in an mp4 container
  • Optional ffmpeg transcode when the source exceeds the cap
  • Scheduled cleanup of abandoned temp files`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "settings file (default ./config/settings.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// setup loads configuration and logging for every command that needs them
func setup(cmd *cobra.Command, args []string) error {
	if !needsConfig(cmd) {
		return nil
	}

	path, _ := cmd.Flags().GetString("config")
	config.SetConfigPath(path)
	if err := config.Init(); err != nil {
		return err
	}

	level := config.GetString("logging.level")
	if cmd.Flags().Changed("log-level") {
		level, _ = cmd.Flags().GetString("log-level")
	}
	json := config.GetString("logging.format") == "json"
	if cmd.Flags().Changed("json-logs") {
		json, _ = cmd.Flags().GetBool("json-logs")
	}

	logger = logging.Setup(level, json)
	return nil
}

func needsConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion":
		return false
	}
	return true
}
