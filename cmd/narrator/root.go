package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/narrator/internal/config"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "narrator",
	Short: "Build invoice narrations from professional-services templates",
	Long: `Narrator composes invoice narration text from a catalog of templates.

Pick a template, fill its placeholders, add urgency or time-spent notes, and
optionally blend free-form notes into the paragraph with a text-generation
service. The fee disclaimer sentence is always kept verbatim.

Configuration is read from the environment (NARRATOR_*, ANTHROPIC_*, OPENAI_*,
NATS_*, LOG_LEVEL).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		setupLogging(cfg.LogLevel)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, templatesCmd, composeCmd, versionCmd)
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
