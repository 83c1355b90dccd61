package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/logging"
)

var verbose bool

var (
	appConfig config.Config
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "A portfolio site with a project feed and a blog",
	Long: `folio serves a single-page portfolio. Projects and blog posts live as
JSON feeds and markdown files under content/; the page renders them on load
and shows a post in place when its card is clicked.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

func initialize() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if verbose {
		cfg.LogLevel = zapcore.DebugLevel
	}
	appConfig = cfg

	logger, err = logging.New(cfg.LogLevel)
	return err
}
