package cli

import (
	"context"

	"github.com/mgpai22/rsub/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rsub [flags] file_path...",
	Short: "Change the timing of SubRip (.srt) subtitle files",
	Long: `rsub retimes SubRip subtitle files in place.

It converts between 25 and 23.976 fps and shifts subtitles by a fixed
number of seconds. Each file_path may be a glob pattern; ".srt" is appended
when missing. The original file is kept as <file>.bak before the first
rewrite, and an existing backup is never overwritten.

Examples:
  rsub --fps 23 movie.srt
  rsub -s -2.5 "season1/*"
  rsub -u -f 25 -s 1.2 movie
  rsub --apply shift=3 --apply fps=23 movie.srt`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
	RunE: runRetime,
}

func Execute() error {
	return ExecuteContext(context.Background())
}

func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		if logger == nil {
			logger = logging.NewLogger(verbose)
		}
		logger.Errorw("rsub failed", "error", err)
	}
	if logger != nil {
		_ = logger.Sync()
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/rsub/config.toml)")
}
