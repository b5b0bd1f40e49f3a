package cli

import (
	"errors"
	"fmt"

	"github.com/mgpai22/rsub/internal/config"
	"github.com/mgpai22/rsub/internal/pipeline"
	"github.com/mgpai22/rsub/internal/transform"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func init() {
	addRetimeFlags(rootCmd.Flags())
}

func addRetimeFlags(flags *pflag.FlagSet) {
	flags.Float64P("shift", "s", 0, "Shift subtitles by N seconds (float, may be negative)")
	flags.StringP("fps", "f", "", "Change frame rate: 23 (25.000 -> 23.976 fps), 25 (23.976 -> 25.000 fps)")
	flags.StringArray("apply", nil, "Apply a directive (fps=23, fps=25, shift=N) after --fps/--shift; repeatable, applied in order")
	flags.BoolP("no-backup", "b", false, "Do not create backup files")
	flags.BoolP("use-backup-as-input", "u", false, "Use backup files as input (if they exist)")
	flags.BoolP("no-recount", "r", false, "Do not recount subtitle numbering")
	flags.StringP("encoding", "e", "", "Subtitle encoding (default from config, ISO-8859-2)")
}

func runRetime(cmd *cobra.Command, args []string) error {
	cfg, cfgFile, found, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if found {
		logger.Debugw("Loaded config", "path", cfgFile)
	}

	opts, err := runnerOptions(cmd.Flags(), cfg)
	if err != nil {
		return err
	}

	cmds, err := buildCommands(cmd.Flags())
	if err != nil {
		return err
	}

	paths, unmatched, err := pipeline.DiscoverAll(args)
	if err != nil {
		return err
	}
	for _, pattern := range unmatched {
		logger.Warnw("Could not find subtitle files on the given path", "pattern", pattern)
	}
	if len(paths) == 0 {
		return pipeline.ErrNoFiles
	}

	logger.Infow("Retiming subtitles",
		"files", len(paths),
		"encoding", opts.Encoding,
		"backup", opts.CreateBackup,
		"use_backup_as_input", opts.UseBackupAsInput,
		"recount", opts.Renumber,
	)

	runner := pipeline.NewRunner(opts, pipeline.LogReporter{Logger: logger}, logger)
	summary, err := runner.Run(cmd.Context(), paths, cmds)
	if errors.Is(err, pipeline.ErrNothingToDo) {
		logger.Warnw("Nothing to change, no valid --fps, --shift or --apply given")
		return nil
	}
	if summary != nil {
		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary))
	}
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", summary.Failed, len(summary.Files))
	}
	return nil
}

// runnerOptions starts from the config and lets explicitly set flags win.
func runnerOptions(flags *pflag.FlagSet, cfg *config.Config) (pipeline.Options, error) {
	opts := pipeline.Options{
		CreateBackup:     cfg.CreateBackup,
		UseBackupAsInput: cfg.UseBackupAsInput,
		Renumber:         cfg.Recount,
		Encoding:         cfg.Encoding,
	}

	if flags.Changed("no-backup") {
		noBackup, _ := flags.GetBool("no-backup")
		opts.CreateBackup = !noBackup
	}
	if flags.Changed("use-backup-as-input") {
		opts.UseBackupAsInput, _ = flags.GetBool("use-backup-as-input")
	}
	if flags.Changed("no-recount") {
		noRecount, _ := flags.GetBool("no-recount")
		opts.Renumber = !noRecount
	}
	if flags.Changed("encoding") {
		opts.Encoding, _ = flags.GetString("encoding")
	}

	if opts.Encoding == "" {
		return opts, fmt.Errorf("encoding must not be empty")
	}
	return opts, nil
}

// buildCommands returns --fps, then --shift, then every --apply directive in
// the order given. Unrecognized values are logged and left out.
func buildCommands(flags *pflag.FlagSet) ([]transform.Command, error) {
	var cmds []transform.Command

	if flags.Changed("fps") {
		fps, _ := flags.GetString("fps")
		cmd := transform.NewFPS(fps)
		if !cmd.Valid() {
			logger.Warnw("Ignoring unsupported frame rate", "fps", fps, "supported", "23, 25")
		}
		cmds = append(cmds, cmd)
	}

	if flags.Changed("shift") {
		seconds, err := flags.GetFloat64("shift")
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, transform.NewShift(seconds))
	}

	directives, err := flags.GetStringArray("apply")
	if err != nil {
		return nil, err
	}
	for _, directive := range directives {
		cmd := transform.ParseDirective(directive)
		if !cmd.Valid() {
			logger.Warnw("Ignoring unrecognized directive", "directive", directive)
		}
		cmds = append(cmds, cmd)
	}

	return transform.Compile(cmds...), nil
}
