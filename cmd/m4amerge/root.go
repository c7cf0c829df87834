package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Maddox1809/m4a-merge/internal/check"
	"github.com/Maddox1809/m4a-merge/internal/config"
	"github.com/Maddox1809/m4a-merge/internal/display"
	"github.com/Maddox1809/m4a-merge/internal/ffmpeg"
	"github.com/Maddox1809/m4a-merge/internal/logging"
	"github.com/Maddox1809/m4a-merge/internal/pipeline"
)

func newRootCommand() *cobra.Command {
	cfg := config.DefaultConfig()
	var (
		configPath string
		forceColor bool
		noColor    bool
	)

	cmd := &cobra.Command{
		Use:   "m4amerge -i <dir> -o <path>",
		Short: "Merge a directory of M4A files into one via ffmpeg",
		Long: `m4amerge discovers the .m4a files in a directory, orders them naturally
(media2 before media10), and concatenates them into a single file with
ffmpeg's concat demuxer: stream copy, no re-encoding.

If the output path is a bare filename it is placed under the "merged/"
folder relative to the working directory.`,
		Example: `  m4amerge --input basemedia/ --output merged.m4a
  m4amerge -i ./audio -o result.m4a -v`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				if err := config.LoadFile(configPath, &cfg); err != nil {
					return err
				}
			}
			if noColor {
				cfg.ColorMode = config.ColorNever
			} else if forceColor {
				cfg.ColorMode = config.ColorAlways
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runMerge(cmd.Context(), &cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.InputDir, "input", "i", "", "Directory containing M4A files to merge")
	cmd.Flags().StringVarP(&cfg.OutputPath, "output", "o", "", "Output M4A file path")
	cmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Show the discovered files in merge order")
	cmd.Flags().BoolVarP(&cfg.DryRun, "dry-run", "d", false, "Preview only; do not run ffmpeg")
	cmd.Flags().BoolVarP(&cfg.CheckOnly, "check", "c", false, "Run ffmpeg diagnostics and exit")
	cmd.Flags().StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file with tool settings")
	cmd.Flags().BoolVar(&forceColor, "color", false, "Force colored logs")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored logs")
	cmd.SetVersionTemplate("m4amerge v{{.Version}}\n")

	return cmd
}

// runMerge is the post-flag entry point: bootstrap the logger, then either
// run diagnostics or the pipeline under a signal-cancelled context.
func runMerge(ctx context.Context, cfg *config.Config) error {
	log, err := logging.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(cfg, log) {
			return errReported
		}
		return nil
	}

	// SIGINT/SIGTERM cancels the context so the in-flight ffmpeg child is
	// killed instead of being orphaned.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping…")
		cancel()
	}()

	res := pipeline.Run(ctx, cfg, log, ffmpeg.NewExec(cfg))
	if !res.Success {
		return errReported
	}
	return nil
}
