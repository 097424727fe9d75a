// Package cmd provides the root command and CLI setup for earlyexit.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mouse-blink/earlyexit/internal/adapter"
	"github.com/mouse-blink/earlyexit/internal/config"
	"github.com/mouse-blink/earlyexit/internal/controller"
	"github.com/mouse-blink/earlyexit/internal/domain"
	m "github.com/mouse-blink/earlyexit/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var workflow domain.Workflow
var ui controller.UI
var logger *zap.Logger

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	workflow = domain.NewWorkflow(fsAdapter, ui)
}

var configFlag string
var annotationFlag string
var hintFlags []string
var hintsFileFlag string
var excludeFlags []string
var verboseFlag bool
var diffFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "earlyexit [paths...]",
		Short:             "Add early exits after Express responses",
		Long:              rootLongDescription,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogger,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fixArgs, err := buildFixArgs(cmd, args)
			if err != nil {
				return err
			}

			fixArgs.ShowDiff = diffFlag

			return workflow.Fix(fixArgs)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", config.DefaultPath, "path to the configuration file")
	flags.StringVarP(&annotationFlag, "annotation", "a", "", "handler return annotation: keep, add or remove")
	flags.StringArrayVar(&hintFlags, "hint", nil, "only patch sites at or right after path:line (can be repeated)")
	flags.StringVar(&hintsFileFlag, "hints-file", "", "read hints from a TypeScript compiler log")
	flags.StringArrayVarP(&excludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	cmd.Flags().BoolVar(&diffFlag, "diff", false, "print a diff of every rewritten file")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func setupLogger(_ *cobra.Command, _ []string) error {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	if verboseFlag {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	var err error

	logger, err = cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}

// buildFixArgs merges the configuration file with command-line flags.
func buildFixArgs(cmd *cobra.Command, args []string) (domain.FixArgs, error) {
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(configFlag); errors.Is(err, os.ErrNotExist) {
			return domain.FixArgs{}, fmt.Errorf("config file %s not found", configFlag)
		}
	}

	cfg, err := config.Load(configFlag)
	if err != nil {
		return domain.FixArgs{}, err
	}

	if annotationFlag != "" {
		cfg.Annotation = annotationFlag
	}

	if hintsFileFlag != "" {
		cfg.HintsFile = hintsFileFlag
	}

	cfg.Hints = append(cfg.Hints, hintFlags...)
	cfg.Exclude = append(cfg.Exclude, excludeFlags...)

	if err := cfg.Validate(); err != nil {
		return domain.FixArgs{}, err
	}

	hints, err := cfg.ResolveHints()
	if err != nil {
		return domain.FixArgs{}, err
	}

	paths := parsePaths(args)
	if len(paths) == 0 {
		paths = cfg.PathList()
	}

	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	return domain.FixArgs{
		Paths:      paths,
		Exclude:    cfg.Exclude,
		Extensions: cfg.Extensions,
		Hints:      hints,
		Options:    cfg.RewriteOptions(),
	}, nil
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
