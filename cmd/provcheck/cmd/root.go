package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/spf13/cobra"

	"provcheck/internal/adapters/filesystem"
	"provcheck/internal/application"
	"provcheck/internal/config"
	"provcheck/internal/logging"
)

// Exit codes
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options configures the command tree. Zero values fall back to the process streams
// and the host filesystem.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	FS     billy.Filesystem
}

// app carries state shared by every subcommand once the root pre-run has completed
type app struct {
	opts   Options
	cfg    *config.Config
	logger *slog.Logger

	suffix   string
	logLevel string
}

// NewRootCmd builds the provcheck command tree
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	a := &app{opts: opts}

	rootCmd := &cobra.Command{
		Use:   "provcheck",
		Short: "Check provisioning profiles for an identifier",
		Long: `provcheck verifies that an identifier, typically a device UDID, is present
in every provisioning profile of a folder, a single profile file, or an
.ipa archive.

Settings can also be given as PROVCHECK_* environment variables; flags win.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip initialization for commands that need no configuration
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
				return nil
			}
			return a.init(cmd)
		},
	}
	rootCmd.SetOut(opts.Stdout)
	rootCmd.SetErr(opts.Stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &application.UsageError{Err: err}
	})

	rootCmd.PersistentFlags().StringVar(&a.suffix, "suffix", "", "profile file suffix (default from PROVCHECK_SUFFIX or .mobileprovision)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "diagnostic level: debug, info, warn, error")

	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("suffix") {
		cfg.Suffix = a.suffix
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.New(a.opts.Stderr, cfg.LogLevel)
	return nil
}

func (a *app) resolver() *filesystem.Resolver {
	return filesystem.NewResolver(a.opts.FS, filesystem.NewZipExtractor(a.opts.FS), filesystem.ResolverOptions{
		Suffix:      a.cfg.Suffix,
		ArchiveExts: a.cfg.ArchiveExts,
		TempDir:     a.cfg.TempDir,
		Logger:      a.logger,
	})
}

func (a *app) scanner() *filesystem.Scanner {
	return filesystem.NewScanner(a.opts.FS, a.cfg.MaxFileBytes, a.logger)
}

// usageArgs marks argument validation failures as usage errors
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &application.UsageError{Err: err}
		}
		return nil
	}
}

// Run executes the command tree with args and returns the process exit code
func Run(ctx context.Context, args []string, opts Options) int {
	rootCmd := NewRootCmd(opts)
	rootCmd.SetArgs(args)

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		if cmd != nil && errors.Is(err, application.ErrUsage) {
			fmt.Fprint(rootCmd.ErrOrStderr(), cmd.UsageString())
		}
	}
	return exitCode(err)
}

// Execute runs the root command against the process arguments
func Execute(ctx context.Context) int {
	return Run(ctx, os.Args[1:], Options{})
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, application.ErrUsage):
		return ExitUsage
	default:
		return ExitError
	}
}
