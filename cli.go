package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cmdtop/history"
)

// runOptions holds the flag values for one invocation.
type runOptions struct {
	file         string
	count        int
	all          bool
	moreThan     int
	ignore       string
	barSize      int
	noBar        bool
	raw          bool
	noPercentage bool
	noCumulative bool
	format       string
	output       string
	color        string
	verbose      bool
	showVersion  bool
}

func newRootCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:           "cmdtop",
		Short:         "Rank the commands in your shell history by frequency",
		Long:          "cmdtop reads a shell history file (bash, zsh, fish, tcsh or PowerShell),\nnormalizes each entry to its head command and prints a ranked frequency report.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Println(GetVersionInfo())
				return nil
			}
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "path to the history file (\"-\" reads stdin)")
	flags.IntVarP(&opts.count, "count", "c", defaultCount, "number of commands to print")
	flags.BoolVarP(&opts.all, "all", "a", false, "print all commands (overrides --count)")
	flags.IntVarP(&opts.moreThan, "more-than", "m", 0, "only show commands used more than this many times")
	flags.StringVarP(&opts.ignore, "ignore", "i", "", "ignore the given commands (e.g. \"ls|grep|nvim\")")
	flags.IntVarP(&opts.barSize, "bar-size", "b", defaultBarSize, "width of the bar graph")
	flags.BoolVar(&opts.noBar, "no-bar", false, "do not print the bar graph")
	flags.BoolVar(&opts.raw, "raw", false, "treat input as arbitrary lines (no pipe splitting or wrapper stripping)")
	flags.BoolVar(&opts.noPercentage, "no-percentage", false, "do not show the percentage portion of the bar")
	flags.BoolVar(&opts.noCumulative, "no-cumulative", false, "do not show the inverse cumulative portion of the bar")
	flags.StringVar(&opts.format, "format", "", "force a history format (plain, zsh, fish, tcsh, powershell)")
	flags.StringVarP(&opts.output, "output", "o", "text", "output format (text, json, csv)")
	flags.StringVar(&opts.color, "color", "", "color mode (auto, always, never)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")
	flags.BoolVar(&opts.showVersion, "version", false, "print version information")

	return cmd
}

func run(cmd *cobra.Command, opts *runOptions) error {
	logger := newLogger(opts.verbose)
	defer logger.Sync()
	logger.Info("starting", zap.String("version", GetVersionShort()))

	cfg, err := LoadUserConfig()
	if err != nil {
		return err
	}
	applyUserConfig(cmd, opts, cfg, logger)

	outputFormat, err := parseOutputFormat(opts.output)
	if err != nil {
		return err
	}
	colorMode, err := parseColorMode(opts.color)
	if err != nil {
		return err
	}

	var formatOverride history.Format
	if opts.format != "" {
		formatOverride, err = history.ParseFormat(opts.format)
		if err != nil {
			return err
		}
	}

	table, format, err := loadCounts(opts.file, formatOverride, opts.raw, logger)
	if err != nil {
		return err
	}
	logger.Info("aggregated history",
		zap.Stringer("format", format),
		zap.Int("distinct_commands", len(table)),
		zap.Int("total_occurrences", table.Total()))

	table = table.Filter(splitIgnoreList(opts.ignore), opts.moreThan)
	ranked := history.Rank(table, history.RankOptions{Top: opts.count, All: opts.all})

	return writeOutput(os.Stdout, ranked, renderOptions{
		output:         outputFormat,
		barSize:        opts.barSize,
		noBar:          opts.noBar,
		showPercentage: !opts.noPercentage,
		showCumulative: !opts.noCumulative,
		colorMode:      colorMode,
	})
}

// loadCounts resolves the history source and runs the counting pipeline
// over it. An empty path falls back to $HISTFILE and then to the parent
// shell's default history location; "-" reads stdin.
func loadCounts(path string, override history.Format, raw bool, logger *zap.Logger) (history.Table, history.Format, error) {
	if path == "" {
		resolved, err := resolveHistoryFile()
		if err != nil {
			return nil, history.FormatUnknown, err
		}
		logger.Info("resolved history file", zap.String("path", resolved))
		path = resolved
	}

	if path == "-" {
		// Stdin cannot be re-read after sampling, so detection is not
		// available; an explicit --format wins, plain is the default.
		format := override
		if format == history.FormatUnknown {
			format = history.FormatPlain
		}
		table, err := history.CountReader(os.Stdin, format, raw)
		if err != nil {
			return nil, format, fmt.Errorf("failed to read history from stdin: %w", err)
		}
		return table, format, nil
	}

	return history.CountFile(path, history.Options{Format: override, Raw: raw})
}

func main() {
	// The runtime turns an EPIPE on stdout into a fatal SIGPIPE unless
	// the signal is ignored; writeOutput absorbs the resulting error so
	// "cmdtop | head" exits cleanly.
	signal.Ignore(syscall.SIGPIPE)

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
