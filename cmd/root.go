package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"filebundler/pkg/bundle"
	"filebundler/pkg/config"
	"filebundler/pkg/console"
	"filebundler/pkg/logging"
	"filebundler/pkg/rsp"
	"filebundler/pkg/version"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// ErrReported is returned by commands that have already shown the failure
// to the user. It only sets the exit status.
var ErrReported = errors.New("error already reported")

// app carries what every subcommand needs.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	debug  bool

	// debugLogger is built by --debug and owned by the app.
	debugLogger *zap.Logger
}

// syncLogger flushes the logger built for --debug, if any.
func (a *app) syncLogger() {
	if a.debugLogger != nil {
		_ = a.debugLogger.Sync()
	}
}

// NewRootCommand creates the filebundler command tree.
func NewRootCommand(cfg config.Config, logger *zap.Logger) *cobra.Command {
	root, _ := newRoot(cfg, logger)
	return root
}

func newRoot(cfg config.Config, logger *zap.Logger) (*cobra.Command, *app) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &app{cfg: cfg, logger: logger}

	root := &cobra.Command{
		Use:   version.AppName,
		Short: "filebundler is a CLI tool for bundling source files",
		Long: `filebundler concatenates the source files of the current directory into a
single annotated file, filtered by extension and sorted by name or extension.

Arguments of the form @file are replaced by the flags stored in that
response file; create one interactively with "filebundler create-rsp".`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.debug && !a.cfg.Debug {
				logger, err := logging.New(true)
				if err != nil {
					return fmt.Errorf("failed to initialize debug logger: %w", err)
				}
				a.logger = logger
				a.debugLogger = logger
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(newBundleCommand(a))
	root.AddCommand(newCreateRspCommand(a))
	root.AddCommand(newVersionCommand())

	return root, a
}

// Execute expands response files in args and runs the command tree. Errors
// are printed to stderr before being returned.
func Execute(args []string, cfg config.Config, logger *zap.Logger) error {
	return execute(args, cfg, logger, os.Stdin, os.Stdout, os.Stderr)
}

func execute(args []string, cfg config.Config, logger *zap.Logger, in io.Reader, out, errOut io.Writer) error {
	printer := console.NewPrinter(errOut)
	root, a := newRoot(cfg, logger)
	defer a.syncLogger()

	expanded, err := rsp.ExpandArgs(args, flagValueMatcher(root))
	if err != nil {
		printer.Errorf("Error: %v", err)
		return err
	}

	root.SetArgs(expanded)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.Execute(); err != nil {
		if !errors.Is(err, ErrReported) {
			printer.Errorf("Error: %v", err)
		}
		return err
	}
	return nil
}

// report prints err in one of the user-facing categories and returns
// ErrReported.
func report(p *console.Printer, err error) error {
	switch {
	case errors.Is(err, bundle.ErrDirectoryNotFound):
		p.Errorf("Error: File path is invalid")
	case bundle.IsIOError(err):
		p.Errorf("I/O Error: %v", err)
	default:
		p.Errorf("Error: %v", err)
	}
	return ErrReported
}

// flagValueMatcher returns a function that, fed the arguments in order,
// reports whether an argument is a flag whose value is the next argument.
// It follows subcommand names so each flag is looked up on the command that
// will parse it.
func flagValueMatcher(root *cobra.Command) func(arg string) bool {
	cur := root
	return func(arg string) bool {
		switch {
		case strings.HasPrefix(arg, "--"):
			name := arg[2:]
			if strings.Contains(name, "=") {
				return false
			}
			return takesValue(lookupFlag(cur, name))
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			// Short flags may be grouped; only the last one can take the next argument.
			for i := 1; i < len(arg); i++ {
				f := lookupShorthand(cur, arg[i:i+1])
				if f == nil {
					return false
				}
				if takesValue(f) {
					return i == len(arg)-1
				}
			}
			return false
		}
		for _, sub := range cur.Commands() {
			if sub.Name() == arg || sub.HasAlias(arg) {
				cur = sub
				break
			}
		}
		return false
	}
}

func takesValue(f *pflag.Flag) bool {
	return f != nil && f.NoOptDefVal == ""
}

func flagSets(c *cobra.Command) []*pflag.FlagSet {
	return []*pflag.FlagSet{c.Flags(), c.PersistentFlags(), c.InheritedFlags()}
}

func lookupFlag(c *cobra.Command, name string) *pflag.Flag {
	for _, fs := range flagSets(c) {
		if f := fs.Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

func lookupShorthand(c *cobra.Command, short string) *pflag.Flag {
	for _, fs := range flagSets(c) {
		if f := fs.ShorthandLookup(short); f != nil {
			return f
		}
	}
	return nil
}
