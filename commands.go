package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sergev/vecl/config"
	"github.com/sergev/vecl/parser"
	"github.com/sergev/vecl/render"
	"github.com/sergev/vecl/source"
)

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vecl [file...]",
		Short: "Parser for the vecl vector expression language",
		Long: `vecl parses programs written in a small vector expression language:
numbers, vectors, calls, arithmetic and typed function declarations.

With file arguments it prints the syntax tree of each file. Without
arguments it starts an interactive session.

Configuration is read from $HOME/.config/vecl/config.toml, or from the
file named by ` + config.EnvVar + ` or --config.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(func(name string) bool { return cmd.Flags().Changed(name) })
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return a.runParse(args)
			}
			return a.runREPL()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.config, "config", "", "config file (default: $HOME/.config/vecl/config.toml)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "verbose output")
	pf.StringVarP(&a.flags.format, "format", "f", "", "output format: sexpr, yaml or json")
	pf.BoolVar(&a.flags.locations, "locations", false, "include node locations in yaml and json output")
	pf.StringVar(&a.flags.assoc, "assoc", "", "operator chain associativity: right or left")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable colored diagnostics")

	root.AddCommand(a.parseCmd(), a.checkCmd(), a.replCmd())
	return root
}

func (a *app) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file|-]...",
		Short: "Print the syntax tree of each file",
		Long: `Parses each file and prints its syntax tree in the configured format.
A file named "-" is read from standard input, which is also the default.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{source.StdinName}
			}
			return a.runParse(args)
		},
	}
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file|-]...",
		Short: "Report whether each file parses",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{source.StdinName}
			}
			return a.runCheck(args)
		},
	}
}

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL()
		},
	}
}

// load opens and parses one file, logging timing at debug level.
func (a *app) load(path string) (*source.File, *parser.Program, error) {
	f, err := source.Open(path, a.stdin)
	if err != nil {
		return nil, nil, err
	}
	start := time.Now()
	prog, err := f.Parse(a.parseOptions()...)
	entry := a.log.WithFields(logrus.Fields{
		"file":     f.Name,
		"bytes":    len(f.Text),
		"duration": time.Since(start),
	})
	if err != nil {
		entry.WithError(err).Debug("parse failed")
		return f, nil, err
	}
	entry.WithField("lines", len(prog.Lines)).Debug("parsed")
	return f, prog, nil
}

func (a *app) runParse(paths []string) error {
	failed := false
	format := a.cfg.Format()
	for _, path := range paths {
		f, prog, err := a.load(path)
		if err != nil {
			failed = true
			a.reportLoadError(path, f, err)
			continue
		}
		if err := render.Write(a.stdout, format, prog, a.renderOptions()); err != nil {
			return err
		}
	}
	if failed {
		return errReported
	}
	return nil
}

func (a *app) runCheck(paths []string) error {
	failed := false
	for _, path := range paths {
		f, prog, err := a.load(path)
		if err != nil {
			failed = true
			a.reportLoadError(path, f, err)
			continue
		}
		a.printf("%s: %s (%d lines)\n", f.Name, a.style.ok.Render("ok"), len(prog.Lines))
	}
	if failed {
		return errReported
	}
	return nil
}

func (a *app) reportLoadError(path string, f *source.File, err error) {
	if f == nil {
		a.log.WithField("file", path).WithError(err).Debug("open failed")
		a.reportError(path, "", err)
		return
	}
	a.reportError(f.Name, f.Text, err)
}
