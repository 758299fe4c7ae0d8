package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/sergev/vecl/config"
	"github.com/sergev/vecl/parser"
	"github.com/sergev/vecl/render"
)

// errReported signals a failure whose diagnostic was already printed.
var errReported = errors.New("vecl: errors reported")

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.rootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "vecl: %v\n", err)
		}
		os.Exit(1)
	}
}

type flags struct {
	config    string
	verbose   bool
	format    string
	locations bool
	assoc     string
	noColor   bool
}

// app carries the resolved configuration and I/O streams shared by every
// command.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	flags flags
	cfg   *config.Config
	log   *logrus.Logger
	style styles
}

type styles struct {
	err   lipgloss.Style
	ok    lipgloss.Style
	caret lipgloss.Style
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		cfg:    config.Default(),
		log:    logrus.New(),
	}
}

// setup loads the configuration, applies command-line overrides and prepares
// the logger and output styles.
func (a *app) setup(changed func(name string) bool) error {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if a.flags.config != "" {
		path = a.flags.config
		cfg, err = config.Load(path)
	} else {
		cfg, path, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}

	if changed("format") {
		cfg.Output.Format = a.flags.format
	}
	if changed("locations") {
		cfg.Output.Locations = a.flags.locations
	}
	if changed("assoc") {
		cfg.Parser.Associativity = a.flags.assoc
	}
	if a.flags.noColor {
		disabled := false
		cfg.Output.Color = &disabled
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.log.SetOutput(a.stderr)
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level, _ := logrus.ParseLevel(cfg.Log.Level)
	if a.flags.verbose {
		level = logrus.DebugLevel
	}
	a.log.SetLevel(level)
	if path != "" {
		a.log.WithField("path", path).Debug("loaded config")
	}

	a.style = newStyles(a.stderr, cfg.ColorEnabled())
	return nil
}

func newStyles(w io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(w)
	// Caret lines copy tabs from the source line.
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	if !color {
		return styles{err: base, ok: base, caret: base}
	}
	return styles{
		err:   base.Foreground(lipgloss.Color("#EF4444")).Bold(true),
		ok:    base.Foreground(lipgloss.Color("#10B981")),
		caret: base.Foreground(lipgloss.Color("#F59E0B")).Bold(true),
	}
}

func (a *app) parseOptions() []parser.Option {
	return []parser.Option{parser.WithAssociativity(a.cfg.Associativity())}
}

func (a *app) renderOptions() render.Options {
	return render.Options{Locations: a.cfg.Output.Locations}
}

// reportError prints err to stderr, with source context for syntax errors.
func (a *app) reportError(name, src string, err error) {
	serr, ok := parser.AsSyntaxError(err)
	if !ok {
		fmt.Fprintln(a.stderr, a.style.err.Render(fmt.Sprintf("%s: %v", name, err)))
		return
	}
	diag := render.Diagnostic(name, src, serr)
	header, rest, _ := strings.Cut(diag, "\n")
	fmt.Fprintln(a.stderr, a.style.err.Render(header))
	if rest == "" {
		return
	}
	body, caretLine := rest, ""
	if i := strings.LastIndexByte(rest, '\n'); i >= 0 {
		body, caretLine = rest[:i], rest[i+1:]
	}
	fmt.Fprintln(a.stderr, body)
	fmt.Fprintln(a.stderr, a.style.caret.Render(caretLine))
}
