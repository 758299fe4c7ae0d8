package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/sergev/vecl/parser"
	"github.com/sergev/vecl/render"
)

const replName = "<repl>"

func (a *app) runREPL() error {
	if !isInteractive(a.stdin) {
		return a.runBufferedREPL(bufio.NewReader(a.stdin))
	}
	return a.runInteractiveREPL()
}

// evalChunk parses src and prints its tree. It reports whether more input is
// needed to complete the chunk.
func (a *app) evalChunk(src string, final bool) (needMore bool, err error) {
	prog, parseErr := parser.Parse(src, a.parseOptions()...)
	if parseErr != nil {
		if parser.IsIncomplete(parseErr) && !final {
			return true, nil
		}
		a.reportError(replName, src, parseErr)
		return false, parseErr
	}
	a.log.WithField("lines", len(prog.Lines)).Debug("parsed chunk")
	return false, render.Write(a.stdout, a.cfg.Format(), prog, a.renderOptions())
}

func (a *app) runBufferedREPL(reader *bufio.Reader) error {
	var buffer strings.Builder
	failed := false

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if buffer.Len() == 0 && line == "" {
					break
				}
			} else {
				return fmt.Errorf("read error: %w", err)
			}
		}
		buffer.WriteString(line)
		atEOF := errors.Is(err, io.EOF)

		needMore, evalErr := a.evalChunk(buffer.String(), atEOF)
		if needMore {
			continue
		}
		buffer.Reset()
		if evalErr != nil {
			if _, ok := parser.AsSyntaxError(evalErr); !ok {
				return evalErr
			}
			failed = true
		}
		if atEOF {
			break
		}
	}
	if failed {
		return errReported
	}
	return nil
}

func (a *app) runInteractiveREPL() error {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := a.cfg.HistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			} else {
				a.log.WithError(err).Warn("cannot save history")
			}
		}()
	}

	var buffer strings.Builder

	for {
		prompt := a.cfg.REPL.Prompt
		if buffer.Len() > 0 {
			prompt = a.cfg.REPL.ContinuationPrompt
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Fprintln(a.stdout)
				buffer.Reset()
				continue
			case errors.Is(err, io.EOF):
				fmt.Fprintln(a.stdout)
				return nil
			default:
				return fmt.Errorf("read error: %w", err)
			}
		}
		buffer.WriteString(input)
		buffer.WriteString("\n")

		src := buffer.String()
		needMore, evalErr := a.evalChunk(src, false)
		if needMore {
			continue
		}
		buffer.Reset()
		if trimmed := strings.TrimSpace(src); trimmed != "" {
			state.AppendHistory(trimmed)
		}
		if evalErr != nil {
			if _, ok := parser.AsSyntaxError(evalErr); !ok {
				a.reportError(replName, "", evalErr)
			}
		}
	}
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.stdout, format, args...)
}

func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
