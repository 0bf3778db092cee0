// Package repl handles prompt printing, line tokenization, meta-command
// dispatch, and the insert/select textual parser. None of it touches the
// on-disk format; it only drives the storage package's public surface.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/leafbase/leafbase/storage"
)

// Prompt is printed before every line read from the user.
const Prompt = "db > "

// LineReader is the subset of *readline.Instance the loop needs. Tests
// drive the loop against a fake that needs no real terminal; cmd/leafbase
// wires in the genuine *readline.Instance.
type LineReader interface {
	SetPrompt(string)
	Readline() (string, error)
}

// Run drives the read-eval-print loop against table until `.exit` or
// end-of-input, writing all user-visible output to out. It returns the
// process exit code the caller should use.
func Run(table *storage.Table, logger *zap.Logger, rl LineReader, out io.Writer) int {
	if logger == nil {
		logger = zap.NewNop()
	}

	for {
		rl.SetPrompt(Prompt)
		line, err := rl.Readline()
		if err != nil {
			// EOF (Ctrl-D) ends the session; Ctrl-C cancels only the
			// current line.
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(out, "Error reading input")
			return 1
		}

		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			switch DoMetaCommand(line, table, out) {
			case MetaCommandExit:
				if err := table.Close(); err != nil {
					logger.Error("error closing database on exit", zap.Error(err))
					return 1
				}
				fmt.Fprintln(out, "byte...")
				return 0
			case MetaCommandSuccess:
				continue
			case MetaCommandUnrecognized:
				fmt.Fprintf(out, "Unrecognized command '%s'\n", line)
				continue
			}
		}

		stmt, prepareResult := PrepareStatement(line)
		switch prepareResult {
		case PrepareSuccess:
			// fall through to execution below
		case PrepareNegativeID:
			fmt.Fprintln(out, "ID must be positive.")
			continue
		case PrepareStringTooLong:
			fmt.Fprintln(out, "String is too long.")
			continue
		case PrepareSyntaxError:
			fmt.Fprintln(out, "Syntax error. Could not parse statement.")
			continue
		case PrepareUnrecognizedStatement:
			fmt.Fprintf(out, "Unrecognized keyword at start of '%s'\n", line)
			continue
		}

		result, err := ExecuteStatement(stmt, table, out)
		if err != nil {
			logger.Error("fatal storage error executing statement", zap.Error(err), zap.String("line", line))
			fmt.Fprintf(out, "Error: %v\n", err)
			return 1
		}

		switch result {
		case ExecuteSuccess:
			fmt.Fprintln(out, "Executed.")
		case ExecuteTableFull:
			fmt.Fprintln(out, "Error: Table full.")
		case ExecuteFail:
			// Unreachable today (see ExecuteFail's doc comment).
		}
	}
}
