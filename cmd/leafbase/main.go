// Command leafbase is the REPL entrypoint for the storage engine.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/leafbase/leafbase/internal/xlog"
	"github.com/leafbase/leafbase/repl"
	"github.com/leafbase/leafbase/storage"
)

// cli holds the flags Kong parses once the required filename argument has
// already been checked by hand. The "Must supply a database filename."
// diagnostic is not something Kong's own usage-error formatting produces.
var cli struct {
	Database string `arg:"" help:"Path to the database file."`
	LogLevel string `name:"log-level" default:"info" help:"Structured log level (debug, info, warn, error)."`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Println("Must supply a database filename.")
		return 1
	}

	parser, err := kong.New(&cli, kong.Name("leafbase"),
		kong.Description("A tiny page-based embedded database."))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger, err := xlog.New(cli.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logger.Sync()

	sessionLogger, sessionID := xlog.NewSession(logger)
	sessionLogger.Info("session starting", zap.String("database", cli.Database))
	defer sessionLogger.Info("session ended", zap.String("session_id", sessionID))

	table, err := storage.Open(cli.Database, sessionLogger)
	if err != nil {
		sessionLogger.Error("failed to open database", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          repl.Prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
		Stdin:           os.Stdin,
		Stdout:          os.Stdout,
	})
	if err != nil {
		sessionLogger.Error("failed to start line editor", zap.Error(err))
		table.Close()
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer rl.Close()

	return repl.Run(table, sessionLogger, rl, os.Stdout)
}
