package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/trackdown/internal/cli"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{
		// Document path from the environment; --file overrides it.
		DefaultPath: os.Getenv("TRACKDOWN_FILE"),
	}

	// Detect interactive terminal for prompts, forms and the timer.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
