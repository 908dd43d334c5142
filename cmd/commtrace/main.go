package main

import (
	"os"

	"github.com/commtrace-dev/commtrace/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
