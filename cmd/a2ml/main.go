package main

import (
	"os"

	"github.com/teranos/a2ml/cmd/a2ml/commands"
	"github.com/teranos/a2ml/logger"
)

func main() {
	err := commands.NewRootCmd().Execute()
	if err != nil {
		commands.PrintError(os.Stderr, err)
	}
	logger.Cleanup()
	if err != nil {
		os.Exit(commands.ExitCode(err))
	}
}
