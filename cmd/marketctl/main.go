package main

import (
	"os"

	"github.com/ghuser/simplemarket/cmd/marketctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
