package main

import (
	"os"

	"github.com/gestipresence/presence-backend-go/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
