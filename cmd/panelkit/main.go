package main

import (
	"os"

	"github.com/panelkit/panelkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
