package main

import (
	"os"

	"github.com/chaiwat/okfolio/cmd/okfolio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
