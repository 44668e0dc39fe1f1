package main

import (
	"os"

	"github.com/bimmerbailey/scour/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
