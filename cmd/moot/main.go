package main

import (
	"os"

	"github.com/mootlabs/moot/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
