package main

import (
	"os"

	"github.com/cwbudde/go-scheme/cmd/scheme/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
