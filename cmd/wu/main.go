package main

import (
	"os"

	"github.com/wu-lang/wu/cmd/wu/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
