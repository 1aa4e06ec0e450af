package main

import (
	"os"

	"github.com/xcsp3go/xcsp3/cmd/xcsp3/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
