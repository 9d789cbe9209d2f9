package main

import (
	"os"

	"github.com/SscSPs/parkmate_app/cmd/parkmate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
