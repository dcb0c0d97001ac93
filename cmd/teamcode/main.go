package main

import (
	"os"

	"github.com/youruser/spellhub/cmd/teamcode/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
