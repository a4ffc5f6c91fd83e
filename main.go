package main

import (
	"os"

	"github.com/sqlshield/sqlshield/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
