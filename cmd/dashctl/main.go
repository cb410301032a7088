package main

import (
	"os"

	"dashforge/cmd/dashctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
