package main

import (
	"os"

	"github.com/simonhull/id3tag/cmd/id3dump/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
