package main

import (
	"os"

	"github.com/maastricht-university/diarview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
