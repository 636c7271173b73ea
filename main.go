package main

import (
	"os"

	"github.com/edututor/edututor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
