package main

import (
	"os"

	"github.com/lashon-study/lashon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
