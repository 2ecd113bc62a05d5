package main

import (
	"os"

	"github.com/letterlang/letter/cmd/letter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
