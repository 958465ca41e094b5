package main

import (
	"os"

	"github.com/golftaweerak/sciquiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
