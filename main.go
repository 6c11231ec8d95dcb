package main

import (
	"os"

	"github.com/ravyz/ravyz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
