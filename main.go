package main

import (
	"os"

	"github.com/YoungY620/utgen/cmd"
	"github.com/YoungY620/utgen/internal"
)

var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	if err := cmd.Execute(); err != nil {
		internal.LogError("%v", err)
		os.Exit(1)
	}
}
