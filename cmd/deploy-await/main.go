package main

import (
	"os"

	"github.com/shini4i/deploy-await/internal/github"
)

// This variable will be overridden by ldflags during build
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		github.WriteError(os.Stdout, err.Error())
		os.Exit(1)
	}
}
