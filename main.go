package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/weconnect/agrisearch/cmd"
)

func main() {
	// A local .env is optional; deployments set environment variables directly.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
