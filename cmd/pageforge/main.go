package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/frherrer/GoE2E-PageForge/internal/cli"
)

func main() {
	// Load .env if present; a missing file is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
