package main

import (
	"github.com/joho/godotenv"

	"github.com/pfrederiksen/london-culture/internal/cli"
)

func main() {
	// Credentials live in the environment; a local .env is optional.
	_ = godotenv.Load()

	cli.Execute()
}
