// Package main provides the entry point for the dish recommendation API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Dish recommendation API server",
	Long:  "Serves nutrient-constrained, diverse dish recommendations over a recipe catalog. Runs the HTTP server when no sub-command is given.",
	RunE:  runServe,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
