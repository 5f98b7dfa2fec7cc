// Package main provides the entry point for the reference validator CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reference_validator",
	Short: "Reference Validation Layer",
	Long:  "Validates professional reference submissions: standardizes the narrative, scores consistency against the subject's history, estimates fraud risk and emits a structured, status-classified record.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
