package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/hrkey/reference-validator/internal/history"
	"github.com/hrkey/reference-validator/internal/server"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the validation HTTP API",
	Long: `Start the HTTP server exposing POST /validate, POST /validate/batch
and GET /health. When DATABASE_URL is configured, prior submissions are
loaded from Postgres and approved results are persisted back.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}

	validator, err := buildValidator(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	var historyProvider server.HistoryProvider
	var sink server.ResultSink
	if cfg.DatabaseURL != "" {
		store, err := history.Connect(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()
		historyProvider = store
		sink = store
		log.Printf("History store connected")
	} else {
		log.Printf("No DATABASE_URL configured, running without history store")
	}

	srv := server.New(server.Config{Port: cfg.Port}, validator, historyProvider, sink)
	return srv.Start()
}
