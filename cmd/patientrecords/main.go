package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"patient-records-api/internal"
	"patient-records-api/internal/infrastructure/db/postgres"
)

// @title        Patient Records API
// @version      1.0
// @description  CRUD service for patient records.
// @BasePath     /api/v1

// @tag.name patients
// @tag.description Patient records

// @tag.name health
// @tag.description Health check operations

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "patientrecords",
		Short:        "Patient records HTTP API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(serveCmd(&envFile))
	root.AddCommand(schemaCmd())

	return root
}

func serveCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), *envFile)
		},
	}
}

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the SQL schema the service expects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), postgres.Schema)
			return err
		},
	}
}

func serve(ctx context.Context, envFile string) error {
	app, err := internal.NewApp(ctx, envFile)
	if err != nil {
		return fmt.Errorf("init app failed: %w", err)
	}
	defer app.Close()

	app.InitControllers()

	if err = app.Run(ctx); err != nil {
		app.Logger().Error("patientrecords stopped with error", zap.Error(err))
		return err
	}

	return nil
}
