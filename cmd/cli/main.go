package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dnminh/restaff/cmd/cli/commands"
	"github.com/dnminh/restaff/internal/config"
	"github.com/dnminh/restaff/pkg/postgres"
	"github.com/dnminh/restaff/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	var database *postgres.DB

	rootCmd := &cobra.Command{
		Use:   "restaff",
		Short: "Restaff CLI - Manage restaurant staff schedules",
		Long:  `A CLI tool for expanding shift templates, allocating staff to shifts, and publishing weekly schedules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			database, err = initApp()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if database != nil {
				database.Close()
			}
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.ExpandWeekCmd(appRef()))
	rootCmd.AddCommand(commands.ProposeScheduleCmd(appRef()))
	rootCmd.AddCommand(commands.ValidateConditionsCmd(appRef()))
	rootCmd.AddCommand(commands.PublishScheduleCmd(appRef()))
	rootCmd.AddCommand(commands.ListRosterCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared application context. Commands are built
// before initApp runs, so they hold the pointer and read its fields
// only inside RunE.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, and database
func initApp() (*postgres.DB, error) {
	appRef()
	app.Ctx = context.Background()
	app.OAuthEnv = env

	var err error
	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	app.Logger.Info("Running database migrations")
	if err := database.RunMigrations(app.Ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Database = database
	app.Logger.Info("Database initialized successfully")

	return database, nil
}
