package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/store"
)

// defaultUser owns quizzes created from the terminal.
const defaultUser = "local"

var rootCmd = &cobra.Command{
	Use:   "quizdeck",
	Short: "Practice quizzes generated from your documents",
	Long:  "Quizdeck turns PDF study material into multiple-choice quizzes you can play in the terminal or over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database path for sqlite or DSN for postgres (overrides QUIZDECK_DB)")
	rootCmd.PersistentFlags().String("driver", "", "Database driver: sqlite or postgres (overrides QUIZDECK_DB_DRIVER)")
	rootCmd.PersistentFlags().String("user", "", "User id owning local quizzes (overrides QUIZDECK_USER)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStore connects to the database selected by --driver and --db,
// falling back to QUIZDECK_DB_DRIVER and QUIZDECK_DB_DSN.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg := config.FromEnv()
	driver, _ := cmd.Flags().GetString("driver")
	if driver == "" {
		driver = cfg.DBDriver
	}
	dsn, _ := cmd.Flags().GetString("db")
	if dsn == "" {
		dsn = cfg.DBDSN
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if store.Driver(driver) != store.DriverPostgres {
		var err error
		if dsn == "" {
			dsn, err = store.DefaultDBPath()
		} else {
			err = store.EnsureDir(dsn)
		}
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}
	return store.OpenDriver(ctx, store.Driver(driver), dsn)
}

// currentUser returns the --user flag, then QUIZDECK_USER, then "local".
func currentUser(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u
	}
	if u := os.Getenv("QUIZDECK_USER"); u != "" {
		return u
	}
	return defaultUser
}
