// file: cmd/root.go
// version: 2.0.0
// guid: 9b4e2d70-1f8c-4a53-b6e9-3d07c5a81f26

package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/practiceops/practice-directory/internal/config"
	"github.com/practiceops/practice-directory/internal/database"
	"github.com/practiceops/practice-directory/internal/ingest"
	"github.com/practiceops/practice-directory/internal/models"
	"github.com/practiceops/practice-directory/internal/server"
	"github.com/practiceops/practice-directory/internal/watcher"
)

var cfgFile string
var databasePath string
var databaseType string
var enableSQLite bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "practice-directory",
	Short: "Fuzzy search and ranking over a healthcare practice directory",
	Long: `Practice Directory serves ranked fuzzy search over a registry of
healthcare practices. It ingests registry extracts (CSV, JSON, or YAML),
stores them in PebbleDB or SQLite, and exposes name, postcode, and
practice-type search over HTTP and the command line.`,
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP search API",
	Long:  `Start the HTTP server exposing the search, practice, and import endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath, config.AppConfig.EnableSQLite); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.CloseStore()

		fmt.Printf("Using database: %s (%s)\n", config.AppConfig.DatabasePath, config.AppConfig.DatabaseType)

		// Seed the directory from the configured extract if present.
		if config.AppConfig.ExtractPath != "" {
			if _, err := os.Stat(config.AppConfig.ExtractPath); err == nil {
				result, err := ingest.ImportFile(cmd.Context(), database.GlobalStore, config.AppConfig.ExtractPath, ingest.Options{})
				if err != nil {
					fmt.Printf("Warning: extract import failed: %v\n", err)
				} else {
					fmt.Printf("Imported %d practices from %s (batch %s)\n", result.Imported, config.AppConfig.ExtractPath, result.BatchID)
				}
			}
		}

		// Re-import automatically when the extract file changes.
		if config.AppConfig.WatchExtract && config.AppConfig.ExtractPath != "" {
			w := watcher.New(func(extractPath string) {
				if _, err := ingest.ImportFile(context.Background(), database.GlobalStore, extractPath, ingest.Options{}); err != nil {
					log.Printf("[ERROR] extract re-import failed: %v", err)
				}
			}, watcher.DefaultDebounce)
			if err := w.Start(config.AppConfig.ExtractPath); err != nil {
				return fmt.Errorf("failed to watch extract: %w", err)
			}
			defer w.Stop()
			fmt.Printf("Watching extract: %s\n", config.AppConfig.ExtractPath)
		}

		srv := server.NewServer(database.GlobalStore)
		cfg := server.ServerConfig{
			Port: config.AppConfig.Port,
		}

		if host := cmd.Flag("host").Value.String(); host != "" {
			cfg.Host = host
		}
		if port, err := cmd.Flags().GetInt("port"); err == nil && cmd.Flags().Changed("port") {
			cfg.Port = port
		}
		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}

		return srv.Start(cfg)
	},
}

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <extract-file>",
	Short: "Import a registry extract",
	Long: `Import a registry extract into the directory, upserting by ODS code.
The format is chosen by file extension: .csv, .json, or .yaml.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath, config.AppConfig.EnableSQLite); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.CloseStore()

		replace, _ := cmd.Flags().GetBool("replace")
		fmt.Printf("Using database: %s (%s)\n", config.AppConfig.DatabasePath, config.AppConfig.DatabaseType)
		fmt.Printf("Importing extract: %s\n", args[0])

		result, err := ingest.ImportFile(cmd.Context(), database.GlobalStore, args[0], ingest.Options{
			ShowProgress: true,
			Replace:      replace,
		})
		if err != nil {
			return fmt.Errorf("import error: %w", err)
		}

		fmt.Printf("Imported %d practices (%d skipped), batch %s\n", result.Imported, result.Skipped, result.BatchID)
		return nil
	},
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the practice directory",
	Long:  `Run a ranked search against the local directory and print the results.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath, config.AppConfig.EnableSQLite); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.CloseStore()

		searchType, _ := cmd.Flags().GetString("type")
		limit, _ := cmd.Flags().GetInt("limit")
		radius, _ := cmd.Flags().GetString("radius")
		practiceType, _ := cmd.Flags().GetString("practice-type")

		resp, err := runSearch(cmd.Context(), database.GlobalStore, models.SearchRequest{
			SearchType: searchType,
			Query:      args[0],
			Options: models.SearchOptions{
				Limit:        limit,
				Radius:       radius,
				PracticeType: practiceType,
			},
		})
		if err != nil {
			return err
		}

		printResults(cmd.OutOrStdout(), resp)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.practice-directory.yaml)")
	rootCmd.PersistentFlags().StringVar(&databasePath, "db", "practices.pebble", "path to database (default: practices.pebble for PebbleDB)")
	rootCmd.PersistentFlags().StringVar(&databaseType, "db-type", "pebble", "database type: pebble (default), sqlite, or memory")
	rootCmd.PersistentFlags().BoolVar(&enableSQLite, "enable-sqlite3-i-know-the-risks", false, "enable SQLite3 database (WARNING: cross-compilation issues, PebbleDB recommended)")

	viper.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("database_type", rootCmd.PersistentFlags().Lookup("db-type"))
	viper.BindPFlag("enable_sqlite3_i_know_the_risks", rootCmd.PersistentFlags().Lookup("enable-sqlite3-i-know-the-risks"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(searchCmd)

	serveCmd.Flags().Int("port", 8080, "port to run the server on")
	serveCmd.Flags().String("host", "", "host to bind the server to")
	serveCmd.Flags().String("read-timeout", "15s", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "30s", "write timeout (e.g. 30s, 1m)")
	viper.BindPFlag("port", serveCmd.Flags().Lookup("port"))

	importCmd.Flags().Bool("replace", false, "drop the existing directory before importing")

	searchCmd.Flags().String("type", "name", "search type: name, postcode, or type")
	searchCmd.Flags().Int("limit", models.DefaultSearchLimit, "maximum results to return")
	searchCmd.Flags().String("radius", "", "postcode radius: exact, district, or area")
	searchCmd.Flags().String("practice-type", "", "practice-type keyword for type searches")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".practice-directory")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	// Ensure database directory exists
	if databasePath != "" {
		dbDir := filepath.Dir(databasePath)
		if dbDir != "." {
			if err := os.MkdirAll(dbDir, 0755); err != nil {
				fmt.Printf("Error creating database directory: %v\n", err)
			}
		}
	}

	config.InitConfig()
}
