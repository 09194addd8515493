// file: internal/config/config.go
// version: 1.3.0
// guid: 29ad667d-5b10-4c02-8ae2-8ea0e220939e

package config

import (
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port         int
	DatabasePath string
	DatabaseType string // "pebble" (default), "sqlite", or "memory"
	EnableSQLite bool   // Must be true to use SQLite (safety flag)

	// Registry extract ingestion
	ExtractPath  string
	WatchExtract bool

	// Practice-type keywords surfaced by /api/practice-types
	PracticeTypes []string

	// HTTP limits
	RateLimitPerMinute int
	RateLimitBurst     int
	MaxBodyBytes       int64
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	// Set defaults
	viper.SetDefault("port", 8080)
	viper.SetDefault("database_type", "pebble")
	viper.SetDefault("enable_sqlite3_i_know_the_risks", false)
	viper.SetDefault("watch_extract", false)
	viper.SetDefault("rate_limit_per_minute", 300)
	viper.SetDefault("rate_limit_burst", 30)
	viper.SetDefault("max_body_bytes", 1<<20)
	viper.SetDefault("practice_types", []string{
		"medical", "dental", "pharmacy", "optician", "surgery", "urgent care",
	})

	AppConfig = Config{
		Port:               viper.GetInt("port"),
		DatabasePath:       viper.GetString("database_path"),
		DatabaseType:       viper.GetString("database_type"),
		EnableSQLite:       viper.GetBool("enable_sqlite3_i_know_the_risks"),
		ExtractPath:        viper.GetString("extract_path"),
		WatchExtract:       viper.GetBool("watch_extract"),
		PracticeTypes:      viper.GetStringSlice("practice_types"),
		RateLimitPerMinute: viper.GetInt("rate_limit_per_minute"),
		RateLimitBurst:     viper.GetInt("rate_limit_burst"),
		MaxBodyBytes:       viper.GetInt64("max_body_bytes"),
	}

	// Normalize database type
	if AppConfig.DatabaseType == "sqlite3" {
		AppConfig.DatabaseType = "sqlite"
	}
	if AppConfig.DatabaseType == "" {
		AppConfig.DatabaseType = "pebble"
	}
}
