package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default file names for the input and output workbooks.
const (
	DefaultInput  = "data.xlsx"
	DefaultOutput = "data_enrichi.xlsx"
)

// tokenEnvVar is the environment variable carrying the registry API token.
const tokenEnvVar = "SIRENRICH_TOKEN"

// Config holds the application configuration loaded from flags,
// environment variables, and .env files.
type Config struct {
	// Run parameters
	Input              string
	Output             string
	Token              string
	RulesFile          string
	Concurrency        int
	RateLimit          float64
	PreferAddressMatch bool

	// Global flags
	Debug   bool
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// The token commonly lives in a .env file
	if err := viper.BindEnv("token", tokenEnvVar); err != nil {
		return nil, err
	}

	config := &Config{
		Input:       DefaultInput,
		Output:      DefaultOutput,
		Token:       viper.GetString("token"),
		Concurrency: 1,
		RateLimit:   7,

		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Format:  viper.GetString("format"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags so flag
// values take precedence over env vars.
func (c *Config) UpdateFromFlags(debug, quiet, noColor bool, format, logLevel string) {
	c.Debug = debug
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
