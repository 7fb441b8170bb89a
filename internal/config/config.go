// Package config defines the run configuration for the schema exporter and
// resolves it from command-line flags and environment variables.
//
// Every setting follows the same resolution order: an explicitly passed flag
// wins, then the environment variable, then the built-in default. With no
// flags and no environment the exporter reads schema/api_schema.json and
// writes schema/database_schema.sql.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// Defaults.
const (
	DefaultInput          = "schema/api_schema.json"
	DefaultOutput         = "schema/database_schema.sql"
	DefaultTitle          = "Mari Gunting Database Schema Export"
	DefaultMetricsBackend = "none"
	DefaultPushgatewayURL = "http://localhost:9091"
	DefaultDatadogAddr    = "127.0.0.1:8125"
	DefaultJob            = "schemagen"
)

// Environment variable names.
const (
	EnvInput          = "SCHEMAGEN_INPUT"
	EnvOutput         = "SCHEMAGEN_OUTPUT"
	EnvTitle          = "SCHEMAGEN_TITLE"
	EnvFetchURL       = "SUPABASE_URL"
	EnvAPIKey         = "SUPABASE_SERVICE_ROLE_KEY"
	EnvDSN            = "DATABASE_URL"
	EnvMetricsBackend = "METRICS_BACKEND"
	EnvPushgatewayURL = "PUSHGATEWAY_URL"
	EnvDatadogAddr    = "DD_AGENT_ADDR"
)

// Config is the fully resolved run configuration.
type Config struct {
	// Input is the API document path. When FetchURL is set the document is
	// downloaded to this path first.
	Input string `json:"input"`

	// Output is the path the SQL script is written to.
	Output string `json:"output"`

	// Title is the first header comment line of the script.
	Title string `json:"title"`

	// FetchURL is the project base URL (e.g. https://<ref>.supabase.co).
	// Empty disables fetching.
	FetchURL string `json:"fetch_url"`

	// APIKey authenticates the fetch. Only read from the environment so it
	// never shows up in process listings.
	APIKey string `json:"-"`

	// Apply executes the generated statements against DSN.
	Apply bool   `json:"apply"`
	DSN   string `json:"-"`

	// MetricsBackend selects "none", "pushgateway" or "datadog".
	MetricsBackend string `json:"metrics_backend"`
	PushgatewayURL string `json:"pushgateway_url"`
	DatadogAddr    string `json:"datadog_addr"`

	// Job labels metrics and groups Pushgateway pushes.
	Job string `json:"job"`

	// ValidateOnly validates the configuration and exits.
	ValidateOnly bool `json:"validate_only"`

	Verbose bool `json:"verbose"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Input:          DefaultInput,
		Output:         DefaultOutput,
		Title:          DefaultTitle,
		MetricsBackend: DefaultMetricsBackend,
		PushgatewayURL: DefaultPushgatewayURL,
		DatadogAddr:    DefaultDatadogAddr,
		Job:            DefaultJob,
	}
}

// Parse resolves a Config from args (without the program name) and getenv.
// Usage and flag errors are written to stderr.
func Parse(name string, args []string, getenv func(string) string, stderr io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.Input, "input", cfg.Input, "API document (JSON) to translate (env "+EnvInput+")")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "SQL file to write (env "+EnvOutput+")")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "first header comment line (env "+EnvTitle+")")
	fs.StringVar(&cfg.FetchURL, "fetch-url", "", "download the API document from <url>/rest/v1/ first (env "+EnvFetchURL+")")
	fs.BoolVar(&cfg.Apply, "apply", false, "execute the generated statements against -dsn")
	fs.StringVar(&cfg.DSN, "dsn", "", "Postgres connection string for -apply (env "+EnvDSN+")")
	fs.StringVar(&cfg.MetricsBackend, "metrics-backend", cfg.MetricsBackend, "metrics backend: none, pushgateway, datadog (env "+EnvMetricsBackend+")")
	fs.StringVar(&cfg.PushgatewayURL, "pushgateway-url", cfg.PushgatewayURL, "Pushgateway base URL (env "+EnvPushgatewayURL+")")
	fs.StringVar(&cfg.DatadogAddr, "datadog-addr", cfg.DatadogAddr, "DogStatsD address (env "+EnvDatadogAddr+")")
	fs.StringVar(&cfg.Job, "job", cfg.Job, "job name used for metrics")
	fs.BoolVar(&cfg.ValidateOnly, "validate", false, "validate the configuration and exit")
	fs.BoolVar(&cfg.Verbose, "v", false, "enable verbose logs")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// Flag → env → default.
	fromEnv := func(flagName, env string, dst *string) {
		if set[flagName] {
			return
		}
		if v := strings.TrimSpace(getenv(env)); v != "" {
			*dst = v
		}
	}
	fromEnv("input", EnvInput, &cfg.Input)
	fromEnv("output", EnvOutput, &cfg.Output)
	fromEnv("title", EnvTitle, &cfg.Title)
	fromEnv("fetch-url", EnvFetchURL, &cfg.FetchURL)
	fromEnv("dsn", EnvDSN, &cfg.DSN)
	fromEnv("metrics-backend", EnvMetricsBackend, &cfg.MetricsBackend)
	fromEnv("pushgateway-url", EnvPushgatewayURL, &cfg.PushgatewayURL)
	fromEnv("datadog-addr", EnvDatadogAddr, &cfg.DatadogAddr)
	cfg.APIKey = strings.TrimSpace(getenv(EnvAPIKey))

	return cfg, nil
}
