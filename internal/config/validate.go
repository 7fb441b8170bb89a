package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced to users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path names the offending
// setting by its flag name.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate performs static validation of a Config. It does not touch the
// filesystem or network.
func Validate(c Config) []Issue {
	var issues []Issue

	if strings.TrimSpace(c.Input) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input",
			Message:  "input path must not be empty",
		})
	}
	if strings.TrimSpace(c.Output) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output",
			Message:  "output path must not be empty",
		})
	}
	if c.Input != "" && c.Output != "" && filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output",
			Message:  "output path must differ from input path",
		})
	}

	issues = append(issues, validateFetch(c)...)

	if c.Apply && strings.TrimSpace(c.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "dsn",
			Message:  "-apply requires a Postgres DSN (-dsn or " + EnvDSN + ")",
		})
	}
	if !c.Apply && c.DSN != "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "dsn",
			Message:  "DSN is set but -apply is not; nothing will be executed",
		})
	}

	issues = append(issues, validateMetrics(c)...)

	return issues
}

func validateFetch(c Config) []Issue {
	if c.FetchURL == "" {
		return nil
	}

	var issues []Issue
	u, err := url.Parse(c.FetchURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "fetch-url",
			Message:  fmt.Sprintf("fetch URL %q must be an absolute http(s) URL", c.FetchURL),
		})
	}
	if c.APIKey == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "fetch-url",
			Message:  EnvAPIKey + " is not set; the request will be unauthenticated",
		})
	}
	return issues
}

func validateMetrics(c Config) []Issue {
	var issues []Issue

	switch c.MetricsBackend {
	case "", "none":
	case "pushgateway":
		if strings.TrimSpace(c.PushgatewayURL) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "pushgateway-url",
				Message:  "pushgateway backend requires a URL",
			})
		}
	case "datadog":
		if strings.TrimSpace(c.DatadogAddr) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "datadog-addr",
				Message:  "datadog backend requires an agent address",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "metrics-backend",
			Message:  fmt.Sprintf("unknown metrics backend %q (want none, pushgateway or datadog)", c.MetricsBackend),
		})
	}

	if c.MetricsBackend != "" && c.MetricsBackend != "none" && strings.TrimSpace(c.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "job",
			Message:  "job is empty; metrics will be grouped under the backend default",
		})
	}
	return issues
}
