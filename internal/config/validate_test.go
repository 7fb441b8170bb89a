package config

import (
	"strings"
	"testing"
)

// hasIssue reports whether issues contains an Issue with the given severity,
// path, and a Message containing msgSubstr.
func hasIssue(t *testing.T, issues []Issue, sev IssueSeverity, path, msgSubstr string) bool {
	t.Helper()
	for _, iss := range issues {
		if iss.Severity == sev && iss.Path == path && strings.Contains(iss.Message, msgSubstr) {
			return true
		}
	}
	return false
}

func TestValidate_DefaultIsClean(t *testing.T) {
	t.Parallel()

	if issues := Validate(Default()); len(issues) != 0 {
		t.Fatalf("Validate(Default()) = %+v, want none", issues)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(c *Config)
		sev    IssueSeverity
		path   string
		msg    string
	}{
		{
			name:   "empty input",
			mutate: func(c *Config) { c.Input = " " },
			sev:    SeverityError, path: "input", msg: "must not be empty",
		},
		{
			name:   "empty output",
			mutate: func(c *Config) { c.Output = "" },
			sev:    SeverityError, path: "output", msg: "must not be empty",
		},
		{
			name:   "output overwrites input",
			mutate: func(c *Config) { c.Input = "schema/x.json"; c.Output = "./schema/x.json" },
			sev:    SeverityError, path: "output", msg: "must differ",
		},
		{
			name:   "apply without dsn",
			mutate: func(c *Config) { c.Apply = true },
			sev:    SeverityError, path: "dsn", msg: "requires a Postgres DSN",
		},
		{
			name:   "dsn without apply",
			mutate: func(c *Config) { c.DSN = "postgres://x" },
			sev:    SeverityWarning, path: "dsn", msg: "nothing will be executed",
		},
		{
			name:   "relative fetch url",
			mutate: func(c *Config) { c.FetchURL = "example.supabase.co"; c.APIKey = "k" },
			sev:    SeverityError, path: "fetch-url", msg: "absolute http(s) URL",
		},
		{
			name:   "fetch without key",
			mutate: func(c *Config) { c.FetchURL = "https://example.supabase.co" },
			sev:    SeverityWarning, path: "fetch-url", msg: "unauthenticated",
		},
		{
			name:   "unknown metrics backend",
			mutate: func(c *Config) { c.MetricsBackend = "statsd" },
			sev:    SeverityError, path: "metrics-backend", msg: "unknown metrics backend",
		},
		{
			name:   "pushgateway without url",
			mutate: func(c *Config) { c.MetricsBackend = "pushgateway"; c.PushgatewayURL = "" },
			sev:    SeverityError, path: "pushgateway-url", msg: "requires a URL",
		},
		{
			name:   "datadog without addr",
			mutate: func(c *Config) { c.MetricsBackend = "datadog"; c.DatadogAddr = "" },
			sev:    SeverityError, path: "datadog-addr", msg: "agent address",
		},
		{
			name:   "metrics without job",
			mutate: func(c *Config) { c.MetricsBackend = "pushgateway"; c.Job = "" },
			sev:    SeverityWarning, path: "job", msg: "job is empty",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := Default()
			tt.mutate(&c)
			issues := Validate(c)
			if !hasIssue(t, issues, tt.sev, tt.path, tt.msg) {
				t.Fatalf("expected %s at %s containing %q; got issues: %+v", tt.sev, tt.path, tt.msg, issues)
			}
			if HasErrors(issues) != (tt.sev == SeverityError) {
				t.Fatalf("HasErrors() = %v for %s issue", HasErrors(issues), tt.sev)
			}
		})
	}
}

func TestIssueError(t *testing.T) {
	t.Parallel()

	iss := Issue{Severity: SeverityError, Path: "dsn", Message: "missing"}
	if got, want := iss.Error(), "error at dsn: missing"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
