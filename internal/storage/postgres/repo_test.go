package postgres

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestNewRepositoryRequiresDSN(t *testing.T) {
	t.Parallel()

	_, closeFn, err := NewRepository(context.Background(), Config{})
	if err == nil {
		t.Fatalf("NewRepository() error = nil, want non-nil")
	}
	if closeFn != nil {
		t.Fatalf("NewRepository() returned close func on error")
	}
}

// TestDescribe verifies that Postgres server errors keep their message, detail
// and SQLSTATE while remaining unwrappable.
func TestDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "pg error with detail",
			err:  &pgconn.PgError{Code: "42P07", Message: `relation "users" already exists`, Detail: "from test"},
			want: []string{`relation "users" already exists`, "from test", "42P07"},
		},
		{
			name: "pg error without detail",
			err:  &pgconn.PgError{Code: "42601", Message: "syntax error at or near \")\""},
			want: []string{"syntax error", "42601"},
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: []string{"exec: connection reset"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := describe(tt.err)
			for _, w := range tt.want {
				if !strings.Contains(got.Error(), w) {
					t.Fatalf("describe() = %q, want substring %q", got.Error(), w)
				}
			}
			if !errors.Is(got, tt.err) {
				t.Fatalf("describe() does not wrap original error")
			}
		})
	}
}

// TestExecIntegration runs a CREATE TABLE IF NOT EXISTS twice against a real
// database. It is skipped unless SCHEMAGEN_TEST_DSN is set.
func TestExecIntegration(t *testing.T) {
	dsn := os.Getenv("SCHEMAGEN_TEST_DSN")
	if dsn == "" {
		t.Skip("SCHEMAGEN_TEST_DSN not set; skipping Postgres integration test")
	}

	ctx := context.Background()
	repo, closeFn, err := NewRepository(ctx, Config{DSN: dsn})
	if err != nil {
		t.Fatalf("NewRepository() error = %v", err)
	}
	defer closeFn()

	stmt := "CREATE TABLE IF NOT EXISTS public.schemagen_it (\n    id integer NOT NULL,\n    name text\n);"
	for i := 0; i < 2; i++ {
		if err := repo.Exec(ctx, stmt); err != nil {
			t.Fatalf("Exec() #%d error = %v", i+1, err)
		}
	}
	if err := repo.Exec(ctx, "DROP TABLE public.schemagen_it"); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}
