package ddl

import (
	"context"
	"fmt"

	gddl "schemagen/internal/ddl"
	"schemagen/internal/storage"
)

// EnsureTables creates every table in defs that does not exist yet, in order.
// It is idempotent: each statement is a CREATE TABLE IF NOT EXISTS issued via
// the repository's Exec method. It returns the number of statements applied
// before the first failure.
func EnsureTables(ctx context.Context, repo storage.Execer, defs []gddl.TableDef) (int, error) {
	for i, def := range defs {
		sql, err := BuildCreateTableSQL(def)
		if err != nil {
			return i, err
		}
		if err := repo.Exec(ctx, sql); err != nil {
			return i, fmt.Errorf("postgres ddl: create %s: %w", def.FQN, err)
		}
	}
	return len(defs), nil
}
