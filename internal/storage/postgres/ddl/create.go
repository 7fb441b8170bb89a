package ddl

import (
	gddl "schemagen/internal/ddl" // generic package
)

// BuildCreateTableSQL returns a Postgres CREATE TABLE IF NOT EXISTS statement
// for the given table definition. It is a thin wrapper over the generic ddl
// renderer that forces the IF NOT EXISTS clause.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	t.IfNotExists = true
	return gddl.BuildCreateTableSQL(t)
}
