// Package ddl defines a small, backend-agnostic model for SQL DDL and helpers
// to render CREATE TABLE statements from that model.
//
// The package stays generic: it does not assume any specific SQL dialect. In
// particular, it:
//
//   - Does not quote identifiers; it emits TableDef.FQN and ColumnDef.Name as-is.
//   - Treats ColumnDef.Default as raw SQL (the caller is responsible for
//     safety and dialect correctness).
//
// Backend-specific packages (e.g., internal/storage/postgres/ddl) adapt this
// model to their dialect: they fill in types and qualification and then call
// BuildCreateTableSQL.
package ddl

import (
	"fmt"
	"strings"
)

// Indent prefixes every column line.
const Indent = "    "

// BuildCreateTableSQL renders a CREATE TABLE statement from a TableDef.
//
// Rules:
//
//   - t.FQN must be non-empty; it is emitted verbatim as the table name.
//
//   - Each column must have a non-empty SQLType. Names are emitted verbatim.
//
//   - A column is rendered as:
//
//     <Indent><Name> <SQLType>[ NOT NULL][ DEFAULT <Default>]
//
//     where NOT NULL is added when Nullable == false.
//
//   - The resulting statement has the form:
//
//     CREATE TABLE [IF NOT EXISTS ]<FQN> (
//     <col1-def>,
//     <col2-def>
//     );
//
// A table without columns renders an empty line between the parentheses so
// the statement keeps its shape.
func BuildCreateTableSQL(t TableDef) (string, error) {
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("ddl: table FQN must not be empty")
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("ddl: column %s missing SQLType in table %s", c.Name, fqn)
		}
		cols = append(cols, ColumnSQL(c))
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	if t.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(t.FQN)
	sb.WriteString(" (\n")
	sb.WriteString(strings.Join(cols, ",\n"))
	sb.WriteString("\n);")

	return sb.String(), nil
}

// ColumnSQL renders a single indented column line.
func ColumnSQL(c ColumnDef) string {
	var sb strings.Builder
	sb.WriteString(Indent)
	sb.WriteString(c.Name)
	sb.WriteByte(' ')
	sb.WriteString(strings.TrimSpace(c.SQLType))

	if !c.Nullable {
		sb.WriteString(" NOT NULL")
	}

	if c.Default != "" {
		sb.WriteString(" DEFAULT ")
		// Default is emitted as raw SQL expression.
		sb.WriteString(c.Default)
	}
	return sb.String()
}
