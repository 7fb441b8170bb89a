package ddl

import (
	"testing"

	gddl "schemagen/internal/ddl"
)

// TestBuildCreateTableSQLForcesIfNotExists verifies the Postgres wrapper
// always renders IF NOT EXISTS.
func TestBuildCreateTableSQLForcesIfNotExists(t *testing.T) {
	t.Parallel()

	def := gddl.TableDef{
		FQN: "public.users",
		Columns: []gddl.ColumnDef{
			{Name: "id", SQLType: "integer"},
			{Name: "name", SQLType: "text", Nullable: true},
		},
	}

	got, err := BuildCreateTableSQL(def)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL() error = %v", err)
	}

	want := "" +
		"CREATE TABLE IF NOT EXISTS public.users (\n" +
		"    id integer NOT NULL,\n" +
		"    name text\n" +
		");"
	if got != want {
		t.Fatalf("BuildCreateTableSQL() =\n%s\nwant:\n%s", got, want)
	}
	if def.IfNotExists {
		t.Fatalf("BuildCreateTableSQL() mutated caller's TableDef")
	}
}
