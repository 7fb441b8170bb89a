package ddl

// ColumnDef describes a single column in a table definition produced or
// consumed by ddl. It intentionally uses simple, database-agnostic fields.
//
// Fields:
//   - Name: logical column name, emitted verbatim
//   - SQLType: target SQL type (e.g., integer, text, timestamp with time zone)
//   - Nullable: whether NULL is allowed
//   - Default: raw default expression (e.g., now(), 'anon'::text)
type ColumnDef struct {
	Name     string
	SQLType  string
	Nullable bool
	Default  string
}

// TableDef holds the fully-qualified table name (FQN) and an ordered list of
// columns. The FQN is expected in dotted form (e.g., "public.users") and is
// emitted as-is.
type TableDef struct {
	FQN         string
	IfNotExists bool
	Columns     []ColumnDef
}
