// Package export turns an API document into a PostgreSQL schema script: one
// CREATE TABLE IF NOT EXISTS statement per user table, preceded by a short
// comment header.
package export

import (
	"strings"

	"schemagen/internal/apischema"
	gddl "schemagen/internal/ddl"
	pgddl "schemagen/internal/storage/postgres/ddl"

	"github.com/zeebo/xxh3"
)

// DefaultTitle is the first header line when Options.Title is empty.
const DefaultTitle = "Mari Gunting Database Schema Export"

// systemTables are PostGIS artifacts that never belong to the user schema.
var systemTables = map[string]struct{}{
	"geography_columns": {},
	"geometry_columns":  {},
	"spatial_ref_sys":   {},
}

// Options tunes rendering.
type Options struct {
	// Title is the first header comment line.
	Title string
}

// Result is a rendered schema script plus what went into it.
type Result struct {
	SQL string

	// Tables holds the emitted table definitions in output order.
	Tables []gddl.TableDef

	// Skipped lists excluded system tables in document order.
	Skipped []string

	// Columns is the total number of rendered column lines.
	Columns int

	// Checksum is the xxh3 hash of SQL.
	Checksum uint64
}

// IsSystemTable reports whether name is excluded from the export: anything
// prefixed pg_ plus the PostGIS catalog tables.
func IsSystemTable(name string) bool {
	if strings.HasPrefix(name, "pg_") {
		return true
	}
	_, ok := systemTables[name]
	return ok
}

// Render builds the schema script for doc. Rendering is deterministic: the
// same document always yields byte-identical output.
func Render(doc *apischema.Document, opt Options) (Result, error) {
	title := opt.Title
	if title == "" {
		title = DefaultTitle
	}

	lines := []string{
		"-- " + title,
		"-- Generated from production database",
		"-- Date: " + doc.VersionLiteral(),
		"",
	}

	var res Result
	err := doc.Each(func(name string, def apischema.Definition) error {
		if IsSystemTable(name) {
			res.Skipped = append(res.Skipped, name)
			return nil
		}

		td := pgddl.FromDefinition(name, def)
		stmt, err := pgddl.BuildCreateTableSQL(td)
		if err != nil {
			return err
		}

		lines = append(lines, "-- Table: "+name, stmt, "")
		res.Tables = append(res.Tables, td)
		res.Columns += len(td.Columns)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	res.SQL = strings.Join(lines, "\n")
	res.Checksum = xxh3.HashString(res.SQL)
	return res, nil
}
