package ddl

import (
	"schemagen/internal/apischema"
	gddl "schemagen/internal/ddl"
)

// Schema qualifies every generated table.
const Schema = "public"

// FromDefinition infers a Postgres table definition from one API definition.
//
// Columns follow the order of def.Properties. A column is NOT NULL exactly
// when its name is listed in def.Required, and carries a DEFAULT when the
// property has a truthy default.
func FromDefinition(name string, def apischema.Definition) gddl.TableDef {
	required := def.RequiredSet()
	cols := make([]gddl.ColumnDef, 0, def.NumProperties())

	def.Each(func(col string, p apischema.Property) {
		_, isRequired := required[col]
		dflt, _ := p.DefaultSQL()
		cols = append(cols, gddl.ColumnDef{
			Name:     col,
			SQLType:  MapType(p.SourceType()),
			Nullable: !isRequired,
			Default:  dflt,
		})
	})

	return gddl.TableDef{
		FQN:         Schema + "." + name,
		IfNotExists: true,
		Columns:     cols,
	}
}
