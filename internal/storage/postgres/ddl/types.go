// Package ddl contains Postgres-specific helpers for generating DDL.
package ddl

// typeMap is the fixed lookup from an API type hint (OpenAPI "format" or
// "type") to a Postgres column type. Lookups are exact: no case folding or
// trimming.
var typeMap = map[string]string{
	"integer":                     "integer",
	"int4":                        "integer",
	"int8":                        "bigint",
	"bigint":                      "bigint",
	"number":                      "numeric",
	"float4":                      "real",
	"float8":                      "double precision",
	"string":                      "text",
	"text":                        "text",
	"varchar":                     "character varying",
	"boolean":                     "boolean",
	"bool":                        "boolean",
	"timestamp":                   "timestamp with time zone",
	"timestamptz":                 "timestamp with time zone",
	"timestamp without time zone": "timestamp without time zone",
	"uuid":                        "uuid",
	"json":                        "json",
	"jsonb":                       "jsonb",
	"array":                       "text[]",
	"date":                        "date",
	"time":                        "time without time zone",
	"timetz":                      "time with time zone",
}

// FallbackType is used for any hint missing from the type map.
const FallbackType = "text"

// MapType returns the Postgres type for an API type hint.
//
//	"integer"/"int4"       -> integer
//	"int8"/"bigint"        -> bigint
//	"timestamptz"          -> timestamp with time zone
//	"array"                -> text[]
//	everything else        -> text
func MapType(kind string) string {
	if t, ok := typeMap[kind]; ok {
		return t
	}
	return FallbackType
}
