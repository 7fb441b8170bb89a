// Package apischema models the JSON-Schema style API description served by a
// PostgREST endpoint (the "definitions" section of its OpenAPI document) and
// decodes it from disk or any io.Reader.
//
// Object key order is significant: tables and columns are rendered in the
// order they appear in the document, so both "definitions" and "properties"
// are decoded into ordered maps.
//
// Example (trimmed):
//
//	{
//	  "info": { "version": "12.2.3" },
//	  "definitions": {
//	    "users": {
//	      "properties": { "id": { "type": "integer", "format": "int8" } },
//	      "required": ["id"]
//	    }
//	  }
//	}
package apischema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Document is the top-level API description.
type Document struct {
	// Info carries document metadata; nil when absent or null.
	Info *Info `json:"info"`

	// Definitions maps table name to its definition, in document order.
	// Nil when absent or null.
	Definitions *orderedmap.OrderedMap[string, Definition] `json:"definitions"`
}

// Info holds the "info" block. Version is kept raw so it can be echoed back
// exactly as a JSON literal.
type Info struct {
	Version json.RawMessage `json:"version"`
}

// Definition describes one table.
type Definition struct {
	Properties *orderedmap.OrderedMap[string, Property] `json:"properties"`

	// Required is kept raw: anything other than an array of strings is
	// tolerated and treated as an empty set.
	Required json.RawMessage `json:"required"`
}

// Property describes one column. Format, Type and Default are raw so that
// "present but null" can be told apart from "absent".
type Property struct {
	Format      json.RawMessage `json:"format"`
	Type        json.RawMessage `json:"type"`
	Default     json.RawMessage `json:"default"`
	Description string          `json:"description"`
}

// VersionLiteral returns info.version as a compact, ASCII-only JSON literal,
// or the quoted string "unknown" when the document carries no version.
// Non-ASCII characters are written as \uXXXX escapes.
func (d *Document) VersionLiteral() string {
	if d == nil || d.Info == nil || len(d.Info.Version) == 0 {
		return strconv.Quote("unknown")
	}
	return asciiEscape(compact(d.Info.Version))
}

// Len returns the number of table definitions.
func (d *Document) Len() int {
	if d == nil || d.Definitions == nil {
		return 0
	}
	return d.Definitions.Len()
}

// Each calls fn for every definition in document order. Iteration stops at
// the first non-nil error, which is returned.
func (d *Document) Each(fn func(name string, def Definition) error) error {
	if d == nil || d.Definitions == nil {
		return nil
	}
	for p := d.Definitions.Oldest(); p != nil; p = p.Next() {
		if err := fn(p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// Each calls fn for every property in document order.
func (def Definition) Each(fn func(name string, p Property)) {
	if def.Properties == nil {
		return
	}
	for p := def.Properties.Oldest(); p != nil; p = p.Next() {
		fn(p.Key, p.Value)
	}
}

// NumProperties returns the number of columns in the definition.
func (def Definition) NumProperties() int {
	if def.Properties == nil {
		return 0
	}
	return def.Properties.Len()
}

// RequiredSet returns the set of required column names. Non-string entries
// are ignored; a non-array value yields an empty set.
func (def Definition) RequiredSet() map[string]struct{} {
	set := map[string]struct{}{}
	if len(def.Required) == 0 {
		return set
	}
	var raw []any
	if err := json.Unmarshal(def.Required, &raw); err != nil {
		return set
	}
	for _, v := range raw {
		if s, ok := v.(string); ok {
			set[s] = struct{}{}
		}
	}
	return set
}

// SourceType resolves the type hint used for mapping: "format" when the key
// is present, else "type", else "text". A present hint that is not a JSON
// string (null, array, number) resolves to "", which maps to text.
func (p Property) SourceType() string {
	switch {
	case len(p.Format) > 0:
		return stringValue(p.Format)
	case len(p.Type) > 0:
		return stringValue(p.Type)
	default:
		return "text"
	}
}

// DefaultSQL returns the default value to splice into a DEFAULT clause and
// whether it should be emitted at all. Falsy JSON values ("", 0, false, null,
// [] and {}) are not emitted. Strings are returned unquoted; every other
// literal is returned in compact JSON form.
func (p Property) DefaultSQL() (string, bool) {
	if len(p.Default) == 0 {
		return "", false
	}
	lit := compact(p.Default)
	switch lit {
	case "", "null", "false", `""`, "[]", "{}":
		return "", false
	}
	if lit[0] == '"' {
		var s string
		if err := json.Unmarshal([]byte(lit), &s); err != nil {
			return "", false
		}
		return s, s != ""
	}
	if f, err := strconv.ParseFloat(lit, 64); err == nil && f == 0 {
		return "", false
	}
	return lit, true
}

func stringValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// asciiEscape replaces every non-ASCII rune of a JSON literal with its
// \uXXXX form, using surrogate pairs outside the BMP. Outside of strings a
// JSON literal is ASCII already, so only string contents change.
func asciiEscape(lit string) string {
	i := strings.IndexFunc(lit, func(r rune) bool { return r >= utf8.RuneSelf })
	if i < 0 {
		return lit
	}

	var sb strings.Builder
	sb.WriteString(lit[:i])
	for _, r := range lit[i:] {
		switch {
		case r < utf8.RuneSelf:
			sb.WriteRune(r)
		case r > 0xffff:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&sb, `\u%04x\u%04x`, r1, r2)
		default:
			fmt.Fprintf(&sb, `\u%04x`, r)
		}
	}
	return sb.String()
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return buf.String()
}
