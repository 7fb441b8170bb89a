// Package storage contains storage-agnostic contracts shared by backends.
package storage

import "context"

// Execer runs a single DDL statement. Backends wrap their native connection
// types behind it so DDL helpers stay decoupled from drivers.
type Execer interface {
	Exec(ctx context.Context, sql string) error
}
