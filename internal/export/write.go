package export

import (
	"errors"
	"fmt"
	"os"

	"github.com/zeebo/xxh3"
)

// ErrOutputWrite reports that the output file could not be written.
var ErrOutputWrite = errors.New("export: output write error")

// WriteFile writes sql to path, replacing any existing file. It reports
// whether the content differs from what was there before (a missing file
// counts as changed).
func WriteFile(path, sql string) (changed bool, err error) {
	changed = true
	if prev, err := os.ReadFile(path); err == nil {
		changed = xxh3.Hash(prev) != xxh3.HashString(sql)
	}

	if err := os.WriteFile(path, []byte(sql), 0o644); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrOutputWrite, path, err)
	}
	return changed, nil
}
