// Package fs provides file-based collaborators: the identifier file source
// and the record exporter.
package fs

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/fwojciec/bizlist"
)

// Ensure IdentifierFile implements bizlist.URLSource at compile time.
var _ bizlist.URLSource = (*IdentifierFile)(nil)

// maxIdentifierLine bounds a single line of an identifier file.
const maxIdentifierLine = 4 << 20

// IdentifierFile reads listing identifiers from a newline-delimited file.
type IdentifierFile struct{}

// Discover returns the identifiers in the file at path. Surrounding
// whitespace is trimmed; blank lines and lines starting with # are skipped.
// A missing or unreadable file is ECONFIG.
func (IdentifierFile) Discover(ctx context.Context, path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, bizlist.Errorf(bizlist.ECONFIG, "input file %s not found", path)
	} else if err != nil {
		return nil, bizlist.Errorf(bizlist.ECONFIG, "open input file: %v", err)
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxIdentifierLine)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, bizlist.Errorf(bizlist.ECONFIG, "read input file %s: %v", path, err)
	}
	return ids, ctx.Err()
}
