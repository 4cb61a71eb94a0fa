// Package datasource abstracts where the converter's input bytes come from.
package datasource

import (
	"context"
	"io"
	"strings"
)

// Source produces a readable stream of input bytes. Implementations wrap a
// local file or an HTTP URL; the converter only sees the stream.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// IsURL reports whether the input spec names an HTTP(S) resource rather than
// a local file path.
func IsURL(spec string) bool {
	return strings.HasPrefix(spec, "http://") || strings.HasPrefix(spec, "https://")
}
