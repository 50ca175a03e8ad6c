package config

import "context"

// Loader is the interface for a format-specific frame loader. Load reads
// one file or a directory of files and translates them into the
// format-agnostic model.
type Loader interface {
	Load(ctx context.Context, path string) (*Model, error)
}
