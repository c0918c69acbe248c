package source

import (
	"context"
	"fmt"
	"os"

	"github.com/okian/matchday/internal/domain/model"
)

// FileSource reads a JSON or YAML bundle from disk.
type FileSource struct {
	path string
}

// NewFile creates a FileSource for path. YAML is used for .yaml/.yml files.
func NewFile(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) (model.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return model.Bundle{}, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return model.Bundle{}, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return Decode(data, formatFor(s.path))
}

// String returns the file path.
func (s *FileSource) String() string { return s.path }
