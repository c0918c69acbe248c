// Package source fetches the raw league bundle from a static resource.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/okian/matchday/internal/domain/model"
	"gopkg.in/yaml.v3"
)

// Source yields the raw {teams, matches} bundle.
type Source interface {
	Fetch(ctx context.Context) (model.Bundle, error)
}

// New picks an implementation from location: empty selects the embedded
// dataset, an http(s) URL selects HTTPSource, anything else is a file path.
func New(location string, opts ...Option) Source {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return NewEmbedded()
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTP(location, opts...)
	default:
		return NewFile(location)
	}
}

// Format names a bundle encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// formatFor infers the encoding from a path or URL suffix.
func formatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses data in the given format.
func Decode(data []byte, format Format) (model.Bundle, error) {
	var b model.Bundle
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &b)
	default:
		err = json.Unmarshal(data, &b)
	}
	if err != nil {
		return model.Bundle{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if b.Teams == nil {
		b.Teams = []model.Team{}
	}
	if b.Matches == nil {
		b.Matches = []model.Match{}
	}
	return b, nil
}
