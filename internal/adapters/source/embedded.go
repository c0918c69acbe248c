package source

import (
	"context"
	_ "embed"

	"github.com/okian/matchday/internal/domain/model"
)

// defaultTeams is the dataset served when no data source is configured.
//
//go:embed data/teams.json
var defaultTeams []byte

// EmbeddedSource decodes the bundled dataset.
type EmbeddedSource struct {
	data []byte
}

// NewEmbedded creates a source over the bundled teams.json.
func NewEmbedded() *EmbeddedSource {
	return &EmbeddedSource{data: defaultTeams}
}

// Fetch decodes the embedded dataset.
func (s *EmbeddedSource) Fetch(ctx context.Context) (model.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return model.Bundle{}, err
	}
	return Decode(s.data, FormatJSON)
}

// String identifies the source in logs.
func (s *EmbeddedSource) String() string { return "embedded:data/teams.json" }
