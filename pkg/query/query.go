// Package query loads batch position queries from YAML files.
//
// A query file lists positions to resolve against one text buffer:
//
//	queries:
//	  - line: 3
//	    column: 0
//	  - offset: 5
//
// Entries with line/column resolve position to byte offset; entries with
// offset resolve the other way.
package query

import (
	"fmt"
	"os"

	"github.com/praetorian-inc/locus/pkg/types"
	"gopkg.in/yaml.v3"
)

// Query is one entry of a query file. Exactly one of Point or Offset is
// set.
type Query struct {
	Point  *types.SourcePoint
	Offset *int64
}

type yamlQuery struct {
	Line   *int   `yaml:"line"`
	Column *int   `yaml:"column"`
	Offset *int64 `yaml:"offset"`
}

type yamlFile struct {
	Queries []yamlQuery `yaml:"queries"`
}

// Load parses query file bytes. Each entry must carry either line (with
// an optional column, defaulting to 0) or offset, and not both.
func Load(data []byte) ([]Query, error) {
	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(file.Queries) == 0 {
		return nil, fmt.Errorf("no queries found in YAML")
	}

	queries := make([]Query, 0, len(file.Queries))
	for i, yq := range file.Queries {
		q, err := convertYAMLQuery(yq)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i+1, err)
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// LoadFile loads queries from a YAML file path.
func LoadFile(path string) ([]Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return Load(data)
}

func convertYAMLQuery(yq yamlQuery) (Query, error) {
	switch {
	case yq.Line != nil && yq.Offset != nil:
		return Query{}, fmt.Errorf("cannot set both line and offset")
	case yq.Line != nil:
		col := 0
		if yq.Column != nil {
			col = *yq.Column
		}
		return Query{Point: &types.SourcePoint{Line: *yq.Line, Column: col}}, nil
	case yq.Offset != nil:
		if yq.Column != nil {
			return Query{}, fmt.Errorf("column is meaningless with offset")
		}
		return Query{Offset: yq.Offset}, nil
	default:
		return Query{}, fmt.Errorf("must set line or offset")
	}
}
