// Package export writes a trimmed category graph as a list of node records.
package export

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/teranos/catrim/category"
	"github.com/teranos/catrim/display"
	"github.com/teranos/catrim/errors"
)

// Record is one category with its remaining neighbours.
type Record struct {
	ID           int64   `json:"_id" yaml:"_id"`
	Name         string  `json:"name" yaml:"name"`
	Predecessors []int64 `json:"predecessors" yaml:"predecessors"`
	Successors   []int64 `json:"successors" yaml:"successors"`
}

// Records lists every node of g in ascending id order. Neighbour lists are
// sorted and never nil.
func Records(g *category.Graph) ([]Record, error) {
	ids := g.NodeIDs()
	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		n, err := g.Node(id)
		if err != nil {
			return nil, err
		}
		preds, err := g.Predecessors(id)
		if err != nil {
			return nil, err
		}
		succs, err := g.Successors(id)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{
			ID:           id,
			Name:         n.Name,
			Predecessors: nonNil(preds),
			Successors:   nonNil(succs),
		})
	}
	return records, nil
}

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

// Marshal encodes records as YAML when path ends in .yaml or .yml and as
// JSON otherwise.
func Marshal(path string, records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Marshal(records)
	default:
		return display.MarshalJSON(records)
	}
}

// WriteFile writes records to path, creating parent directories.
func WriteFile(path string, records []Record) error {
	data, err := Marshal(path, records)
	if err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
