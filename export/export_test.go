package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teranos/catrim/category"
)

func sampleGraph(t *testing.T) *category.Graph {
	t.Helper()
	g := category.New()
	g.AddNode(3, "Физика", 40)
	g.AddNode(1, "Contents", 900)
	g.AddNode(2, "Science & Technology", 300)
	g.AddNode(4, "Orphan", 1)
	for _, e := range [][2]int64{{1, 2}, {2, 3}, {1, 3}, {3, 3}} {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

func TestRecords(t *testing.T) {
	records, err := Records(sampleGraph(t))
	require.NoError(t, err)

	assert.Equal(t, []Record{
		{ID: 1, Name: "Contents", Predecessors: []int64{}, Successors: []int64{2, 3}},
		{ID: 2, Name: "Science & Technology", Predecessors: []int64{1}, Successors: []int64{3}},
		{ID: 3, Name: "Физика", Predecessors: []int64{1, 2, 3}, Successors: []int64{3}},
		{ID: 4, Name: "Orphan", Predecessors: []int64{}, Successors: []int64{}},
	}, records)
}

func TestRecordsEmptyGraph(t *testing.T) {
	records, err := Records(category.New())
	require.NoError(t, err)
	assert.Empty(t, records)

	data, err := Marshal("edges.json", records)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestWriteFileJSON(t *testing.T) {
	records, err := Records(sampleGraph(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "edges.json")
	require.NoError(t, WriteFile(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Физика"`, "non-ASCII is written verbatim")
	assert.Contains(t, string(data), `"Science & Technology"`)
	assert.Contains(t, string(data), `"_id": 1`)

	var decoded []Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, records, decoded)
}

func TestWriteFileYAML(t *testing.T) {
	records, err := Records(sampleGraph(t))
	require.NoError(t, err)

	for _, name := range []string{"edges.yaml", "edges.YML"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteFile(path, records))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), "_id: 1")

			var decoded []Record
			require.NoError(t, yaml.Unmarshal(data, &decoded))
			assert.Equal(t, records, decoded)
		})
	}
}

func TestWriteFileUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	err := WriteFile(filepath.Join(blocker, "edges.json"), nil)
	assert.Error(t, err)
}
