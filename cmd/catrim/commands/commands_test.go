package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teranos/catrim/am"
	"github.com/teranos/catrim/assets"
	"github.com/teranos/catrim/export"
	"github.com/teranos/catrim/trim"
)

// seedAssets writes a small dewiki.db:
//
//	1 Inhalt ──> 2 ──> 3 ──> 4
//	  └──> 10 (hidden) ──> 11
//	20 (island)
func seedAssets(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	store, err := assets.Open(dir, "de", nil)
	require.NoError(t, err)
	defer store.Close()

	categories := []struct {
		id    int64
		name  string
		pages int64
	}{
		{1, "Inhalt", 100},
		{2, "Wissen", 50},
		{3, "Natur", 5},
		{4, "Tiere", 60},
		{10, "Versteckte Kategorien", 0},
		{11, "Wartung", 70},
		{20, "Insel", 90},
	}
	for _, c := range categories {
		require.NoError(t, store.PutCategory(ctx, c.id, c.name, c.pages))
	}
	for _, l := range [][2]int64{{1, 2}, {2, 3}, {3, 4}, {1, 10}, {10, 11}} {
		require.NoError(t, store.PutLink(ctx, l[0], l[1]))
	}
	require.NoError(t, store.PutTitle(ctx, "de", trim.PrimaryRootCategory, 1))
	require.NoError(t, store.PutTitle(ctx, "de", "Category:Hidden categories", 10))
	return dir
}

func testConfig(assetsDir, edges string) *am.Config {
	return &am.Config{
		Trim:   am.TrimConfig{DepthLimit: am.DefaultDepthLimit, PagePercentile: 50},
		Assets: am.AssetsConfig{Dir: assetsDir, Progress: "none"},
		Export: am.ExportConfig{Edges: edges},
	}
}

func TestTrimLanguage(t *testing.T) {
	edges := filepath.Join(t.TempDir(), "de.json")
	cfg := testConfig(seedAssets(t), edges)

	result, err := trimLanguage(context.Background(), cfg, "de")
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, int64(1), result.RootID)
	assert.Equal(t, trim.Stats{
		NodesBefore:     7,
		EdgesBefore:     5,
		Excluded:        2,
		Unreachable:     1,
		BelowPercentile: 2,
		Threshold:       55,
		NodesAfter:      2,
		EdgesAfter:      1,
	}, result.Stats)

	data, err := os.ReadFile(edges)
	require.NoError(t, err)
	var records []export.Record
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Equal(t, []export.Record{
		{ID: 1, Name: "Inhalt", Predecessors: []int64{}, Successors: []int64{4}},
		{ID: 4, Name: "Tiere", Predecessors: []int64{1}, Successors: []int64{}},
	}, records)
}

func TestTrimLanguageYAML(t *testing.T) {
	edges := filepath.Join(t.TempDir(), "de.yaml")
	cfg := testConfig(seedAssets(t), edges)
	cfg.Trim.PagePercentile = 0

	result, err := trimLanguage(context.Background(), cfg, "de")
	require.NoError(t, err)
	assert.Equal(t, 4, result.Stats.NodesAfter)

	data, err := os.ReadFile(edges)
	require.NoError(t, err)
	var records []export.Record
	require.NoError(t, yaml.Unmarshal(data, &records))
	assert.Len(t, records, 4)
}

func TestTrimLanguageMissingRoot(t *testing.T) {
	cfg := testConfig(seedAssets(t), filepath.Join(t.TempDir(), "fr.json"))

	_, err := trimLanguage(context.Background(), cfg, "fr")
	require.Error(t, err)
	assert.NoFileExists(t, cfg.Export.Edges)
}

func TestApplyTrimFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "trim"}
	addTrimFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{
		"--page-percentile", "30",
		"--excluded-categories", "Category:Stubs,Category:Lists",
		"--edges", "x.yml",
	}))

	base := *testConfig("/srv/assets", "edges.json")
	cfg := applyTrimFlags(cmd, base)

	assert.Equal(t, 30, cfg.Trim.PagePercentile)
	assert.Equal(t, []string{"Category:Stubs", "Category:Lists"}, cfg.Trim.ExcludedCategories)
	assert.Equal(t, "x.yml", cfg.Export.Edges)
	assert.Equal(t, am.DefaultDepthLimit, cfg.Trim.DepthLimit, "unset flags keep config values")
	assert.Equal(t, "/srv/assets", cfg.Assets.Dir)
	assert.Equal(t, "edges.json", base.Export.Edges, "input config is not modified")
}

func TestPrintTrimSummary(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	var buf bytes.Buffer
	printTrimSummary(&buf, &trimResult{
		Language: "de",
		RootID:   1,
		Edges:    "edges.json",
		Stats:    trim.Stats{NodesBefore: 7, BelowPercentile: 2, Threshold: 55, NodesAfter: 2},
	})

	out := buf.String()
	assert.Contains(t, out, "Trimmed dewiki")
	assert.Contains(t, out, "threshold 55.00 pages")
	assert.Contains(t, out, "edges.json")
}

func TestMarshalSettings(t *testing.T) {
	settings := map[string]interface{}{
		"trim": map[string]interface{}{"depth_limit": 100},
	}

	data, err := marshalSettings("toml", settings)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[trim]")
	assert.Contains(t, string(data), "depth_limit = 100")

	data, err = marshalSettings("yaml", settings)
	require.NoError(t, err)
	assert.Contains(t, string(data), "depth_limit: 100")

	data, err = marshalSettings("json", settings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"trim": {"depth_limit": 100}}`, string(data))

	_, err = marshalSettings("ini", settings)
	assert.Error(t, err)
}

func TestAssetsStats(t *testing.T) {
	am.Reset()
	defer am.Reset()
	t.Setenv("HOME", t.TempDir())
	testChdir(t, t.TempDir())

	dir := seedAssets(t)

	var buf bytes.Buffer
	AssetsCmd.SetOut(&buf)
	AssetsCmd.SetArgs([]string{"stats", "de", "--assets", dir})
	require.NoError(t, AssetsCmd.Execute())
	assert.Contains(t, buf.String(), "dewiki.db")
	assert.Contains(t, buf.String(), "Categories")

	AssetsCmd.SetArgs([]string{"stats", "xx", "--assets", dir})
	err := AssetsCmd.Execute()
	require.Error(t, err)
	assert.NoFileExists(t, assets.Path(dir, "xx"), "missing databases are not created")
}

// testChdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
