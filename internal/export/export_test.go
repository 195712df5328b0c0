package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/heimdall/internal/apiclient"
	"github.com/tinytelemetry/heimdall/internal/model"
)

func testDoc() Document {
	return Document{
		SessionID:   "session-1",
		UserID:      "user_003",
		CurrentPage: "products",
		APIStats:    apiclient.Snapshot{Total: 5, Success: 4, Failure: 1},
		Pages: map[string]any{
			"products": model.ProductList{Products: []model.Product{{Name: "AirPods Pro", Price: 1999}}, Total: 1},
		},
		Timestamp: time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC),
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 5, 4, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "heimdall_export_2026-05-04.json", FileName(FormatJSON, at))
	assert.Equal(t, "heimdall_export_2026-05-04.yaml", FileName(FormatYAML, at))
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := Write(dir, FormatJSON, testDoc())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "heimdall_export_2026-05-04.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "session-1", got["session_id"])
	assert.Equal(t, "user_003", got["user_id"])
	stats := got["api_stats"].(map[string]any)
	assert.EqualValues(t, 5, stats["total"])
	assert.EqualValues(t, 4, stats["successful"])
	assert.EqualValues(t, 1, stats["failed"])
}

func TestWriteYAMLUsesJSONFieldNames(t *testing.T) {
	t.Parallel()

	path, err := Write(t.TempDir(), FormatYAML, testDoc())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	pages := got["pages"].(map[string]any)
	products := pages["products"].(map[string]any)
	list := products["products"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "AirPods Pro", list[0].(map[string]any)["name"])
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{"": FormatJSON, "json": FormatJSON, "yml": FormatYAML, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}
