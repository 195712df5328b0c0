// Package export writes the console's current view data to disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/heimdall/internal/apiclient"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name, defaulting to JSON.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("export: unknown format %q", s)
	}
}

// Document is what an export contains.
type Document struct {
	SessionID   string             `json:"session_id" yaml:"session_id"`
	UserID      string             `json:"user_id" yaml:"user_id"`
	BaseURL     string             `json:"base_url" yaml:"base_url"`
	CurrentPage string             `json:"current_page" yaml:"current_page"`
	APIStats    apiclient.Snapshot `json:"api_stats" yaml:"api_stats"`
	Pages       map[string]any     `json:"pages,omitempty" yaml:"pages,omitempty"`
	Timestamp   time.Time          `json:"timestamp" yaml:"timestamp"`
}

// FileName returns heimdall_export_YYYY-MM-DD.<ext> for the given time.
func FileName(f Format, at time.Time) string {
	return fmt.Sprintf("heimdall_export_%s.%s", at.Format("2006-01-02"), f)
}

// Encode serialises doc in format f.
func Encode(doc Document, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(normalize(doc))
	default:
		return json.MarshalIndent(doc, "", "  ")
	}
}

// Write encodes doc into dir and returns the written path.
func Write(dir string, f Format, doc Document) (string, error) {
	data, err := Encode(doc, f)
	if err != nil {
		return "", fmt.Errorf("export: encode: %w", err)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create dir: %w", err)
	}
	path := filepath.Join(dir, FileName(f, doc.Timestamp))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("export: write: %w", err)
	}
	return path, nil
}

// normalize round-trips page data through JSON so YAML sees the same
// field names as the JSON export rather than Go field names.
func normalize(doc Document) map[string]any {
	out := map[string]any{}
	data, err := json.Marshal(doc)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(data, &out)
	return out
}
