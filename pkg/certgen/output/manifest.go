package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/suretrust/certgen-go/pkg/certgen/models"
)

// ManifestName is the file name of the manifest written into the output root.
const ManifestName = "manifest.json"

// ToJSON serializes a manifest to JSON.
func ToJSON(m *models.Manifest, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(m, "", "  ")
	}
	return json.Marshal(m)
}

// WriteManifest writes the manifest to <root>/manifest.json and returns its path.
func WriteManifest(root string, m *models.Manifest, pretty bool) (string, error) {
	data, err := ToJSON(m, pretty)
	if err != nil {
		return "", fmt.Errorf("serialize manifest: %w", err)
	}
	if _, err := EnsureDir(root); err != nil {
		return "", err
	}

	path := filepath.Join(root, ManifestName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

// ReadManifest loads a manifest previously written by WriteManifest.
func ReadManifest(path string) (*models.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m models.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}
