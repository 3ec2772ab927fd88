package world

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
)

// FormatVersion is the manifest format written by this package. Older
// versions are readable; newer ones are rejected.
const FormatVersion = 1

// Manifest identifies a world directory. It is stored as manifest.yaml at
// the directory root.
type Manifest struct {
	FormatVersion int       `yaml:"format_version"`
	ID            uuid.UUID `yaml:"id"`
	Name          string    `yaml:"name"`
	Seed          int64     `yaml:"seed"`
	CreatedAt     time.Time `yaml:"created_at"`
}

func readManifest(path string) (Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("world: parse manifest: %w", err)
	}
	if m.FormatVersion > FormatVersion {
		return Manifest{}, fmt.Errorf("world: manifest format %d is newer than supported %d", m.FormatVersion, FormatVersion)
	}
	return m, nil
}

func writeManifest(path string, m Manifest) error {
	raw, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("world: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("world: write manifest: %w", err)
	}
	return nil
}
