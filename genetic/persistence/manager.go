package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Manager handles save/load for replay files
type Manager struct {
	basePath string
}

// NewManager creates a manager with the given base directory
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// FilePath returns the path for a replay file
func (m *Manager) FilePath(name string) string {
	return filepath.Join(m.basePath, name+".toml")
}

// Exists checks if a replay file exists
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.FilePath(name))
	return err == nil
}

// Save writes a replay to disk
func (m *Manager) Save(name string, dto ReplayDTO) error {
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return fmt.Errorf("create replay dir: %w", err)
	}

	data, err := toml.Marshal(dto)
	if err != nil {
		return fmt.Errorf("encode replay %s: %w", name, err)
	}

	return os.WriteFile(m.FilePath(name), data, 0644)
}

// Load reads a replay from disk
func (m *Manager) Load(name string) (ReplayDTO, error) {
	var dto ReplayDTO

	data, err := os.ReadFile(m.FilePath(name))
	if err != nil {
		return dto, err
	}

	if err := toml.Unmarshal(data, &dto); err != nil {
		return dto, fmt.Errorf("decode replay %s: %w", name, err)
	}

	return dto, nil
}
