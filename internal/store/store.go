// Package store owns the application data directory: model artifacts under
// models/ and the single JSON settings document.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/zovs/ironclaw/internal/policy"
)

const (
	ModelsDirName  = "models"
	ConfigFileName = "config.json"
	activeSoulKey  = "active_soul"
)

var ErrUnsafeName = errors.New("unsafe name")

// Store resolves paths under an injected data root. It performs no
// cross-invocation locking; concurrent writers race with last-write-wins
// semantics.
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) ModelsDir() string {
	return filepath.Join(s.root, ModelsDirName)
}

// ModelPath joins filename onto the models directory. The filename must
// already have passed policy.IsSafeFilename.
func (s *Store) ModelPath(filename string) string {
	return filepath.Join(s.ModelsDir(), filename)
}

func (s *Store) configPath() string {
	return filepath.Join(s.root, ConfigFileName)
}

// ModelExists reports whether a model artifact is present on disk. Unsafe
// filenames are false without touching the filesystem. Presence does not
// imply the file is a complete download.
func (s *Store) ModelExists(filename string) bool {
	if !policy.IsSafeFilename(filename) {
		return false
	}
	_, err := os.Stat(s.ModelPath(filename))
	return err == nil
}

// EnsureModelsDir creates the models directory if it is absent.
func (s *Store) EnsureModelsDir() error {
	if err := os.MkdirAll(s.ModelsDir(), 0755); err != nil {
		return fmt.Errorf("error creating models directory: %v", err)
	}
	return nil
}

// SaveActiveSoul sets the active_soul key in the settings document and
// rewrites the whole file. A missing or malformed existing document is
// replaced with a fresh one rather than treated as fatal; any unrelated
// keys in a readable document are preserved.
func (s *Store) SaveActiveSoul(name string) error {
	if !policy.IsSafeFilename(name) {
		return fmt.Errorf("%w: %q", ErrUnsafeName, name)
	}
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("error creating data directory: %v", err)
	}
	doc := s.loadConfig()
	doc[activeSoulKey] = name
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error serializing config: %v", err)
	}
	if err := os.WriteFile(s.configPath(), data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %v", err)
	}
	return nil
}

// ActiveSoul returns the persisted soul name, or false when none is set.
func (s *Store) ActiveSoul() (string, bool) {
	doc := s.loadConfig()
	name, ok := doc[activeSoulKey].(string)
	return name, ok && name != ""
}

// loadConfig reads the settings document, falling back to an empty one when
// the file is missing or unparsable. The next save overwrites bad state.
func (s *Store) loadConfig() map[string]any {
	data, err := os.ReadFile(s.configPath())
	if err != nil {
		return map[string]any{}
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil || doc == nil {
		log.Debug().Str("op", "store").Msgf("Config file unreadable, starting fresh: %v", err)
		return map[string]any{}
	}
	return doc
}
