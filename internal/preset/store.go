package preset

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const presetFileName = "presets.yaml"

// presetFile is the on-disk shape of the user preset file
type presetFile struct {
	Presets map[string]Preset `koanf:"presets"`
}

// Store keeps the built-in presets together with user-saved ones. User
// presets shadow built-ins of the same name and are the only ones written
// to disk.
type Store struct {
	mu       sync.RWMutex
	path     string
	builtin  map[string]Preset
	user     map[string]Preset
}

// DefaultStorePath places the preset file in the user config directory
func DefaultStorePath(appDirName string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = home
	}
	return filepath.Join(dir, appDirName, presetFileName)
}

// NewStore creates a store backed by the given file and loads any presets
// already saved there
func NewStore(path string) *Store {
	s := &Store{
		path:    path,
		builtin: Defaults(),
		user:    map[string]Preset{},
	}
	s.load()
	return s
}

func (s *Store) load() {
	if s.path == "" {
		return
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(s.path), yaml.Parser()); err != nil {
		log.Printf("error parsing preset file: %v", err)
		return
	}
	var doc presetFile
	if err := k.Unmarshal("", &doc); err != nil {
		log.Printf("error unmarshaling preset file: %v", err)
		return
	}
	if doc.Presets != nil {
		s.user = doc.Presets
	}
}

func (s *Store) save() error {
	if s.path == "" {
		return fmt.Errorf("preset store has no path")
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(presetFile{Presets: s.user}, "koanf"), nil); err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	b, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create preset directory: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0644); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}
	return nil
}

// Names returns every available preset name, sorted
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	names := make([]string, 0, len(s.builtin)+len(s.user))
	for name := range s.builtin {
		seen[name] = true
		names = append(names, name)
	}
	for name := range s.user {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Get looks a preset up by name, user presets first
func (s *Store) Get(name string) (Preset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.user[name]; ok {
		return p, true
	}
	p, ok := s.builtin[name]
	return p, ok
}

// IsBuiltin reports whether the name belongs to a built-in preset that has
// not been shadowed by a user save
func (s *Store) IsBuiltin(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.user[name]; ok {
		return false
	}
	_, ok := s.builtin[name]
	return ok
}

// Save stores a user preset under the given name and persists the file
func (s *Store) Save(name string, p Preset) error {
	if name == "" {
		return fmt.Errorf("preset name is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user[name] = p
	return s.save()
}

// Delete removes a user preset. Built-in presets cannot be deleted; deleting
// a shadowed name restores the built-in version.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.user[name]; !ok {
		if _, builtin := s.builtin[name]; builtin {
			return fmt.Errorf("preset %q is built in", name)
		}
		return fmt.Errorf("preset %q does not exist", name)
	}
	delete(s.user, name)
	return s.save()
}
