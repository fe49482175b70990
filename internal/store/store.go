// Package store persists per-user configuration overrides.
//
// It plays the role a browser's local storage plays for a web form: a small
// key/value file that survives restarts and that the configuration resolver
// consults after the environment and the injected settings. Keys are
// namespaced as COPYGUARD_<NAME>.
package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Iron-Ham/copyguard/internal/errors"
	"gopkg.in/yaml.v3"
)

// Namespace is the prefix applied to every stored key.
const Namespace = "COPYGUARD_"

// FileName is the default store file name inside the config directory.
const FileName = "store.yaml"

// Store is a YAML-backed key/value store. It is safe for concurrent use.
type Store struct {
	path   string
	mu     sync.RWMutex
	values map[string]string
}

// Open loads the store at path. A missing file yields an empty store;
// the file is created on the first Save.
func Open(path string) (*Store, error) {
	s := &Store{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "failed to read store")
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}

	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, errors.Wrapf(err, "failed to parse store %s", path)
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	return s, nil
}

// Key returns the namespaced key for name, e.g. "detector_url" -> "COPYGUARD_DETECTOR_URL".
// Names that already carry the namespace are returned upper-cased.
func Key(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if strings.HasPrefix(name, Namespace) {
		return name
	}
	return Namespace + name
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Get returns the stored value for name.
func (s *Store) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[Key(name)]
	return v, ok
}

// Set stores value under name. Call Save to persist.
func (s *Store) Set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[Key(name)] = value
}

// Delete removes name. It reports whether the key was present.
func (s *Store) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := Key(name)
	if _, ok := s.values[key]; !ok {
		return false
	}
	delete(s.values, key)
	return true
}

// Keys returns the stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save writes the store to disk atomically (temp file + rename).
func (s *Store) Save() error {
	s.mu.RLock()
	data, err := yaml.Marshal(s.values)
	s.mu.RUnlock()
	if err != nil {
		return errors.Wrap(err, "failed to encode store")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(err, "failed to create store directory")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write store")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "failed to replace store")
	}
	return nil
}
