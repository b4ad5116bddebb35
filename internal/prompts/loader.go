// Package prompts loads the LLM prompt templates used for skill extraction
// and normalization. Templates live in JSON files embedded at compile time,
// keyed by operation name.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

type store struct {
	mu    sync.RWMutex
	files map[string]map[string]string
}

var loaded = &store{files: make(map[string]map[string]string)}

func (s *store) file(filename string) (map[string]string, error) {
	s.mu.RLock()
	entries, ok := s.files[filename]
	s.mu.RUnlock()
	if ok {
		return entries, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	s.mu.Lock()
	s.files[filename] = entries
	s.mu.Unlock()
	return entries, nil
}

// Get returns the template stored under key in the named prompt file.
func Get(filename, key string) (string, error) {
	entries, err := loaded.file(filename)
	if err != nil {
		return "", err
	}
	template, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for prompts required at startup. It panics on failure.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return template
}

// Format substitutes {{.Key}} placeholders in template with values from data.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// ClearCache drops all parsed prompt files. Tests use it to force reloads.
func ClearCache() {
	loaded.mu.Lock()
	loaded.files = make(map[string]map[string]string)
	loaded.mu.Unlock()
}
