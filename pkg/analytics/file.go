package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// FileSink appends events as JSON lines to a local file.
type FileSink struct {
	mu   sync.Mutex
	path string
	f    *os.File
}

// NewFileSink opens path for appending, creating parent directories.
// If path is empty, defaults to ~/.local/state/gitcite/events.jsonl.
func NewFileSink(path string) (*FileSink, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		path = filepath.Join(home, ".local", "state", "gitcite", "events.jsonl")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create analytics dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("open analytics file: %w", err)
	}
	return &FileSink{path: path, f: f}, nil
}

func (s *FileSink) Track(_ context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.f.Write(data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

func (s *FileSink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

// Path returns the file events are appended to.
func (s *FileSink) Path() string {
	return s.path
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
