package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"sharkhome/internal/core"
)

// FileStore persists the whole state as one JSON document, written
// atomically (temp file + rename). Remote config lives in a sibling file so
// domain data and credentials never share a blob.
type FileStore struct {
	statePath  string
	configPath string
}

// NewFileStore creates the data directory if needed. base is a directory;
// the store manages state.json and config.json inside it.
func NewFileStore(base string) (*FileStore, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{
		statePath:  filepath.Join(base, "state.json"),
		configPath: filepath.Join(base, "config.json"),
	}, nil
}

// Load reads and migrates the persisted state. A missing file is an empty
// state, not an error.
func (f *FileStore) Load(ctx context.Context) (State, error) {
	raw, err := os.ReadFile(f.statePath)
	if errors.Is(err, fs.ErrNotExist) {
		return migrateState(nil)
	}
	if err != nil {
		return State{}, fmt.Errorf("read state file: %w", err)
	}

	s, err := migrateState(raw)
	if err != nil {
		return State{}, err
	}
	slog.DebugContext(ctx, "State loaded",
		"items", len(s.ShoppingList),
		"expenses", len(s.Expenses),
		"recipes", len(s.Recipes))
	return s, nil
}

func (f *FileStore) Save(_ context.Context, s State) error {
	doc := versionedState{
		SchemaVersion:  schemaVersion,
		ShoppingList:   s.ShoppingList,
		Expenses:       s.Expenses,
		Recipes:        s.Recipes,
		CustomProducts: s.CustomProducts,
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return writeAtomic(f.statePath, raw)
}

func (f *FileStore) LoadRemoteConfig(_ context.Context) (core.RemoteConfig, error) {
	raw, err := os.ReadFile(f.configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return core.RemoteConfig{}, nil
	}
	if err != nil {
		return core.RemoteConfig{}, fmt.Errorf("read config file: %w", err)
	}
	var cfg core.RemoteConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return core.RemoteConfig{}, fmt.Errorf("decode config file: %w", err)
	}
	return cfg, nil
}

func (f *FileStore) SaveRemoteConfig(_ context.Context, cfg core.RemoteConfig) error {
	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return writeAtomic(f.configPath, raw)
}

func (f *FileStore) Close() error { return nil }

// writeAtomic writes via a temp file in the same directory and renames it
// over the target, so a crash mid-write never leaves a torn state file.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".sharkhome-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
