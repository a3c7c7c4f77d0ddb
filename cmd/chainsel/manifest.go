package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	manifestName      = "chainsel.toml"
	noManifestMessage = "no chainsel.toml found\nplease pass the manifest explicitly, e.g.:\n  chainsel run path/to/chainsel.toml"
)

type manifest struct {
	Path   string
	Root   string
	Config manifestConfig
}

type manifestConfig struct {
	Groups []groupConfig `toml:"group"`
}

type groupConfig struct {
	Name    string         `toml:"name"`
	Data    string         `toml:"data"`
	Widgets []string       `toml:"widgets"`
	Options map[string]any `toml:"options"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// resolveManifest loads the manifest named by args, or the nearest
// chainsel.toml above the working directory.
func resolveManifest(args []string) (*manifest, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, manifestName)
		}
	} else {
		found, ok, err := findManifest(".")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New(noManifestMessage)
		}
		path = found
	}
	return loadManifest(path)
}

func loadManifest(path string) (*manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	cfg, err := loadManifestConfig(abs)
	if err != nil {
		return nil, err
	}
	return &manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

func loadManifestConfig(path string) (manifestConfig, error) {
	var cfg manifestConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return manifestConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return manifestConfig{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if !meta.IsDefined("group") || len(cfg.Groups) == 0 {
		return manifestConfig{}, fmt.Errorf("%s: missing [[group]]", path)
	}
	seen := make(map[string]bool, len(cfg.Groups))
	for i, g := range cfg.Groups {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			return manifestConfig{}, fmt.Errorf("%s: group %d: missing name", path, i+1)
		}
		if seen[name] {
			return manifestConfig{}, fmt.Errorf("%s: duplicate group %q", path, name)
		}
		seen[name] = true
		if strings.TrimSpace(g.Data) == "" {
			return manifestConfig{}, fmt.Errorf("%s: group %q: missing data", path, name)
		}
		if len(g.Widgets) == 0 {
			return manifestConfig{}, fmt.Errorf("%s: group %q: missing widgets", path, name)
		}
	}
	return cfg, nil
}

// group returns the named group, or the first one when name is empty.
func (m *manifest) group(name string) (groupConfig, error) {
	if name == "" {
		return m.Config.Groups[0], nil
	}
	for _, g := range m.Config.Groups {
		if g.Name == name {
			return g, nil
		}
	}
	return groupConfig{}, fmt.Errorf("%s: no group named %q", m.Path, name)
}

// dataPath resolves a group's data file against the manifest directory.
func (m *manifest) dataPath(g groupConfig) string {
	if filepath.IsAbs(g.Data) {
		return g.Data
	}
	return filepath.Join(m.Root, g.Data)
}
