package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"
)

// Load reads a data file; the format follows the extension
// (.toml, .json, .msgpack or .mp).
func Load(path string) (Data, error) {
	var d Data
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &d); err != nil {
			return Data{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	case ".json":
		raw, err := os.ReadFile(path)
		if err != nil {
			return Data{}, err
		}
		if err := json.Unmarshal(raw, &d); err != nil {
			return Data{}, fmt.Errorf("%s: failed to parse JSON: %w", path, err)
		}
	case ".msgpack", ".mp":
		f, err := os.Open(path)
		if err != nil {
			return Data{}, err
		}
		defer f.Close()
		if err := msgpack.NewDecoder(f).Decode(&d); err != nil {
			return Data{}, fmt.Errorf("%s: failed to decode msgpack: %w", path, err)
		}
	default:
		return Data{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return d, nil
}

// LoadAll loads several data files concurrently. Results keep the order of
// paths; the first error cancels the remaining loads.
func LoadAll(ctx context.Context, paths []string) ([]Data, error) {
	out := make([]Data, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := Load(path)
			if err != nil {
				return err
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// WritePacked writes d as msgpack, replacing path atomically.
func WritePacked(path string, d Data) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(&d); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
