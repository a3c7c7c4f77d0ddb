package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chainsel/internal/tree"
)

const placesTOML = `# test data
[[item]]
value = "eu"
label = "Europe"

  [[item.children]]
  value = "fr"
  label = "France"

    [[item.children.children]]
    value = "par"
    label = "Paris"

  [[item.children]]
  value = "de"

[[item]]
value = "as"
label = "Asia"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestBuildComputesBreadcrumbs(t *testing.T) {
	d := Data{Items: []Item{{
		Value: "eu", Label: "Europe",
		Children: []Item{{Value: "fr", Label: "France", Children: []Item{{Value: "par", Label: "Paris"}}}},
	}}}
	tr, err := Build(d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	id, err := tr.Lookup(tree.Path{0, 0, 0})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	got := tr.Get(id).Payload
	if got.ExtendedLabel != "Europe / France / Paris" {
		t.Fatalf("ExtendedLabel = %q", got.ExtendedLabel)
	}
	if got.Checked {
		t.Fatalf("nodes must start unchecked")
	}
}

func TestBuildDefaultsAndNormalizesLabels(t *testing.T) {
	// "e" followed by a combining acute accent normalizes to "é".
	tr, err := Build([]Item{{Value: "x"}, {Value: "y", Label: "Cafe\u0301"}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	x, _ := tr.Lookup(tree.Path{0})
	if tr.Get(x).Payload.Label != "x" {
		t.Fatalf("label should default to value, got %q", tr.Get(x).Payload.Label)
	}
	y, _ := tr.Lookup(tree.Path{1})
	if tr.Get(y).Payload.Label != "Caf\u00e9" {
		t.Fatalf("label not NFC-normalized: %q", tr.Get(y).Payload.Label)
	}
}

func TestBuildCustomSeparator(t *testing.T) {
	tr, err := Build(&Data{Separator: " > ", Items: []Item{{Value: "a", Children: []Item{{Value: "b"}}}}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	id, _ := tr.Lookup(tree.Path{0, 0})
	if got := tr.Get(id).Payload.ExtendedLabel; got != "a > b" {
		t.Fatalf("ExtendedLabel = %q", got)
	}
}

func TestBuildRejectsUnknownData(t *testing.T) {
	if _, err := Build(42); err == nil {
		t.Fatalf("expected error")
	}
	var nilData *Data
	if _, err := Build(nilData); err == nil {
		t.Fatalf("expected error for nil *Data")
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "places.toml", placesTOML)
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.Items) != 2 || d.Count() != 5 {
		t.Fatalf("items = %d, count = %d", len(d.Items), d.Count())
	}
	if d.Items[0].Children[0].Children[0].Label != "Paris" {
		t.Fatalf("nested children not decoded: %+v", d.Items[0])
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "places.json", `{"items":[{"value":"a","children":[{"value":"b"}]}]}`)
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", d.Count())
	}
}

func TestPackedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src, err := Load(writeFile(t, dir, "places.toml", placesTOML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	out := filepath.Join(dir, "out", "places.mp")
	if err := WritePacked(out, src); err != nil {
		t.Fatalf("WritePacked: %v", err)
	}
	got, err := Load(out)
	if err != nil {
		t.Fatalf("Load packed: %v", err)
	}
	if got.Count() != src.Count() || got.Items[0].Children[0].Label != "France" {
		t.Fatalf("packed data differs: %+v", got)
	}
}

func TestLoadUnsupported(t *testing.T) {
	path := writeFile(t, t.TempDir(), "places.yaml", "item: []")
	if _, err := Load(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadAllKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"items":[{"value":"a"}]}`)
	b := writeFile(t, dir, "b.toml", placesTOML)
	all, err := LoadAll(context.Background(), []string{a, b})
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 2 || all[0].Items[0].Value != "a" || all[1].Count() != 5 {
		t.Fatalf("unexpected result: %+v", all)
	}
	if _, err := LoadAll(context.Background(), []string{a, filepath.Join(dir, "missing.toml")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
