package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chainsel/internal/dataset"
	"chainsel/internal/version"
)

const placesData = `
[[item]]
value = "eu"
label = "Europe"

  [[item.children]]
  value = "fr"
  label = "France"

    [[item.children.children]]
    value = "paris"

  [[item.children]]
  value = "de"
  label = "Germany"

[[item]]
value = "as"
label = "Asia"

  [[item.children]]
  value = "jp"
  label = "Japan"
`

const placesManifest = `
[[group]]
name = "places"
data = "places.toml"
widgets = ["region", "country"]

[group.options]
title = "Pick"
selected_list = 2
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "places.toml"), placesData)
	writeFile(t, filepath.Join(dir, manifestName), placesManifest)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--color", "off"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLoadManifestConfig(t *testing.T) {
	cases := map[string]string{
		"no groups":       `title = "x"`,
		"missing widgets": "[[group]]\nname = \"a\"\ndata = \"a.toml\"\n",
		"missing data":    "[[group]]\nname = \"a\"\nwidgets = [\"w\"]\n",
		"missing name":    "[[group]]\ndata = \"a.toml\"\nwidgets = [\"w\"]\n",
		"unknown key":     "[[group]]\nname = \"a\"\ndata = \"a.toml\"\nwidgets = [\"w\"]\ncolour = 1\n",
		"duplicate group": "[[group]]\nname = \"a\"\ndata = \"a.toml\"\nwidgets = [\"w\"]\n[[group]]\nname = \"a\"\ndata = \"b.toml\"\nwidgets = [\"w\"]\n",
		"bad toml":        "[[group]\n",
	}
	for name, content := range cases {
		path := filepath.Join(t.TempDir(), manifestName)
		writeFile(t, path, content)
		if _, err := loadManifestConfig(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	dir := fixture(t)
	m, err := loadManifest(filepath.Join(dir, manifestName))
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	g, err := m.group("")
	if err != nil || g.Name != "places" {
		t.Fatalf("group(\"\") = %+v, %v", g, err)
	}
	if g.Options["title"] != "Pick" {
		t.Fatalf("options = %v", g.Options)
	}
	if got := m.dataPath(g); got != filepath.Join(dir, "places.toml") {
		t.Fatalf("dataPath = %q", got)
	}
	if _, err := m.group("nope"); err == nil {
		t.Fatalf("expected error for unknown group")
	}
}

func TestFindManifestUpward(t *testing.T) {
	dir := fixture(t)
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path, ok, err := findManifest(nested)
	if err != nil || !ok {
		t.Fatalf("findManifest: ok=%v err=%v", ok, err)
	}
	if path != filepath.Join(dir, manifestName) {
		t.Fatalf("path = %q", path)
	}

	m, err := resolveManifest([]string{dir})
	if err != nil {
		t.Fatalf("resolveManifest(dir): %v", err)
	}
	if m.Root != dir {
		t.Fatalf("root = %q, want %q", m.Root, dir)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatalf("expected error")
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Fatalf("explicit modes ignored")
	}
}

func TestCheckCommand(t *testing.T) {
	dir := fixture(t)
	out, err := execute(t, "check", dir)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "places: 6 nodes, 3 levels, 2 widgets, 2 top-level options") {
		t.Fatalf("check output:\n%s", out)
	}
	if !strings.Contains(out, "warning: levels below 2 are never shown") {
		t.Fatalf("missing depth warning:\n%s", out)
	}
}

func TestCheckCommandReportsBadData(t *testing.T) {
	dir := fixture(t)
	writeFile(t, filepath.Join(dir, "places.toml"), "[[item]\n")
	if _, err := execute(t, "check", dir); err == nil {
		t.Fatalf("expected error for broken data file")
	}
}

func TestReplayCommand(t *testing.T) {
	dir := fixture(t)
	script := filepath.Join(dir, "session.txt")
	writeFile(t, script, "# narrow to France\ncheck region eu\ncheck country fr\n")

	out, err := execute(t, "replay", "--manifest", filepath.Join(dir, manifestName), "--group", "places", script)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	want := "[region] enabled rows=2\n  [x] Europe\n  [ ] Asia\n" +
		"[country] enabled rows=3\n  Europe\n    [x] France\n    [ ] Germany\n" +
		"2 checked\n"
	if out != want {
		t.Fatalf("replay output:\n%s\nwant\n%s", out, want)
	}
}

func TestTreeCommand(t *testing.T) {
	dir := fixture(t)
	out, err := execute(t, "tree", "--widgets", "2", filepath.Join(dir, "places.toml"))
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	for _, line := range []string{
		"0 Europe t-0 = eu\n",
		"    0/0/0 paris t-0-0-0 (beyond chain)\n",
		"  1/0 Japan t-1-0 = jp\n",
	} {
		if !strings.Contains(out, line) {
			t.Fatalf("tree output lacks %q:\n%s", line, out)
		}
	}
}

func TestTreeCommandFrom(t *testing.T) {
	t.Cleanup(func() { treeFrom = "" })
	dir := fixture(t)
	out, err := execute(t, "tree", "--from", "0/0", filepath.Join(dir, "places.toml"))
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if !strings.Contains(out, "France") || !strings.Contains(out, "paris") {
		t.Fatalf("subtree output lacks France/paris:\n%s", out)
	}
	if strings.Contains(out, "Germany") || strings.Contains(out, "Japan") {
		t.Fatalf("subtree output leaks siblings:\n%s", out)
	}

	if _, err := execute(t, "tree", "--from", "5", filepath.Join(dir, "places.toml")); err == nil {
		t.Fatalf("expected error for a path outside the tree")
	}
	if _, err := execute(t, "tree", "--from", "x/1", filepath.Join(dir, "places.toml")); err == nil {
		t.Fatalf("expected error for a malformed path")
	}
}

func TestPackCommand(t *testing.T) {
	dir := fixture(t)
	packed := filepath.Join(dir, "places.msgpack")
	out, err := execute(t, "pack", filepath.Join(dir, "places.toml"), "-o", packed)
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if !strings.Contains(out, "packed 6 items") {
		t.Fatalf("pack output: %q", out)
	}
	d, err := dataset.Load(packed)
	if err != nil {
		t.Fatalf("Load packed: %v", err)
	}
	if d.Count() != 6 || d.Items[0].Children[0].Label != "France" {
		t.Fatalf("packed data = %+v", d)
	}
}

func TestRunCommandWithoutUI(t *testing.T) {
	dir := fixture(t)
	out, err := execute(t, "run", "--ui", "off", "--group", "places", dir)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"places", "Pick", "Europe", "0 checked"} {
		if !strings.Contains(out, want) {
			t.Fatalf("run output lacks %q:\n%s", want, out)
		}
	}
}

func TestRunCommandBoardWritesToCommandOutput(t *testing.T) {
	dir := fixture(t)
	rootCmd.SetIn(strings.NewReader("q"))
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		runUI = "auto"
	})
	out, err := execute(t, "run", "--ui", "on", "--group", "places", dir)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "Europe") || !strings.HasSuffix(out, "0 checked\n") {
		t.Fatalf("board output not written to the command:\n%q", out)
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var info version.Info
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if info.Version != version.Version {
		t.Fatalf("version = %q, want %q", info.Version, version.Version)
	}
	if _, err := execute(t, "version", "--format", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	versionFormat = "pretty"
}

func TestCheckCommandTraces(t *testing.T) {
	dir := fixture(t)
	tracePath := filepath.Join(dir, "check.ndjson")
	t.Cleanup(func() {
		_ = rootCmd.PersistentFlags().Set("trace", "")
		_ = rootCmd.PersistentFlags().Set("trace-level", "off")
	})
	if _, err := execute(t, "--trace", tracePath, "--trace-level", "detail", "check", dir); err != nil {
		t.Fatalf("check: %v", err)
	}
	raw, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) == 0 {
		t.Fatalf("empty trace")
	}
	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("trace is not NDJSON: %v\n%s", err, lines[0])
	}
	if !strings.Contains(string(raw), "initialize") {
		t.Fatalf("trace lacks initialize span:\n%s", raw)
	}
}
