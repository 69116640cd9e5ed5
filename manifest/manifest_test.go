package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/mimic/mock"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mimic.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadManifest(t *testing.T) {
	dir := writeManifest(t, `
[project]
name = "checkout-tests"
version = "0.1.0"

[fixtures.fetch]
path = "client.fetch"
returns = "ok"
snapshot = "api-client"

[fixtures.retry]
path = "client.retry"
return-sequence = [1, 2]
return-self = false
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Project.Name != "checkout-tests" {
		t.Errorf("project name = %q, want checkout-tests", m.Project.Name)
	}
	if len(m.Fixtures) != 2 {
		t.Fatalf("fixtures count = %d, want 2", len(m.Fixtures))
	}
	fetch, ok := m.Fixtures["fetch"]
	if !ok || fetch.Path != "client.fetch" {
		t.Errorf("fetch fixture = %+v", fetch)
	}
	if fetch.Returns != "ok" {
		t.Errorf("fetch returns = %v, want ok", fetch.Returns)
	}
	if fetch.Snapshot != "api-client" {
		t.Errorf("fetch snapshot = %q, want api-client", fetch.Snapshot)
	}
	if got := len(m.Fixtures["retry"].ReturnSequence); got != 2 {
		t.Errorf("retry sequence length = %d, want 2", got)
	}
}

func TestLoadMissingManifest(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for missing mimic.toml")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	dir := writeManifest(t, "[project]\nname = \"x\"\n")
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	m, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m == nil || m.Project.Name != "x" {
		t.Errorf("FindAndLoad = %+v, want project x", m)
	}
}

func TestFindAndLoadNotFound(t *testing.T) {
	m, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if m != nil {
		t.Errorf("FindAndLoad = %+v, want nil", m)
	}
}

func buildGraph(t *testing.T) mock.Value {
	t.Helper()
	client := mock.NewObject()
	client.SetMember("fetch", mock.NewFunction("fetch", nil).ToValue())
	root := mock.NewObject()
	root.SetMember("client", client.ToValue())

	out, err := mock.GenerateFromMetadata(mock.GetMetadata(root.ToValue()))
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestApplyConfiguresMocks(t *testing.T) {
	graph := buildGraph(t)
	m := &Manifest{Fixtures: map[string]Fixture{
		"fetch": {
			Path:           "client.fetch",
			Returns:        "done",
			ReturnSequence: []any{"first"},
		},
	}}

	if err := m.Apply(graph); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	cv, _ := graph.AsObject().Get("client")
	fv, _ := cv.AsObject().Get("fetch")
	fn := fv.AsFunction()

	if got := fn.Invoke(); !got.Is(mock.Constant("first")) {
		t.Errorf("first call = %v, want first", got)
	}
	if got := fn.Invoke(); !got.Is(mock.Constant("done")) {
		t.Errorf("second call = %v, want done", got)
	}
}

func TestApplyRejectsNonMockTarget(t *testing.T) {
	graph := buildGraph(t)
	m := &Manifest{Fixtures: map[string]Fixture{
		"bad": {Path: "client"},
	}}
	if err := m.Apply(graph); err == nil {
		t.Fatal("expected error for a non-callable fixture target")
	}
}

func TestApplyRejectsMissingPath(t *testing.T) {
	graph := buildGraph(t)
	m := &Manifest{Fixtures: map[string]Fixture{
		"gone": {Path: "client.nope"},
	}}
	if err := m.Apply(graph); err == nil {
		t.Fatal("expected error for an unresolvable fixture path")
	}
}
