// Package manifest handles mimic.toml fixture configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/chazu/mimic/mock"
)

// Manifest represents a mimic.toml fixture configuration.
type Manifest struct {
	Project  Project            `toml:"project"`
	Fixtures map[string]Fixture `toml:"fixtures"`

	// Dir is the directory containing the mimic.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Fixture configures one mock inside a generated component graph.
type Fixture struct {
	// Path is the dotted member path from the graph root to the mock,
	// e.g. "client.fetch". Empty means the root itself.
	Path string `toml:"path"`

	// Returns sets the persistent return value.
	Returns any `toml:"returns"`

	// ReturnSequence queues one-shot return values, in order.
	ReturnSequence []any `toml:"return-sequence"`

	// ReturnSelf configures the mock to return its invocation receiver.
	ReturnSelf bool `toml:"return-self"`

	// Snapshot names the stored metadata snapshot this fixture was
	// captured from. Informational; resolved by the caller.
	Snapshot string `toml:"snapshot"`
}

// Load parses a mimic.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "mimic.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find a mimic.toml file, then
// loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "mimic.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// Apply configures every fixture's target mock inside the generated
// graph rooted at root. A path that does not resolve to an instrumented
// callable is an error: the manifest names a shape the graph lacks.
func (m *Manifest) Apply(root mock.Value) error {
	for name, fx := range m.Fixtures {
		target, err := resolvePath(root, fx.Path)
		if err != nil {
			return fmt.Errorf("fixture %s: %w", name, err)
		}
		fn := target.AsFunction()
		if fn == nil || !fn.IsMock() {
			return fmt.Errorf("fixture %s: %q is not an instrumented callable", name, fx.Path)
		}

		for _, v := range fx.ReturnSequence {
			fn.MockReturnValueOnce(mock.Constant(v))
		}
		if fx.Returns != nil {
			fn.MockReturnValue(mock.Constant(fx.Returns))
		}
		if fx.ReturnSelf {
			fn.MockReturnThis()
		}
	}
	return nil
}

// resolvePath walks a dotted member path from root.
func resolvePath(root mock.Value, path string) (mock.Value, error) {
	if path == "" {
		return root, nil
	}
	cur := root
	for _, seg := range strings.Split(path, ".") {
		var next mock.Value
		var ok bool
		switch cur.Tag {
		case mock.TagObject:
			next, ok = cur.AsObject().Get(seg)
		case mock.TagFunction:
			next, ok = cur.AsFunction().OwnMember(seg)
		default:
			return mock.Undefined, fmt.Errorf("cannot descend into %q at %q", seg, path)
		}
		if !ok {
			return mock.Undefined, fmt.Errorf("member %q not found in %q", seg, path)
		}
		cur = next
	}
	return cur, nil
}
