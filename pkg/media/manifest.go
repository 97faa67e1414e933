// Package media reads the media library manifest that lists the bundled
// icon assets an icon field may refer to.
package media

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Asset is one selectable file.
type Asset struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Manifest is the parsed asset list.
type Manifest struct {
	Assets []Asset
	// Dir is prepended to relative asset paths by Resolve.
	Dir string
}

// Parse reads a manifest: a list of file names or {name,path} records,
// optionally wrapped as {files:[...]} or {items:[...]}. Entries without a
// usable name are skipped.
func Parse(b []byte) (Manifest, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return Manifest{}, fmt.Errorf("media: decode manifest: %w", err)
	}
	if obj, ok := v.(map[string]any); ok {
		switch {
		case obj["files"] != nil:
			v = obj["files"]
		case obj["items"] != nil:
			v = obj["items"]
		}
	}
	list, ok := v.([]any)
	if !ok {
		return Manifest{}, fmt.Errorf("media: manifest is not a list")
	}

	m := Manifest{}
	for _, e := range list {
		var a Asset
		switch val := e.(type) {
		case string:
			a = Asset{Name: path.Base(val), Path: val}
		case map[string]any:
			a.Name, _ = val["name"].(string)
			a.Path, _ = val["path"].(string)
			if a.Path == "" {
				a.Path = a.Name
			}
			if a.Name == "" {
				a.Name = path.Base(a.Path)
			}
		}
		if a.Name == "" || a.Name == "." || a.Name == "/" {
			continue
		}
		m.Assets = append(m.Assets, a)
	}
	return m, nil
}

// Load parses the manifest at file. Relative asset paths resolve against
// the manifest's directory.
func Load(file string) (Manifest, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return Manifest{}, fmt.Errorf("media: %w", err)
	}
	m, err := Parse(b)
	if err != nil {
		return Manifest{}, err
	}
	m.Dir = filepath.Dir(file)
	return m, nil
}

// Resolve maps an icon value onto the asset it names, matching the asset
// name first and then the base name of its path. URLs, absolute paths and
// unknown names are returned unchanged with ok false.
func (m Manifest) Resolve(icon string) (resolved string, ok bool) {
	if icon == "" || strings.Contains(icon, "://") || strings.HasPrefix(icon, "data:") {
		return icon, false
	}
	for _, match := range []func(Asset) bool{
		func(a Asset) bool { return a.Name == icon },
		func(a Asset) bool { return path.Base(a.Path) == path.Base(icon) },
	} {
		for _, a := range m.Assets {
			if match(a) {
				return m.location(a), true
			}
		}
	}
	return icon, false
}

func (m Manifest) location(a Asset) string {
	if m.Dir == "" || strings.Contains(a.Path, "://") || filepath.IsAbs(a.Path) {
		return a.Path
	}
	return filepath.Join(m.Dir, filepath.FromSlash(a.Path))
}

// Names returns the asset names, sorted.
func (m Manifest) Names() []string {
	names := make([]string, 0, len(m.Assets))
	for _, a := range m.Assets {
		names = append(names, a.Name)
	}
	sort.Strings(names)
	return names
}
