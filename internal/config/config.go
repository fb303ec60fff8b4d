package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ManifestName is the file a project directory is recognized by.
const ManifestName = "pasc.toml"

type Manifest struct {
	Name   string
	Entry  string
	Output string

	// Dir is the directory the manifest was loaded from. Entry and Output
	// are relative to it.
	Dir string
}

func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open manifest")
	}
	defer f.Close()

	m, err := parse(f, path)
	if err != nil {
		return nil, err
	}
	m.Dir = filepath.Dir(path)
	if m.Entry == "" {
		return nil, errors.Errorf("%s: missing entry", path)
	}
	return m, nil
}

// LoadDir loads the manifest of the project rooted at dir.
func LoadDir(dir string) (*Manifest, error) {
	return LoadManifest(filepath.Join(dir, ManifestName))
}

func parse(r io.Reader, path string) (*Manifest, error) {
	m := &Manifest{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}

		parts := strings.SplitN(s, "=", 2)
		if len(parts) != 2 {
			return nil, errors.Errorf("%s:%d: invalid line", path, lineNo)
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		if len(val) < 2 || val[0] != '"' || val[len(val)-1] != '"' {
			return nil, errors.Errorf("%s:%d: value must be a quoted string", path, lineNo)
		}
		val = val[1 : len(val)-1]

		switch key {
		case "name":
			m.Name = val
		case "entry":
			m.Entry = val
		case "output":
			m.Output = val
		default:
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return m, nil
}

func (m *Manifest) EntryPath() string {
	return filepath.Join(m.Dir, m.Entry)
}

// OutputPath is where the assembly goes: the configured output, or the
// entry with its extension replaced by .asm.
func (m *Manifest) OutputPath() string {
	if m.Output != "" {
		return filepath.Join(m.Dir, m.Output)
	}
	return DefaultOutput(m.EntryPath())
}

// DefaultOutput derives the assembly path for a source file.
func DefaultOutput(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".asm"
}

// Write stores m in the manifest format.
func (m *Manifest) Write(w io.Writer) error {
	fields := []struct{ key, val string }{
		{"name", m.Name},
		{"entry", m.Entry},
		{"output", m.Output},
	}
	for _, f := range fields {
		if f.val == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s = %q\n", f.key, f.val); err != nil {
			return err
		}
	}
	return nil
}
