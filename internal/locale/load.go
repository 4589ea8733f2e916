package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// builtinCodes lists all embedded languages.
var builtinCodes = []string{"en", "ja", "ko", "zh"}

// BuiltinCodes returns the codes of the embedded languages.
func BuiltinCodes() []string {
	return builtinCodes
}

// getBuiltinLanguage loads an embedded language by code.
func getBuiltinLanguage(code string) (*Language, error) {
	data, err := builtinFS.ReadFile(fmt.Sprintf("builtin/%s.yaml", code))
	if err != nil {
		return nil, fmt.Errorf("builtin language %s not found", code)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("builtin language %s: %w", code, err)
	}
	l.Source = SourceBuiltin
	return l, nil
}

// Parse decodes one language definition from YAML.
func Parse(data []byte) (*Language, error) {
	var l Language
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse language yaml: %w", err)
	}
	return &l, nil
}

// LoadFile reads a language definition from disk.
func LoadFile(path string) (*Language, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.Source = SourceUser
	l.SourcePath = path
	return l, nil
}

// Builtin returns a table containing only the embedded languages.
func Builtin() (*Table, error) {
	return Load("")
}

// Load builds the table from the embedded languages, then applies every
// *.yaml file found in dir. A user file whose code matches a built-in
// language replaces it. A missing dir is not an error.
func Load(dir string) (*Table, error) {
	var langs []*Language
	for _, code := range builtinCodes {
		l, err := getBuiltinLanguage(code)
		if err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}

	if dir != "" {
		user, err := loadDir(dir)
		if err != nil {
			return nil, err
		}
		langs = append(langs, user...)
	}

	return NewTable(langs...)
}

func loadDir(dir string) ([]*Language, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read locales dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	langs := make([]*Language, 0, len(names))
	for _, name := range names {
		l, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	return langs, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// BuiltinYAML returns the raw embedded definition for code, for users who
// want to copy it into their locales dir as a starting point.
func BuiltinYAML(code string) ([]byte, error) {
	data, err := fs.ReadFile(builtinFS, fmt.Sprintf("builtin/%s.yaml", normalizeCode(code)))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}
	return data, nil
}
