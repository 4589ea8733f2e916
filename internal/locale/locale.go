// Package locale provides the per-language vocabulary used to read recovery
// guides: card trigger phrases, week markers, card titles and the label texts
// that are emphasized automatically.
package locale

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownLanguage is returned when a language code has no table entry.
var ErrUnknownLanguage = errors.New("unknown language")

// Language is the vocabulary for one authoring language.
type Language struct {
	Code        string   `yaml:"code"`
	Name        string   `yaml:"name"`
	Triggers    Triggers `yaml:"triggers"`
	WeekMarkers []string `yaml:"week_markers"`
	Titles      Titles   `yaml:"titles"`
	Labels      Labels   `yaml:"labels"`

	// Source info
	Source     Source `yaml:"-"`
	SourcePath string `yaml:"-"`

	once       sync.Once
	duration   *regexp.Regexp
	procedures *regexp.Regexp
}

// Triggers lists substrings that turn a line into a card opener.
type Triggers struct {
	Tip     []string `yaml:"tip"`
	Caution []string `yaml:"caution"`
	Info    []string `yaml:"info"`
}

// Titles are the fixed card headings shown for each card kind.
type Titles struct {
	Tip     string `yaml:"tip"`
	Caution string `yaml:"caution"`
	Info    string `yaml:"info"`
}

// Labels are the domain label texts emphasized without explicit markup.
type Labels struct {
	Duration   string `yaml:"duration"`   // recommended recovery duration
	Procedures string `yaml:"procedures"` // applicable procedures, parenthesized
}

// Source indicates where a language was loaded from.
type Source int

const (
	SourceBuiltin Source = iota // Embedded built-in
	SourceUser                  // User locales directory
)

// SourceName returns a human-readable name for the language source.
func (s Source) SourceName() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceUser:
		return "user"
	default:
		return "unknown"
	}
}

// Validate checks the fields every language must define.
func (l *Language) Validate() error {
	if strings.TrimSpace(l.Code) == "" {
		return fmt.Errorf("language code is required")
	}
	if l.Titles.Tip == "" || l.Titles.Caution == "" || l.Titles.Info == "" {
		return fmt.Errorf("language %s: tip, caution and info titles are required", l.Code)
	}
	return nil
}

// DurationPattern matches "<label>: <value>" up to the next clause break.
// It returns nil when the language defines no duration label.
func (l *Language) DurationPattern() *regexp.Regexp {
	l.compile()
	return l.duration
}

// ProceduresPattern matches "(<label>: ...)" with ASCII or full-width parens.
// It returns nil when the language defines no procedures label.
func (l *Language) ProceduresPattern() *regexp.Regexp {
	l.compile()
	return l.procedures
}

// durationValue is one or more words up to a clause break. A period is a
// break unless a digit follows it, so "1.5 weeks" stays whole.
const durationValue = `(?:[^\s,;.。()（）]|\.\d)+(?:\s+(?:[^\s,;.。()（）]|\.\d)+)*`

func (l *Language) compile() {
	l.once.Do(func() {
		if label := strings.TrimSpace(l.Labels.Duration); label != "" {
			l.duration = regexp.MustCompile(regexp.QuoteMeta(label) + `\s*[:：]\s*` + durationValue)
		}
		if label := strings.TrimSpace(l.Labels.Procedures); label != "" {
			l.procedures = regexp.MustCompile(`[(（]\s*` + regexp.QuoteMeta(label) + `\s*[:：][^)）]*[)）]`)
		}
	})
}

// Table maps language codes to their vocabulary.
type Table struct {
	languages map[string]*Language
}

// NewTable builds a table from the given languages. Later entries replace
// earlier ones with the same code.
func NewTable(langs ...*Language) (*Table, error) {
	t := &Table{languages: make(map[string]*Language, len(langs))}
	for _, l := range langs {
		if err := t.add(l); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) add(l *Language) error {
	if l == nil {
		return fmt.Errorf("language is nil")
	}
	if err := l.Validate(); err != nil {
		if l.SourcePath != "" {
			return fmt.Errorf("%s: %w", l.SourcePath, err)
		}
		return err
	}
	t.languages[normalizeCode(l.Code)] = l
	return nil
}

// Get returns the language for code.
func (t *Table) Get(code string) (*Language, error) {
	if l, ok := t.languages[normalizeCode(code)]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
}

// Resolve returns the language for code, or for fallback when code is unknown.
func (t *Table) Resolve(code, fallback string) (*Language, error) {
	if l, err := t.Get(code); err == nil {
		return l, nil
	}
	l, err := t.Get(fallback)
	if err != nil {
		return nil, fmt.Errorf("%w: neither %q nor fallback %q", ErrUnknownLanguage, code, fallback)
	}
	return l, nil
}

// Codes returns all language codes, sorted.
func (t *Table) Codes() []string {
	codes := make([]string, 0, len(t.languages))
	for code := range t.languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// normalizeCode lowercases and strips region tags ("en-US" -> "en").
func normalizeCode(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	return code
}
