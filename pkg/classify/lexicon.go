package classify

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yml
var defaultLexicon []byte

// Lexicon is a categorized set of topic-indicating terms. It is versioned
// configuration data, not code: the embedded default can be replaced with an
// external file without rebuilding.
type Lexicon struct {
	Version    int        `yaml:"version"`
	Categories []Category `yaml:"categories"`
}

// Category groups lexicon terms under a named class
type Category struct {
	Name  string   `yaml:"name"`
	Terms []string `yaml:"terms"`
}

// LoadLexicon reads a lexicon from the given YAML file, falling back to the
// embedded default when path is empty
func LoadLexicon(path string) (*Lexicon, error) {
	data := defaultLexicon
	if path != "" {
		var err error
		data, err = os.ReadFile(path) //nolint:gosec // path comes from config
		if err != nil {
			return nil, fmt.Errorf("read lexicon file: %w", err)
		}
	}

	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if err := lex.validate(); err != nil {
		return nil, fmt.Errorf("validate lexicon: %w", err)
	}

	// normalize terms once so matching stays case-insensitive
	for i := range lex.Categories {
		for j, term := range lex.Categories[i].Terms {
			lex.Categories[i].Terms[j] = strings.ToLower(term)
		}
	}
	return &lex, nil
}

func (l *Lexicon) validate() error {
	if len(l.Categories) == 0 {
		return fmt.Errorf("no categories defined")
	}
	for _, c := range l.Categories {
		if c.Name == "" {
			return fmt.Errorf("category without a name")
		}
		if len(c.Terms) == 0 {
			return fmt.Errorf("category %q has no terms", c.Name)
		}
	}
	return nil
}
