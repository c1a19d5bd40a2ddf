package remediation

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"adequa/internal/assessment/catalog"
)

//go:embed templates.yaml
var defaultTemplates []byte

// Template describes one kind of remediation task.
type Template struct {
	Key         string   `yaml:"key"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Priority    Priority `yaml:"priority"`
	DueInDays   int      `yaml:"due_in_days"`
	Always      bool     `yaml:"always"`
	Trigger     *Trigger `yaml:"trigger,omitempty"`
	Steps       []string `yaml:"steps"`
}

// Trigger binds a template to a question by catalog metadata.
type Trigger struct {
	Sector   string `yaml:"sector"`
	Question int    `yaml:"question"`
}

type libraryFile struct {
	Templates []Template `yaml:"templates"`
}

// Library is a validated template set with its trigger rules.
type Library struct {
	templates []Template
	rules     []Rule
}

// LoadLibrary parses and validates a YAML template document.
func LoadLibrary(data []byte) (*Library, error) {
	var f libraryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse template library: %w", err)
	}

	seen := make(map[string]struct{}, len(f.Templates))
	lib := &Library{templates: f.Templates}
	for _, t := range f.Templates {
		if t.Key == "" {
			return nil, fmt.Errorf("template %q: key is required", t.Title)
		}
		if _, dup := seen[t.Key]; dup {
			return nil, fmt.Errorf("template %q: duplicate key", t.Key)
		}
		seen[t.Key] = struct{}{}
		if !t.Priority.IsValid() {
			return nil, fmt.Errorf("template %q: invalid priority %q", t.Key, t.Priority)
		}
		if t.Always == (t.Trigger != nil) {
			return nil, fmt.Errorf("template %q: exactly one of always or trigger must be set", t.Key)
		}
		if t.Trigger != nil {
			lib.rules = append(lib.rules, NegativeAnswerRule(t.Key, t.Trigger.Sector, t.Trigger.Question))
		}
	}
	return lib, nil
}

var defaultLibrary = sync.OnceValue(func() *Library {
	lib, err := LoadLibrary(defaultTemplates)
	if err != nil {
		panic(err)
	}
	return lib
})

// DefaultLibrary returns the embedded template library.
func DefaultLibrary() *Library {
	return defaultLibrary()
}

// Template returns the template with the given key.
func (l *Library) Template(key string) (Template, bool) {
	for _, t := range l.templates {
		if t.Key == key {
			return t, true
		}
	}
	return Template{}, false
}

// Rules returns the trigger rules in library order.
func (l *Library) Rules() []Rule {
	return append([]Rule(nil), l.rules...)
}

// Rule decides whether a conditional template applies to a question/answer pair.
type Rule struct {
	TemplateKey string
	Match       func(q catalog.Question, a catalog.Answer) bool
}

// NegativeAnswerRule matches a negative answer to the question identified by
// sector and id, wherever it sits in the catalog.
func NegativeAnswerRule(templateKey, sector string, questionID int) Rule {
	return Rule{
		TemplateKey: templateKey,
		Match: func(q catalog.Question, a catalog.Answer) bool {
			return q.Sector == sector && q.ID == questionID && a.IsNegative()
		},
	}
}
