package remediation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adequa/internal/assessment/catalog"
)

func TestDefaultLibrary(t *testing.T) {
	lib := DefaultLibrary()
	assert.Len(t, lib.Rules(), 5)

	dpo, ok := lib.Template("dpo")
	require.True(t, ok)
	assert.Equal(t, PriorityHigh, dpo.Priority)
	require.NotNil(t, dpo.Trigger)
	assert.Equal(t, catalog.SectorBase, dpo.Trigger.Sector)
	assert.Equal(t, catalog.QuestionDPO, dpo.Trigger.Question)
	assert.NotEmpty(t, dpo.Steps)
}

func TestLoadLibraryRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed yaml", "templates: [\n"},
		{"missing key", "templates:\n  - title: x\n    priority: high\n    always: true\n"},
		{"bad priority", "templates:\n  - key: a\n    priority: urgent\n    always: true\n"},
		{"duplicate key", "templates:\n  - key: a\n    priority: low\n    always: true\n  - key: a\n    priority: low\n    always: true\n"},
		{"neither always nor trigger", "templates:\n  - key: a\n    priority: low\n"},
		{"both always and trigger", "templates:\n  - key: a\n    priority: low\n    always: true\n    trigger: {sector: base, question: 1}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLibrary([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadLibraryCustomRule(t *testing.T) {
	lib, err := LoadLibrary([]byte(`
templates:
  - key: retention
    title: Definir retenção
    priority: low
    due_in_days: 10
    trigger: {sector: saude, question: 203}
`))
	require.NoError(t, err)

	c := catalog.Compose(catalog.Profile{Sectors: []catalog.Sector{catalog.SectorHealth}})
	answers := make([]catalog.Answer, len(c))
	answers[c.IndexOf("saude", 203)] = catalog.Single("nao")

	tasks := lib.Derive(c, answers)
	assert.Equal(t, []string{"retention", "sector:saude:203"}, keys(tasks))
}
