package remediation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adequa/internal/assessment/catalog"
)

func keys(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.TemplateKey
	}
	return out
}

func answersFor(c catalog.Catalog, byID map[int]string) []catalog.Answer {
	out := make([]catalog.Answer, len(c))
	for i, q := range c {
		if v, ok := byID[q.ID]; ok {
			out[i] = catalog.Single(v)
		}
	}
	return out
}

func TestDeriveBaselineOnly(t *testing.T) {
	c := catalog.Base()
	tasks := Derive(c, answersFor(c, map[int]string{1: "sim", 5: "sim", 6: "parcial"}))
	assert.Equal(t, []string{"privacy_policy", "consent_management", "data_mapping", "data_subject_rights"}, keys(tasks))
}

func TestDeriveNegativeDPOOnly(t *testing.T) {
	c := catalog.Base()
	tasks := Derive(c, answersFor(c, map[int]string{catalog.QuestionDPO: "não"}))
	assert.ElementsMatch(t,
		[]string{"privacy_policy", "consent_management", "data_mapping", "data_subject_rights", "dpo"},
		keys(tasks))
}

func TestDeriveNegativeVocabularyTriggersEveryConditional(t *testing.T) {
	c := catalog.Base()
	tasks := Derive(c, answersFor(c, map[int]string{
		catalog.QuestionDPO:              "nao",
		catalog.QuestionSecurityControls: "Não sei",
		catalog.QuestionIncidentResponse: "nao-sei",
		catalog.QuestionTraining:         " NÃO ",
		catalog.QuestionVendors:          "nao sei",
	}))
	assert.Len(t, tasks, 9)
	assert.Subset(t, keys(tasks), []string{"dpo", "security_controls", "incident_response", "training", "vendor_management"})
}

func TestDeriveBindsByQuestionIDNotPosition(t *testing.T) {
	// Sector questions shift nothing in the base slice, but a reordered catalog
	// must still trigger on the DPO question.
	c := catalog.Compose(catalog.Profile{Sectors: []catalog.Sector{catalog.SectorHealth}})
	reordered := append(catalog.Catalog{}, c[len(c)-3:]...)
	reordered = append(reordered, c[:len(c)-3]...)

	tasks := Derive(reordered, answersFor(reordered, map[int]string{catalog.QuestionDPO: "não"}))
	assert.Contains(t, keys(tasks), "dpo")
}

func TestDeriveSectorTasks(t *testing.T) {
	c := catalog.Compose(catalog.Profile{
		Sectors:       []catalog.Sector{catalog.SectorHealth},
		CustomSectors: []string{"Logística"},
	})
	answers := answersFor(c, map[int]string{201: "não", 202: "parcial", 203: "sim"})
	answers[len(answers)-1] = catalog.Text("não")

	tasks := Derive(c, answers)
	require.Len(t, tasks, 6)

	high := tasks[4]
	assert.Equal(t, "sector:saude:201", high.TemplateKey)
	assert.Equal(t, PriorityHigh, high.Priority)
	assert.Equal(t, 15, high.DueInDays)
	assert.Equal(t, "saude", high.Category)
	assert.Equal(t, 201, high.QuestionID)
	assert.Contains(t, high.Title, "Saúde")

	medium := tasks[5]
	assert.Equal(t, "sector:saude:202", medium.TemplateKey)
	assert.Equal(t, PriorityMedium, medium.Priority)
	assert.Equal(t, 30, medium.DueInDays)
}

func TestDeriveShortAnswerList(t *testing.T) {
	c := catalog.Base()
	tasks := Derive(c, []catalog.Answer{catalog.Single("não")})
	assert.Len(t, tasks, 4)
}
