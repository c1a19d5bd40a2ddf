package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeBaseOnly(t *testing.T) {
	c := Compose(Profile{})
	require.Len(t, c, len(baseQuestions))
	for i, q := range c {
		assert.Equal(t, i+1, q.ID)
		assert.True(t, q.IsBase())
	}
}

func TestComposeSectorsAndCustom(t *testing.T) {
	c := Compose(Profile{
		Sectors:       []Sector{SectorHealth, SectorHumanResources},
		CustomSectors: []string{" Logística ", "Jurídico", "Logística", ""},
	})

	ids := c.IDs()
	want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 201, 202, 203, 101, 102, 103, 9000, 9001}
	assert.Equal(t, want, ids)

	last := c[len(c)-1]
	assert.Equal(t, SectorCustom, last.Sector)
	assert.Equal(t, KindText, last.Kind)
	assert.Equal(t, "Jurídico", last.SectorLabel)
	assert.Contains(t, last.Prompt, "Jurídico")

	health := c[10]
	assert.Equal(t, string(SectorHealth), health.Sector)
	assert.Equal(t, "Saúde", health.SectorLabel)
	assert.Equal(t, KindSingle, health.Kind)
}

func TestComposeSkipsUnknownAndDuplicateSectors(t *testing.T) {
	c := Compose(Profile{Sectors: []Sector{"mineracao", SectorFinance, SectorFinance}})
	assert.Len(t, c, len(baseQuestions)+3)
}

func TestComposeIsDeterministic(t *testing.T) {
	profiles := []Profile{
		{},
		{Sectors: Sectors()},
		{Sectors: []Sector{SectorMarketing}, CustomSectors: []string{"a", "b", "c"}},
		{Sectors: []Sector{SectorEducation, SectorTechnology}, CustomSectors: []string{"x", " x "}},
	}
	for _, p := range profiles {
		first := Compose(p)
		second := Compose(p)
		assert.Equal(t, first.IDs(), second.IDs())
		assert.Equal(t, first, second)
	}
}

func TestComposeIDsUnique(t *testing.T) {
	c := Compose(Profile{Sectors: Sectors(), CustomSectors: []string{"um", "dois"}})
	seen := map[int]bool{}
	for _, q := range c {
		assert.False(t, seen[q.ID], "duplicate id %d", q.ID)
		seen[q.ID] = true
	}
}

func TestBaseReturnsCopy(t *testing.T) {
	c := Base()
	c[0].Prompt = "mutated"
	assert.NotEqual(t, "mutated", Base()[0].Prompt)
}

func TestValidateSectors(t *testing.T) {
	assert.NoError(t, ValidateSectors([]Sector{SectorHealth, SectorFinance}))
	assert.Error(t, ValidateSectors([]Sector{SectorHealth, "agro"}))
}

func TestNeedsEvidence(t *testing.T) {
	q := Base()[QuestionDPO-1]
	assert.True(t, q.NeedsEvidence(Single("Sim ")))
	assert.False(t, q.NeedsEvidence(Single("não")))
	assert.False(t, Base()[QuestionConsent-1].NeedsEvidence(Single("sim")))
}
