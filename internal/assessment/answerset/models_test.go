package answerset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"adequa/internal/assessment/catalog"
)

func TestAlignTo(t *testing.T) {
	base := catalog.Base()

	t.Run("same catalog keeps positions", func(t *testing.T) {
		answers := make([]catalog.Answer, base.Len())
		answers[0] = catalog.Single("sim")
		set := &AnswerSet{QuestionIDs: base.IDs(), Answers: answers}

		got := set.AlignTo(base)
		assert.Equal(t, answers, got)
	})

	t.Run("answers follow their question after the catalog grows", func(t *testing.T) {
		answers := make([]catalog.Answer, base.Len())
		answers[4] = catalog.Single("não")
		set := &AnswerSet{QuestionIDs: base.IDs(), Answers: answers}

		grown := catalog.Compose(catalog.Profile{Sectors: []catalog.Sector{catalog.SectorHealth}})
		got := set.AlignTo(grown)

		assert.Len(t, got, grown.Len())
		assert.Equal(t, catalog.Single("não"), got[4])
		assert.False(t, got[grown.Len()-1].IsAnswered())
	})

	t.Run("answers to removed questions are dropped", func(t *testing.T) {
		grown := catalog.Compose(catalog.Profile{Sectors: []catalog.Sector{catalog.SectorHealth}})
		answers := make([]catalog.Answer, grown.Len())
		answers[grown.Len()-1] = catalog.Text("prontuário eletrônico")
		set := &AnswerSet{QuestionIDs: grown.IDs(), Answers: answers}

		got := set.AlignTo(base)
		assert.Len(t, got, base.Len())
		for _, a := range got {
			assert.False(t, a.IsAnswered())
		}
	})

	t.Run("nil set is all unanswered", func(t *testing.T) {
		var set *AnswerSet
		assert.Len(t, set.AlignTo(base), base.Len())
	})
}

func TestCloneIsDeep(t *testing.T) {
	set := &AnswerSet{QuestionIDs: []int{10}, Answers: []catalog.Answer{catalog.Multi("a", "b")}}
	c := set.Clone()
	c.Answers[0].Values[0] = "z"
	c.QuestionIDs[0] = 11

	assert.Equal(t, "a", set.Answers[0].Values[0])
	assert.Equal(t, 10, set.QuestionIDs[0])
}
