// Package sector breaks an answer set down by sector: sub-score, detected
// gaps, and recommendations from a static table.
package sector

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"adequa/internal/assessment/catalog"
	"adequa/internal/assessment/scoring"
)

// Result is the analysis of one sector bucket.
type Result struct {
	Sector          string   `json:"sector"`
	Label           string   `json:"label"`
	Score           int      `json:"score"`
	AnsweredCount   int      `json:"answered_count"`
	TotalCount      int      `json:"total_count"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`
}

// Analyze partitions the catalog into the base bucket, one bucket per declared
// sector and a custom bucket. Each sub-score is normalized by the bucket's
// answered count, so unanswered questions do not lower it.
func Analyze(c catalog.Catalog, answers []catalog.Answer) map[string]Result {
	buckets := make(map[string]*bucket)
	for i, q := range c {
		a := catalog.Answer{}
		if i < len(answers) {
			a = answers[i]
		}

		key := q.Sector
		if _, ok := recommendations[key]; !ok {
			key = catalog.SectorCustom
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{result: Result{
				Sector:          key,
				Label:           labelFor(key),
				Gaps:            []string{},
				Recommendations: recommendationsFor(key),
			}}
			buckets[key] = b
		}
		b.add(q, a, key == catalog.SectorCustom)
	}

	out := make(map[string]Result, len(buckets))
	for key, b := range buckets {
		out[key] = b.finish()
	}
	return out
}

// Keys returns the result keys in a stable order: base first, custom last,
// sectors alphabetically in between.
func Keys(results map[string]Result) []string {
	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(rank(a), rank(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return keys
}

func rank(k string) int {
	switch k {
	case catalog.SectorBase:
		return 0
	case catalog.SectorCustom:
		return 2
	default:
		return 1
	}
}

type bucket struct {
	result Result
	points int
}

func (b *bucket) add(q catalog.Question, a catalog.Answer, generic bool) {
	b.result.TotalCount++
	if !a.IsAnswered() {
		return
	}
	b.result.AnsweredCount++
	b.points += scoring.Points(a)

	if a.IsAffirmative() || q.Kind == catalog.KindMulti {
		return
	}
	b.result.Gaps = append(b.result.Gaps, gapText(q, a, generic))
}

func (b *bucket) finish() Result {
	if b.result.AnsweredCount > 0 {
		b.result.Score = int(math.Round(float64(b.points) * 100 / float64(b.result.AnsweredCount*scoring.PointsFull)))
	}
	return b.result
}

func gapText(q catalog.Question, a catalog.Answer, generic bool) string {
	switch {
	case generic:
		name := q.SectorLabel
		if name == "" {
			name = q.Sector
		}
		return fmt.Sprintf("Setor %s: práticas de proteção de dados requerem revisão manual.", name)
	case a.IsPartial():
		return "Atendimento parcial: " + q.Prompt
	default:
		return "Não conformidade: " + q.Prompt
	}
}
