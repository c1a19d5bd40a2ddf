// Package scoring turns an answer set into a 0..100 compliance score.
//
// Points: full compliance 10, partial 5, anything else 0. The sum is capped
// at max(100, catalogSize*10) and expressed as a percentage of that cap, so
// sector-augmented catalogs are not truncated and the result stays in range.
// Questions are not weighted.
package scoring

import (
	"math"

	"adequa/internal/assessment/catalog"
)

const (
	PointsFull    = 10
	PointsPartial = 5
	minCap        = 100
)

// Points returns the contribution of a single answer.
func Points(a catalog.Answer) int {
	switch {
	case a.IsAffirmative():
		return PointsFull
	case a.IsPartial():
		return PointsPartial
	default:
		return 0
	}
}

// Score computes the compliance score for answers against a catalog of
// catalogSize questions.
func Score(answers []catalog.Answer, catalogSize int) int {
	limit := max(minCap, catalogSize*PointsFull)

	sum := 0
	for _, a := range answers {
		sum += Points(a)
	}
	raw := min(sum, limit)
	return int(math.Round(float64(raw) * 100 / float64(limit)))
}
