// Package assessment scores quiz submissions against the CMS-defined
// question/category/weight schema.
package assessment

import (
	"strconv"

	"github.com/calltechcare/backend-go/cms"
)

// Result is a scored submission.
type Result struct {
	CategoryScores map[string]float64
	OverallScore   float64
}

// Score computes a weighted 0-100 score per category plus an overall score.
// Unanswered or unparsable questions contribute nothing, on either side of
// the weighted average. A category whose answered questions carry zero
// total weight scores 0.
func Score(schema *cms.AssessmentSchema, answers map[string]string) Result {
	type bucket struct {
		weighted float64
		weight   float64
	}

	buckets := make(map[string]*bucket)
	for _, cat := range schema.Categories {
		buckets[cat.ID] = &bucket{}
	}

	var overallWeighted, overallWeight float64

	for _, q := range schema.Questions {
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}

		score, ok := questionScore(q, answer)
		if !ok {
			continue
		}

		b := buckets[q.CategoryID]
		if b == nil {
			b = &bucket{}
			buckets[q.CategoryID] = b
		}
		b.weighted += q.Weight * score
		b.weight += q.Weight

		overallWeighted += q.Weight * score
		overallWeight += q.Weight
	}

	result := Result{CategoryScores: make(map[string]float64, len(buckets))}
	for id, b := range buckets {
		if b.weight == 0 {
			result.CategoryScores[id] = 0
			continue
		}
		result.CategoryScores[id] = clamp(b.weighted / b.weight)
	}

	if overallWeight > 0 {
		result.OverallScore = clamp(overallWeighted / overallWeight)
	}
	return result
}

// questionScore maps one answer onto [0,100].
func questionScore(q cms.Question, answer string) (float64, bool) {
	switch q.Type {
	case "multiple_choice", "boolean":
		for _, opt := range q.Options {
			if opt.Value == answer {
				return clamp(opt.Score), true
			}
		}
		return 0, false
	case "scale5":
		return scaleScore(answer, 5)
	case "scale10":
		return scaleScore(answer, 10)
	default:
		return 0, false
	}
}

// scaleScore linearly rescales an N-point answer onto [0,100]:
// (answer-1)/(N-1)*100.
func scaleScore(answer string, points int) (float64, bool) {
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > points {
		return 0, false
	}
	return clamp(float64(n-1) / float64(points-1) * 100), true
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
