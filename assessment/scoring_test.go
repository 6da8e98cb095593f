package assessment

import (
	"fmt"
	"testing"

	"github.com/calltechcare/backend-go/cms"
	"github.com/stretchr/testify/assert"
)

func schemaWith(questions ...cms.Question) *cms.AssessmentSchema {
	return &cms.AssessmentSchema{
		Categories: []cms.Category{{ID: "security"}, {ID: "performance"}},
		Questions:  questions,
	}
}

func TestScaleFiveRescaling(t *testing.T) {
	schema := schemaWith(cms.Question{ID: "q1", CategoryID: "security", Type: "scale5", Weight: 1})

	for answer := 1; answer <= 5; answer++ {
		result := Score(schema, map[string]string{"q1": fmt.Sprint(answer)})
		expected := float64(answer-1) / 4 * 100
		assert.InDelta(t, expected, result.CategoryScores["security"], 1e-9)
		assert.GreaterOrEqual(t, result.OverallScore, 0.0)
		assert.LessOrEqual(t, result.OverallScore, 100.0)
	}
}

func TestScaleTenRescaling(t *testing.T) {
	schema := schemaWith(cms.Question{ID: "q1", CategoryID: "security", Type: "scale10", Weight: 1})

	for answer := 1; answer <= 10; answer++ {
		result := Score(schema, map[string]string{"q1": fmt.Sprint(answer)})
		expected := float64(answer-1) / 9 * 100
		assert.InDelta(t, expected, result.CategoryScores["security"], 1e-9)
	}
}

func TestOutOfRangeScaleAnswerIgnored(t *testing.T) {
	schema := schemaWith(cms.Question{ID: "q1", CategoryID: "security", Type: "scale5", Weight: 1})

	for _, answer := range []string{"0", "6", "-3", "banana", ""} {
		result := Score(schema, map[string]string{"q1": answer})
		assert.Equal(t, 0.0, result.CategoryScores["security"], "answer %q", answer)
		assert.Equal(t, 0.0, result.OverallScore)
	}
}

func TestZeroWeightCategoryScoresZero(t *testing.T) {
	schema := schemaWith(
		cms.Question{ID: "q1", CategoryID: "security", Type: "scale5", Weight: 0},
		cms.Question{ID: "q2", CategoryID: "security", Type: "scale5", Weight: 0},
	)

	// All weights zero: no division by zero, category pinned to 0.
	result := Score(schema, map[string]string{"q1": "5", "q2": "5"})
	assert.Equal(t, 0.0, result.CategoryScores["security"])
	assert.Equal(t, 0.0, result.OverallScore)
}

func TestMultipleChoiceUsesConfiguredScore(t *testing.T) {
	schema := schemaWith(cms.Question{
		ID: "q1", CategoryID: "security", Type: "multiple_choice", Weight: 1,
		Options: []cms.QuestionOption{
			{Value: "never", Score: 0},
			{Value: "sometimes", Score: 50},
			{Value: "always", Score: 100},
		},
	})

	result := Score(schema, map[string]string{"q1": "sometimes"})
	assert.Equal(t, 50.0, result.CategoryScores["security"])

	// Unmatched option contributes nothing.
	result = Score(schema, map[string]string{"q1": "maybe"})
	assert.Equal(t, 0.0, result.CategoryScores["security"])
}

func TestWeightingBeforeCategoryAveraging(t *testing.T) {
	schema := schemaWith(
		cms.Question{ID: "q1", CategoryID: "security", Type: "scale5", Weight: 3},
		cms.Question{ID: "q2", CategoryID: "security", Type: "scale5", Weight: 1},
	)

	// q1=5 -> 100 (weight 3), q2=1 -> 0 (weight 1): (300+0)/4 = 75.
	result := Score(schema, map[string]string{"q1": "5", "q2": "1"})
	assert.InDelta(t, 75.0, result.CategoryScores["security"], 1e-9)
	assert.InDelta(t, 75.0, result.OverallScore, 1e-9)
}

func TestOverallSpansCategories(t *testing.T) {
	schema := schemaWith(
		cms.Question{ID: "q1", CategoryID: "security", Type: "scale5", Weight: 1},
		cms.Question{ID: "q2", CategoryID: "performance", Type: "scale5", Weight: 1},
	)

	result := Score(schema, map[string]string{"q1": "5", "q2": "1"})
	assert.InDelta(t, 100.0, result.CategoryScores["security"], 1e-9)
	assert.InDelta(t, 0.0, result.CategoryScores["performance"], 1e-9)
	assert.InDelta(t, 50.0, result.OverallScore, 1e-9)
}

func TestUnansweredQuestionsExcluded(t *testing.T) {
	schema := schemaWith(
		cms.Question{ID: "q1", CategoryID: "security", Type: "scale5", Weight: 1},
		cms.Question{ID: "q2", CategoryID: "security", Type: "scale5", Weight: 10},
	)

	result := Score(schema, map[string]string{"q1": "5"})
	assert.InDelta(t, 100.0, result.CategoryScores["security"], 1e-9)
}

func TestConfiguredScoreClamped(t *testing.T) {
	schema := schemaWith(cms.Question{
		ID: "q1", CategoryID: "security", Type: "boolean", Weight: 1,
		Options: []cms.QuestionOption{{Value: "yes", Score: 250}},
	})

	result := Score(schema, map[string]string{"q1": "yes"})
	assert.Equal(t, 100.0, result.CategoryScores["security"])
}
