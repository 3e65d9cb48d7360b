package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{"brightideas9", 100},
		{"ab12345", 100},
		{"ab1", 90},             // short
		{"mystore", 95},         // no digit
		{"a-b-c-d9", 85},        // too many hyphens
		{"testsite1", 80},       // low-effort token
		{"test", 65},            // short, no digit, low-effort
		{"temptest", 55},        // two distinct tokens, no digit
		{"tmp", 65},             // short, no digit, low-effort
		{"test-demo-tmp-x", 20}, // three tokens, hyphens, no digit
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.name))
		})
	}
}

func TestScoreMonotonicityExample(t *testing.T) {
	assert.Greater(t, Score("ab12345"), Score("test"))
}

func TestScoreBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[a-z0-9-]{0,70}`).Draw(t, "name")
		score := Score(name)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	})
}

func TestScoreDeterminism(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[a-z0-9]([a-z0-9-]*[a-z0-9])?`).Draw(t, "name")
		assert.Equal(t, Score(name), Score(name))
	})
}

func TestRecommendations(t *testing.T) {
	assert.Empty(t, Recommendations(80))
	assert.Len(t, Recommendations(79), 1)
	assert.Len(t, Recommendations(59), 2)
	assert.Len(t, Recommendations(39), 3)
}
