package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedGenerator returns a fixed response or error and records prompts.
type scriptedGenerator struct {
	response string
	err      error
	prompts  []string
}

func (s *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func newAnalyzer(gen *scriptedGenerator) *Analyzer {
	return NewAnalyzer(gen, nil, logrus.New())
}

func TestExtractConcepts(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "clean JSON",
			response: `{"concepts": ["a","b"]}`,
			want:     "a, b",
		},
		{
			name:     "JSON embedded in prose",
			response: "Sure, here you go:\n```json\n{\"concepts\": [\"go\", \"concurrency\"]}\n```\nHope that helps!",
			want:     "go, concurrency",
		},
		{
			name:     "non-JSON falls back to raw text",
			response: "just some text",
			want:     "just some text",
		},
		{
			name:     "JSON without concepts key falls back to raw text",
			response: `{"topics": ["a"]}`,
			want:     `{"topics": ["a"]}`,
		},
		{
			name:     "empty concepts list falls back to raw text",
			response: `{"concepts": []}`,
			want:     `{"concepts": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAnalyzer(&scriptedGenerator{response: tt.response})
			got, err := a.ExtractConcepts(context.Background(), "note body")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractConceptsGenerationFailure(t *testing.T) {
	a := newAnalyzer(&scriptedGenerator{err: errors.New("boom")})
	_, err := a.ExtractConcepts(context.Background(), "note body")
	assert.Error(t, err)
}

func TestExtractConceptsTruncatesLongBodies(t *testing.T) {
	gen := &scriptedGenerator{response: `{"concepts": ["x"]}`}
	a := newAnalyzer(gen)

	body := strings.Repeat("a", maxConceptInput+500)
	_, err := a.ExtractConcepts(context.Background(), body)
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], strings.Repeat("a", maxConceptInput)+truncationMarker)
	assert.NotContains(t, gen.prompts[0], strings.Repeat("a", maxConceptInput+1))
}

func TestAnalyzeRelation(t *testing.T) {
	gen := &scriptedGenerator{response: `{"similarityScore": 0.8, "context": "both cover goroutines"}`}
	a := newAnalyzer(gen)

	j, err := a.AnalyzeRelation(context.Background(), "A", "goroutines", "B", "channels")
	require.NoError(t, err)
	require.NotNil(t, j)
	assert.Equal(t, 0.8, j.Score)
	assert.Equal(t, "both cover goroutines", j.Context)

	// All four variables make it into the prompt.
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "A")
	assert.Contains(t, gen.prompts[0], "goroutines")
	assert.Contains(t, gen.prompts[0], "B")
	assert.Contains(t, gen.prompts[0], "channels")
}

func TestAnalyzeRelationParseFailureDropsRelation(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no JSON at all", "these notes feel related"},
		{"score missing", `{"context": "no score here"}`},
		{"score not numeric", `{"similarityScore": "high", "context": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAnalyzer(&scriptedGenerator{response: tt.response})
			j, err := a.AnalyzeRelation(context.Background(), "A", "", "B", "")
			require.NoError(t, err)
			assert.Nil(t, j)
		})
	}
}

func TestAnalyzeRelationClampsOutOfRangeScores(t *testing.T) {
	a := newAnalyzer(&scriptedGenerator{response: `{"similarityScore": 1.7, "context": "x"}`})
	j, err := a.AnalyzeRelation(context.Background(), "A", "", "B", "")
	require.NoError(t, err)
	require.NotNil(t, j)
	assert.Equal(t, 1.0, j.Score)

	a = newAnalyzer(&scriptedGenerator{response: `{"similarityScore": -0.2, "context": "x"}`})
	j, err = a.AnalyzeRelation(context.Background(), "A", "", "B", "")
	require.NoError(t, err)
	require.NotNil(t, j)
	assert.Equal(t, 0.0, j.Score)
}

func TestAnalyzeRelationGenerationFailure(t *testing.T) {
	a := newAnalyzer(&scriptedGenerator{err: errors.New("boom")})
	j, err := a.AnalyzeRelation(context.Background(), "A", "", "B", "")
	assert.Error(t, err)
	assert.Nil(t, j)
}

func TestExtractObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractObject(`prefix {"a":1} suffix`))
	assert.Equal(t, `{"a":{"b":2}}`, extractObject(`{"a":{"b":2}}`))
	assert.Equal(t, "", extractObject("no braces here"))
	assert.Equal(t, "", extractObject("} reversed {"))
}
