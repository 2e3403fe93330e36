package analysis

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/notesage/notesage/internal/types"
	"github.com/notesage/notesage/pkg/prompt"
)

// Long notes are summarized from their lead content only; the prefix bound
// keeps prompt size and cost predictable.
const (
	maxConceptInput  = 2000
	truncationMarker = "..."
)

// Judgment is one scored, one-sentence-justified similarity verdict
// between two notes.
type Judgment struct {
	Score   float64
	Context string
}

// Analyzer asks the generation backend to extract note concepts and judge
// pairwise relations.
type Analyzer struct {
	gen       types.TextGenerator
	templates map[string]string
	logger    *logrus.Logger
}

func NewAnalyzer(gen types.TextGenerator, templates map[string]string, logger *logrus.Logger) *Analyzer {
	if templates == nil {
		templates = prompt.Defaults()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Analyzer{gen: gen, templates: templates, logger: logger}
}

func (a *Analyzer) template(name string) string {
	if tmpl := a.templates[name]; tmpl != "" {
		return tmpl
	}
	return prompt.Defaults()[name]
}

// ExtractConcepts returns a comma-separated list of the core concepts of
// body. When the response carries no parseable {"concepts": [...]} payload
// the raw response text is returned unchanged as a degraded fallback; an
// error is returned only when the generation call itself failed.
func (a *Analyzer) ExtractConcepts(ctx context.Context, body string) (string, error) {
	input := body
	if len(input) > maxConceptInput {
		input = input[:maxConceptInput] + truncationMarker
	}

	rendered := prompt.Render(a.template(prompt.KeyConcepts), map[string]string{
		"content": input,
	})

	response, err := a.gen.Generate(ctx, rendered)
	if err != nil {
		return "", err
	}

	if span := extractObject(response); span != "" {
		if concepts := gjson.Get(span, "concepts"); concepts.IsArray() {
			var parts []string
			for _, c := range concepts.Array() {
				if s := strings.TrimSpace(c.String()); s != "" {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, ", "), nil
			}
		}
	}

	// Concept format is best-effort, not guaranteed structured.
	return response, nil
}

// AnalyzeRelation scores how closely two notes relate, given their titles
// and extracted concepts. A response without a usable score is useless, so
// parse failure drops the relation (nil, nil) rather than degrading. Scores
// outside [0,1] are clamped at this boundary.
func (a *Analyzer) AnalyzeRelation(ctx context.Context, sourceTitle, sourceConcepts, targetTitle, targetConcepts string) (*Judgment, error) {
	rendered := prompt.Render(a.template(prompt.KeyRelation), map[string]string{
		"sourceTitle":    sourceTitle,
		"sourceConcepts": sourceConcepts,
		"targetTitle":    targetTitle,
		"targetConcepts": targetConcepts,
	})

	response, err := a.gen.Generate(ctx, rendered)
	if err != nil {
		return nil, err
	}

	span := extractObject(response)
	if span == "" {
		a.logger.WithField("target", targetTitle).Debug("relation response carried no JSON object")
		return nil, nil
	}

	score := gjson.Get(span, "similarityScore")
	if !score.Exists() || score.Type != gjson.Number {
		a.logger.WithField("target", targetTitle).Debug("relation response missing numeric similarityScore")
		return nil, nil
	}

	return &Judgment{
		Score:   clamp(score.Float()),
		Context: gjson.Get(span, "context").String(),
	}, nil
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
