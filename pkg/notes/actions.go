// Package notes holds the single-note generation actions: titles,
// summaries, expansions, hashtags and user-defined prompts. Each action
// renders its template, issues one generation call and returns the text;
// the caller decides whether and how to apply it.
package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/notesage/notesage/internal/models"
	"github.com/notesage/notesage/internal/types"
	"github.com/notesage/notesage/pkg/prompt"
)

type Actions struct {
	gen       types.TextGenerator
	templates map[string]string
	custom    []models.CustomPrompt
	logger    *logrus.Logger
}

func New(gen types.TextGenerator, templates map[string]string, custom []models.CustomPrompt, logger *logrus.Logger) *Actions {
	if templates == nil {
		templates = prompt.Defaults()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Actions{gen: gen, templates: templates, custom: custom, logger: logger}
}

func (a *Actions) template(name string) string {
	if tmpl := a.templates[name]; tmpl != "" {
		return tmpl
	}
	return prompt.Defaults()[name]
}

// GenerateTitle suggests a title for a note body.
func (a *Actions) GenerateTitle(ctx context.Context, currentTitle, body string) (string, error) {
	rendered := prompt.Render(a.template(prompt.KeyTitle), map[string]string{
		"currentTitle": currentTitle,
		"content":      body,
	})

	title, err := a.gen.Generate(ctx, rendered)
	if err != nil {
		return "", err
	}

	// Models like to wrap titles in quotes despite instructions.
	title = strings.TrimSpace(title)
	if idx := strings.IndexByte(title, '\n'); idx != -1 {
		title = strings.TrimSpace(title[:idx])
	}
	return strings.Trim(title, `"'`), nil
}

// Summarize condenses the given text.
func (a *Actions) Summarize(ctx context.Context, text string) (string, error) {
	rendered := prompt.Render(a.template(prompt.KeySummary), map[string]string{
		"content": text,
	})
	return a.gen.Generate(ctx, rendered)
}

// Expand grows the given text into a fuller passage.
func (a *Actions) Expand(ctx context.Context, text string) (string, error) {
	rendered := prompt.Render(a.template(prompt.KeyExpand), map[string]string{
		"content": text,
	})
	return a.gen.Generate(ctx, rendered)
}

// GenerateHashtags suggests hashtags for one note body.
func (a *Actions) GenerateHashtags(ctx context.Context, body string) (string, error) {
	rendered := prompt.Render(a.template(prompt.KeyHashtags), map[string]string{
		"content": body,
	})

	tags, err := a.gen.Generate(ctx, rendered)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tags), nil
}

// HashtagVault suggests hashtags for every non-empty note in the store,
// keyed by note path. A failing note is skipped with a diagnostic; the
// batch always finishes.
func (a *Actions) HashtagVault(ctx context.Context, store types.DocumentStore) (map[string]string, error) {
	docs, err := store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate vault: %w", err)
	}

	tags := make(map[string]string)
	for _, ref := range docs {
		if err := ctx.Err(); err != nil {
			return tags, err
		}

		note, err := store.Read(ref.Path)
		if err != nil {
			a.logger.WithError(err).WithField("note", ref.Path).Warn("skipping unreadable note")
			continue
		}
		if strings.TrimSpace(note.Body) == "" {
			continue
		}

		suggestion, err := a.GenerateHashtags(ctx, note.Body)
		if err != nil {
			a.logger.WithError(err).WithField("note", ref.Path).Warn("skipping failed hashtag generation")
			continue
		}
		tags[ref.Path] = suggestion
	}

	return tags, nil
}

// RunCustomPrompt runs the named user-defined prompt against text.
func (a *Actions) RunCustomPrompt(ctx context.Context, name, text string) (string, error) {
	for _, custom := range a.custom {
		if custom.Name != name {
			continue
		}
		rendered := prompt.Render(custom.Prompt, map[string]string{
			"content": text,
		})
		return a.gen.Generate(ctx, rendered)
	}
	return "", fmt.Errorf("unknown custom prompt %q", name)
}
