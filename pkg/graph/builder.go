// Package graph builds the vault-wide knowledge graph: for every note it
// extracts concepts, scores pairwise relations against every other note,
// and keeps the strongest edges.
package graph

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/notesage/notesage/internal/models"
	"github.com/notesage/notesage/internal/types"
	"github.com/notesage/notesage/pkg/analysis"
	"github.com/notesage/notesage/pkg/linker"
)

type Config struct {
	MinSimilarityScore  float64
	MaxLinksPerDocument int
	AutoAddLinks        bool
	OnProgress          func(done, total int)
}

// Builder drives one graph pass. Concept extraction is memoized per
// builder, keyed by note path, since extraction is a pure function of the
// body prefix and template; create a fresh Builder for each pass so a
// later run sees edited bodies.
type Builder struct {
	config   Config
	store    types.DocumentStore
	analyzer *analysis.Analyzer
	logger   *logrus.Logger
	concepts map[string]string
}

func NewWithConfig(config Config, store types.DocumentStore, analyzer *analysis.Analyzer, logger *logrus.Logger) *Builder {
	if config.MinSimilarityScore == 0 {
		config.MinSimilarityScore = 0.5
	}
	if config.MaxLinksPerDocument == 0 {
		config.MaxLinksPerDocument = 5
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Builder{
		config:   config,
		store:    store,
		analyzer: analyzer,
		logger:   logger,
		concepts: make(map[string]string),
	}
}

// FindRelated scores source against every other note in the vault and
// returns the surviving relations sorted by score descending, capped at
// MaxLinksPerDocument. source must carry its body. Per-candidate failures
// are skipped with a diagnostic; partial results beat none, given the
// external calls already sunk.
func (b *Builder) FindRelated(ctx context.Context, source models.Note) ([]models.Relation, error) {
	docs, err := b.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate vault: %w", err)
	}
	return b.findRelated(ctx, source, docs)
}

func (b *Builder) findRelated(ctx context.Context, source models.Note, docs []models.Note) ([]models.Relation, error) {
	if strings.TrimSpace(source.Body) == "" {
		return nil, nil
	}

	// No relation can be scored without source concepts.
	sourceConcepts, ok := b.conceptsFor(ctx, source)
	if !ok {
		return nil, nil
	}

	var kept []models.Relation
	for _, candidate := range docs {
		if candidate.Path == source.Path {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		target, err := b.store.Read(candidate.Path)
		if err != nil {
			b.logger.WithError(err).WithField("note", candidate.Path).Warn("skipping unreadable note")
			continue
		}
		if strings.TrimSpace(target.Body) == "" {
			continue
		}

		targetConcepts, ok := b.conceptsFor(ctx, target)
		if !ok {
			continue
		}

		judgment, err := b.analyzer.AnalyzeRelation(ctx, source.Name, sourceConcepts, target.Name, targetConcepts)
		if err != nil {
			b.logger.WithError(err).WithFields(logrus.Fields{
				"source": source.Path,
				"target": target.Path,
			}).Warn("skipping failed relation analysis")
			continue
		}
		if judgment == nil {
			continue
		}

		if judgment.Score >= b.config.MinSimilarityScore {
			kept = append(kept, models.Relation{
				SourcePath: source.Path,
				SourceName: source.Name,
				TargetPath: target.Path,
				TargetName: target.Name,
				Score:      judgment.Score,
				Context:    judgment.Context,
			})
		}
	}

	// Ties keep discovery order.
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})
	if max := b.config.MaxLinksPerDocument; max > 0 && len(kept) > max {
		kept = kept[:max]
	}

	return kept, nil
}

// BuildGraph runs FindRelated for every note in the vault and returns the
// flat edge set. Cost is O(n^2) generation calls in the worst case; the
// OnProgress callback keeps long runs observable. When AutoAddLinks is set
// the complete relation set is fed to the link mutator afterwards.
func (b *Builder) BuildGraph(ctx context.Context) ([]models.Relation, error) {
	docs, err := b.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate vault: %w", err)
	}

	var all []models.Relation
	for i, ref := range docs {
		if err := ctx.Err(); err != nil {
			return all, err
		}

		source, err := b.store.Read(ref.Path)
		if err != nil {
			b.logger.WithError(err).WithField("note", ref.Path).Warn("skipping unreadable note")
			b.progress(i+1, len(docs))
			continue
		}

		relations, err := b.findRelated(ctx, source, docs)
		if err != nil {
			return all, err
		}
		all = append(all, relations...)
		b.progress(i+1, len(docs))
	}

	if b.config.AutoAddLinks {
		b.ApplyLinks(all)
	}

	return all, nil
}

// ApplyLinks patches each source note with its relations via the link
// mutator and reports how many notes changed. A write failure skips that
// note only; remaining notes are still processed.
func (b *Builder) ApplyLinks(relations []models.Relation) int {
	bySource := make(map[string][]models.Relation)
	var order []string
	for _, rel := range relations {
		if _, ok := bySource[rel.SourcePath]; !ok {
			order = append(order, rel.SourcePath)
		}
		bySource[rel.SourcePath] = append(bySource[rel.SourcePath], rel)
	}

	linked := 0
	for _, path := range order {
		note, err := b.store.Read(path)
		if err != nil {
			b.logger.WithError(err).WithField("note", path).Warn("skipping link insertion for unreadable note")
			continue
		}

		patched, changed := linker.AppendLinks(note.Body, bySource[path])
		if !changed {
			continue
		}

		if err := b.store.Write(path, patched); err != nil {
			b.logger.WithError(err).WithField("note", path).Warn("failed to write links")
			continue
		}
		linked++
	}

	return linked
}

func (b *Builder) progress(done, total int) {
	if b.config.OnProgress != nil {
		b.config.OnProgress(done, total)
	}
}

// conceptsFor memoizes successful extractions only; a transient failure
// may succeed when the note comes around again.
func (b *Builder) conceptsFor(ctx context.Context, note models.Note) (string, bool) {
	if concepts, ok := b.concepts[note.Path]; ok {
		return concepts, true
	}

	concepts, err := b.analyzer.ExtractConcepts(ctx, note.Body)
	if err != nil {
		b.logger.WithError(err).WithField("note", note.Path).Warn("concept extraction failed")
		return "", false
	}

	b.concepts[note.Path] = concepts
	return concepts, true
}
