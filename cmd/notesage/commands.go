package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/notesage/notesage/pkg/graph"
	"github.com/notesage/notesage/pkg/linker"
	"github.com/notesage/notesage/pkg/webclip"
)

func (a *app) newBuilder(onProgress func(done, total int)) *graph.Builder {
	return graph.NewWithConfig(graph.Config{
		MinSimilarityScore:  a.settings.Graph.MinSimilarityScore,
		MaxLinksPerDocument: a.settings.Graph.MaxLinksPerDocument,
		AutoAddLinks:        a.settings.Graph.AutoAddLinks,
		OnProgress:          onProgress,
	}, a.vault, a.analyzer, a.logger)
}

func (a *app) runGraph(ctx context.Context) error {
	if !a.settings.Graph.Enabled {
		return fmt.Errorf("graph building is disabled in settings")
	}

	var bar *progressbar.ProgressBar
	builder := a.newBuilder(func(done, total int) {
		if bar == nil {
			bar = getProgressBar(total, "Building knowledge graph")
		}
		bar.Set(done)
	})

	relations, err := builder.BuildGraph(ctx)
	if bar != nil {
		bar.Finish()
		fmt.Println()
	}
	if err != nil {
		return err
	}

	if len(relations) == 0 {
		color.Yellow("No related notes found above the similarity threshold.")
		return nil
	}

	color.Green("Found %d relations:", len(relations))
	for _, rel := range relations {
		fmt.Printf("  %s -> %s (%.2f)\n", rel.SourceName, rel.TargetName, rel.Score)
	}
	if a.settings.Graph.AutoAddLinks {
		color.Cyan("Related Documents sections were added to the source notes.")
	}
	return nil
}

func (a *app) runRelated(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: notesage related <note>")
	}

	note, err := a.vault.Read(args[0])
	if err != nil {
		return err
	}

	spinner := getSpinner("Scoring vault against " + note.Name)
	builder := a.newBuilder(nil)
	relations, err := builder.FindRelated(ctx, note)
	spinner.Finish()
	fmt.Println()
	if err != nil {
		return err
	}

	if len(relations) == 0 {
		color.Yellow("No related notes found above the similarity threshold.")
		return nil
	}

	for _, rel := range relations {
		color.Green("%s (%.2f)", rel.TargetName, rel.Score)
		if rel.Context != "" {
			fmt.Printf("  %s\n", rel.Context)
		}
	}
	return nil
}

func (a *app) runLink(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: notesage link <note> <target>")
	}

	note, err := a.vault.Read(args[0])
	if err != nil {
		return err
	}
	target, err := a.vault.Read(args[1])
	if err != nil {
		return err
	}

	patched, changed := linker.AddWikilink(note.Body, target.Name, "")
	if !changed {
		color.Yellow("%s already links to %s.", note.Name, target.Name)
		return nil
	}
	if err := a.vault.Write(note.Path, patched); err != nil {
		return err
	}

	color.Green("Linked %s -> %s", note.Name, target.Name)
	return nil
}

func (a *app) runTitle(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: notesage title <note>")
	}

	note, err := a.vault.Read(args[0])
	if err != nil {
		return err
	}

	title, err := a.actions.GenerateTitle(ctx, note.Name, note.Body)
	if err != nil {
		return err
	}
	fmt.Println(title)
	return nil
}

func (a *app) runSummarize(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: notesage summarize <note>")
	}

	note, err := a.vault.Read(args[0])
	if err != nil {
		return err
	}

	summary, err := a.actions.Summarize(ctx, note.Body)
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return nil
}

func (a *app) runExpand(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: notesage expand <note>")
	}

	note, err := a.vault.Read(args[0])
	if err != nil {
		return err
	}

	expanded, err := a.actions.Expand(ctx, note.Body)
	if err != nil {
		return err
	}
	fmt.Println(expanded)
	return nil
}

func (a *app) runHashtags(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		spinner := getSpinner("Generating hashtags for the vault")
		tags, err := a.actions.HashtagVault(ctx, a.vault)
		spinner.Finish()
		fmt.Println()
		if err != nil {
			return err
		}

		paths := make([]string, 0, len(tags))
		for path := range tags {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			color.Green("%s", path)
			fmt.Printf("  %s\n", tags[path])
		}
		return nil
	case 1:
		note, err := a.vault.Read(args[0])
		if err != nil {
			return err
		}
		tags, err := a.actions.GenerateHashtags(ctx, note.Body)
		if err != nil {
			return err
		}
		fmt.Println(tags)
		return nil
	default:
		return fmt.Errorf("usage: notesage hashtags [note]")
	}
}

func (a *app) runPrompt(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: notesage prompt <name> <note>")
	}

	note, err := a.vault.Read(args[1])
	if err != nil {
		return err
	}

	out, err := a.actions.RunCustomPrompt(ctx, args[0], note.Body)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func (a *app) runClip(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: notesage clip <url>")
	}

	clipper := webclip.NewWithConfig(webclip.Config{})
	spinner := getSpinner("Fetching " + args[0])
	clip, err := clipper.Fetch(ctx, args[0])
	spinner.Finish()
	fmt.Println()
	if err != nil {
		return err
	}

	path, err := a.vault.Create(clip.Title, clip.Markdown(), "")
	if err != nil {
		return err
	}

	color.Green("Clipped %q to %s", clip.Title, path)
	return nil
}

func (a *app) runLog() error {
	entries := a.generator.Log().Entries()
	if len(entries) == 0 {
		color.Yellow("No interactions recorded yet.")
		return nil
	}

	for _, entry := range entries {
		status := color.GreenString("ok")
		if entry.Error != "" {
			status = color.RedString("error: %s", entry.Error)
		}
		fmt.Printf("%s  %s  [%s]  %s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.Model,
			status,
			firstLine(entry.Prompt, 72),
		)
	}
	return nil
}

func firstLine(s string, max int) string {
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		s = s[:idx]
	}
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}
