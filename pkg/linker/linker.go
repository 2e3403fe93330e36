// Package linker performs idempotent textual patches that add related-note
// links to a markdown body.
package linker

import (
	"regexp"
	"strings"

	"github.com/notesage/notesage/internal/models"
)

// SectionMarker heads the related-notes section the linker owns.
const SectionMarker = "## Related Documents"

var nextHeading = regexp.MustCompile(`(?m)^#`)

// AppendLinks appends a related-documents section listing relations, one
// line per relation in input order. When the body already contains the
// section marker the call is a deliberate no-op rather than a merge, so
// re-running link insertion never duplicates or conflicts. The returned
// bool reports whether the body changed.
func AppendLinks(body string, relations []models.Relation) (string, bool) {
	if len(relations) == 0 {
		return body, false
	}
	if strings.Contains(body, SectionMarker) {
		return body, false
	}

	var section strings.Builder
	section.WriteString(strings.TrimRight(body, "\n"))
	section.WriteString("\n\n")
	section.WriteString(SectionMarker)
	section.WriteString("\n\n")
	for _, rel := range relations {
		section.WriteString(linkLine(rel.TargetName, rel.Context))
		section.WriteString("\n")
	}

	return section.String(), true
}

// AddWikilink adds a single link to target inside the related-documents
// section, creating the section fresh with exactly one entry when the
// marker is absent. A link to that exact target already present in the
// section makes the call a no-op.
func AddWikilink(body, target, context string) (string, bool) {
	start, end, ok := sectionBounds(body)
	if !ok {
		patched, _ := AppendLinks(body, []models.Relation{{TargetName: target, Context: context}})
		return patched, true
	}

	section := body[start:end]
	if strings.Contains(section, "[["+target+"]]") {
		return body, false
	}

	entry := linkLine(target, context)
	head := strings.TrimRight(body[:end], "\n")
	tail := body[end:]

	patched := head + "\n" + entry + "\n"
	if tail != "" {
		patched += "\n" + tail
	}
	return patched, true
}

// sectionBounds locates the section's line span: from the marker to the
// next heading or end of text.
func sectionBounds(body string) (start, end int, ok bool) {
	idx := strings.Index(body, SectionMarker)
	if idx == -1 {
		return 0, 0, false
	}

	start = idx + len(SectionMarker)
	rest := body[start:]
	if m := nextHeading.FindStringIndex(rest); m != nil {
		return start, start + m[0], true
	}
	return start, len(body), true
}

func linkLine(target, context string) string {
	line := "- [[" + target + "]]"
	if context != "" {
		line += ": " + context
	}
	return line
}
