package models

import "time"

// Note is a markdown document in the vault. The core reads and rewrites
// bodies; it never deletes notes.
type Note struct {
	Path   string // vault-relative path, forward slashes
	Name   string // display name, file name without extension
	Folder string // vault-relative containing folder, "" for the root
	Body   string
}

// Relation is a scored, directional similarity judgment between two notes.
// A->B and B->A are distinct entities and may carry different scores since
// each comes from an independent model call.
type Relation struct {
	SourcePath string  `yaml:"source" json:"source"`
	SourceName string  `yaml:"source_name" json:"sourceName"`
	TargetPath string  `yaml:"target" json:"target"`
	TargetName string  `yaml:"target_name" json:"targetName"`
	Score      float64 `yaml:"score" json:"score"`
	Context    string  `yaml:"context" json:"context"`
}

// InteractionEntry records one exchange with the generation backend,
// success or failure. Entries are append-only and never pruned.
type InteractionEntry struct {
	ID             string    `yaml:"id" json:"id"`
	Timestamp      time.Time `yaml:"timestamp" json:"timestamp"`
	Model          string    `yaml:"model" json:"model"`
	Prompt         string    `yaml:"prompt" json:"prompt"`
	Response       string    `yaml:"response,omitempty" json:"response,omitempty"`
	PromptTokens   int       `yaml:"prompt_tokens,omitempty" json:"promptTokens,omitempty"`
	ResponseTokens int       `yaml:"response_tokens,omitempty" json:"responseTokens,omitempty"`
	Error          string    `yaml:"error,omitempty" json:"error,omitempty"`
}

// CustomPrompt is a user-defined prompt runnable against a note or selection.
type CustomPrompt struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Prompt      string `yaml:"prompt"`
}
