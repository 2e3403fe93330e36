package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/notesage/notesage/internal/models"
	"github.com/notesage/notesage/pkg/prompt"
)

// New-file location policies for notes created by the tool.
const (
	NewFileRoot    = "root"
	NewFileCurrent = "current"
	NewFileFolder  = "folder"
)

// Settings is the full persisted configuration blob: provider credentials,
// vault location, knowledge-graph tuning, prompt templates, custom prompts
// and the interaction log. It is saved in full on every change.
type Settings struct {
	Provider struct {
		Name        string  `yaml:"name"` // "ollama" or "openai"
		APIKey      string  `yaml:"api_key,omitempty"`
		BaseURL     string  `yaml:"base_url,omitempty"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float64 `yaml:"temperature"`
		RateLimit   float64 `yaml:"rate_limit"` // generation calls per second
	} `yaml:"provider"`

	Vault struct {
		Path            string `yaml:"path"`
		NewFileLocation string `yaml:"new_file_location"` // root | current | folder
		NewFileFolder   string `yaml:"new_file_folder,omitempty"`
	} `yaml:"vault"`

	Graph struct {
		Enabled             bool    `yaml:"enabled"`
		MinSimilarityScore  float64 `yaml:"min_similarity_score"`
		MaxLinksPerDocument int     `yaml:"max_links_per_document"`
		AutoAddLinks        bool    `yaml:"auto_add_links"`
	} `yaml:"graph"`

	Templates     map[string]string         `yaml:"templates,omitempty"`
	CustomPrompts []models.CustomPrompt     `yaml:"custom_prompts,omitempty"`
	Interactions  []models.InteractionEntry `yaml:"interactions,omitempty"`
}

// Load reads settings from path, merged over the hard-coded defaults with
// loaded values winning. An empty path tries the default locations and
// falls back to pure defaults when none exists.
func Load(path string) (*Settings, error) {
	if path == "" {
		locations := []string{
			"notesage.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/notesage/config.yaml"),
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultSettings(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading settings file: %w", err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("error parsing settings file: %w", err)
	}

	mergeWithEnv(&settings)
	applyDefaults(&settings)

	return &settings, nil
}

// Save writes the full settings blob to path, creating parent directories
// as needed.
func Save(path string, settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error encoding settings: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating settings directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing settings file: %w", err)
	}

	return nil
}

func getDefaultSettings() *Settings {
	settings := &Settings{}
	applyDefaults(settings)
	mergeWithEnv(settings)
	return settings
}

func applyDefaults(settings *Settings) {
	if settings.Provider.Name == "" {
		settings.Provider.Name = "ollama"
	}
	if settings.Provider.Model == "" {
		settings.Provider.Model = "mistral"
	}
	if settings.Provider.MaxTokens == 0 {
		settings.Provider.MaxTokens = 2000
	}
	if settings.Provider.Temperature == 0 {
		settings.Provider.Temperature = 0.7
	}
	if settings.Provider.BaseURL == "" && settings.Provider.Name == "ollama" {
		settings.Provider.BaseURL = "http://localhost:11434"
	}
	if settings.Provider.RateLimit == 0 {
		settings.Provider.RateLimit = 1.0
	}

	if settings.Vault.NewFileLocation == "" {
		settings.Vault.NewFileLocation = NewFileRoot
	}

	if settings.Graph.MinSimilarityScore == 0 {
		settings.Graph.MinSimilarityScore = 0.5
	}
	if settings.Graph.MaxLinksPerDocument == 0 {
		settings.Graph.MaxLinksPerDocument = 5
	}

	// Loaded templates win over the built-in set per name.
	defaults := prompt.Defaults()
	if settings.Templates == nil {
		settings.Templates = defaults
		return
	}
	for name, tmpl := range defaults {
		if settings.Templates[name] == "" {
			settings.Templates[name] = tmpl
		}
	}
}

func mergeWithEnv(settings *Settings) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && settings.Provider.APIKey == "" {
		settings.Provider.APIKey = key
	}
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		settings.Provider.BaseURL = baseURL
	}
	if vault := os.Getenv("NOTESAGE_VAULT"); vault != "" {
		settings.Vault.Path = vault
	}
}
