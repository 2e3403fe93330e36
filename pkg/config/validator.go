package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (s *Settings) Validate() []ValidationError {
	var errors []ValidationError

	switch s.Provider.Name {
	case "ollama", "openai":
	default:
		errors = append(errors, ValidationError{
			Field:   "provider.name",
			Message: fmt.Sprintf("unknown provider %q, expected ollama or openai", s.Provider.Name),
		})
	}

	if s.Provider.MaxTokens < 1 || s.Provider.MaxTokens > 8192 {
		errors = append(errors, ValidationError{
			Field:   "provider.max_tokens",
			Message: "max_tokens must be between 1 and 8192",
		})
	}

	if s.Provider.Temperature < 0 || s.Provider.Temperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "provider.temperature",
			Message: "temperature must be between 0 and 2",
		})
	}

	if s.Provider.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "provider.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	if s.Provider.BaseURL != "" {
		if _, err := url.Parse(s.Provider.BaseURL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "provider.base_url",
				Message: "invalid base URL",
			})
		}
	}

	if s.Vault.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "vault.path",
			Message: "vault path is required",
		})
	}

	switch s.Vault.NewFileLocation {
	case NewFileRoot, NewFileCurrent:
	case NewFileFolder:
		if s.Vault.NewFileFolder == "" {
			errors = append(errors, ValidationError{
				Field:   "vault.new_file_folder",
				Message: "new_file_folder is required when new_file_location is folder",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "vault.new_file_location",
			Message: "new_file_location must be root, current or folder",
		})
	}

	if s.Graph.MinSimilarityScore < 0 || s.Graph.MinSimilarityScore > 1 {
		errors = append(errors, ValidationError{
			Field:   "graph.min_similarity_score",
			Message: "min_similarity_score must be between 0 and 1",
		})
	}

	if s.Graph.MaxLinksPerDocument < 1 {
		errors = append(errors, ValidationError{
			Field:   "graph.max_links_per_document",
			Message: "max_links_per_document must be positive",
		})
	}

	seen := make(map[string]bool)
	for _, custom := range s.CustomPrompts {
		if custom.Name == "" {
			errors = append(errors, ValidationError{
				Field:   "custom_prompts",
				Message: "custom prompt name is required",
			})
			continue
		}
		if seen[custom.Name] {
			errors = append(errors, ValidationError{
				Field:   "custom_prompts",
				Message: fmt.Sprintf("duplicate custom prompt name %q", custom.Name),
			})
		}
		seen[custom.Name] = true
	}

	return errors
}
