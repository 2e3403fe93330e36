package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"

	"github.com/notesage/notesage/internal/models"
)

// ErrNotConfigured is returned when no generation backend is configured.
// No call is attempted in that case.
var ErrNotConfigured = errors.New("generation backend is not configured")

// GeneratorConfig represents the configuration for a Generator.
type GeneratorConfig struct {
	Provider    string // "ollama" or "openai"
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	RateLimit   float64 // calls per second
}

// Generator wraps a single external generation call: prompt in, completion
// text out. Every invocation, success or failure, appends exactly one
// interaction log entry.
type Generator struct {
	config  GeneratorConfig
	model   llms.Model
	limiter *rate.Limiter
	log     *InteractionLog
	logger  *logrus.Logger
}

// NewWithConfig creates a Generator backed by the configured provider.
// An openai provider without an API key yields a generator whose calls
// fail with ErrNotConfigured rather than a constructor error, so the rest
// of the tool stays usable.
func NewWithConfig(config GeneratorConfig, log *InteractionLog, logger *logrus.Logger) (*Generator, error) {
	if config.Model == "" {
		config.Model = "mistral"
	}
	if config.Temperature < 0 || config.Temperature > 2 {
		return nil, fmt.Errorf("temperature must be between 0 and 2")
	}
	if config.MaxTokens < 0 {
		return nil, fmt.Errorf("max tokens cannot be negative")
	} else if config.MaxTokens == 0 {
		config.MaxTokens = 2000
	}
	if config.RateLimit == 0 {
		config.RateLimit = 1.0
	}

	var model llms.Model
	switch config.Provider {
	case "", "ollama":
		if config.BaseURL == "" {
			config.BaseURL = "http://localhost:11434"
		}
		m, err := ollama.New(ollama.WithModel(config.Model),
			ollama.WithServerURL(config.BaseURL))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM: %w", err)
		}
		model = m
	case "openai":
		if config.APIKey == "" {
			break // leave model nil, Generate reports ErrNotConfigured
		}
		opts := []openai.Option{openai.WithToken(config.APIKey), openai.WithModel(config.Model)}
		if config.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(config.BaseURL))
		}
		m, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize LLM: %w", err)
		}
		model = m
	default:
		return nil, fmt.Errorf("unknown provider %q", config.Provider)
	}

	return New(model, config, log, logger), nil
}

// New creates a Generator around an existing model. A nil model produces
// ErrNotConfigured on every call.
func New(model llms.Model, config GeneratorConfig, log *InteractionLog, logger *logrus.Logger) *Generator {
	if log == nil {
		log = NewInteractionLog(nil, nil, logger)
	}
	if logger == nil {
		logger = logrus.New()
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	return &Generator{
		config:  config,
		model:   model,
		limiter: limiter,
		log:     log,
		logger:  logger,
	}
}

// Log exposes the interaction log backing this generator.
func (g *Generator) Log() *InteractionLog {
	return g.log
}

// Configured reports whether a backend is available.
func (g *Generator) Configured() bool {
	return g.model != nil
}

// Generate sends one prompt and returns the completion text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	entry := models.InteractionEntry{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Model:     g.config.Model,
		Prompt:    prompt,
	}

	if g.model == nil {
		entry.Error = ErrNotConfigured.Error()
		g.log.Append(entry)
		return "", ErrNotConfigured
	}

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			entry.Error = err.Error()
			g.log.Append(entry)
			return "", fmt.Errorf("generation aborted: %w", err)
		}
	}

	completion, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt,
		llms.WithTemperature(g.config.Temperature),
		llms.WithMaxTokens(g.config.MaxTokens),
	)
	if err != nil {
		entry.Error = err.Error()
		g.log.Append(entry)
		g.logger.WithError(err).Debug("generation call failed")
		return "", fmt.Errorf("generation failed: %w", err)
	}

	entry.Response = completion
	entry.PromptTokens = countTokens(prompt)
	entry.ResponseTokens = countTokens(completion)
	g.log.Append(entry)

	return completion, nil
}
