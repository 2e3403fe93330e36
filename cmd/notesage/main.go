package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/notesage/notesage/internal/models"
	"github.com/notesage/notesage/pkg/analysis"
	"github.com/notesage/notesage/pkg/config"
	"github.com/notesage/notesage/pkg/llm"
	"github.com/notesage/notesage/pkg/notes"
	"github.com/notesage/notesage/pkg/vault"
)

func main() {
	godotenv.Load()

	var settingsPath string
	var vaultPath string
	var verbose bool

	flag.StringVar(&settingsPath, "config", "", "Path to settings file")
	flag.StringVar(&vaultPath, "vault", "", "Path to the note vault")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if err := run(settingsPath, vaultPath, verbose, args[0], args[1:]); err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `notesage - LLM assistant for markdown note vaults

Usage: notesage [flags] <command> [args]

Commands:
  init                     Write a default settings file
  graph                    Build the full knowledge graph for the vault
  related <note>           Find notes related to one note
  link <note> <target>     Add a single related-note link to a note
  title <note>             Suggest a title for a note
  summarize <note>         Summarize a note
  expand <note>            Expand a note into a fuller passage
  hashtags [note]          Suggest hashtags for one note or the whole vault
  prompt <name> <note>     Run a custom prompt against a note
  clip <url>               Save a web page as a new note
  log                      Show the interaction log

Flags:
`)
	flag.PrintDefaults()
}

// app wires the settings, vault and generation stack for one invocation.
type app struct {
	settings     *config.Settings
	settingsPath string
	logger       *logrus.Logger
	vault        *vault.Vault
	generator    *llm.Generator
	analyzer     *analysis.Analyzer
	actions      *notes.Actions
}

func run(settingsPath, vaultPath string, verbose bool, command string, args []string) error {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if command == "init" {
		return runInit(settingsPath)
	}

	settings, err := config.Load(settingsPath)
	if err != nil {
		return err
	}
	if vaultPath != "" {
		settings.Vault.Path = vaultPath
	}

	if errs := settings.Validate(); len(errs) > 0 {
		for _, e := range errs {
			color.Red("invalid setting %v", e)
		}
		return fmt.Errorf("settings are invalid")
	}

	a, err := newApp(settings, resolveSettingsPath(settingsPath), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch command {
	case "graph":
		return a.runGraph(ctx)
	case "related":
		return a.runRelated(ctx, args)
	case "link":
		return a.runLink(args)
	case "title":
		return a.runTitle(ctx, args)
	case "summarize":
		return a.runSummarize(ctx, args)
	case "expand":
		return a.runExpand(ctx, args)
	case "hashtags":
		return a.runHashtags(ctx, args)
	case "prompt":
		return a.runPrompt(ctx, args)
	case "clip":
		return a.runClip(ctx, args)
	case "log":
		return a.runLog()
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func newApp(settings *config.Settings, settingsPath string, logger *logrus.Logger) (*app, error) {
	v, err := vault.NewWithConfig(vault.Config{
		Root:            settings.Vault.Path,
		NewFileLocation: settings.Vault.NewFileLocation,
		NewFileFolder:   settings.Vault.NewFileFolder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}

	// Appends persist the full settings blob; a persistence failure is
	// diagnostic-only and never aborts the call that produced the entry.
	var sink llm.SinkFunc
	if settingsPath != "" {
		sink = func(entries []models.InteractionEntry) error {
			settings.Interactions = entries
			return config.Save(settingsPath, settings)
		}
	}

	interactionLog := llm.NewInteractionLog(settings.Interactions, sink, logger)

	generator, err := llm.NewWithConfig(llm.GeneratorConfig{
		Provider:    settings.Provider.Name,
		APIKey:      settings.Provider.APIKey,
		BaseURL:     settings.Provider.BaseURL,
		Model:       settings.Provider.Model,
		MaxTokens:   settings.Provider.MaxTokens,
		Temperature: settings.Provider.Temperature,
		RateLimit:   settings.Provider.RateLimit,
	}, interactionLog, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}

	return &app{
		settings:     settings,
		settingsPath: settingsPath,
		logger:       logger,
		vault:        v,
		generator:    generator,
		analyzer:     analysis.NewAnalyzer(generator, settings.Templates, logger),
		actions:      notes.New(generator, settings.Templates, settings.CustomPrompts, logger),
	}, nil
}

func runInit(settingsPath string) error {
	if settingsPath == "" {
		settingsPath = "notesage.yaml"
	}
	if _, err := os.Stat(settingsPath); err == nil {
		return fmt.Errorf("settings file %s already exists", settingsPath)
	}

	settings, err := config.Load("")
	if err != nil {
		return err
	}
	if err := config.Save(settingsPath, settings); err != nil {
		return err
	}

	color.Green("Wrote default settings to %s", settingsPath)
	return nil
}

// resolveSettingsPath mirrors config.Load's search so the interaction log
// can be persisted back to the file that was loaded. An empty result keeps
// the log in memory only.
func resolveSettingsPath(settingsPath string) string {
	if settingsPath != "" {
		return settingsPath
	}
	locations := []string{
		"notesage.yaml",
		filepath.Join(os.Getenv("HOME"), ".config/notesage/config.yaml"),
	}
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("notes"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}
