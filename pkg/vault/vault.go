package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/notesage/notesage/internal/models"
)

// New-file location policies. Mirrors the config package constants so the
// vault stays free of config imports.
const (
	LocationRoot    = "root"
	LocationCurrent = "current"
	LocationFolder  = "folder"
)

type Config struct {
	Root            string
	NewFileLocation string // root | current | folder
	NewFileFolder   string // used when NewFileLocation is "folder"
}

// Vault is a markdown note store rooted at a directory. All note paths are
// vault-relative with forward slashes. Enumeration order is the lexical
// walk order of the tree, which doubles as the tie-break order everywhere
// a caller needs one.
type Vault struct {
	config Config
}

func NewWithConfig(config Config) (*Vault, error) {
	if config.Root == "" {
		return nil, fmt.Errorf("vault root is required")
	}

	info, err := os.Stat(config.Root)
	if err != nil {
		return nil, fmt.Errorf("vault root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault root %s is not a directory", config.Root)
	}

	if config.NewFileLocation == "" {
		config.NewFileLocation = LocationRoot
	}

	return &Vault{config: config}, nil
}

// List enumerates every markdown note in the vault without loading bodies.
// Dot-directories (.obsidian, .git and friends) are skipped.
func (v *Vault) List() ([]models.Note, error) {
	var notes []models.Note

	err := filepath.WalkDir(v.config.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != v.config.Root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}

		rel, err := filepath.Rel(v.config.Root, path)
		if err != nil {
			return err
		}
		notes = append(notes, v.describe(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list vault: %w", err)
	}

	return notes, nil
}

// Read loads one note body by vault-relative path.
func (v *Vault) Read(path string) (models.Note, error) {
	data, err := os.ReadFile(v.abs(path))
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to read note %s: %w", path, err)
	}

	note := v.describe(path)
	note.Body = string(data)
	return note, nil
}

// Write rewrites one note body in place.
func (v *Vault) Write(path string, body string) error {
	if err := os.WriteFile(v.abs(path), []byte(body), 0o644); err != nil {
		return fmt.Errorf("failed to write note %s: %w", path, err)
	}
	return nil
}

// Create adds a new note named name, placed per the new-file location
// policy. currentFolder is the folder of the note the user is working in,
// honored only under the "current" policy. The chosen filename is made
// unique with a numeric suffix so an existing note is never overwritten.
func (v *Vault) Create(name, body, currentFolder string) (string, error) {
	folder := ""
	switch v.config.NewFileLocation {
	case LocationCurrent:
		folder = currentFolder
	case LocationFolder:
		folder = v.config.NewFileFolder
	}

	if folder != "" {
		if err := os.MkdirAll(filepath.Join(v.config.Root, filepath.FromSlash(folder)), 0o755); err != nil {
			return "", fmt.Errorf("failed to create folder %s: %w", folder, err)
		}
	}

	base := sanitizeName(name)
	if base == "" {
		base = "Untitled"
	}

	rel := joinSlash(folder, base+".md")
	for i := 1; ; i++ {
		if _, err := os.Stat(v.abs(rel)); os.IsNotExist(err) {
			break
		}
		rel = joinSlash(folder, fmt.Sprintf("%s %d.md", base, i))
	}

	if err := os.WriteFile(v.abs(rel), []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("failed to create note %s: %w", rel, err)
	}

	return rel, nil
}

func (v *Vault) abs(rel string) string {
	return filepath.Join(v.config.Root, filepath.FromSlash(rel))
}

func (v *Vault) describe(rel string) models.Note {
	folder := ""
	if dir := filepath.ToSlash(filepath.Dir(rel)); dir != "." {
		folder = dir
	}
	base := filepath.Base(rel)
	return models.Note{
		Path:   rel,
		Name:   strings.TrimSuffix(base, filepath.Ext(base)),
		Folder: folder,
	}
}

func joinSlash(folder, file string) string {
	if folder == "" {
		return file
	}
	return folder + "/" + file
}

// sanitizeName strips characters that are path separators or break
// wikilink syntax.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-",
		"[", "", "]", "", "#", "", "|", "", "^", "",
	)
	return strings.TrimSpace(replacer.Replace(name))
}
