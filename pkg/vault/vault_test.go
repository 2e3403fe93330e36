package vault_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notesage/notesage/pkg/vault"
)

func newVault(t *testing.T, files map[string]string) (*vault.Vault, string) {
	t.Helper()
	root := t.TempDir()

	for path, body := range files {
		abs := filepath.Join(root, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
		require.NoError(t, os.WriteFile(abs, []byte(body), 0o644))
	}

	v, err := vault.NewWithConfig(vault.Config{Root: root})
	require.NoError(t, err)
	return v, root
}

func TestListEnumeratesMarkdownOnly(t *testing.T) {
	v, _ := newVault(t, map[string]string{
		"Alpha.md":           "alpha body",
		"projects/Beta.md":   "beta body",
		"projects/notes.txt": "not a note",
		".obsidian/conf.md":  "hidden",
		"image.png":          "binary",
	})

	notes, err := v.List()
	require.NoError(t, err)
	require.Len(t, notes, 2)

	// Lexical walk order.
	assert.Equal(t, "Alpha.md", notes[0].Path)
	assert.Equal(t, "Alpha", notes[0].Name)
	assert.Equal(t, "", notes[0].Folder)
	assert.Equal(t, "projects/Beta.md", notes[1].Path)
	assert.Equal(t, "Beta", notes[1].Name)
	assert.Equal(t, "projects", notes[1].Folder)

	// List does not load bodies.
	assert.Empty(t, notes[0].Body)
}

func TestReadAndWrite(t *testing.T) {
	v, _ := newVault(t, map[string]string{"Alpha.md": "original"})

	note, err := v.Read("Alpha.md")
	require.NoError(t, err)
	assert.Equal(t, "original", note.Body)
	assert.Equal(t, "Alpha", note.Name)

	require.NoError(t, v.Write("Alpha.md", "rewritten"))

	note, err = v.Read("Alpha.md")
	require.NoError(t, err)
	assert.Equal(t, "rewritten", note.Body)
}

func TestReadMissingNote(t *testing.T) {
	v, _ := newVault(t, nil)
	_, err := v.Read("Missing.md")
	assert.Error(t, err)
}

func TestCreateInRoot(t *testing.T) {
	v, root := newVault(t, nil)

	rel, err := v.Create("New Note", "body", "somewhere")
	require.NoError(t, err)
	assert.Equal(t, "New Note.md", rel)

	data, err := os.ReadFile(filepath.Join(root, "New Note.md"))
	require.NoError(t, err)
	assert.Equal(t, "body", string(data))
}

func TestCreateUniquifiesName(t *testing.T) {
	v, _ := newVault(t, map[string]string{"Idea.md": "taken"})

	rel, err := v.Create("Idea", "body", "")
	require.NoError(t, err)
	assert.Equal(t, "Idea 1.md", rel)

	note, err := v.Read("Idea.md")
	require.NoError(t, err)
	assert.Equal(t, "taken", note.Body)
}

func TestCreateHonorsLocationPolicy(t *testing.T) {
	root := t.TempDir()

	v, err := vault.NewWithConfig(vault.Config{
		Root:            root,
		NewFileLocation: vault.LocationFolder,
		NewFileFolder:   "inbox",
	})
	require.NoError(t, err)

	rel, err := v.Create("Clip", "body", "")
	require.NoError(t, err)
	assert.Equal(t, "inbox/Clip.md", rel)

	current, err := vault.NewWithConfig(vault.Config{
		Root:            root,
		NewFileLocation: vault.LocationCurrent,
	})
	require.NoError(t, err)

	rel, err = current.Create("Clip", "body", "projects")
	require.NoError(t, err)
	assert.Equal(t, "projects/Clip.md", rel)
}

func TestCreateSanitizesName(t *testing.T) {
	v, _ := newVault(t, nil)

	rel, err := v.Create("A/B: [draft] #1", "body", "")
	require.NoError(t, err)
	assert.Equal(t, "A-B- draft 1.md", rel)
}

func TestNewWithConfigRejectsMissingRoot(t *testing.T) {
	_, err := vault.NewWithConfig(vault.Config{Root: "/does/not/exist"})
	assert.Error(t, err)

	_, err = vault.NewWithConfig(vault.Config{})
	assert.Error(t, err)
}
