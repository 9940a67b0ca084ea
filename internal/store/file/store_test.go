package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/csfinder/internal/domain"
)

func TestReadMissingFile(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "bookmarks.json"))

	got, err := st.Read(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bookmarks.json")
	st := NewStore(path)
	ctx := context.Background()

	set := []domain.Bookmark{
		{Type: "Articles", Title: "Board Meetings", Link: "https://example.com/a/1.pdf"},
		{Type: "Judgements", Title: "XYZ Ltd v. Registrar", Link: "https://example.com/j/1.pdf"},
	}
	require.NoError(t, st.Write(ctx, set))

	got, err := st.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, set, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	st := NewStore(path)
	require.NoError(t, st.Write(context.Background(), []domain.Bookmark{
		{Type: "Updates", Title: "MCA Circular", Link: "https://example.com/u/1.pdf"},
	}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"Updates","title":"MCA Circular","link":"https://example.com/u/1.pdf"}]`, string(raw))
}

func TestWriteEmptySet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	st := NewStore(path)
	require.NoError(t, st.Write(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestReadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewStore(path).Read(context.Background())
	assert.Error(t, err)
}

func TestCanceledContext(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "bookmarks.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, st.Write(ctx, nil))
	_, err := st.Read(ctx)
	assert.Error(t, err)
}
