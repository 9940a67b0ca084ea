package sqlite

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/csfinder/internal/domain"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.db")
	st, err := Open(path)
	require.NoError(t, err)
	return st, path
}

func TestOpen(t *testing.T) {
	st, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	var name string
	err = st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='bookmarks'").Scan(&name)
	require.NoError(t, err, "bookmarks table not created")
	assert.Equal(t, "bookmarks", name)
	assert.Equal(t, "sqlite", st.Name())
	assert.NoError(t, st.Ping(context.Background()))
}

func TestReadEmpty(t *testing.T) {
	st, _ := openTemp(t)
	defer func() { _ = st.Close() }()

	got, err := st.Read(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestWriteKeepsOrder(t *testing.T) {
	st, _ := openTemp(t)
	defer func() { _ = st.Close() }()
	ctx := context.Background()

	set := []domain.Bookmark{
		{Type: "Updates", Title: "MCA Circular", Link: "https://example.com/u/1.pdf"},
		{Type: "Articles", Title: "Board Meetings", Link: "https://example.com/a/1.pdf"},
		{Type: "Judgements", Title: "XYZ Ltd", Link: "https://example.com/j/1.pdf"},
	}
	require.NoError(t, st.Write(ctx, set))

	got, err := st.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, set, got)

	require.NoError(t, st.Write(ctx, set[1:]))
	got, err = st.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, set[1:], got)
}

func TestWriteDuplicateLinkRollsBack(t *testing.T) {
	st, _ := openTemp(t)
	defer func() { _ = st.Close() }()
	ctx := context.Background()

	initial := []domain.Bookmark{{Type: "Articles", Title: "A", Link: "l1"}}
	require.NoError(t, st.Write(ctx, initial))

	err := st.Write(ctx, []domain.Bookmark{
		{Type: "Articles", Title: "B", Link: "l2"},
		{Type: "Judgements", Title: "C", Link: "l2"},
	})
	require.Error(t, err)

	got, err := st.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, initial, got, "failed write must leave the previous set intact")
}

func TestReopenKeepsBookmarks(t *testing.T) {
	st, path := openTemp(t)
	ctx := context.Background()

	set := []domain.Bookmark{{Type: "Articles", Title: "A", Link: "l1"}}
	require.NoError(t, st.Write(ctx, set))
	require.NoError(t, st.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, set, got)
}

func TestOpenRecoversCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.db")
	garbage := bytes.Repeat([]byte("not a database "), 512)
	require.NoError(t, os.WriteFile(path, garbage, 0o644))

	st, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	got, err := st.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	aside := st.Recovered()
	require.NotEmpty(t, aside)
	assert.True(t, strings.HasPrefix(aside, path+".corrupt-"))
	kept, err := os.ReadFile(aside)
	require.NoError(t, err)
	assert.Equal(t, garbage, kept, "corrupt file must be kept for inspection")

	set := []domain.Bookmark{{Type: "Articles", Title: "A", Link: "l1"}}
	require.NoError(t, st.Write(context.Background(), set))
}

func TestOpenHealthyFileNotRecovered(t *testing.T) {
	st, _ := openTemp(t)
	defer func() { _ = st.Close() }()
	assert.Empty(t, st.Recovered())
}

func TestIsCorrupt(t *testing.T) {
	assert.False(t, isCorrupt(errors.New("disk full")))
	assert.False(t, isCorrupt(nil))
}
