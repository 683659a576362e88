package catalogimport

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookreview/internal/domain/catalog"
)

const sample = `isbn,title,author,year
0380795272,Krondor: The Betrayal,Raymond E. Feist,1998
1416949658,The Dark Is Rising,Susan Cooper,1973
0553803700,"I, Robot",Isaac Asimov,1950
`

type recordingLoader struct {
	entries []catalog.Entry
}

func (l *recordingLoader) Load(_ context.Context, entries []catalog.Entry) (*catalog.LoadResult, error) {
	l.entries = entries
	return &catalog.LoadResult{Authors: 3, Books: len(entries)}, nil
}

func TestRead(t *testing.T) {
	t.Run("跳过表头，保留带逗号的书名", func(t *testing.T) {
		entries, err := Read(strings.NewReader(sample))
		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, catalog.Entry{ISBN: "0553803700", Title: "I, Robot", Author: "Isaac Asimov", Published: 1950}, entries[2])
	})

	t.Run("年份不是数字", func(t *testing.T) {
		_, err := Read(strings.NewReader("0380795272,Krondor,Raymond E. Feist,unknown\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 1")
	})

	t.Run("列数不对", func(t *testing.T) {
		_, err := Read(strings.NewReader("0380795272,Krondor,1998\n"))
		assert.Error(t, err)
	})

	t.Run("作者为空", func(t *testing.T) {
		_, err := Read(strings.NewReader("isbn,title,author,year\n0380795272,Krondor,,1998\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})
}

func TestImportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	loader := &recordingLoader{}
	result, err := ImportFile(context.Background(), loader, path)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Books)
	assert.Len(t, loader.entries, 3)

	_, err = ImportFile(context.Background(), loader, filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
