package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sodeep/internal/quote"
)

func newTestHistory(t *testing.T, max int) *History {
	t.Helper()
	h := NewHistory(filepath.Join(t.TempDir(), historyFile), max)
	h.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return h
}

func result(id string) quote.Result {
	return quote.Result{ID: id, Vietnamese: "Câu " + id, English: "Quote " + id, Chinese: "句" + id, Author: quote.DefaultAuthor}
}

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestHistoryAddNewestFirstAndCapped(t *testing.T) {
	h := newTestHistory(t, 3)
	items, err := h.Load()
	require.NoError(t, err)
	assert.Empty(t, items)

	for i := 1; i <= 5; i++ {
		require.NoError(t, h.Add(result(fmt.Sprint(i))))
	}
	items, err = h.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "4", "3"}, ids(items))
	assert.Equal(t, "2025-06-01T12:00:00Z", items[0].CreatedAt)
	assert.Equal(t, "Câu 5", items[0].Vietnamese)
}

func TestHistoryItemJSONIsFlat(t *testing.T) {
	b, err := json.Marshal(Item{Result: result("a"), CreatedAt: "x"})
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "a", m["id"])
	assert.Equal(t, "Câu a", m["vietnamese"])
	assert.Equal(t, "x", m["createdAt"])
}

func TestHistoryExportImport(t *testing.T) {
	src := newTestHistory(t, 50)
	require.NoError(t, src.Add(result("old")))
	require.NoError(t, src.Add(result("new")))

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf))
	var exported map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &exported))
	assert.Equal(t, "1.0.0", exported["version"])
	assert.Equal(t, "2025-06-01T12:00:00Z", exported["exportDate"])
	assert.Len(t, exported["history"], 2)

	dst := newTestHistory(t, 3)
	require.NoError(t, dst.Add(result("mine1")))
	require.NoError(t, dst.Add(result("mine2")))
	n, err := dst.Import(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	items, err := dst.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old", "mine2"}, ids(items))
}

func TestHistoryExportEmpty(t *testing.T) {
	h := newTestHistory(t, 5)
	var buf bytes.Buffer
	require.NoError(t, h.Export(&buf))
	assert.Contains(t, buf.String(), `"history": []`)
}

func TestHistoryImportRejectsBadFiles(t *testing.T) {
	h := newTestHistory(t, 5)
	for _, in := range []string{"not json", `{"items":[]}`, `{"history":{}}`} {
		_, err := h.Import(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrInvalidExport, in)
	}
}

func TestHistoryClear(t *testing.T) {
	h := newTestHistory(t, 5)
	require.NoError(t, h.Add(result("a")))
	require.NoError(t, h.Clear())
	items, err := h.Load()
	require.NoError(t, err)
	assert.Empty(t, items)
	require.NoError(t, h.Clear())
}
