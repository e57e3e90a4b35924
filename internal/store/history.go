package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"sodeep/internal/quote"
)

const (
	DefaultMaxItems = 50
	exportVersion   = "1.0.0"
)

var ErrInvalidExport = errors.New("file không đúng định dạng lịch sử")

type Item struct {
	quote.Result
	CreatedAt string `json:"createdAt"`
}

type exportFile struct {
	History    []Item `json:"history"`
	ExportDate string `json:"exportDate"`
	Version    string `json:"version"`
}

// History is a newest-first list of results capped at max items.
type History struct {
	path string
	max  int
	now  func() time.Time

	mu sync.Mutex
}

func NewHistory(path string, max int) *History {
	if max <= 0 {
		max = DefaultMaxItems
	}
	return &History{path: path, max: max, now: time.Now}
}

func (h *History) load() ([]Item, error) {
	var items []Item
	if err := readJSON(h.path, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (h *History) save(items []Item) error {
	if len(items) > h.max {
		items = items[:h.max]
	}
	return writeJSON(h.path, items)
}

func (h *History) Load() ([]Item, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load()
}

func (h *History) Add(r quote.Result) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	items, err := h.load()
	if err != nil {
		return err
	}
	item := Item{Result: r, CreatedAt: h.now().UTC().Format(time.RFC3339Nano)}
	return h.save(append([]Item{item}, items...))
}

func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return removeFile(h.path)
}

func (h *History) Export(w io.Writer) error {
	h.mu.Lock()
	items, err := h.load()
	h.mu.Unlock()
	if err != nil {
		return err
	}
	if items == nil {
		items = []Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportFile{
		History:    items,
		ExportDate: h.now().UTC().Format(time.RFC3339Nano),
		Version:    exportVersion,
	})
}

// Import puts the exported items ahead of the existing ones and returns how
// many were read.
func (h *History) Import(r io.Reader) (int, error) {
	var in struct {
		History *[]Item `json:"history"`
	}
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidExport, err)
	}
	if in.History == nil {
		return 0, ErrInvalidExport
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	items, err := h.load()
	if err != nil {
		return 0, err
	}
	merged := append(append([]Item{}, *in.History...), items...)
	return len(*in.History), h.save(merged)
}
