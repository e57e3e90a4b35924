package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const idLen = 8

// shortID is the first idLen hex digits of a random UUID.
func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLen]
}

// Paths names the files written for one quote.
type Paths struct {
	ID       string
	Markdown string
	HTML     string
}

// UniquePaths picks quote_<id>.md (and quote_<id>.html) names that do not
// exist yet in outDir.
func UniquePaths(outDir string) (Paths, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Paths{}, err
	}
	for i := 0; i < 100; i++ {
		s := shortID()
		p := Paths{
			ID:       s,
			Markdown: filepath.Join(outDir, fmt.Sprintf("quote_%s.md", s)),
			HTML:     filepath.Join(outDir, fmt.Sprintf("quote_%s.html", s)),
		}
		if exists(p.Markdown) || exists(p.HTML) {
			continue
		}
		return p, nil
	}
	return Paths{}, fmt.Errorf("không tạo được tên file duy nhất")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Write saves markdown and, when html is non-empty, the HTML page.
func Write(p Paths, markdown, html string) error {
	if err := os.WriteFile(p.Markdown, []byte(markdown), 0o644); err != nil {
		return err
	}
	if html == "" {
		return nil
	}
	return os.WriteFile(p.HTML, []byte(html), 0o644)
}
