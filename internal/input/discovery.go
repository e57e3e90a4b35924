package input

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Separator splits "style | topic" lines. A line without it is a free-text
// prompt.
const Separator = "|"

type Entry struct {
	Path   string
	Line   int
	Style  string
	Topic  string
	Prompt string
}

func (e Entry) String() string {
	return fmt.Sprintf("%s:%d", e.Path, e.Line)
}

// Discover reads every regular file in inputs (directories are walked) and
// returns one entry per non-blank, non-comment line.
func Discover(inputs []string) ([]Entry, error) {
	var out []Entry
	seen := map[string]struct{}{}
	add := func(path string) error {
		if _, exists := seen[path]; exists {
			return nil
		}
		seen[path] = struct{}{}
		entries, err := readEntries(path)
		if err != nil {
			return err
		}
		out = append(out, entries...)
		return nil
	}
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if err := add(in); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(in, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != in && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return nil
			}
			return add(path)
		})
		if err != nil {
			return nil, err
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("không tìm thấy yêu cầu nào (mỗi dòng: \"văn phong %s chủ đề\" hoặc một prompt)", Separator)
	}
	return out, nil
}

func readEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Entry
	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		if n == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if e, ok := ParseLine(line); ok {
			e.Path, e.Line = path, n
			out = append(out, e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("đọc %s thất bại: %w", path, err)
	}
	return out, nil
}

// ParseLine returns false for blank lines and # comments.
func ParseLine(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Entry{}, false
	}
	if style, topic, ok := strings.Cut(line, Separator); ok {
		return Entry{Style: strings.TrimSpace(style), Topic: strings.TrimSpace(topic)}, true
	}
	return Entry{Prompt: line}, true
}
