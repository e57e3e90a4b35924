package quote

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	FallbackEnglish = "A meaningful quote from the depths of the soul"
	FallbackChinese = "来自心灵深处的有意义的名言"

	fallbackMinRunes = 10
	fallbackMaxRunes = 200
)

var (
	openFence  = regexp.MustCompile("^```[A-Za-z0-9_-]*")
	jsonPunct  = regexp.MustCompile(`[{}"\[\]]`)
	htmlEscape = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

type extracted struct {
	vietnamese, english, chinese string
	text                         string
	fallback                     bool
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	s = openFence.ReplaceAllString(s, "")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractStructured parses the model output as the three-language object.
// Output that is not a JSON object goes through the length-gated fallback;
// an object missing a language is rejected.
func extractStructured(raw string) (extracted, error) {
	clean := stripFence(raw)
	var v any
	if err := json.Unmarshal([]byte(clean), &v); err == nil {
		if obj, ok := v.(map[string]any); ok {
			return fromObject(obj)
		}
	}
	return fallback(raw)
}

func fromObject(obj map[string]any) (extracted, error) {
	var out extracted
	fields := []struct {
		key string
		dst *string
	}{
		{"vietnamese", &out.vietnamese},
		{"english", &out.english},
		{"chinese", &out.chinese},
	}
	for _, f := range fields {
		s, _ := obj[f.key].(string)
		s = strings.TrimSpace(s)
		if s == "" {
			return extracted{}, &Error{Kind: KindMalformedResponse, Message: "phản hồi thiếu trường " + f.key}
		}
		*f.dst = sanitize(s)
	}
	return out, nil
}

// fallback is a heuristic: strip JSON punctuation and keep the rest as the
// Vietnamese quote when its length is plausible.
func fallback(raw string) (extracted, error) {
	clean := strings.TrimSpace(jsonPunct.ReplaceAllString(raw, ""))
	n := utf8.RuneCountInString(clean)
	if n <= fallbackMinRunes || n >= fallbackMaxRunes {
		return extracted{}, newError(KindMalformedResponse, nil)
	}
	return extracted{
		vietnamese: sanitize(clean),
		english:    FallbackEnglish,
		chinese:    FallbackChinese,
		fallback:   true,
	}, nil
}

func extractText(raw string) (extracted, error) {
	s := strings.TrimSpace(stripFence(raw))
	s = unquote(s)
	if s == "" {
		return extracted{}, newError(KindEmptyResponse, nil)
	}
	return extracted{text: sanitize(s)}, nil
}

var quotePairs = map[rune]rune{'"': '"', '\'': '\'', '“': '”', '‘': '’'}

func unquote(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	closing, ok := quotePairs[first]
	if !ok {
		return s
	}
	if len(s) == size {
		// a lone quote mark carries no text
		return ""
	}
	last, lsize := utf8.DecodeLastRuneInString(s)
	if last != closing {
		return s
	}
	return strings.TrimSpace(s[size : len(s)-lsize])
}

func sanitize(s string) string {
	return htmlEscape.Replace(s)
}
