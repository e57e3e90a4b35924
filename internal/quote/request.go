package quote

import (
	"fmt"
	"strings"
)

// Mode selects the result shape.
type Mode string

const (
	ModeStructured Mode = "structured"
	ModeText       Mode = "text"
)

// Request is either a style/topic pair or a single free-text prompt.
type Request struct {
	Style  string
	Topic  string
	Prompt string
}

func (r Request) trimmed() Request {
	return Request{
		Style:  strings.TrimSpace(r.Style),
		Topic:  strings.TrimSpace(r.Topic),
		Prompt: strings.TrimSpace(r.Prompt),
	}
}

// validate requires Style and Topic, unless the request carries only a
// prompt. In text mode a style/topic pair is accepted too.
func (r Request) validate() error {
	if r.Prompt != "" && r.Style == "" && r.Topic == "" {
		return nil
	}
	if r.Style == "" || r.Topic == "" {
		return &Error{Kind: KindInvalidRequest, Message: "cần cả văn phong (style) và chủ đề (topic), hoặc một prompt"}
	}
	return nil
}

type Result struct {
	ID         string `json:"id"`
	Vietnamese string `json:"vietnamese,omitempty"`
	English    string `json:"english,omitempty"`
	Chinese    string `json:"chinese,omitempty"`
	Text       string `json:"text,omitempty"`
	Author     string `json:"author"`
	Style      string `json:"style,omitempty"`
	Topic      string `json:"topic,omitempty"`
	Prompt     string `json:"prompt,omitempty"`
	Timestamp  string `json:"timestamp"`
	Fallback   bool   `json:"fallback,omitempty"`
}

// Primary is the text shown first: Vietnamese in structured mode, Text
// otherwise.
func (r Result) Primary() string {
	if r.Vietnamese != "" {
		return r.Vietnamese
	}
	return r.Text
}

// Subject describes what the quote was generated for.
func (r Result) Subject() string {
	if r.Prompt != "" {
		return r.Prompt
	}
	return fmt.Sprintf("%s | %s", r.Style, r.Topic)
}

func checkCredential(key, prefix string) error {
	if len(key) <= 20 {
		return &Error{Kind: KindInvalidCredential, Message: messages[KindInvalidCredential]}
	}
	if prefix != "" && !strings.HasPrefix(key, prefix) {
		return &Error{Kind: KindInvalidCredential, Message: fmt.Sprintf("API key phải bắt đầu bằng %q", prefix)}
	}
	return nil
}

// CheckCredential applies the same shape check Generate does.
func CheckCredential(key, prefix string) error {
	return checkCredential(strings.TrimSpace(key), prefix)
}
