package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"sodeep/internal/quote"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.Typographer),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

// Plain is the terminal form. Result fields are stored HTML-escaped, so
// they are unescaped for display.
func Plain(r quote.Result, share bool) string {
	var b strings.Builder
	if r.Vietnamese != "" {
		fmt.Fprintf(&b, "%s\n", html.UnescapeString(r.Vietnamese))
		fmt.Fprintf(&b, "EN: %s\n", html.UnescapeString(r.English))
		fmt.Fprintf(&b, "ZH: %s\n", html.UnescapeString(r.Chinese))
	} else {
		fmt.Fprintf(&b, "%s\n", html.UnescapeString(r.Text))
	}
	if share {
		b.WriteString("\n" + ShareFooter(r.Author) + "\n")
	}
	return b.String()
}

func ShareFooter(author string) string {
	return fmt.Sprintf("- Tạo bởi Sodeep (%s)", author)
}

// ShareText is the quote followed by the attribution footer.
func ShareText(r quote.Result) string {
	return html.UnescapeString(r.Primary()) + "\n\n" + ShareFooter(r.Author)
}

// Markdown keeps the HTML-escaped field values and escapes markdown syntax
// in model text, so goldmark renders it literally.
func Markdown(r quote.Result, share bool) string {
	var b strings.Builder
	b.WriteString("# Sodeep\n\n")
	fmt.Fprintf(&b, "> %s\n\n", blockquote(mdEscape(r.Primary())))
	if r.Vietnamese != "" {
		fmt.Fprintf(&b, "**English:** %s\n\n", mdEscape(r.English))
		fmt.Fprintf(&b, "**中文:** %s\n\n", mdEscape(r.Chinese))
	}
	fmt.Fprintf(&b, "*%s* · %s · %s\n", r.Author, mdEscape(r.Subject()), r.Timestamp)
	if r.Fallback {
		b.WriteString("\n_Bản dịch là câu mặc định._\n")
	}
	if share {
		b.WriteString("\n" + ShareFooter(r.Author) + "\n")
	}
	return b.String()
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "|", `\|`, "[", `\[`, "]", `\]`,
)

// mdEscape escapes inline markdown and any block marker at a line start.
func mdEscape(s string) string {
	lines := strings.Split(mdEscaper.Replace(s), "\n")
	for i, l := range lines {
		trimmed := strings.TrimLeft(l, " ")
		if trimmed != "" && strings.ContainsRune("#>-+=~", rune(trimmed[0])) {
			lines[i] = l[:len(l)-len(trimmed)] + `\` + trimmed
		}
	}
	return strings.Join(lines, "\n")
}

// blockquote continues the quote marker on every line.
func blockquote(s string) string {
	return strings.ReplaceAll(s, "\n", "\n> ")
}

// HTML converts markdown to a standalone page.
func HTML(markdown, title string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return fmt.Sprintf(pageTemplate, html.EscapeString(title), buf.String()), nil
}

const pageTemplate = `<!DOCTYPE html>
<html lang="vi">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>body{font-family:Georgia,serif;max-width:42rem;margin:3rem auto;padding:0 1rem;line-height:1.6}blockquote{font-size:1.4rem;border-left:4px solid #888;margin:0;padding-left:1rem}</style>
</head>
<body>
%s</body>
</html>
`
