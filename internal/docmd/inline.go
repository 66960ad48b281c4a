package docmd

import (
	"strings"

	"google.golang.org/api/docs/v1"
)

// renderRuns concatenates the Markdown rendering of each text run in
// order. Runs are formatted independently: adjacent runs with identical
// styles keep their own markers rather than being merged into one span.
func renderRuns(elems []*docs.ParagraphElement) string {
	var sb strings.Builder
	for _, el := range elems {
		if el == nil || el.TextRun == nil {
			continue
		}
		sb.WriteString(renderRun(el.TextRun))
	}
	return sb.String()
}

// renderRun wraps one run's text in Markdown inline markers.
//
// Code styling wins outright: Markdown code spans cannot nest emphasis or
// links, so a monospace run gets backticks and nothing else. Other runs
// are wrapped in order emphasis, strikethrough, underline, link, with the
// link wrapper outermost. Links never get an underline tag. A trailing
// newline is kept outside whatever markers are applied.
func renderRun(run *docs.TextRun) string {
	style := run.TextStyle
	if style == nil {
		return run.Content
	}

	content, newline := splitTrailingNewline(run.Content)
	if content == "" {
		return run.Content
	}

	if style.WeightedFontFamily != nil && isMonospace(style.WeightedFontFamily.FontFamily) {
		return "`" + content + "`" + newline
	}

	switch {
	case style.Bold && style.Italic:
		content = "***" + content + "***"
	case style.Bold:
		content = "**" + content + "**"
	case style.Italic:
		content = "*" + content + "*"
	}
	if style.Strikethrough {
		content = "~~" + content + "~~"
	}
	var link string
	if style.Link != nil {
		link = style.Link.Url
	}
	if style.Underline && link == "" {
		content = "<u>" + content + "</u>"
	}
	if link != "" {
		content = "[" + content + "](" + link + ")"
	}
	return content + newline
}

func splitTrailingNewline(s string) (content, newline string) {
	if strings.HasSuffix(s, "\n") {
		return s[:len(s)-1], "\n"
	}
	return s, ""
}
