package docmd

import (
	"strconv"
	"strings"

	"google.golang.org/api/docs/v1"
)

// FromDocument renders a document's body as Markdown.
//
// Rendering is best effort: block kinds other than paragraphs and tables
// (section breaks, tables of contents, anything the API adds later) are
// skipped, and a missing body yields an empty string. Each block renders
// as a self-terminated chunk ending in a newline, so chunks concatenate
// without separator logic here.
func FromDocument(doc *docs.Document) string {
	if doc == nil || doc.Body == nil {
		return ""
	}
	var sb strings.Builder
	for _, el := range doc.Body.Content {
		if el == nil {
			continue
		}
		switch {
		case el.Paragraph != nil:
			sb.WriteString(renderParagraph(el.Paragraph, doc.Lists))
		case el.Table != nil:
			sb.WriteString(renderTable(el.Table))
		}
	}
	return strings.TrimSpace(sb.String())
}

func renderParagraph(p *docs.Paragraph, lists map[string]docs.List) string {
	text := strings.TrimSpace(renderRuns(p.Elements))

	if level := headingLevel(p); level > 0 && text != "" {
		return strings.Repeat("#", level) + " " + text + "\n\n"
	}

	if p.Bullet != nil {
		marker := "-"
		if orderedAt(lists, p.Bullet.ListId, p.Bullet.NestingLevel) {
			marker = "1."
		}
		indent := strings.Repeat("  ", int(p.Bullet.NestingLevel))
		// One line per item, no blank line after: consecutive items must
		// stay contiguous to form a single Markdown list.
		return indent + marker + " " + text + "\n"
	}

	if text == "" {
		// Preserve vertical spacing without emitting a stray marker.
		return "\n"
	}
	return text + "\n\n"
}

// headingLevel maps a paragraph's named style to a Markdown heading
// level, or 0 when the paragraph is not a heading. Levels are clamped to
// 6, the deepest heading Markdown has.
func headingLevel(p *docs.Paragraph) int {
	if p.ParagraphStyle == nil {
		return 0
	}
	style := p.ParagraphStyle.NamedStyleType
	switch style {
	case "TITLE":
		return 1
	case "SUBTITLE":
		return 2
	}
	if n, ok := strings.CutPrefix(style, "HEADING_"); ok {
		if level, err := strconv.Atoi(n); err == nil && level > 0 {
			return min(level, 6)
		}
	}
	return 0
}
