package docmd

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"google.golang.org/api/docs/v1"
)

// markdown is a shared goldmark instance. GFM brings strikethrough and
// pipe tables. Raw HTML blocks and inline HTML are parsed but compiled to
// nothing, so in-document markup never reaches a target document.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

const (
	bulletPreset   = "BULLET_DISC_CIRCLE_SQUARE"
	numberedPreset = "NUMBERED_DECIMAL_ALPHA_ROMAN"
)

// Compile translates Markdown into the ordered BatchUpdate request
// sequence that inserts the content at index. It returns the requests and
// the index immediately after the inserted content, so callers can chain
// further insertions.
//
// The compiler keeps a single cursor in UTF-16 code units. Every style
// or structure request covers exactly the text inserted just before it;
// nothing is deferred or batched across spans. The cursor moves forward
// with each insertion and backward only when a bullet request strips the
// nesting tabs it consumed. The sequence is therefore valid only when
// applied in emitted order and as a single transactional batch.
func Compile(md string, index int64) ([]*docs.Request, int64) {
	c := &compiler{source: []byte(md), cursor: index}
	root := markdown.Parser().Parse(text.NewReader(c.source))
	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		c.block(node)
	}
	return c.requests, c.cursor
}

type compiler struct {
	source   []byte
	requests []*docs.Request
	cursor   int64

	// prev is the style of the last inserted inline span. Inserted text
	// inherits the styling of its neighbor, so each span must assert
	// every attribute that either it or the previous span carries.
	prev spanStyle
	// afterHeading marks that the next paragraph sits on a heading's
	// trailing newline and would inherit its named style.
	afterHeading bool
}

func (c *compiler) block(node ast.Node) {
	switch n := node.(type) {
	case *ast.Heading:
		c.heading(n)
	case *ast.Paragraph, *ast.TextBlock:
		c.paragraph(node)
	case *ast.List:
		c.list(n, 0)
	case *ast.ListItem:
		// A stray item with no surrounding list context falls back to
		// plain paragraph compilation.
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			c.block(child)
		}
	case *ast.FencedCodeBlock:
		c.codeBlock(nodeLines(n, c.source))
	case *ast.CodeBlock:
		c.codeBlock(nodeLines(n, c.source))
	case *extast.Table:
		c.table(n)
	case *ast.Blockquote:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			c.block(child)
		}
	default:
		// Unrecognized blocks (thematic breaks, HTML blocks) compile to
		// nothing: no request emitted, no cursor movement.
	}
}

func (c *compiler) heading(n *ast.Heading) {
	start := c.cursor
	c.inlineChildren(n, spanStyle{})
	if c.cursor == start {
		return
	}
	c.insertText("\n")
	c.requests = append(c.requests, &docs.Request{
		UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			ParagraphStyle: &docs.ParagraphStyle{
				NamedStyleType: fmt.Sprintf("HEADING_%d", min(n.Level, 6)),
			},
			Range:  &docs.Range{StartIndex: start, EndIndex: c.cursor},
			Fields: "namedStyleType",
		},
	})
	c.afterHeading = true
}

func (c *compiler) paragraph(node ast.Node) {
	start := c.cursor
	c.inlineChildren(node, spanStyle{})
	if c.cursor == start {
		return
	}
	c.insertText("\n")
	c.normalText(start)
}

// normalText resets the named style on the first paragraph compiled
// after a heading, which would otherwise inherit HEADING_n from the
// text it was inserted next to.
func (c *compiler) normalText(start int64) {
	if !c.afterHeading {
		return
	}
	c.afterHeading = false
	c.requests = append(c.requests, &docs.Request{
		UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
			ParagraphStyle: &docs.ParagraphStyle{
				NamedStyleType: "NORMAL_TEXT",
			},
			Range:  &docs.Range{StartIndex: start, EndIndex: c.cursor},
			Fields: "namedStyleType",
		},
	})
}

// list compiles each item as one paragraph followed by its own bullet
// request over exactly that paragraph. Nesting rides on leading tabs,
// which is how Docs derives the level when creating bullets.
func (c *compiler) list(n *ast.List, depth int) {
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		li, ok := item.(*ast.ListItem)
		if !ok {
			c.block(item)
			continue
		}
		c.listItem(li, n.IsOrdered(), depth)
	}
}

func (c *compiler) listItem(li *ast.ListItem, ordered bool, depth int) {
	for child := li.FirstChild(); child != nil; child = child.NextSibling() {
		switch block := child.(type) {
		case *ast.List:
			c.list(block, depth+1)
		case *ast.Paragraph, *ast.TextBlock:
			start := c.cursor
			if depth > 0 {
				c.insertText(strings.Repeat("\t", depth))
			}
			c.inlineChildren(child, spanStyle{})
			c.insertText("\n")
			c.normalText(start)
			preset := bulletPreset
			if ordered {
				preset = numberedPreset
			}
			c.requests = append(c.requests, &docs.Request{
				CreateParagraphBullets: &docs.CreateParagraphBulletsRequest{
					Range:        &docs.Range{StartIndex: start, EndIndex: c.cursor},
					BulletPreset: preset,
				},
			})
			// Creating the bullets consumes the leading tabs that encoded
			// the nesting level, shifting everything after this item left
			// by one position per tab.
			c.cursor -= int64(depth)
		default:
			c.block(child)
		}
	}
}

// codeBlock mirrors the forward renderer's authoring convention: a 1x1
// table holding the literal code, restyled monospace so a later forward
// render classifies the cell as a code block again. No inline styling is
// applied inside the cell.
func (c *compiler) codeBlock(code string) {
	code = strings.TrimSuffix(code, "\n")
	start := c.cursor
	c.requests = append(c.requests, &docs.Request{
		InsertTable: &docs.InsertTableRequest{
			Rows:     1,
			Columns:  1,
			Location: &docs.Location{Index: start},
		},
	})
	if code != "" {
		cellIndex := start + 4
		c.requests = append(c.requests, &docs.Request{
			InsertText: &docs.InsertTextRequest{
				Text:     code,
				Location: &docs.Location{Index: cellIndex},
			},
		})
		c.requests = append(c.requests, &docs.Request{
			UpdateTextStyle: &docs.UpdateTextStyleRequest{
				TextStyle: &docs.TextStyle{
					WeightedFontFamily: &docs.WeightedFontFamily{FontFamily: codeFont},
				},
				Range:  &docs.Range{StartIndex: cellIndex, EndIndex: cellIndex + utf16Len(code)},
				Fields: "weightedFontFamily",
			},
		})
	}
	c.cursor = start + 1 + tableShell(1, 1) + utf16Len(code)
	// The table carries its own normally styled paragraphs; text after
	// it inherits nothing from before it.
	c.prev = spanStyle{}
	c.afterHeading = false
}

func (c *compiler) table(n *extast.Table) {
	// Collect cell texts up front: insert offsets depend on the final
	// row/column dimensions.
	var rows [][]string
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		switch row.(type) {
		case *extast.TableHeader, *extast.TableRow:
			rows = append(rows, c.rowText(row))
		}
	}
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	if len(rows) == 0 || cols == 0 {
		return
	}

	start := c.cursor
	c.requests = append(c.requests, &docs.Request{
		InsertTable: &docs.InsertTableRequest{
			Rows:     int64(len(rows)),
			Columns:  int64(cols),
			Location: &docs.Location{Index: start},
		},
	})

	// The table request creates cells at fixed offsets; each cell's text
	// insertion shifts every later cell by its own length.
	rowSize := int64(1 + cols*2)
	var inserted int64
	for ri, row := range rows {
		for ci := 0; ci < cols; ci++ {
			if ci >= len(row) || row[ci] == "" {
				continue
			}
			idx := start + 4 + int64(ri)*rowSize + int64(ci)*2 + inserted
			c.requests = append(c.requests, &docs.Request{
				InsertText: &docs.InsertTextRequest{
					Text:     row[ci],
					Location: &docs.Location{Index: idx},
				},
			})
			inserted += utf16Len(row[ci])
		}
	}
	c.cursor = start + 1 + tableShell(int64(len(rows)), int64(cols)) + inserted
	c.prev = spanStyle{}
	c.afterHeading = false
}

// rowText flattens each cell's inline content to plain text; table cells
// never carry inline styling through the bridge.
func (c *compiler) rowText(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		cells = append(cells, strings.TrimSpace(flattenText(cell, c.source)))
	}
	return cells
}

// tableShell is the number of indexes an empty rows x cols table
// occupies: one for the table element, one per row, and two per cell (the
// cell marker plus its empty paragraph's newline). InsertTable also adds
// a newline before the table, accounted for by callers.
func tableShell(rows, cols int64) int64 {
	return 1 + rows*(1+cols*2)
}

// spanStyle accumulates the inline markers on the path from a paragraph
// down to one text node.
type spanStyle struct {
	bold, italic, strike, code bool
	link                       string
}

func (c *compiler) inlineChildren(node ast.Node, style spanStyle) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		c.inline(child, style)
	}
}

func (c *compiler) inline(node ast.Node, style spanStyle) {
	switch n := node.(type) {
	case *ast.Text:
		c.span(string(n.Segment.Value(c.source)), style)
		if n.HardLineBreak() {
			c.insertText("\n")
		} else if n.SoftLineBreak() {
			c.insertText(" ")
		}
	case *ast.String:
		c.span(string(n.Value), style)
	case *ast.CodeSpan:
		code := style
		code.code = true
		c.inlineChildren(n, code)
	case *ast.Emphasis:
		em := style
		if n.Level >= 2 {
			em.bold = true
		} else {
			em.italic = true
		}
		c.inlineChildren(n, em)
	case *extast.Strikethrough:
		st := style
		st.strike = true
		c.inlineChildren(n, st)
	case *ast.Link:
		ln := style
		ln.link = string(n.Destination)
		c.inlineChildren(n, ln)
	case *ast.AutoLink:
		ln := style
		ln.link = string(n.URL(c.source))
		c.span(string(n.Label(c.source)), ln)
	case *ast.RawHTML, *ast.HTMLBlock:
		// Raw markup is never written into the document.
	default:
		c.inlineChildren(n, style)
	}
}

// span inserts one run of text and, when styled, a text-style request
// covering exactly that run. Styling immediately after inserting keeps
// the range trivially correct; deferring would mean re-deriving offsets
// that earlier insertions have already shifted.
func (c *compiler) span(s string, style spanStyle) {
	if s == "" {
		return
	}
	start := c.cursor
	c.insertText(s)
	if req := textStyleRequest(style, c.prev, start, c.cursor); req != nil {
		c.requests = append(c.requests, req)
	}
	c.prev = style
}

func (c *compiler) insertText(s string) {
	if s == "" {
		return
	}
	c.requests = append(c.requests, &docs.Request{
		InsertText: &docs.InsertTextRequest{
			Text:     s,
			Location: &docs.Location{Index: c.cursor},
		},
	})
	c.cursor += utf16Len(s)
}

// textStyleRequest covers one just-inserted span. A field appears in the
// mask when the span sets it or when the previous span set it and this
// one must clear the inherited value; a field in the mask with no value
// resets the attribute.
func textStyleRequest(style, inherited spanStyle, start, end int64) *docs.Request {
	ts := &docs.TextStyle{}
	var fields []string
	if style.code || inherited.code {
		if style.code {
			ts.WeightedFontFamily = &docs.WeightedFontFamily{FontFamily: codeFont}
		}
		fields = append(fields, "weightedFontFamily")
	}
	if style.bold || inherited.bold {
		ts.Bold = style.bold
		fields = append(fields, "bold")
	}
	if style.italic || inherited.italic {
		ts.Italic = style.italic
		fields = append(fields, "italic")
	}
	if style.strike || inherited.strike {
		ts.Strikethrough = style.strike
		fields = append(fields, "strikethrough")
	}
	if style.link != "" || inherited.link != "" {
		if style.link != "" {
			ts.Link = &docs.Link{Url: style.link}
		}
		fields = append(fields, "link")
	}
	if len(fields) == 0 {
		return nil
	}
	return &docs.Request{
		UpdateTextStyle: &docs.UpdateTextStyleRequest{
			TextStyle: ts,
			Range:     &docs.Range{StartIndex: start, EndIndex: end},
			Fields:    strings.Join(fields, ","),
		},
	}
}

func nodeLines(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}

func flattenText(node ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
