package docmd

import (
	"google.golang.org/api/docs/v1"
)

// Builders for compact document fixtures.

func runOf(content string, style *docs.TextStyle) *docs.ParagraphElement {
	return &docs.ParagraphElement{TextRun: &docs.TextRun{Content: content, TextStyle: style}}
}

func paraOf(elems ...*docs.ParagraphElement) *docs.StructuralElement {
	return &docs.StructuralElement{Paragraph: &docs.Paragraph{Elements: elems}}
}

func styledPara(namedStyle string, elems ...*docs.ParagraphElement) *docs.StructuralElement {
	el := paraOf(elems...)
	el.Paragraph.ParagraphStyle = &docs.ParagraphStyle{NamedStyleType: namedStyle}
	return el
}

func listPara(listID string, level int64, elems ...*docs.ParagraphElement) *docs.StructuralElement {
	el := paraOf(elems...)
	el.Paragraph.Bullet = &docs.Bullet{ListId: listID, NestingLevel: level}
	return el
}

func docOf(content ...*docs.StructuralElement) *docs.Document {
	return &docs.Document{Body: &docs.Body{Content: content}}
}

func cellOf(content ...*docs.StructuralElement) *docs.TableCell {
	return &docs.TableCell{Content: content}
}

func tableOf(rows ...[]*docs.TableCell) *docs.Table {
	t := &docs.Table{}
	for _, cells := range rows {
		t.TableRows = append(t.TableRows, &docs.TableRow{TableCells: cells})
	}
	return t
}

// bulletList builds a Lists entry with the given glyph types per nesting
// level; empty string means a plain bullet glyph.
func bulletList(glyphTypes ...string) docs.List {
	props := &docs.ListProperties{}
	for _, gt := range glyphTypes {
		level := &docs.NestingLevel{}
		if gt == "" {
			level.GlyphSymbol = "●"
		} else {
			level.GlyphType = gt
		}
		props.NestingLevels = append(props.NestingLevels, level)
	}
	return docs.List{ListProperties: props}
}
