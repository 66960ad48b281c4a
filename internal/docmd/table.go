package docmd

import (
	"strings"

	"google.golang.org/api/docs/v1"
)

// isCodeTable reports whether t uses the single-cell code block authoring
// convention: a 1x1 table whose cell either has a light-gray background
// or contains at least one monospace-styled run. The background check
// runs first; the content scan only happens when it misses.
func isCodeTable(t *docs.Table) bool {
	if len(t.TableRows) != 1 || t.TableRows[0] == nil || len(t.TableRows[0].TableCells) != 1 {
		return false
	}
	cell := t.TableRows[0].TableCells[0]
	if cell == nil {
		return false
	}
	if cellIsLightGray(cell.TableCellStyle) {
		return true
	}
	return cellHasMonospaceRun(cell)
}

// cellIsLightGray matches the background shade Docs applies to code
// blocks pasted from editors: every channel strictly between 0.85 and
// 1.0, so pure white does not qualify.
func cellIsLightGray(style *docs.TableCellStyle) bool {
	if style == nil || style.BackgroundColor == nil || style.BackgroundColor.Color == nil {
		return false
	}
	rgb := style.BackgroundColor.Color.RgbColor
	if rgb == nil {
		return false
	}
	return grayBand(rgb.Red) && grayBand(rgb.Green) && grayBand(rgb.Blue)
}

func grayBand(v float64) bool { return v > 0.85 && v < 1.0 }

func cellHasMonospaceRun(cell *docs.TableCell) bool {
	for _, el := range cell.Content {
		if el == nil || el.Paragraph == nil {
			continue
		}
		for _, pe := range el.Paragraph.Elements {
			if pe == nil || pe.TextRun == nil || pe.TextRun.TextStyle == nil {
				continue
			}
			if wf := pe.TextRun.TextStyle.WeightedFontFamily; wf != nil && isMonospace(wf.FontFamily) {
				return true
			}
		}
	}
	return false
}

func renderTable(t *docs.Table) string {
	if t == nil || len(t.TableRows) == 0 {
		return ""
	}
	if isCodeTable(t) {
		return renderCodeTable(t.TableRows[0].TableCells[0])
	}

	var sb strings.Builder
	wroteHeader := false
	for _, row := range t.TableRows {
		if row == nil || len(row.TableCells) == 0 {
			continue
		}
		sb.WriteString("|")
		for _, cell := range row.TableCells {
			sb.WriteString(" " + cellText(cell) + " |")
		}
		sb.WriteString("\n")
		if !wroteHeader {
			// Markdown requires a separator after the first row whether
			// or not the source marks it as a header.
			sb.WriteString("|")
			for range row.TableCells {
				sb.WriteString(" --- |")
			}
			sb.WriteString("\n")
			wroteHeader = true
		}
	}
	if !wroteHeader {
		return ""
	}
	sb.WriteString("\n")
	return sb.String()
}

// renderCodeTable renders the cell's literal run text as a fenced block.
// Cell content always ends in a newline; exactly one is stripped so the
// closing fence lands on its own line.
func renderCodeTable(cell *docs.TableCell) string {
	code := strings.TrimSuffix(rawCellText(cell), "\n")
	return "\n```\n" + code + "\n```\n\n"
}

// cellText flattens a cell into a single line for a pipe grid: raw run
// text concatenated, newlines replaced with spaces, trimmed. Cells never
// carry multi-line or inline-formatted content in the output.
func cellText(cell *docs.TableCell) string {
	return strings.TrimSpace(strings.ReplaceAll(rawCellText(cell), "\n", " "))
}

func rawCellText(cell *docs.TableCell) string {
	if cell == nil {
		return ""
	}
	var sb strings.Builder
	for _, el := range cell.Content {
		if el == nil || el.Paragraph == nil {
			continue
		}
		for _, pe := range el.Paragraph.Elements {
			if pe != nil && pe.TextRun != nil {
				sb.WriteString(pe.TextRun.Content)
			}
		}
	}
	return sb.String()
}
