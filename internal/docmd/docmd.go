// Package docmd converts between Google Docs document trees and Markdown.
//
// The forward direction walks a *docs.Document fetched from the Docs API
// and renders Markdown text. The reverse direction compiles Markdown into
// an ordered docs.Request batch for Documents.BatchUpdate. Both directions
// are pure functions and never fail: missing or unrecognized structure
// renders as nothing rather than aborting the conversion.
package docmd

import "strings"

// monospaceFonts are the font families treated as code styling, both when
// rendering a run as a code span and when classifying a single-cell table
// as a fenced code block. Matching is case-insensitive. Extending this set
// is a compatible change.
var monospaceFonts = map[string]bool{
	"courier new":     true,
	"courier":         true,
	"consolas":        true,
	"roboto mono":     true,
	"source code pro": true,
	"fira code":       true,
	"jetbrains mono":  true,
}

func isMonospace(family string) bool {
	return monospaceFonts[strings.ToLower(family)]
}

// codeFont is the family the reverse compiler applies when marking table
// cell content as code, chosen so a later forward render classifies the
// cell as a code block again.
const codeFont = "Courier New"

// utf16Len returns the length of s in UTF-16 code units, the unit Google
// Docs uses for all document indexes. Newlines count as one position;
// runes outside the BMP count as two.
func utf16Len(s string) int64 {
	var n int64
	for _, r := range s {
		n++
		if r > 0xFFFF {
			n++
		}
	}
	return n
}
