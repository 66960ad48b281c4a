package docmd

import (
	"strings"

	"google.golang.org/api/docs/v1"
)

// orderedGlyphs are the glyph types Docs assigns to numbered list levels.
// Bullet levels carry a glyph symbol instead of a glyph type.
var orderedGlyphs = map[string]bool{
	"DECIMAL":      true,
	"ZERO_DECIMAL": true,
	"ALPHA":        true,
	"UPPER_ALPHA":  true,
	"ROMAN":        true,
	"UPPER_ROMAN":  true,
}

// orderedAt reports whether the given nesting level of list id renders as
// an ordered list. Unknown list ids and missing level entries default to
// unordered.
func orderedAt(lists map[string]docs.List, id string, level int64) bool {
	list, ok := lists[id]
	if !ok || list.ListProperties == nil {
		return false
	}
	levels := list.ListProperties.NestingLevels
	if level < 0 || level >= int64(len(levels)) || levels[level] == nil {
		return false
	}
	return orderedGlyphs[strings.ToUpper(levels[level].GlyphType)]
}
