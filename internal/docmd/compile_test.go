package docmd

import (
	"strings"
	"testing"

	"google.golang.org/api/docs/v1"
)

func insertsOf(reqs []*docs.Request) []*docs.InsertTextRequest {
	var out []*docs.InsertTextRequest
	for _, r := range reqs {
		if r.InsertText != nil {
			out = append(out, r.InsertText)
		}
	}
	return out
}

func insertedText(reqs []*docs.Request) string {
	var sb strings.Builder
	for _, ins := range insertsOf(reqs) {
		sb.WriteString(ins.Text)
	}
	return sb.String()
}

func textStylesOf(reqs []*docs.Request) []*docs.UpdateTextStyleRequest {
	var out []*docs.UpdateTextStyleRequest
	for _, r := range reqs {
		if r.UpdateTextStyle != nil {
			out = append(out, r.UpdateTextStyle)
		}
	}
	return out
}

func bulletsOf(reqs []*docs.Request) []*docs.CreateParagraphBulletsRequest {
	var out []*docs.CreateParagraphBulletsRequest
	for _, r := range reqs {
		if r.CreateParagraphBullets != nil {
			out = append(out, r.CreateParagraphBullets)
		}
	}
	return out
}

// Sequential insertions must tile the document with no gaps or overlaps:
// each insert starts where the previous one ended. The returned end
// index additionally accounts for the nesting tab the nested item's
// bullet request strips out.
func TestCompileInsertsTile(t *testing.T) {
	reqs, end := Compile("- a\n  - b\n", 1)

	want := []struct {
		text  string
		index int64
	}{
		{"a", 1}, {"\n", 2}, {"\t", 3}, {"b", 4}, {"\n", 5},
	}
	inserts := insertsOf(reqs)
	if len(inserts) != len(want) {
		t.Fatalf("got %d inserts, want %d", len(inserts), len(want))
	}
	for i, ins := range inserts {
		if ins.Text != want[i].text || ins.Location.Index != want[i].index {
			t.Errorf("insert %d = %q at %d, want %q at %d",
				i, ins.Text, ins.Location.Index, want[i].text, want[i].index)
		}
	}
	if end != 5 {
		t.Fatalf("end index = %d, want 5 (one tab removed)", end)
	}
}

// Bullet creation strips the leading tabs that encode nesting, so
// content compiled after a nested list must land at the shifted-down
// offset and the returned end index must reflect the removal.
func TestCompileContentAfterNestedList(t *testing.T) {
	reqs, end := Compile("- a\n  - b\n\nafter\n", 1)

	var after *docs.InsertTextRequest
	for _, ins := range insertsOf(reqs) {
		if ins.Text == "after" {
			after = ins
		}
	}
	if after == nil {
		t.Fatalf("trailing paragraph not inserted; inserts: %q", insertedText(reqs))
	}
	if after.Location.Index != 5 {
		t.Errorf("trailing paragraph at %d, want 5", after.Location.Index)
	}
	if want := 5 + utf16Len("after\n"); end != want {
		t.Errorf("end index = %d, want %d", end, want)
	}
}

func TestCompileParagraph(t *testing.T) {
	reqs, end := Compile("hello world", 1)

	inserts := insertsOf(reqs)
	if len(inserts) != 2 {
		t.Fatalf("got %d inserts, want 2 (text, newline)", len(inserts))
	}
	if inserts[0].Text != "hello world" || inserts[0].Location.Index != 1 {
		t.Errorf("first insert = %q at %d", inserts[0].Text, inserts[0].Location.Index)
	}
	if inserts[1].Text != "\n" {
		t.Errorf("paragraph not newline terminated: %q", inserts[1].Text)
	}
	if end != 1+utf16Len("hello world\n") {
		t.Errorf("end index = %d", end)
	}
}

func TestCompileHeading(t *testing.T) {
	reqs, _ := Compile("### Section", 1)

	var para *docs.UpdateParagraphStyleRequest
	for _, r := range reqs {
		if r.UpdateParagraphStyle != nil {
			para = r.UpdateParagraphStyle
		}
	}
	if para == nil {
		t.Fatal("no paragraph style request emitted")
	}
	if para.ParagraphStyle.NamedStyleType != "HEADING_3" {
		t.Errorf("named style = %q", para.ParagraphStyle.NamedStyleType)
	}
	if para.Range.StartIndex != 1 || para.Range.EndIndex != 1+utf16Len("Section\n") {
		t.Errorf("range = [%d,%d)", para.Range.StartIndex, para.Range.EndIndex)
	}
	if para.Fields != "namedStyleType" {
		t.Errorf("fields = %q", para.Fields)
	}
}

func TestCompileInlineStyles(t *testing.T) {
	tests := []struct {
		name       string
		md         string
		span       string
		wantFields string
	}{
		{name: "bold", md: "a **b** c", span: "b", wantFields: "bold"},
		{name: "italic", md: "*it*", span: "it", wantFields: "italic"},
		{name: "bold italic", md: "***x***", span: "x", wantFields: "bold,italic"},
		{name: "strikethrough", md: "~~gone~~", span: "gone", wantFields: "strikethrough"},
		{name: "code span", md: "run `ls` now", span: "ls", wantFields: "weightedFontFamily"},
		{name: "link", md: "[here](https://example.com)", span: "here", wantFields: "link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqs, _ := Compile(tt.md, 1)

			// Find the insert for the styled span, then the style request
			// covering exactly that range.
			var start, end int64 = -1, -1
			for _, ins := range insertsOf(reqs) {
				if ins.Text == tt.span {
					start = ins.Location.Index
					end = start + utf16Len(ins.Text)
				}
			}
			if start < 0 {
				t.Fatalf("span %q not inserted; inserts: %q", tt.span, insertedText(reqs))
			}

			var style *docs.UpdateTextStyleRequest
			for _, ts := range textStylesOf(reqs) {
				if ts.Range.StartIndex == start && ts.Range.EndIndex == end {
					style = ts
				}
			}
			if style == nil {
				t.Fatalf("no style request over [%d,%d)", start, end)
			}
			if style.Fields != tt.wantFields {
				t.Errorf("fields = %q, want %q", style.Fields, tt.wantFields)
			}
		})
	}
}

// Inserted text inherits the styling of its neighbor, so a plain span
// following a styled one must carry an explicit reset.
func TestCompilePlainSpanAfterStyledResets(t *testing.T) {
	reqs, _ := Compile("a **b** c", 1)

	var tail *docs.InsertTextRequest
	for _, ins := range insertsOf(reqs) {
		if ins.Text == " c" {
			tail = ins
		}
	}
	if tail == nil {
		t.Fatalf("trailing span not inserted; inserts: %q", insertedText(reqs))
	}

	var reset *docs.UpdateTextStyleRequest
	for _, ts := range textStylesOf(reqs) {
		if ts.Range.StartIndex == tail.Location.Index {
			reset = ts
		}
	}
	if reset == nil {
		t.Fatal("no style request over the span following bold text")
	}
	if reset.Fields != "bold" || reset.TextStyle.Bold {
		t.Errorf("reset fields = %q bold = %v, want bold cleared",
			reset.Fields, reset.TextStyle.Bold)
	}
}

// A paragraph inserted at a heading's trailing newline inherits the
// heading's named style and must be reset to NORMAL_TEXT.
func TestCompileParagraphAfterHeadingResetsNamedStyle(t *testing.T) {
	reqs, _ := Compile("# Title\n\nbody\n", 1)

	var styles []*docs.UpdateParagraphStyleRequest
	for _, r := range reqs {
		if r.UpdateParagraphStyle != nil {
			styles = append(styles, r.UpdateParagraphStyle)
		}
	}
	if len(styles) != 2 {
		t.Fatalf("got %d paragraph style requests, want heading + reset", len(styles))
	}
	if styles[0].ParagraphStyle.NamedStyleType != "HEADING_1" {
		t.Errorf("heading style = %q", styles[0].ParagraphStyle.NamedStyleType)
	}
	reset := styles[1]
	if reset.ParagraphStyle.NamedStyleType != "NORMAL_TEXT" {
		t.Errorf("following paragraph style = %q, want NORMAL_TEXT",
			reset.ParagraphStyle.NamedStyleType)
	}
	wantStart := 1 + utf16Len("Title\n")
	if reset.Range.StartIndex != wantStart || reset.Range.EndIndex != wantStart+utf16Len("body\n") {
		t.Errorf("reset range = [%d,%d)", reset.Range.StartIndex, reset.Range.EndIndex)
	}
}

func TestCompileLinkCarriesURL(t *testing.T) {
	reqs, _ := Compile("[docs](https://docs.example.com)", 1)
	styles := textStylesOf(reqs)
	if len(styles) != 1 {
		t.Fatalf("got %d style requests, want 1", len(styles))
	}
	if styles[0].TextStyle.Link == nil || styles[0].TextStyle.Link.Url != "https://docs.example.com" {
		t.Fatalf("link style = %+v", styles[0].TextStyle.Link)
	}
}

func TestCompileNestedLists(t *testing.T) {
	reqs, _ := Compile("- a\n  - b\n1. c\n", 1)

	bullets := bulletsOf(reqs)
	if len(bullets) != 3 {
		t.Fatalf("got %d bullet requests, want 3", len(bullets))
	}
	if bullets[0].BulletPreset != bulletPreset || bullets[1].BulletPreset != bulletPreset {
		t.Errorf("unordered presets = %q, %q", bullets[0].BulletPreset, bullets[1].BulletPreset)
	}
	if bullets[2].BulletPreset != numberedPreset {
		t.Errorf("ordered preset = %q", bullets[2].BulletPreset)
	}

	// The nested item's paragraph carries a tab prefix encoding depth 1.
	if !strings.Contains(insertedText(reqs), "\tb\n") {
		t.Errorf("nested item not tab indented; inserts: %q", insertedText(reqs))
	}

	// Each bullet range covers its own item paragraph, newline included.
	for i, b := range bullets {
		if b.Range.EndIndex <= b.Range.StartIndex {
			t.Errorf("bullet %d has empty range [%d,%d)", i, b.Range.StartIndex, b.Range.EndIndex)
		}
	}
}

func TestCompileFencedCodeBlock(t *testing.T) {
	reqs, end := Compile("```\nx := 1\n```\n", 1)

	var table *docs.InsertTableRequest
	for _, r := range reqs {
		if r.InsertTable != nil {
			table = r.InsertTable
		}
	}
	if table == nil {
		t.Fatal("no table request for code block")
	}
	if table.Rows != 1 || table.Columns != 1 {
		t.Errorf("table is %dx%d, want 1x1", table.Rows, table.Columns)
	}
	if table.Location.Index != 1 {
		t.Errorf("table at %d, want 1", table.Location.Index)
	}

	inserts := insertsOf(reqs)
	if len(inserts) != 1 || inserts[0].Text != "x := 1" {
		t.Fatalf("cell inserts = %+v", inserts)
	}
	// First cell paragraph sits four positions past the insertion point:
	// leading newline, table, row and cell markers.
	if inserts[0].Location.Index != 5 {
		t.Errorf("cell text at %d, want 5", inserts[0].Location.Index)
	}

	styles := textStylesOf(reqs)
	if len(styles) != 1 {
		t.Fatalf("got %d style requests, want 1 (monospace restyle)", len(styles))
	}
	st := styles[0]
	if st.TextStyle.WeightedFontFamily == nil || !isMonospace(st.TextStyle.WeightedFontFamily.FontFamily) {
		t.Errorf("cell restyle = %+v, want monospace", st.TextStyle)
	}
	if st.Range.StartIndex != 5 || st.Range.EndIndex != 5+utf16Len("x := 1") {
		t.Errorf("restyle range = [%d,%d)", st.Range.StartIndex, st.Range.EndIndex)
	}

	// newline + shell (table, row, cell, cell newline) + code text
	if want := int64(1) + 1 + tableShell(1, 1) + utf16Len("x := 1"); end != want {
		t.Errorf("end index = %d, want %d", end, want)
	}
}

func TestCompileTable(t *testing.T) {
	md := "| a | b |\n| --- | --- |\n| c | d |\n"
	reqs, end := Compile(md, 1)

	var table *docs.InsertTableRequest
	for _, r := range reqs {
		if r.InsertTable != nil {
			table = r.InsertTable
		}
	}
	if table == nil {
		t.Fatal("no table request")
	}
	if table.Rows != 2 || table.Columns != 2 {
		t.Fatalf("table is %dx%d, want 2x2", table.Rows, table.Columns)
	}

	// Cell offsets: start+4 for (0,0), then +2 per cell, +1 per row
	// marker, shifted by all text inserted into earlier cells.
	inserts := insertsOf(reqs)
	wantAt := map[string]int64{"a": 5, "b": 8, "c": 12, "d": 15}
	if len(inserts) != len(wantAt) {
		t.Fatalf("got %d cell inserts, want %d", len(inserts), len(wantAt))
	}
	for _, ins := range inserts {
		if want, ok := wantAt[ins.Text]; !ok || ins.Location.Index != want {
			t.Errorf("cell %q at %d, want %d", ins.Text, ins.Location.Index, wantAt[ins.Text])
		}
	}

	if want := int64(1) + 1 + tableShell(2, 2) + 4; end != want {
		t.Errorf("end index = %d, want %d", end, want)
	}
}

func TestCompileSkipsRawHTML(t *testing.T) {
	reqs, end := Compile("<div>\nblock\n</div>\n", 1)
	if len(reqs) != 0 {
		t.Fatalf("HTML block produced %d requests, want 0", len(reqs))
	}
	if end != 1 {
		t.Errorf("end index = %d, want 1 (no cursor movement)", end)
	}

	reqs, _ = Compile("before <u>styled</u> after", 1)
	text := insertedText(reqs)
	if strings.Contains(text, "<u>") || strings.Contains(text, "</u>") {
		t.Fatalf("raw inline HTML leaked into document text: %q", text)
	}
	if !strings.Contains(text, "styled") {
		t.Fatalf("inner text lost: %q", text)
	}
}

func TestCompileSkipsThematicBreak(t *testing.T) {
	reqs, end := Compile("a\n\n---\n\nb\n", 1)
	text := insertedText(reqs)
	if strings.Contains(text, "---") {
		t.Fatalf("thematic break leaked: %q", text)
	}
	if text != "a\nb\n" {
		t.Fatalf("inserted text = %q, want %q", text, "a\nb\n")
	}
	if end != 1+utf16Len("a\nb\n") {
		t.Errorf("end index = %d", end)
	}
}

func TestCompileEmptyInput(t *testing.T) {
	reqs, end := Compile("", 7)
	if len(reqs) != 0 || end != 7 {
		t.Fatalf("Compile(\"\") = %d requests, end %d", len(reqs), end)
	}
}

func TestCompileCountsUTF16Units(t *testing.T) {
	// U+1F600 is two UTF-16 code units; Docs indexes must advance by two.
	reqs, end := Compile("\U0001F600", 1)
	inserts := insertsOf(reqs)
	if len(inserts) != 2 {
		t.Fatalf("got %d inserts", len(inserts))
	}
	if inserts[1].Location.Index != 3 {
		t.Errorf("newline at %d, want 3", inserts[1].Location.Index)
	}
	if end != 4 {
		t.Errorf("end index = %d, want 4", end)
	}
}

func TestCompileBlockquoteFallsBackToParagraphs(t *testing.T) {
	reqs, _ := Compile("> quoted text\n", 1)
	if got := insertedText(reqs); got != "quoted text\n" {
		t.Fatalf("inserted text = %q, want %q", got, "quoted text\n")
	}
}
