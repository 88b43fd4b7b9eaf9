package docfill

import (
	"context"
	"regexp"
	"strings"
)

// knownLabels are field labels bolded wherever they lead a line or
// follow expanded content.
var knownLabels = []string{
	"Position:",
	"Company:",
	"Duration:",
	"Location:",
	"Email:",
	"Phone:",
}

// categoryLineRegex recognizes "Category: comma,separated,list" lines;
// the first capture group spans the label through the colon.
var categoryLineRegex = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9 /&+'-]{0,40}:)\s+(.*,.*)$`)

// applyFormatting is the last phase of a fill. It walks one fresh
// structural snapshot of the document, computing absolute offsets, and
// emits every style edit in a single batch. The offsets are only valid
// against that snapshot, so the batch must land before any further text
// mutation; Fill guarantees this by running formatting last.
//
// Three patterns are styled: known labels ("Position:" etc.), the
// "Category: a, b, c" heuristic, and caller-supplied literal titles.
// Titles additionally preserve the per-run style found at their first
// occurrence, so template-authored emphasis survives loop expansion
// duplicating the text.
func (e *Engine) applyFormatting(ctx context.Context, docID string, titles []string, extra TextStyle) error {
	paragraphs, err := e.client.Structure(ctx, docID)
	if err != nil {
		return NewRemoteError("getStructure", docID, err)
	}

	style := TextStyle{Bold: true}.Merge(extra)

	var edits []Edit
	for _, para := range paragraphs {
		edits = append(edits, labelEdits(para, style)...)
	}
	edits = append(edits, e.titleEdits(paragraphs, titles, style)...)

	if len(edits) == 0 {
		return nil
	}

	e.logger.Debugw("applying formatting", "doc", docID, "edits", len(edits))
	if err := e.client.BatchEdit(ctx, docID, edits); err != nil {
		return NewRemoteError("batchEdit", docID, err)
	}
	return nil
}

// labelEdits emits style edits for known labels and category-style lines
// in one paragraph.
func labelEdits(para Paragraph, style TextStyle) []Edit {
	var edits []Edit
	matched := false
	for _, label := range knownLabels {
		pos := 0
		for {
			idx := strings.Index(para.Text[pos:], label)
			if idx < 0 {
				break
			}
			at := pos + idx
			edits = append(edits, StyleRange(para.StartIndex+at, para.StartIndex+at+len(label), style))
			matched = true
			pos = at + len(label)
		}
	}
	if matched {
		return edits
	}

	if m := categoryLineRegex.FindStringSubmatchIndex(para.Text); m != nil {
		start, end := m[2], m[3]
		edits = append(edits, StyleRange(para.StartIndex+start, para.StartIndex+end, style))
	}
	return edits
}

// titleEdits styles every occurrence of each title, merging the run
// style captured at the title's first occurrence with the mandatory
// style.
func (e *Engine) titleEdits(paragraphs []Paragraph, titles []string, style TextStyle) []Edit {
	var edits []Edit
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if len(title) < 2 {
			continue
		}

		occurrences := findOccurrences(paragraphs, title)
		if len(occurrences) == 0 {
			continue
		}

		captured := styleAt(paragraphs, occurrences[0])
		titleStyle := captured.Merge(style)
		for _, at := range occurrences {
			edits = append(edits, StyleRange(at, at+len(title), titleStyle))
		}
	}
	return edits
}

// findOccurrences returns the absolute offsets of every case-insensitive
// occurrence of needle, in document order. The fold is ASCII-only so the
// offsets stay valid in the original text.
func findOccurrences(paragraphs []Paragraph, needle string) []int {
	var offsets []int
	lowered := lowerASCII(needle)
	for _, para := range paragraphs {
		text := lowerASCII(para.Text)
		pos := 0
		for {
			idx := strings.Index(text[pos:], lowered)
			if idx < 0 {
				break
			}
			at := pos + idx
			offsets = append(offsets, para.StartIndex+at)
			pos = at + len(needle)
		}
	}
	return offsets
}

// styleAt returns the style of the run covering the absolute offset.
func styleAt(paragraphs []Paragraph, offset int) TextStyle {
	for _, para := range paragraphs {
		for _, run := range para.Runs {
			if run.StartIndex <= offset && offset < run.EndIndex {
				return run.Style
			}
		}
	}
	return TextStyle{}
}
