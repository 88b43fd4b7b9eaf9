package docfill

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// defaultBulletGlyph is used for nested per-line loops whose template
// body carries no detectable glyph of its own.
const defaultBulletGlyph = "•"

// bulletGlyphs are the glyphs recognized at the start of a template line.
var bulletGlyphs = []string{"•", "▪", "‣", "◦", "·", "-", "*"}

// tempMarker returns a collision-resistant marker string. The document
// API replaces all occurrences of a literal, so a block is first swapped
// for a marker no template could contain, then the marker is swapped for
// the final content. This guarantees exactly-one-occurrence targeting.
func tempMarker() string {
	return "[[docfill:" + uuid.New().String() + "]]"
}

// expandLoops runs loop expansion to a fixed point. Each pass scans a
// fresh text snapshot, expands the blocks it finds, and applies them as
// one batch; the batch invalidates all offsets, so the next pass
// re-fetches. The pass count is bounded: reaching the ceiling stops
// expansion with whatever has been expanded so far.
func (e *Engine) expandLoops(ctx context.Context, docID string, collections Collections) error {
	logger := e.logger

	for pass := 0; pass < e.config.MaxExpansionPasses; pass++ {
		text, err := e.client.Text(ctx, docID)
		if err != nil {
			return NewRemoteError("getText", docID, err)
		}

		edits := e.loopPassEdits(text, collections)
		if len(edits) == 0 {
			edits = e.orphanBlockEdits(text, collections)
		}
		if len(edits) == 0 {
			return nil
		}

		logger.Debugw("applying loop expansion pass",
			"doc", docID, "pass", pass, "edits", len(edits))
		if err := e.client.BatchEdit(ctx, docID, edits); err != nil {
			return NewRemoteError("batchEdit", docID, err)
		}
	}

	logger.Warnw("loop expansion ceiling reached, keeping partial expansion",
		"doc", docID, "passes", e.config.MaxExpansionPasses)
	return nil
}

// loopPassEdits builds the edits for one pass: every top-level loop
// block of every known collection found in the current snapshot.
func (e *Engine) loopPassEdits(text string, collections Collections) []Edit {
	var edits []Edit
	for _, name := range sortedCollectionNames(collections) {
		collection := collections[name]
		blocks, defects := findBlocks(text,
			loopStartSpellings(collection.Name), loopEndSpellings(), kindLoop)
		e.logDefects(defects)

		for _, block := range blocks {
			expansion := ""
			if len(collection.Items) > 0 {
				expansion = e.expandBlock(block.Body, collection)
			}
			marker := tempMarker()
			edits = append(edits,
				ReplaceAll(block.FullText(), marker),
				ReplaceAllMatchCase(marker, expansion),
			)
		}
	}
	return edits
}

// expandBlock clones the block body once per collection item, resolving
// nested sub-loops first and then item-level placeholders, and joins the
// expanded copies.
func (e *Engine) expandBlock(body string, collection *LoopCollection) string {
	var b strings.Builder
	for _, item := range collection.Items {
		b.WriteString(e.expandItem(body, item))
	}
	return b.String()
}

// expandItem renders one item's copy of a loop body.
func (e *Engine) expandItem(body string, item LoopItem) string {
	// Nested sub-loops go first so their bodies still contain the raw
	// {{item}}/{{index}} tokens. Blocks are replaced back-to-front so the
	// earlier blocks' offsets stay valid.
	for _, subName := range sortedSubListNames(item) {
		lines := item.SubLists[subName]
		blocks, defects := findBlocks(body,
			loopStartSpellings(subName), loopEndSpellings(), kindLoop)
		e.logDefects(defects)
		for i := len(blocks) - 1; i >= 0; i-- {
			block := blocks[i]
			body = body[:block.Start] + expandSubLoop(block.Body, lines) + body[block.End:]
		}
	}

	// Item-level placeholders, all accepted spellings each.
	for _, field := range sortedFieldNames(item) {
		for _, spelling := range placeholderSpellings(field) {
			body = replaceFold(body, spelling, item.Fields[field])
		}
	}
	return body
}

// expandSubLoop expands a nested per-line loop body over the given
// lines, substituting {{item}}, {{index}} (0-based), and {{index1}}
// (1-based). Each expanded line keeps the bullet glyph detected in the
// template body, or gains the default glyph when none is present.
func expandSubLoop(body string, lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	glyph := detectBulletGlyph(body)

	parts := make([]string, 0, len(lines))
	for i, line := range lines {
		rendered := body
		for _, spelling := range placeholderSpellings("item") {
			rendered = replaceFold(rendered, spelling, line)
		}
		for _, spelling := range placeholderSpellings("index") {
			rendered = replaceFold(rendered, spelling, strconv.Itoa(i))
		}
		for _, spelling := range placeholderSpellings("index1") {
			rendered = replaceFold(rendered, spelling, strconv.Itoa(i+1))
		}
		if glyph == "" {
			rendered = defaultBulletGlyph + " " + strings.TrimLeft(rendered, " ")
		}
		parts = append(parts, rendered)
	}

	if strings.HasSuffix(body, "\n") {
		return strings.Join(parts, "")
	}
	return strings.Join(parts, "\n")
}

// detectBulletGlyph returns the bullet glyph the template body itself
// uses, or "" when none is detectable.
func detectBulletGlyph(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		for _, glyph := range bulletGlyphs {
			if strings.HasPrefix(trimmed, glyph) {
				return glyph
			}
		}
	}
	return ""
}

// orphanBlockEdits handles nested sub-loop blocks left in the document
// without an owning parent block, matching the Nth remaining block to
// the Nth collection item in document order. Expansion preserves source
// ordering, so document order is the reliable assignment. Blocks with no
// matching item are removed and logged as a soft warning.
func (e *Engine) orphanBlockEdits(text string, collections Collections) []Edit {
	var edits []Edit
	for _, name := range sortedCollectionNames(collections) {
		collection := collections[name]
		for _, subName := range subListNamesOf(collection) {
			blocks, defects := findBlocks(text,
				loopStartSpellings(subName), loopEndSpellings(), kindLoop)
			e.logDefects(defects)

			for i, block := range blocks {
				expansion := ""
				if i < len(collection.Items) {
					expansion = expandSubLoop(block.Body, collection.Items[i].SubLists[subName])
				} else {
					e.logger.Warnw("nested loop block has no matching item, removing",
						"collection", collection.Name, "sub", subName, "block", i)
				}
				marker := tempMarker()
				edits = append(edits,
					ReplaceAll(block.FullText(), marker),
					ReplaceAllMatchCase(marker, expansion),
				)
			}
		}
	}
	return edits
}

func (e *Engine) logDefects(defects []error) {
	for _, defect := range defects {
		e.logger.Warnw("template defect recovered", "defect", defect.Error())
	}
}

func sortedCollectionNames(collections Collections) []string {
	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedSubListNames(item LoopItem) []string {
	names := make([]string, 0, len(item.SubLists))
	for name := range item.SubLists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedFieldNames(item LoopItem) []string {
	names := make([]string, 0, len(item.Fields))
	for name := range item.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// subListNamesOf returns the union of sub-list names across a
// collection's items, sorted.
func subListNamesOf(collection *LoopCollection) []string {
	seen := make(map[string]bool)
	for _, item := range collection.Items {
		for name := range item.SubLists {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
