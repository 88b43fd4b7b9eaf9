package docfill

import (
	"context"
	"sort"
)

// applyConditions includes or removes conditional blocks based on their
// boolean flags. It runs once, after loop expansion and placeholder
// substitution, so block bodies already contain their final content and
// can be matched as literal text. A true condition strips the marker
// pair and keeps the body; a false condition removes markers and body.
// Re-running on marker-free text finds no blocks and is a no-op.
func (e *Engine) applyConditions(ctx context.Context, docID string, conditions ConditionMap) error {
	text, err := e.client.Text(ctx, docID)
	if err != nil {
		return NewRemoteError("getText", docID, err)
	}

	names := make([]string, 0, len(conditions))
	for name := range conditions {
		names = append(names, name)
	}
	sort.Strings(names)

	// Collect the blocks of every condition, then order the edits by
	// block start offset. Outer blocks start before the blocks nested
	// inside them, so an outer block's edit runs first: if it removes
	// the body, the inner edits simply find nothing to replace.
	type conditionBlock struct {
		block Block
		keep  bool
	}
	var found []conditionBlock
	for _, name := range names {
		blocks, defects := findBlocks(text,
			conditionalStartSpellings(name), conditionalEndSpellings(), kindConditional)
		e.logDefects(defects)
		for _, block := range blocks {
			found = append(found, conditionBlock{block: block, keep: conditions[name]})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].block.Start < found[j].block.Start })

	var edits []Edit
	for _, cb := range found {
		if cb.keep {
			edits = append(edits, ReplaceAll(cb.block.FullText(), cb.block.Body))
		} else {
			edits = append(edits, ReplaceAll(cb.block.FullText(), ""))
		}
	}
	if len(edits) == 0 {
		return nil
	}

	e.logger.Debugw("applying conditional blocks", "doc", docID, "edits", len(edits))
	if err := e.client.BatchEdit(ctx, docID, edits); err != nil {
		return NewRemoteError("batchEdit", docID, err)
	}
	return nil
}
