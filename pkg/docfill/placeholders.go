package docfill

import (
	"context"
	"sort"
)

// substitutePlaceholders replaces every scalar placeholder present in
// the document with its resolved value, in one batch. Double-brace
// spellings are replaced before single-brace ones so a {field} edit can
// never strip the inner braces of a {{field}} marker.
func (e *Engine) substitutePlaceholders(ctx context.Context, docID string, placeholders PlaceholderMap) error {
	text, err := e.client.Text(ctx, docID)
	if err != nil {
		return NewRemoteError("getText", docID, err)
	}

	names := make([]string, 0, len(placeholders))
	for name := range placeholders {
		names = append(names, name)
	}
	sort.Strings(names)

	var edits []Edit
	for _, name := range names {
		for _, spelling := range placeholderSpellings(name) {
			if containsFold(text, spelling) {
				edits = append(edits, ReplaceAll(spelling, placeholders[name]))
			}
		}
	}
	if len(edits) == 0 {
		return nil
	}

	e.logger.Debugw("substituting placeholders", "doc", docID, "edits", len(edits))
	if err := e.client.BatchEdit(ctx, docID, edits); err != nil {
		return NewRemoteError("batchEdit", docID, err)
	}
	return nil
}
