package docfill

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryClient is an in-process DocumentClient. It implements the same
// replace-all and style-range semantics as the remote service and backs
// both the engine tests and the CLI preview command, which renders a
// local template file without any remote service.
type MemoryClient struct {
	mu     sync.Mutex
	docs   map[string]*memoryDoc
	nextID int

	// failures maps an operation name ("text", "structure", "batchEdit",
	// "copy", "delete", "export") to an error returned on the next call.
	failures map[string]error

	// deleteCalls counts Delete invocations per document ID.
	deleteCalls map[string]int
}

type memoryDoc struct {
	title string
	text  string
	spans []styleSpan
}

// styleSpan is an applied style over an absolute half-open range.
type styleSpan struct {
	start, end int
	style      TextStyle
}

// NewMemoryClient creates an empty in-memory document store.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		docs:        make(map[string]*memoryDoc),
		failures:    make(map[string]error),
		deleteCalls: make(map[string]int),
	}
}

// CreateDocument adds a document with the given text and returns its ID.
func (c *MemoryClient) CreateDocument(title, text string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := fmt.Sprintf("doc-%d", c.nextID)
	c.docs[id] = &memoryDoc{title: title, text: text}
	return id
}

// SetStyle applies a style span to a document directly, bypassing
// BatchEdit. Used to seed template-authored emphasis in tests.
func (c *MemoryClient) SetStyle(docID string, start, end int, style TextStyle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if doc, ok := c.docs[docID]; ok {
		doc.spans = append(doc.spans, styleSpan{start: start, end: end, style: style})
	}
}

// StyledSpans returns the applied style spans of a document as
// (start, end, style) tuples, in application order.
func (c *MemoryClient) StyledSpans(docID string) []TextRun {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[docID]
	if !ok {
		return nil
	}
	runs := make([]TextRun, 0, len(doc.spans))
	for _, span := range doc.spans {
		text := ""
		if span.start >= 0 && span.end <= len(doc.text) && span.start <= span.end {
			text = doc.text[span.start:span.end]
		}
		runs = append(runs, TextRun{StartIndex: span.start, EndIndex: span.end, Text: text, Style: span.style})
	}
	return runs
}

// DeleteCalls returns how many times Delete was invoked for a document.
func (c *MemoryClient) DeleteCalls(docID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleteCalls[docID]
}

// Exists reports whether the document is still present.
func (c *MemoryClient) Exists(docID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.docs[docID]
	return ok
}

// FailNext makes the next call of the named operation return err.
func (c *MemoryClient) FailNext(op string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[op] = err
}

func (c *MemoryClient) takeFailure(op string) error {
	if err, ok := c.failures[op]; ok {
		delete(c.failures, op)
		return err
	}
	return nil
}

// Text returns the full flattened text of the document.
func (c *MemoryClient) Text(ctx context.Context, docID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.takeFailure("text"); err != nil {
		return "", err
	}
	doc, ok := c.docs[docID]
	if !ok {
		return "", fmt.Errorf("document not found: %s", docID)
	}
	return doc.text, nil
}

// Structure splits the document into paragraphs at newlines, computing
// absolute offsets, and partitions each paragraph into runs at style-span
// boundaries.
func (c *MemoryClient) Structure(ctx context.Context, docID string) ([]Paragraph, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.takeFailure("structure"); err != nil {
		return nil, err
	}
	doc, ok := c.docs[docID]
	if !ok {
		return nil, fmt.Errorf("document not found: %s", docID)
	}

	var paragraphs []Paragraph
	offset := 0
	for _, line := range strings.Split(doc.text, "\n") {
		para := Paragraph{
			StartIndex: offset,
			Text:       line,
			Runs:       doc.runsFor(offset, offset+len(line)),
		}
		paragraphs = append(paragraphs, para)
		offset += len(line) + 1
	}
	return paragraphs, nil
}

// runsFor partitions [start, end) into runs at span boundaries, merging
// the styles of every span covering each partition.
func (d *memoryDoc) runsFor(start, end int) []TextRun {
	if start >= end {
		return nil
	}

	boundaries := []int{start, end}
	for _, span := range d.spans {
		if span.start > start && span.start < end {
			boundaries = append(boundaries, span.start)
		}
		if span.end > start && span.end < end {
			boundaries = append(boundaries, span.end)
		}
	}
	sort.Ints(boundaries)

	var runs []TextRun
	for i := 0; i+1 < len(boundaries); i++ {
		a, b := boundaries[i], boundaries[i+1]
		if a == b {
			continue
		}
		var style TextStyle
		for _, span := range d.spans {
			if span.start <= a && span.end >= b {
				style = style.Merge(span.style)
			}
		}
		runs = append(runs, TextRun{StartIndex: a, EndIndex: b, Text: d.text[a:b], Style: style})
	}
	return runs
}

// BatchEdit applies the edits in order.
func (c *MemoryClient) BatchEdit(ctx context.Context, docID string, edits []Edit) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.takeFailure("batchEdit"); err != nil {
		return err
	}
	doc, ok := c.docs[docID]
	if !ok {
		return fmt.Errorf("document not found: %s", docID)
	}

	for _, edit := range edits {
		switch edit.Kind {
		case EditReplaceAll:
			doc.replaceAll(edit.Old, edit.New, edit.MatchCase)
		case EditStyleRange:
			doc.spans = append(doc.spans, styleSpan{
				start: edit.StartIndex,
				end:   edit.EndIndex,
				style: edit.Style,
			})
		default:
			return fmt.Errorf("unknown edit kind: %d", edit.Kind)
		}
	}
	return nil
}

// replaceAll replaces every occurrence of old with new, shifting existing
// style spans the way the remote service does.
func (d *memoryDoc) replaceAll(old, new string, matchCase bool) {
	if old == "" {
		return
	}

	// ASCII-only fold: it preserves byte offsets, which the slicing
	// below and the span remapping both depend on.
	haystack := d.text
	needle := old
	if !matchCase {
		haystack = lowerASCII(haystack)
		needle = lowerASCII(needle)
	}

	// Span shifting needs the occurrence position in the already-shifted
	// coordinate space, so the accumulated length delta of earlier
	// replacements is carried along.
	var b strings.Builder
	pos := 0
	delta := 0
	for {
		idx := strings.Index(haystack[pos:], needle)
		if idx < 0 {
			b.WriteString(d.text[pos:])
			break
		}
		at := pos + idx
		b.WriteString(d.text[pos:at])
		b.WriteString(new)
		d.shiftSpans(at+delta, len(old), len(new))
		delta += len(new) - len(old)
		pos = at + len(old)
	}
	d.text = b.String()
}

// shiftSpans remaps span offsets around a single replacement of length
// oldLen at position at with newLen characters. Positions inside the
// replaced region collapse into it.
func (d *memoryDoc) shiftSpans(at, oldLen, newLen int) {
	delta := newLen - oldLen
	remap := func(p int) int {
		switch {
		case p <= at:
			return p
		case p >= at+oldLen:
			return p + delta
		default:
			inner := p - at
			if inner > newLen {
				inner = newLen
			}
			return at + inner
		}
	}
	for i := range d.spans {
		d.spans[i].start = remap(d.spans[i].start)
		d.spans[i].end = remap(d.spans[i].end)
	}
}

// Copy duplicates the document.
func (c *MemoryClient) Copy(ctx context.Context, docID, title string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.takeFailure("copy"); err != nil {
		return "", err
	}
	doc, ok := c.docs[docID]
	if !ok {
		return "", fmt.Errorf("document not found: %s", docID)
	}
	c.nextID++
	id := fmt.Sprintf("doc-%d", c.nextID)
	spans := make([]styleSpan, len(doc.spans))
	copy(spans, doc.spans)
	c.docs[id] = &memoryDoc{title: title, text: doc.text, spans: spans}
	return id, nil
}

// Delete removes the document. Deleting an unknown document is an error,
// matching the remote service.
func (c *MemoryClient) Delete(ctx context.Context, docID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteCalls[docID]++
	if err := c.takeFailure("delete"); err != nil {
		return err
	}
	if _, ok := c.docs[docID]; !ok {
		return fmt.Errorf("document not found: %s", docID)
	}
	delete(c.docs, docID)
	return nil
}

// Export returns the document text as bytes. The format parameter is
// accepted for interface parity; the in-memory store has no binary
// renderer.
func (c *MemoryClient) Export(ctx context.Context, docID, format string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.takeFailure("export"); err != nil {
		return nil, err
	}
	doc, ok := c.docs[docID]
	if !ok {
		return nil, fmt.Errorf("document not found: %s", docID)
	}
	return []byte(doc.text), nil
}
