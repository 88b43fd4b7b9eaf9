package docfill

import (
	"context"
)

// DocumentClient is the remote document API the engine operates through.
// The engine never holds document structure itself; it reads flattened
// text (and, for formatting, a one-shot structural snapshot) and issues
// batched mutations. Implementations wrap the actual document service;
// MemoryClient provides an in-process implementation for tests and for
// local previews.
type DocumentClient interface {
	// Text returns the full flattened text of the document.
	Text(ctx context.Context, docID string) (string, error)

	// Structure returns the document's paragraphs (table cells flattened
	// recursively, in reading order) with absolute character offsets and
	// styled runs. Offsets are valid only until the next text mutation.
	Structure(ctx context.Context, docID string) ([]Paragraph, error)

	// BatchEdit applies the edits in order as a single batch.
	BatchEdit(ctx context.Context, docID string, edits []Edit) error

	// Copy duplicates the document and returns the new document's ID.
	Copy(ctx context.Context, docID, title string) (string, error)

	// Delete removes the document.
	Delete(ctx context.Context, docID string) error

	// Export renders the document in the given binary format.
	Export(ctx context.Context, docID, format string) ([]byte, error)
}

// EditKind discriminates the two mutation shapes the document API offers.
type EditKind int

const (
	// EditReplaceAll replaces every occurrence of a literal string.
	EditReplaceAll EditKind = iota
	// EditStyleRange sets style attributes over an absolute offset range.
	EditStyleRange
)

// Edit is a single mutation in a batch. For EditReplaceAll, Old/New/MatchCase
// are used; for EditStyleRange, StartIndex/EndIndex/Style are used. Style
// ranges are half-open: [StartIndex, EndIndex).
type Edit struct {
	Kind EditKind

	Old       string
	New       string
	MatchCase bool

	StartIndex int
	EndIndex   int
	Style      TextStyle
}

// ReplaceAll builds a case-insensitive replace-all edit. Marker matching is
// case-insensitive throughout the engine, so this is the common form.
func ReplaceAll(old, new string) Edit {
	return Edit{Kind: EditReplaceAll, Old: old, New: new}
}

// ReplaceAllMatchCase builds a case-sensitive replace-all edit. Used for
// the generated temporary block markers, which must match exactly.
func ReplaceAllMatchCase(old, new string) Edit {
	return Edit{Kind: EditReplaceAll, Old: old, New: new, MatchCase: true}
}

// StyleRange builds a style edit over [start, end).
func StyleRange(start, end int, style TextStyle) Edit {
	return Edit{Kind: EditStyleRange, StartIndex: start, EndIndex: end, Style: style}
}

// TextStyle carries the style attributes the engine can set on a range of
// text. Zero values mean "leave unset": an unset FontSize is 0, unset
// colors are empty strings.
type TextStyle struct {
	Bold            bool
	Italic          bool
	Underline       bool
	FontSize        float64
	Color           string
	BackgroundColor string
}

// IsZero reports whether no attribute is set.
func (s TextStyle) IsZero() bool {
	return s == TextStyle{}
}

// Merge returns a copy of s with every attribute set in other applied on
// top. Boolean attributes are or-ed so a mandatory bold is never lost.
func (s TextStyle) Merge(other TextStyle) TextStyle {
	merged := s
	merged.Bold = s.Bold || other.Bold
	merged.Italic = s.Italic || other.Italic
	merged.Underline = s.Underline || other.Underline
	if other.FontSize != 0 {
		merged.FontSize = other.FontSize
	}
	if other.Color != "" {
		merged.Color = other.Color
	}
	if other.BackgroundColor != "" {
		merged.BackgroundColor = other.BackgroundColor
	}
	return merged
}

// Paragraph is one paragraph (or flattened table-cell paragraph) of the
// structural snapshot. StartIndex is the absolute offset of the first
// character; Text excludes the trailing newline.
type Paragraph struct {
	StartIndex int
	Text       string
	Runs       []TextRun
}

// TextRun is a span of paragraph text with uniform styling.
type TextRun struct {
	StartIndex int
	EndIndex   int
	Text       string
	Style      TextStyle
}
