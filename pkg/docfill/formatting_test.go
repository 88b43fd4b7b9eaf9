package docfill

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bold = TextStyle{Bold: true}

func TestLabelEdits(t *testing.T) {
	tests := []struct {
		name string
		para Paragraph
		want []Edit
	}{
		{
			name: "known label at line start",
			para: Paragraph{StartIndex: 10, Text: "Position: Engineer"},
			want: []Edit{StyleRange(10, 19, bold)},
		},
		{
			name: "two labels in one paragraph",
			para: Paragraph{StartIndex: 0, Text: "Company: Acme Location: NY"},
			want: []Edit{StyleRange(0, 8, bold), StyleRange(14, 23, bold)},
		},
		{
			name: "category heuristic",
			para: Paragraph{StartIndex: 19, Text: "Languages: Go, Python"},
			want: []Edit{StyleRange(19, 29, bold)},
		},
		{
			name: "category heuristic with leading spaces",
			para: Paragraph{StartIndex: 0, Text: "  Tools: Docker, Bazel"},
			want: []Edit{StyleRange(2, 8, bold)},
		},
		{
			name: "known label suppresses the heuristic",
			para: Paragraph{StartIndex: 0, Text: "Location: New York, NY"},
			want: []Edit{StyleRange(0, 9, bold)},
		},
		{
			name: "comma sentence without colon is not a category",
			para: Paragraph{StartIndex: 0, Text: "Shipped fast, broke nothing"},
			want: nil,
		},
		{
			name: "colon line without comma list is not a category",
			para: Paragraph{StartIndex: 0, Text: "Summary: a short paragraph"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labelEdits(tt.para, bold)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("labelEdits mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyFormattingLabelsAndCategories(t *testing.T) {
	client := NewMemoryClient()
	engine := newTestEngine(client)
	docID := client.CreateDocument("t",
		"Position: Engineer\nLanguages: Go, Python\nplain line")

	require.NoError(t, engine.applyFormatting(context.Background(), docID, nil, TextStyle{}))

	spans := client.StyledSpans(docID)
	require.Len(t, spans, 2)
	assert.Equal(t, "Position:", spans[0].Text)
	assert.Equal(t, bold, spans[0].Style)
	assert.Equal(t, "Languages:", spans[1].Text)
	assert.Equal(t, bold, spans[1].Style)
}

func TestApplyFormattingTitles(t *testing.T) {
	client := NewMemoryClient()
	engine := newTestEngine(client)
	docID := client.CreateDocument("t", "Engineer\nabout\nengineer again")

	// Template-authored emphasis at the first occurrence must survive
	// into every styled occurrence.
	client.SetStyle(docID, 0, 8, TextStyle{Italic: true})

	require.NoError(t, engine.applyFormatting(context.Background(), docID,
		[]string{"Engineer"}, TextStyle{Color: "#ff0000"}))

	spans := client.StyledSpans(docID)
	require.Len(t, spans, 3) // seeded span + two title edits
	want := TextStyle{Bold: true, Italic: true, Color: "#ff0000"}
	assert.Equal(t, TextRun{StartIndex: 0, EndIndex: 8, Text: "Engineer", Style: want}, spans[1])
	assert.Equal(t, TextRun{StartIndex: 15, EndIndex: 23, Text: "engineer", Style: want}, spans[2])
}

func TestApplyFormattingSkipsAbsentAndShortTitles(t *testing.T) {
	client := NewMemoryClient()
	engine := newTestEngine(client)
	docID := client.CreateDocument("t", "nothing to style here")

	require.NoError(t, engine.applyFormatting(context.Background(), docID,
		[]string{"Architect", "X", "  "}, TextStyle{}))
	assert.Empty(t, client.StyledSpans(docID))
}

func TestFindOccurrences(t *testing.T) {
	paragraphs := []Paragraph{
		{StartIndex: 0, Text: "Engineer at Acme"},
		{StartIndex: 17, Text: "Senior Engineer"},
	}
	assert.Equal(t, []int{0, 24}, findOccurrences(paragraphs, "engineer"))
	assert.Empty(t, findOccurrences(paragraphs, "director"))

	// Multibyte runes before the occurrence must not shift the offset.
	multibyte := []Paragraph{{StartIndex: 0, Text: "KK Engineer"}}
	assert.Equal(t, []int{7}, findOccurrences(multibyte, "engineer"))
}

func TestStyleAt(t *testing.T) {
	paragraphs := []Paragraph{
		{StartIndex: 0, Text: "abcdef", Runs: []TextRun{
			{StartIndex: 0, EndIndex: 3, Style: TextStyle{Bold: true}},
			{StartIndex: 3, EndIndex: 6, Style: TextStyle{Italic: true}},
		}},
	}
	assert.Equal(t, TextStyle{Bold: true}, styleAt(paragraphs, 1))
	assert.Equal(t, TextStyle{Italic: true}, styleAt(paragraphs, 3))
	assert.Equal(t, TextStyle{}, styleAt(paragraphs, 42))
}
