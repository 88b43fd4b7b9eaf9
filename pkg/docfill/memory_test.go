package docfill

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClientReplaceAll(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		edits []Edit
		want  string
	}{
		{
			name:  "case insensitive replaces all spellings",
			text:  "{{Name}} and {{NAME}} and {{name}}",
			edits: []Edit{ReplaceAll("{{name}}", "Ada")},
			want:  "Ada and Ada and Ada",
		},
		{
			name:  "match case replaces exact only",
			text:  "Name name NAME",
			edits: []Edit{ReplaceAllMatchCase("name", "ada")},
			want:  "Name ada NAME",
		},
		{
			name:  "replacement is not rescanned",
			text:  "x",
			edits: []Edit{ReplaceAll("x", "xx")},
			want:  "xx",
		},
		{
			name: "edits apply in order",
			text: "{{a}}",
			edits: []Edit{
				ReplaceAll("{{a}}", "[[m]]"),
				ReplaceAllMatchCase("[[m]]", "done"),
			},
			want: "done",
		},
		{
			name:  "empty needle is ignored",
			text:  "abc",
			edits: []Edit{ReplaceAll("", "x")},
			want:  "abc",
		},
		{
			name:  "multibyte fold runes before the match",
			text:  "KK {{Name}}",
			edits: []Edit{ReplaceAll("{{name}}", "Ada")},
			want:  "KK Ada",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewMemoryClient()
			docID := client.CreateDocument("t", tt.text)
			require.NoError(t, client.BatchEdit(context.Background(), docID, tt.edits))
			text, err := client.Text(context.Background(), docID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestMemoryClientSpanShifting(t *testing.T) {
	client := NewMemoryClient()
	docID := client.CreateDocument("t", "aa {{name}} bb {{name}} cc")
	// Style "bb": sits between the two replaced regions.
	client.SetStyle(docID, 12, 14, TextStyle{Bold: true})
	// Style the trailing "cc" after both regions.
	client.SetStyle(docID, 24, 26, TextStyle{Italic: true})

	require.NoError(t, client.BatchEdit(context.Background(), docID,
		[]Edit{ReplaceAll("{{name}}", "Ada")}))

	text, err := client.Text(context.Background(), docID)
	require.NoError(t, err)
	require.Equal(t, "aa Ada bb Ada cc", text)

	spans := client.StyledSpans(docID)
	require.Len(t, spans, 2)
	assert.Equal(t, "bb", spans[0].Text)
	assert.Equal(t, "cc", spans[1].Text)
}

func TestMemoryClientSpanInsideReplacementCollapses(t *testing.T) {
	client := NewMemoryClient()
	docID := client.CreateDocument("t", "xx{{longplaceholder}}yy")
	// A span strictly inside the replaced region clamps to it.
	client.SetStyle(docID, 4, 12, TextStyle{Bold: true})

	require.NoError(t, client.BatchEdit(context.Background(), docID,
		[]Edit{ReplaceAll("{{longplaceholder}}", "ab")}))

	spans := client.StyledSpans(docID)
	require.Len(t, spans, 1)
	assert.GreaterOrEqual(t, spans[0].StartIndex, 2)
	assert.LessOrEqual(t, spans[0].EndIndex, 4)
}

func TestMemoryClientStructure(t *testing.T) {
	client := NewMemoryClient()
	docID := client.CreateDocument("t", "abc\ndefgh\n")
	client.SetStyle(docID, 5, 7, TextStyle{Bold: true})

	paragraphs, err := client.Structure(context.Background(), docID)
	require.NoError(t, err)

	want := []Paragraph{
		{StartIndex: 0, Text: "abc", Runs: []TextRun{
			{StartIndex: 0, EndIndex: 3, Text: "abc"},
		}},
		{StartIndex: 4, Text: "defgh", Runs: []TextRun{
			{StartIndex: 4, EndIndex: 5, Text: "d"},
			{StartIndex: 5, EndIndex: 7, Text: "ef", Style: TextStyle{Bold: true}},
			{StartIndex: 7, EndIndex: 9, Text: "gh"},
		}},
		{StartIndex: 10, Text: ""},
	}
	if diff := cmp.Diff(want, paragraphs); diff != "" {
		t.Errorf("Structure mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryClientCopyDeleteExport(t *testing.T) {
	ctx := context.Background()
	client := NewMemoryClient()
	docID := client.CreateDocument("template", "hello")
	client.SetStyle(docID, 0, 5, TextStyle{Bold: true})

	copyID, err := client.Copy(ctx, docID, "working copy")
	require.NoError(t, err)
	require.NotEqual(t, docID, copyID)

	// Edits to the copy leave the original untouched.
	require.NoError(t, client.BatchEdit(ctx, copyID, []Edit{ReplaceAll("hello", "bye")}))
	original, err := client.Text(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, "hello", original)

	data, err := client.Export(ctx, copyID, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "bye", string(data))

	require.NoError(t, client.Delete(ctx, copyID))
	assert.False(t, client.Exists(copyID))
	assert.True(t, client.Exists(docID))
	assert.Equal(t, 1, client.DeleteCalls(copyID))

	err = client.Delete(ctx, copyID)
	assert.Error(t, err)
	assert.Equal(t, 2, client.DeleteCalls(copyID))
}

func TestMemoryClientFailNextConsumedOnce(t *testing.T) {
	ctx := context.Background()
	client := NewMemoryClient()
	docID := client.CreateDocument("t", "hello")

	client.FailNext("text", assert.AnError)
	_, err := client.Text(ctx, docID)
	assert.ErrorIs(t, err, assert.AnError)

	text, err := client.Text(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestMemoryClientUnknownDocument(t *testing.T) {
	ctx := context.Background()
	client := NewMemoryClient()

	_, err := client.Text(ctx, "doc-404")
	assert.Error(t, err)
	_, err = client.Structure(ctx, "doc-404")
	assert.Error(t, err)
	_, err = client.Copy(ctx, "doc-404", "copy")
	assert.Error(t, err)
	_, err = client.Export(ctx, "doc-404", "pdf")
	assert.Error(t, err)
	assert.Error(t, client.BatchEdit(ctx, "doc-404", []Edit{ReplaceAll("a", "b")}))
}
