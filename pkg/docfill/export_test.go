package docfill

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillAndExport(t *testing.T) {
	client := NewMemoryClient()
	engine := newTestEngine(client)
	templateID := client.CreateDocument("resume template",
		"{{fullName}}\n{{#each workExperience}}{{position}} at {{company}}\n{{/endeach}}")

	data, err := engine.FillAndExport(context.Background(), templateID, testProfile())
	require.NoError(t, err)
	assert.Equal(t,
		"Ada Lovelace\nEngineer at Acme\nAnalyst at Initech\n",
		string(data))

	// The template is untouched and the working copy is gone.
	text, err := client.Text(context.Background(), templateID)
	require.NoError(t, err)
	assert.Contains(t, text, "{{fullName}}")
	assert.False(t, client.Exists("doc-2"))
	assert.Equal(t, 1, client.DeleteCalls("doc-2"))
}

func TestFillAndExportCopyFailure(t *testing.T) {
	client := NewMemoryClient()
	engine := newTestEngine(client)
	templateID := client.CreateDocument("t", "{{fullName}}")
	client.FailNext("copy", assert.AnError)

	_, err := engine.FillAndExport(context.Background(), templateID, testProfile())
	require.Error(t, err)
	assert.True(t, IsRemoteError(err))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestFillAndExportCleansUpAfterFillFailure(t *testing.T) {
	client := NewMemoryClient()
	engine := newTestEngine(client)
	templateID := client.CreateDocument("t", "{{fullName}}")
	client.FailNext("text", assert.AnError)

	_, err := engine.FillAndExport(context.Background(), templateID, testProfile())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)

	// The working copy was deleted exactly once despite the failure.
	assert.False(t, client.Exists("doc-2"))
	assert.Equal(t, 1, client.DeleteCalls("doc-2"))
}

func TestFillAndExportCleanupFailureDoesNotMaskResult(t *testing.T) {
	client := NewMemoryClient()
	engine := newTestEngine(client)
	templateID := client.CreateDocument("t", "hello {{firstName}}")
	client.FailNext("delete", assert.AnError)

	data, err := engine.FillAndExport(context.Background(), templateID, testProfile())
	require.NoError(t, err)
	assert.Equal(t, "hello Ada", string(data))
}

func TestFillAndExportNilProfileTitle(t *testing.T) {
	client := NewMemoryClient()
	engine := newTestEngine(client)
	templateID := client.CreateDocument("t", "static text")

	data, err := engine.FillAndExport(context.Background(), templateID, nil)
	require.NoError(t, err)
	assert.Equal(t, "static text", string(data))
}

func TestFillEndToEnd(t *testing.T) {
	client := NewMemoryClient()
	engine := newTestEngine(client)
	docID := client.CreateDocument("t",
		"{{#each workExperience}}{{position}} at {{company}} ({{startDate}}-{{endDate}})\n"+
			"{{#each description}}• {{item}}\n{{/endeach}}{{/endeach}}")

	profile := &Profile{
		FirstName: "Ada",
		LastName:  "Lovelace",
		WorkExperience: []WorkExperience{
			{
				Position:    "Engineer",
				Company:     "Acme",
				StartDate:   "2020-01-01",
				Current:     true,
				Description: "Built X\nShipped Y",
			},
		},
	}

	require.NoError(t, engine.Fill(context.Background(), docID, profile))
	assert.Equal(t,
		"Engineer at Acme (2020-Present)\n• Built X\n• Shipped Y\n",
		docText(t, client, docID))
}

func TestFillAppliesConditionsAfterPlaceholders(t *testing.T) {
	client := NewMemoryClient()
	engine := newTestEngine(client)
	docID := client.CreateDocument("t",
		"{{#if hasSummary}}Summary: {{summary}}\n{{/endif}}{{#if hasCertifications}}certs{{/endif}}{{fullName}}")

	profile := &Profile{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Summary:   "Programs engines.",
	}

	require.NoError(t, engine.Fill(context.Background(), docID, profile))
	assert.Equal(t, "Summary: Programs engines.\nAda Lovelace", docText(t, client, docID))
}
