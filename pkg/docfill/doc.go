// Package docfill expands document templates through a remote,
// text-oriented editing API.
//
// The engine fills rich-text templates it can only address through flat
// text: search-and-replace over literal content plus index-range style
// edits. It substitutes scalar placeholders, expands repeated blocks
// over collections (including one level of nesting), includes or removes
// conditional blocks, and re-applies semantic formatting, all while the
// document's character offsets shift after every edit.
//
// # Quick Start
//
//	client := docfill.NewMemoryClient() // or a real DocumentClient
//	engine := docfill.New(client)
//
//	profile, err := docfill.LoadProfile("profile.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pdf, err := engine.FillAndExport(ctx, templateID, profile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", pdf, 0644)
//
// # Template Syntax
//
// Markers are case-insensitive and accept both double- and single-brace
// spellings, with or without internal spaces:
//
//	{{fullName}}  { fullName }  {{FULLNAME}}     - Scalar placeholder
//	{{#each workExperience}}...{{/endeach}}      - Loop block
//	{{#if hasSummary}}...{{/endif}}              - Conditional block
//	{{item}} {{index}} {{index1}}                - Nested per-line loop tokens
//
// A loop body may contain one level of nested per-line loops, e.g. a
// bullet list derived from a multi-line description field. The bullet
// glyph is detected from the template body itself and defaults to the
// bullet character.
//
// Malformed templates are recovered heuristically, never failed hard:
// unterminated blocks take their body up to the nearest enclosing marker
// or end of document, and mis-nested blocks are rejected so their inner
// blocks can still match.
//
// # Pipeline
//
// A fill runs phases in a fixed order: loop expansion to a fixed point
// (each pass re-fetches the text, because every applied batch
// invalidates computed offsets), scalar placeholder substitution,
// conditional processing, and formatting re-application last, from a
// single fresh structural scan.
//
// Because the replace-all primitive touches every occurrence of a
// literal, two loop instances producing identical text cannot be
// addressed individually. The expander therefore swaps each block for a
// collision-resistant temporary marker first, then swaps the marker for
// the final content.
//
// # Working Copies
//
// FillAndExport never mutates the template: it copies the document,
// fills the copy, exports it, and deletes it. The delete always runs; a
// failed delete is logged and never masks the fill or export result.
//
// # Thread Safety
//
// An Engine may run fills of distinct documents concurrently. Two
// concurrent fills of the same working copy are not supported; the
// interleaving of offset-dependent mutations is undefined.
package docfill
