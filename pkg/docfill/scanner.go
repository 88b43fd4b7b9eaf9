package docfill

import (
	"regexp"
	"strings"
)

// Block is a matched (or heuristically recovered) marker pair discovered
// by scanning document text. Offsets are valid only against the text
// state the scan ran on; any mutation invalidates them.
type Block struct {
	// Start is the offset of the start marker; End is just past the end
	// marker, or past the recovered body when the block is unterminated.
	Start int
	End   int
	// StartText and EndText are the literal marker spellings as they
	// appear in the document. EndText is empty for unterminated blocks.
	StartText string
	EndText   string
	Body      string
	// Raw is the literal document text the block occupies, markers and
	// stray fragments included. For unterminated blocks Raw can extend
	// past the trimmed Body.
	Raw string
	// Unterminated marks a block recovered by the tolerant-unterminated
	// policy: no end marker was found, so the body runs to the nearest
	// parent-scope marker or end of text.
	Unterminated bool
}

// FullText returns the literal document text the block occupies.
func (b Block) FullText() string {
	return b.Raw
}

// markerKind selects which marker family a scan balances against.
type markerKind int

const (
	kindLoop markerKind = iota
	kindConditional
)

var (
	loopStartRegex = regexp.MustCompile(`(?i)\{\{?\s*#each\b`)
	loopEndRegex   = regexp.MustCompile(`(?i)\{\{?\s*/endeach`)
	condStartRegex = regexp.MustCompile(`(?i)\{\{?\s*#if\b`)
	condEndRegex   = regexp.MustCompile(`(?i)\{\{?\s*/endif`)

	// scopeMarkerRegex recognizes any loop or conditional marker; it
	// bounds the recovered body of an unterminated block.
	scopeMarkerRegex = regexp.MustCompile(`(?i)\{\{?\s*[#/]\s*(each|if|endeach|endif)\b`)

	// strayBraceRegex trims trailing stray single-brace fragments left
	// behind by malformed closings, e.g. "… }" or "… {/endeach".
	strayBraceRegex = regexp.MustCompile(`\s*(\{+/?[a-zA-Z]*|\}+)\s*$`)
)

// placeholderSpellings returns the accepted literal spellings of a scalar
// placeholder, double-brace forms first so that single-brace replacement
// never strips the inner braces of a double-brace marker. Matching is
// case-insensitive, which also covers the all-uppercase spellings.
func placeholderSpellings(name string) []string {
	return []string{
		"{{ " + name + " }}",
		"{{" + name + "}}",
		"{ " + name + " }",
		"{" + name + "}",
	}
}

// loopStartSpellings returns the accepted spellings of {{#each name}}.
func loopStartSpellings(name string) []string {
	return []string{
		"{{#each " + name + " }}",
		"{{#each " + name + "}}",
		"{#each " + name + " }",
		"{#each " + name + "}",
	}
}

// loopEndSpellings returns the accepted spellings of {{/endeach}}.
func loopEndSpellings() []string {
	return []string{
		"{{/endeach }}",
		"{{/endeach}}",
		"{/endeach }",
		"{/endeach}",
	}
}

// conditionalStartSpellings returns the accepted spellings of {{#if name}}.
func conditionalStartSpellings(name string) []string {
	return []string{
		"{{#if " + name + " }}",
		"{{#if " + name + "}}",
		"{#if " + name + " }",
		"{#if " + name + "}",
	}
}

// conditionalEndSpellings returns the accepted spellings of {{/endif}}.
func conditionalEndSpellings() []string {
	return []string{
		"{{/endif }}",
		"{{/endif}}",
		"{/endif }",
		"{/endif}",
	}
}

// lowerASCII lowers only the ASCII letters of s. Marker vocabulary is
// pure ASCII, and folding must preserve byte offsets because every
// computed index is later used to slice the original text: full Unicode
// lowering changes byte lengths for runes like U+212A (Kelvin sign) and
// would misalign everything after them.
func lowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// indexFold finds the earliest occurrence of any needle in lower at or
// after from. lower must be the lowerASCII fold of the text being
// scanned, computed once by the caller; offsets in lower are valid in
// the original text because the fold preserves byte lengths. Returns the
// offset and the needle's length, or (-1, 0) when none occurs. Ties at
// the same offset resolve to the needle listed first.
func indexFold(lower string, needles []string, from int) (int, int) {
	if from > len(lower) {
		return -1, 0
	}
	best, bestLen := -1, 0
	for _, needle := range needles {
		idx := strings.Index(lower[from:], lowerASCII(needle))
		if idx < 0 {
			continue
		}
		at := from + idx
		if best < 0 || at < best {
			best, bestLen = at, len(needle)
		}
	}
	return best, bestLen
}

// replaceFold replaces every case-insensitive occurrence of old with new.
func replaceFold(text, old, new string) string {
	if old == "" {
		return text
	}
	lower := lowerASCII(text)
	needle := lowerASCII(old)

	var b strings.Builder
	pos := 0
	for {
		idx := strings.Index(lower[pos:], needle)
		if idx < 0 {
			b.WriteString(text[pos:])
			return b.String()
		}
		at := pos + idx
		b.WriteString(text[pos:at])
		b.WriteString(new)
		pos = at + len(old)
	}
}

// containsFold reports whether text contains s, case-insensitively.
func containsFold(text, s string) bool {
	return strings.Contains(lowerASCII(text), lowerASCII(s))
}

// markerRegexesFor returns the generic start/end recognizers for a kind.
func markerRegexesFor(kind markerKind) (*regexp.Regexp, *regexp.Regexp) {
	if kind == kindConditional {
		return condStartRegex, condEndRegex
	}
	return loopStartRegex, loopEndRegex
}

// balanced reports whether every start marker of the kind inside body is
// matched by an end marker inside body. A candidate end whose body fails
// this check would swallow a nested block's end marker.
func balanced(body string, kind markerKind) bool {
	startRe, endRe := markerRegexesFor(kind)
	return len(startRe.FindAllString(body, -1)) == len(endRe.FindAllString(body, -1))
}

// trimStrayBraces removes a trailing stray single-brace fragment from a
// recovered body.
func trimStrayBraces(body string) string {
	return strayBraceRegex.ReplaceAllString(body, "")
}

// completesMarker reports whether the scope-marker keyword match ending
// at pos is followed by an optional name and a closing brace, i.e. is a
// complete marker rather than a stray fragment.
func completesMarker(text string, pos int) bool {
	rest := text[pos:]
	rest = strings.TrimLeft(rest, " \t")
	for len(rest) > 0 && isNameByte(rest[0]) {
		rest = rest[1:]
	}
	rest = strings.TrimLeft(rest, " \t")
	return strings.HasPrefix(rest, "}")
}

func isNameByte(b byte) bool {
	return b == '_' || b == '-' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// findBlocks returns the non-overlapping top-level blocks for one marker
// pair, in document order. Matching uses nearest-enclosing-pair
// semantics: for each start marker, candidate end markers are tried in
// order and the first whose body is internally balanced wins. A start
// with end markers after it but none balancing is mis-nested and is
// rejected. A start with no end marker at all is recovered as an
// unterminated block whose body runs to the nearest parent-scope marker
// or end of text, with trailing stray brace fragments trimmed.
//
// The second return value collects the template defects encountered;
// they are diagnostics, never hard failures.
func findBlocks(text string, startSpellings, endSpellings []string, kind markerKind) ([]Block, []error) {
	var blocks []Block
	var defects []error

	// Folded once per scan; every search below reuses it.
	lower := lowerASCII(text)

	pos := 0
	for {
		startIdx, startLen := indexFold(lower, startSpellings, pos)
		if startIdx < 0 {
			break
		}
		bodyStart := startIdx + startLen

		block, ok := matchEnd(text, lower, startIdx, bodyStart, endSpellings, kind)
		if ok {
			blocks = append(blocks, block)
			pos = block.End
			continue
		}

		// End markers exist after the start but none produces a balanced
		// body: the start is mis-nested. Reject it and rescan from just
		// past it so an inner block can still match.
		if endIdx, _ := indexFold(lower, endSpellings, bodyStart); endIdx >= 0 {
			defects = append(defects, NewTemplateError(
				"mis-nested block rejected", text[startIdx:bodyStart], startIdx))
			pos = bodyStart
			continue
		}

		// No end marker at all: tolerant-unterminated recovery. The body
		// runs to the nearest complete parent-scope marker or end of
		// text; an incomplete trailing marker fragment stays inside the
		// raw region (so replacement consumes it) but is trimmed from
		// the body.
		rest := text[bodyStart:]
		raw := rest
		if loc := scopeMarkerRegex.FindStringIndex(rest); loc != nil && completesMarker(rest, loc[1]) {
			raw = rest[:loc[0]]
		}
		body := trimStrayBraces(raw)
		defects = append(defects, NewTemplateError(
			"unterminated block recovered", text[startIdx:bodyStart], startIdx))
		blocks = append(blocks, Block{
			Start:        startIdx,
			End:          bodyStart + len(raw),
			StartText:    text[startIdx:bodyStart],
			Body:         body,
			Raw:          text[startIdx : bodyStart+len(raw)],
			Unterminated: true,
		})
		pos = bodyStart + len(raw)
	}

	return blocks, defects
}

// matchEnd finds the first balanced end marker for a start at startIdx.
// lower is the lowerASCII fold of text.
func matchEnd(text, lower string, startIdx, bodyStart int, endSpellings []string, kind markerKind) (Block, bool) {
	from := bodyStart
	for {
		endIdx, endLen := indexFold(lower, endSpellings, from)
		if endIdx < 0 {
			return Block{}, false
		}
		body := text[bodyStart:endIdx]
		if balanced(body, kind) {
			return Block{
				Start:     startIdx,
				End:       endIdx + endLen,
				StartText: text[startIdx:bodyStart],
				EndText:   text[endIdx : endIdx+endLen],
				Body:      body,
				Raw:       text[startIdx : endIdx+endLen],
			}, true
		}
		from = endIdx + endLen
	}
}
