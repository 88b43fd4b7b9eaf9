package docfill

import (
	"fmt"
	"strconv"
	"strings"
)

// namedColors is the fixed color table accepted by the color: and
// bgcolor: attribute tokens.
var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#00ff00",
	"blue":      "#0000ff",
	"yellow":    "#ffff00",
	"orange":    "#ffa500",
	"purple":    "#800080",
	"gray":      "#808080",
	"grey":      "#808080",
	"lightgray": "#d3d3d3",
	"darkgray":  "#404040",
	"cyan":      "#00ffff",
	"magenta":   "#ff00ff",
}

// ParseStyleAttributes parses a caller-supplied attribute string into a
// TextStyle. Accepted tokens, separated by spaces or commas:
//
//	bold  italic  underline  size:NN  color:NAME  bgcolor:NAME
//
// Color names come from the fixed named-color table. An unknown token or
// color name is an error.
func ParseStyleAttributes(attrs string) (TextStyle, error) {
	var style TextStyle

	tokens := strings.FieldsFunc(attrs, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	for _, token := range tokens {
		lowered := strings.ToLower(token)
		switch {
		case lowered == "bold":
			style.Bold = true
		case lowered == "italic":
			style.Italic = true
		case lowered == "underline":
			style.Underline = true
		case strings.HasPrefix(lowered, "size:"):
			size, err := strconv.ParseFloat(lowered[len("size:"):], 64)
			if err != nil || size <= 0 {
				return TextStyle{}, fmt.Errorf("invalid size attribute: %s", token)
			}
			style.FontSize = size
		case strings.HasPrefix(lowered, "color:"):
			hex, ok := namedColors[lowered[len("color:"):]]
			if !ok {
				return TextStyle{}, fmt.Errorf("unknown color name: %s", token)
			}
			style.Color = hex
		case strings.HasPrefix(lowered, "bgcolor:"):
			hex, ok := namedColors[lowered[len("bgcolor:"):]]
			if !ok {
				return TextStyle{}, fmt.Errorf("unknown bgcolor name: %s", token)
			}
			style.BackgroundColor = hex
		default:
			return TextStyle{}, fmt.Errorf("unknown style attribute: %s", token)
		}
	}
	return style, nil
}
