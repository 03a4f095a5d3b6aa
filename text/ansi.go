package text

import "github.com/muesli/termenv"

// Style is a hex foreground color applied to rendered lines.
type Style string

const (
	H1    Style = "#FF5F5F" // heading 1
	H2    Style = "#FFFF87" // heading 2
	H3    Style = "#FF87FF" // heading 3
	Slink Style = "#6495ED" // links
	Scode Style = "#EEE8AA" // preformatted blocks
	Slist Style = "#87D787" // list items
)

var profile = termenv.ColorProfile()

// Color returns input with the given foreground color applied.
func Color(input string, style Style) string {
	return termenv.String(input).Foreground(profile.Color(string(style))).String()
}

// Faint renders input dimmed; used for blockquotes.
func Faint(input string) string {
	return termenv.String(input).Faint().String()
}

// Reverse swaps fore- and background; used for the selected link.
func Reverse(input string) string {
	return termenv.String(input).Reverse().String()
}
