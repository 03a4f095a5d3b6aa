package main

import (
	"fmt"
	"strings"

	"git.sr.ht/~petros/astro/gemini"
	"git.sr.ht/~petros/astro/gemini/gemtext"
	"git.sr.ht/~petros/astro/internal/browser"
	"git.sr.ht/~petros/astro/text"
)

const textWidth = 80

// render converts a document's elements to colored terminal output.
// It returns the text, the links with their vertical positions, and
// the page title (the first level-1 heading, defaulting to the URL).
func render(doc *gemini.Document, width int) (content string, links text.Links, title string) {
	if width <= 0 || width > textWidth {
		width = textWidth
	}
	var s strings.Builder
	var y int

	write := func(line string) {
		fmt.Fprintln(&s, line)
		y += strings.Count(line, "\n") + 1
	}

	for i, el := range doc.Elements {
		line := el.Text(doc.Content)
		switch el.Type {
		case gemtext.Heading1:
			if title == "" {
				title = strings.TrimSpace(strings.TrimPrefix(line, "#"))
			}
			write(text.Color(line, text.H1))
		case gemtext.Heading2:
			write(text.Color(line, text.H2))
		case gemtext.Heading3:
			write(text.Color(line, text.H3))
		case gemtext.Blockquote:
			write(text.Faint(text.Wrap(line, width)))
		case gemtext.ListItem:
			write(text.Color(text.Wrap(line, width), text.Slist))
		case gemtext.Preformatted:
			write(text.Color(line, text.Scode))
		case gemtext.Link:
			link, ok := browser.LinkFrom(doc, i)
			if !ok {
				write("Invalid link: " + line)
				continue
			}
			var extra string
			if link.Scheme != browser.SchemeGemini {
				extra = fmt.Sprintf(" (%s)", link.Scheme)
			}
			links.Add(y, link.URL, link.Name)
			write(fmt.Sprintf("→ %s%s", text.Color(link.Name, text.Slink), extra))
		default:
			write(text.Wrap(line, width))
		}
	}
	if title == "" {
		title = doc.URL
	}
	return s.String(), links, title
}
