// Package gemtext classifies the lines of a text/gemini body into
// typed elements. Elements carry byte offsets into the source buffer
// instead of copies of the text.
package gemtext

import "bytes"

type LineType int

const (
	Paragraph LineType = iota
	Preformatted
	Link
	Heading1
	Heading2
	Heading3
	Blockquote
	ListItem
)

func (t LineType) String() string {
	switch t {
	case Paragraph:
		return "paragraph"
	case Preformatted:
		return "preformatted"
	case Link:
		return "link"
	case Heading1:
		return "heading-1"
	case Heading2:
		return "heading-2"
	case Heading3:
		return "heading-3"
	case Blockquote:
		return "blockquote"
	case ListItem:
		return "list-item"
	}
	return "unknown"
}

// Line is a single classified line. Start and End are inclusive byte
// offsets into the buffer the line was parsed from; the terminating
// newline is excluded. An empty line has End == Start-1.
type Line struct {
	Type       LineType
	Start, End int
}

// Text returns the line's bytes within content, which must be the
// buffer the line was parsed from.
func (l Line) Text(content []byte) string {
	if l.End < l.Start {
		return ""
	}
	return string(content[l.Start : l.End+1])
}

var fence = []byte("```")

func classify(line []byte) LineType {
	switch line[0] {
	case '>':
		return Blockquote
	case '*':
		return ListItem
	case '#':
		if bytes.HasPrefix(line, []byte("###")) {
			return Heading3
		}
		if bytes.HasPrefix(line, []byte("##")) {
			return Heading2
		}
		return Heading1
	}
	if bytes.HasPrefix(line, []byte("=>")) {
		return Link
	}
	if bytes.HasPrefix(line, fence) {
		return Preformatted
	}
	return Paragraph
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// lineEnd returns the inclusive end offset of the line starting at
// offset and the offset of the following line. The final line is
// terminated by the end of the buffer instead of a newline.
func lineEnd(content []byte, offset int) (end, next int) {
	if i := bytes.IndexByte(content[offset:], '\n'); i >= 0 {
		return offset + i - 1, offset + i + 1
	}
	return len(content) - 1, len(content)
}

// Parse scans a gemtext buffer into ordered line elements. Outside a
// preformatted block, runs of whitespace between elements produce no
// elements. Inside one, every line is preformatted verbatim and blank
// lines are kept. The fence lines themselves only toggle the block
// state and yield no element.
func Parse(content []byte) []Line {
	var elements []Line
	var pre bool

	offset := 0
	for offset < len(content) {
		if !pre {
			for offset < len(content) && isSpace(content[offset]) {
				offset++
			}
			if offset >= len(content) {
				break
			}
		}

		end, next := lineEnd(content, offset)
		line := content[offset:next]

		if bytes.HasPrefix(line, fence) {
			pre = !pre
			offset = next
			continue
		}

		typ := Preformatted
		if !pre {
			typ = classify(line)
		}
		elements = append(elements, Line{Type: typ, Start: offset, End: end})
		offset = next
	}
	return elements
}

// ParseRaw splits a plain-text buffer into one preformatted element
// per line, with no classification and no blank-line skipping. Used
// for text responses that are not text/gemini.
func ParseRaw(content []byte) []Line {
	var elements []Line

	offset := 0
	for offset < len(content) {
		end, next := lineEnd(content, offset)
		elements = append(elements, Line{Type: Preformatted, Start: offset, End: end})
		offset = next
	}
	return elements
}
