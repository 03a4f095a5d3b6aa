package text

import "bytes"

const softHyphen = '\u00AD'

// Wrap breaks line into lines no longer than maxlen by inserting
// newlines. Spaces, '-' and soft hyphens are natural breaking points;
// words longer than maxlen are broken mid-word.
func Wrap(line string, maxlen int) string {
	if maxlen <= 0 {
		return line
	}
	var buf, word bytes.Buffer
	var lineLen, wordLen int
	for _, r := range line {
		if r == '\r' {
			continue
		}
		if wordLen >= maxlen {
			if buf.Len() > 0 {
				buf.WriteRune('\n')
			}
			buf.Write(word.Bytes())
			word.Reset()
			lineLen = 0
			wordLen = 0
		}
		word.WriteRune(r)
		wordLen++

		if r == ' ' || r == '-' || r == softHyphen {
			if lineLen+wordLen >= maxlen {
				buf.WriteRune('\n')
				lineLen = 0
			}
			lineLen += wordLen
			buf.Write(word.Bytes())
			word.Reset()
			wordLen = 0
		}
	}
	if buf.Len() > 0 && (lineLen == 0 || lineLen+wordLen > maxlen) {
		buf.WriteRune('\n')
	}
	buf.Write(word.Bytes())
	return buf.String()
}

// RuneCount is the number of runes in s.
func RuneCount(s string) int {
	return len([]rune(s))
}
