// Package message turns command output into Discord messages: splitting long
// text into platform-sized chunks, fencing code blocks and delivering the
// result to a channel.
package message

import (
	"strings"
	"unicode/utf8"
)

// Split breaks text into chunks shorter than maxSize runes, preferring to
// break on line boundaries. A line that can never fit a chunk on its own is
// hard split into maxSize-rune slices.
//
// Rejoining the chunks with "\n" reproduces text exactly unless a hard split
// happened. Empty text yields no chunks.
func Split(text string, maxSize int) []string {
	if maxSize <= 0 {
		panic("message: Split called with non-positive maxSize")
	}
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) < maxSize {
		return []string{text}
	}

	var (
		chunks []string
		buf    strings.Builder
		bufLen int // runes in buf, counting one trailing newline per line
	)

	flush := func() {
		if bufLen == 0 {
			return
		}
		chunks = append(chunks, strings.TrimSuffix(buf.String(), "\n"))
		buf.Reset()
		bufLen = 0
	}

	appendLine := func(line string, n int) {
		buf.WriteString(line)
		buf.WriteByte('\n')
		bufLen += n + 1
	}

	for _, line := range strings.Split(text, "\n") {
		n := utf8.RuneCountInString(line)
		if bufLen+n < maxSize {
			appendLine(line, n)
			continue
		}

		flush()
		if n < maxSize {
			appendLine(line, n)
			continue
		}
		chunks = append(chunks, hardSplit(line, maxSize)...)
	}
	flush()

	return chunks
}

// hardSplit cuts s into consecutive slices of size runes; the last one may be
// shorter.
func hardSplit(s string, size int) []string {
	var out []string
	for s != "" {
		end, count := 0, 0
		for end < len(s) && count < size {
			_, w := utf8.DecodeRuneInString(s[end:])
			end += w
			count++
		}
		out = append(out, s[:end])
		s = s[end:]
	}
	return out
}
