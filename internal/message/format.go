package message

import "unicode/utf8"

const (
	// MaxMessageLength is the Discord limit for a single message, in characters.
	MaxMessageLength = 2000

	codeFence = "```"

	// CodeBlockOverhead is what CodeBlock adds around a chunk: each fence and
	// the newline separating it from the chunk.
	CodeBlockOverhead = len(codeFence)*2 + 2

	// MaxCodeFormattedMessageLength is the largest chunk that still fits the
	// platform limit once fenced.
	MaxCodeFormattedMessageLength = MaxMessageLength - CodeBlockOverhead
)

// CodeBlock wraps s in a fixed-width code fence.
func CodeBlock(s string) string {
	return codeFence + "\n" + s + "\n" + codeFence
}

// Format returns s fenced when code is set, unchanged otherwise.
func Format(s string, code bool) string {
	if code {
		return CodeBlock(s)
	}
	return s
}

// EffectiveLimit is the chunk size to split against for the given mode.
func EffectiveLimit(code bool) int {
	if code {
		return MaxCodeFormattedMessageLength
	}
	return MaxMessageLength
}

// Len reports the length of s as Discord counts it.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}
