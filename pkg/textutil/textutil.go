// Package textutil provides byte-level text utilities for C/C++ source
// scanning: comment stripping, binary detection, and line counting.
package textutil

import "bytes"

// BinarySniffLength is the maximum number of bytes scanned for null-byte
// detection. Matches the heuristic used by Git and most editors.
const BinarySniffLength = 8000

// IsBinary returns true if data contains a null byte within the first
// BinarySniffLength bytes. Empty data is not binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sniff := data
	if len(sniff) > BinarySniffLength {
		sniff = sniff[:BinarySniffLength]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}

// CountLines returns the number of newline-delimited lines in data.
// A non-empty buffer without a trailing newline counts the last partial line.
// Returns 0 for empty data.
func CountLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	lines := bytes.Count(data, []byte{'\n'})

	if data[len(data)-1] != '\n' {
		lines++
	}

	return lines
}

// stripMode tracks the lexical state of the comment-stripping scan.
type stripMode int

const (
	modeNormal stripMode = iota
	modeLineComment
	modeBlockComment
	modeString
	modeChar
)

// StripComments blanks out `//` and `/* */` comment regions in C/C++ source
// text. The result has the same length and the same line-terminator positions
// as the input, so line numbers computed on the output are valid for the
// original. Comment markers inside string and character literals are left
// untouched; escaped quotes do not terminate a literal.
func StripComments(text string) string {
	out := []byte(text)
	mode := modeNormal
	escaped := false

	for i := 0; i < len(out); i++ {
		c := out[i]

		switch mode {
		case modeNormal:
			switch {
			case c == '/' && i+1 < len(out) && out[i+1] == '/':
				out[i], out[i+1] = ' ', ' '
				mode = modeLineComment
				i++
			case c == '/' && i+1 < len(out) && out[i+1] == '*':
				out[i], out[i+1] = ' ', ' '
				mode = modeBlockComment
				i++
			case c == '"':
				mode = modeString
			case c == '\'':
				mode = modeChar
			}
		case modeLineComment:
			if c == '\n' {
				mode = modeNormal
			} else if c != '\r' {
				out[i] = ' '
			}
		case modeBlockComment:
			if c == '*' && i+1 < len(out) && out[i+1] == '/' {
				out[i], out[i+1] = ' ', ' '
				mode = modeNormal
				i++
			} else if c != '\n' && c != '\r' {
				out[i] = ' '
			}
		case modeString:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				mode = modeNormal
			}
		case modeChar:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '\'':
				mode = modeNormal
			}
		}
	}

	return string(out)
}
