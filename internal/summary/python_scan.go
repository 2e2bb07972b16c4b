package summary

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Exported variables.
var (
	ErrMissingFunctionName = errors.New("def without a function name")
	ErrUnbalancedBrackets  = errors.New("unbalanced brackets")
	ErrUnterminatedString  = errors.New("unterminated string literal")
)

// scanPythonDefs finds `def name` and `async def name` at the start of logical
// lines. Comments and string literals of every form (prefixed, triple-quoted,
// f-strings) are skipped, so definitions quoted in docstrings do not count.
// It covers grammar newer than the tree parser understands. It fails on
// unterminated strings, unbalanced brackets and a def with no name.
func scanPythonDefs(src []byte) ([]string, error) {
	var (
		names      []string
		depth      int
		lineStart  = true
		afterAsync bool
		expectName bool
	)

	for i := 0; i < len(src); {
		c := src[i]

		if expectName && !isIdentByte(c) && c != ' ' && c != '\t' {
			return nil, fmt.Errorf("%w at offset %d", ErrMissingFunctionName, i)
		}

		switch {
		case c == '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '\\' && i+1 < len(src) && src[i+1] == '\n':
			i += 2
		case c == '\n':
			if depth == 0 {
				lineStart, afterAsync, expectName = true, false, false
			}
			i++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f':
			i++
		case c == '"' || c == '\'':
			end, err := skipPythonString(src, i)
			if err != nil {
				return nil, err
			}

			i = end
			lineStart, afterAsync, expectName = false, false, false
		case c == '(' || c == '[' || c == '{':
			depth++
			i++
			lineStart, afterAsync, expectName = false, false, false
		case c == ')' || c == ']' || c == '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrUnbalancedBrackets, c, i)
			}
			i++
			lineStart, afterAsync, expectName = false, false, false
		case isIdentByte(c):
			start := i
			for i < len(src) && (isIdentByte(src[i]) || (src[i] >= '0' && src[i] <= '9')) {
				i++
			}

			word := string(src[start:i])

			if i < len(src) && (src[i] == '"' || src[i] == '\'') && isStringPrefix(word) {
				end, err := skipPythonString(src, i)
				if err != nil {
					return nil, err
				}

				i = end
				lineStart, afterAsync, expectName = false, false, false

				continue
			}

			switch {
			case expectName:
				names = append(names, word)
				expectName = false
			case word == "def" && (lineStart || afterAsync):
				expectName = true
			case word == "async" && lineStart:
				afterAsync = true
			default:
				afterAsync = false
			}

			lineStart = false
		default:
			i++
			lineStart, afterAsync, expectName = false, false, false
		}
	}

	if expectName {
		return nil, fmt.Errorf("%w at end of file", ErrMissingFunctionName)
	}

	if depth != 0 {
		return nil, fmt.Errorf("%w: %d left open at end of file", ErrUnbalancedBrackets, depth)
	}

	return names, nil
}

// skipPythonString returns the offset just past the literal whose opening quote
// is at src[start]. A backslash always escapes the next byte, which holds for
// raw strings too as far as finding the end is concerned.
func skipPythonString(src []byte, start int) (int, error) {
	quote := src[start]
	triple := bytes.HasPrefix(src[start:], []byte{quote, quote, quote})

	i := start + 1
	if triple {
		i = start + 3
	}

	for i < len(src) {
		switch c := src[i]; {
		case c == '\\':
			i += 2
		case triple && bytes.HasPrefix(src[i:], []byte{quote, quote, quote}):
			return i + 3, nil
		case !triple && c == quote:
			return i + 1, nil
		case !triple && c == '\n':
			return 0, fmt.Errorf("%w at offset %d", ErrUnterminatedString, start)
		default:
			i++
		}
	}

	return 0, fmt.Errorf("%w at offset %d", ErrUnterminatedString, start)
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isStringPrefix(word string) bool {
	switch strings.ToLower(word) {
	case "r", "u", "b", "f", "br", "rb", "fr", "rf":
		return true
	default:
		return false
	}
}
