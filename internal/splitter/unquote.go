package splitter

import (
	"fmt"
	"strconv"
	"strings"
)

// EscapeError reports an escape sequence outside the closed set recognized
// inside quoted values.
type EscapeError struct {
	Seq string // the offending sequence, e.g. `\x`
	Pos int    // byte offset of the backslash within the quoted value
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("invalid escape sequence %q at position %d", e.Seq, e.Pos)
}

// BareQuoteError reports an unescaped double quote inside an already-open
// quoted value.
type BareQuoteError struct {
	Pos int
}

func (e *BareQuoteError) Error() string {
	return fmt.Sprintf("unescaped quote at position %d inside quoted value", e.Pos)
}

// Unquote decodes a double-quoted value. The recognized escapes are exactly
// \" \\ \n \t \r and \uXXXX (4 hex digits); anything else after a backslash
// is an error, as are an unterminated quote and a bare interior quote.
// Input that does not start with a double quote passes through unchanged.
func Unquote(value string) (string, error) {
	if len(value) == 0 || value[0] != '"' {
		return value, nil
	}

	var out strings.Builder
	i := 1
	for i < len(value) {
		c := value[i]
		switch c {
		case '\\':
			if i+1 >= len(value) {
				return "", &EscapeError{Seq: `\`, Pos: i}
			}
			n := value[i+1]
			switch n {
			case '"':
				out.WriteByte('"')
				i += 2
			case '\\':
				out.WriteByte('\\')
				i += 2
			case 'n':
				out.WriteByte('\n')
				i += 2
			case 't':
				out.WriteByte('\t')
				i += 2
			case 'r':
				out.WriteByte('\r')
				i += 2
			case 'u':
				if i+6 > len(value) {
					return "", &EscapeError{Seq: value[i:], Pos: i}
				}
				hex := value[i+2 : i+6]
				code, err := strconv.ParseUint(hex, 16, 32)
				if err != nil {
					return "", &EscapeError{Seq: value[i : i+6], Pos: i}
				}
				out.WriteRune(rune(code))
				i += 6
			default:
				return "", &EscapeError{Seq: value[i : i+2], Pos: i}
			}
		case '"':
			// Closing quote must end the value; a quote with trailing
			// characters re-opens quoting mid-value.
			if i != len(value)-1 {
				return "", &BareQuoteError{Pos: i}
			}
			return out.String(), nil
		default:
			out.WriteByte(c)
			i++
		}
	}
	return "", &UnbalancedQuoteError{Pos: 0}
}
