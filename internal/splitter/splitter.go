package splitter

import (
	"fmt"
	"strings"
)

// EscapeMode controls where a backslash suppresses the structural meaning of
// the following character.
type EscapeMode int

const (
	// EscapeNone treats backslash as an ordinary character.
	EscapeNone EscapeMode = iota
	// EscapeInQuotes recognizes backslash escapes only inside double quotes.
	// This is the mode every meteor grammar uses.
	EscapeInQuotes
	// EscapeEverywhere recognizes backslash escapes in and out of quotes.
	EscapeEverywhere
)

// Config controls Split behavior.
type Config struct {
	Escapes EscapeMode
	// Trim removes leading/trailing whitespace from each segment.
	Trim bool
	// KeepEmpty retains zero-length segments. Off by default: the stream
	// grammars treat ";;" as a single boundary.
	KeepEmpty bool
}

// DefaultConfig is the configuration used by the stream grammars: escapes
// recognized inside quotes, results trimmed, empty segments dropped.
func DefaultConfig() Config {
	return Config{Escapes: EscapeInQuotes, Trim: true}
}

// UnbalancedQuoteError reports that a double quote opened at Pos never closed
// before end of input. Only SplitStrict and Unquote surface it; Split is
// best-effort and keeps the tail as a final segment.
type UnbalancedQuoteError struct {
	Pos int
}

func (e *UnbalancedQuoteError) Error() string {
	return fmt.Sprintf("unbalanced quotes: quote opened at position %d never closes", e.Pos)
}

// Split segments input on delim wherever it occurs outside an open double
// quote. Backslash-escaped characters are never structural (subject to
// cfg.Escapes). Multi-character delimiters match greedily: a partial match
// followed by a non-matching character is retained literally.
//
// Split never fails; an unclosed quote swallows the rest of the input into
// the final segment. Use SplitStrict when unbalanced quoting must be an error.
func Split(input, delim string, cfg Config) []string {
	segs, _ := split(input, delim, cfg)
	return segs
}

// SplitStrict behaves like Split but reports an UnbalancedQuoteError instead
// of splitting when quoting does not close by end of input.
func SplitStrict(input, delim string, cfg Config) ([]string, error) {
	segs, err := split(input, delim, cfg)
	if err != nil {
		return nil, err
	}
	return segs, nil
}

func split(input, delim string, cfg Config) ([]string, error) {
	if delim == "" {
		return emit([]string{input}, cfg), nil
	}

	var segs []string
	var cur strings.Builder
	inQuotes := false
	quotePos := 0

	for i := 0; i < len(input); {
		c := input[i]

		if c == '\\' && escapeActive(cfg.Escapes, inQuotes) && i+1 < len(input) {
			// Escaped character: copied verbatim, never structural.
			cur.WriteByte(c)
			cur.WriteByte(input[i+1])
			i += 2
			continue
		}

		if c == '"' {
			if !inQuotes {
				quotePos = i
			}
			inQuotes = !inQuotes
			cur.WriteByte(c)
			i++
			continue
		}

		if !inQuotes && strings.HasPrefix(input[i:], delim) {
			segs = append(segs, cur.String())
			cur.Reset()
			i += len(delim)
			continue
		}

		cur.WriteByte(c)
		i++
	}
	segs = append(segs, cur.String())

	if inQuotes {
		return emit(segs, cfg), &UnbalancedQuoteError{Pos: quotePos}
	}
	return emit(segs, cfg), nil
}

func escapeActive(mode EscapeMode, inQuotes bool) bool {
	switch mode {
	case EscapeInQuotes:
		return inQuotes
	case EscapeEverywhere:
		return true
	}
	return false
}

func emit(segs []string, cfg Config) []string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		if cfg.Trim {
			s = strings.TrimSpace(s)
		}
		if s == "" && !cfg.KeepEmpty {
			continue
		}
		out = append(out, s)
	}
	return out
}
