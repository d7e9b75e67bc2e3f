package splitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBasic(t *testing.T) {
	segs := Split("a=1;b=2;c=3", ";", DefaultConfig())
	assert.Equal(t, []string{"a=1", "b=2", "c=3"}, segs)
}

func TestSplitDropsEmptySegments(t *testing.T) {
	segs := Split("a=1;;b=2;", ";", DefaultConfig())
	assert.Equal(t, []string{"a=1", "b=2"}, segs)
}

func TestSplitKeepEmpty(t *testing.T) {
	cfg := Config{Escapes: EscapeInQuotes, KeepEmpty: true}
	segs := Split("a::b", ":", cfg)
	assert.Equal(t, []string{"a", "", "b"}, segs)
}

func TestSplitQuotedDelimiterNotStructural(t *testing.T) {
	segs := Split(`msg="hello; world";next=1`, ";", DefaultConfig())
	assert.Equal(t, []string{`msg="hello; world"`, "next=1"}, segs)
}

func TestSplitEscapedQuoteInsideQuotes(t *testing.T) {
	// The escaped quote must not close quoting; the ";" stays literal.
	segs := Split(`msg="say \"hi\"; bye";x=1`, ";", DefaultConfig())
	assert.Equal(t, []string{`msg="say \"hi\"; bye"`, "x=1"}, segs)
}

func TestSplitMultiCharDelimiter(t *testing.T) {
	segs := Split("a=1 :;: b=2 :;: c=3", ":;:", DefaultConfig())
	assert.Equal(t, []string{"a=1", "b=2", "c=3"}, segs)
}

func TestSplitMultiCharPartialMatchRetained(t *testing.T) {
	// ":;" without the closing ":" is not a boundary and stays literal.
	segs := Split("a=:;b :;: c=2", ":;:", DefaultConfig())
	assert.Equal(t, []string{"a=:;b", "c=2"}, segs)
}

func TestSplitMultiCharDelimiterInsideQuotes(t *testing.T) {
	segs := Split(`a="x :;: y" :;: b=2`, ":;:", DefaultConfig())
	assert.Equal(t, []string{`a="x :;: y"`, "b=2"}, segs)
}

func TestSplitUnbalancedQuotesBestEffort(t *testing.T) {
	segs := Split(`a="unclosed;b=2`, ";", DefaultConfig())
	// The open quote swallows the rest.
	assert.Equal(t, []string{`a="unclosed;b=2`}, segs)
}

func TestSplitStrictUnbalancedQuotes(t *testing.T) {
	_, err := SplitStrict(`a="unclosed;b=2`, ";", DefaultConfig())
	require.Error(t, err)
	var qe *UnbalancedQuoteError
	require.ErrorAs(t, err, &qe)
	// Zero-based byte offset of the opening quote.
	assert.Equal(t, 2, qe.Pos)
}

func TestSplitStrictBalanced(t *testing.T) {
	segs, err := SplitStrict(`a="ok";b=2`, ";", DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{`a="ok"`, "b=2"}, segs)
}

func TestSplitEscapeModeNone(t *testing.T) {
	// Without escape handling the backslash has no effect; the second quote
	// closes the value and the ";" splits.
	cfg := Config{Escapes: EscapeNone, Trim: true}
	segs := Split(`a="x\";b=2`, ";", cfg)
	assert.Equal(t, []string{`a="x\"`, "b=2"}, segs)
}

func TestSplitEscapeEverywhere(t *testing.T) {
	cfg := Config{Escapes: EscapeEverywhere, Trim: true}
	segs := Split(`a=x\;b;c=2`, ";", cfg)
	assert.Equal(t, []string{`a=x\;b`, "c=2"}, segs)
}

func TestSplitNoTrim(t *testing.T) {
	cfg := Config{Escapes: EscapeInQuotes}
	segs := Split("a=1 ; b=2", ";", cfg)
	assert.Equal(t, []string{"a=1 ", " b=2"}, segs)
}

func TestUnquotePassthrough(t *testing.T) {
	got, err := Unquote("plain value")
	require.NoError(t, err)
	assert.Equal(t, "plain value", got)
}

func TestUnquoteSimple(t *testing.T) {
	got, err := Unquote(`"hello; world"`)
	require.NoError(t, err)
	assert.Equal(t, "hello; world", got)
}

func TestUnquoteEscapes(t *testing.T) {
	got, err := Unquote(`"line1\nline2\ttab \"quoted\" back\\slash\r"`)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\ttab \"quoted\" back\\slash\r", got)
}

func TestUnquoteUnicodeEscape(t *testing.T) {
	got, err := Unquote(`"snow ☃ man"`)
	require.NoError(t, err)
	assert.Equal(t, "snow ☃ man", got)
}

func TestUnquoteUnicodeEscapeMulti(t *testing.T) {
	got, err := Unquote(`"éè"`)
	require.NoError(t, err)
	assert.Equal(t, "éè", got)
}

func TestUnquoteLiteralUnicodePassthrough(t *testing.T) {
	got, err := Unquote(`"snow ☃ man"`)
	require.NoError(t, err)
	assert.Equal(t, "snow ☃ man", got)
}

func TestUnquoteInvalidEscape(t *testing.T) {
	_, err := Unquote(`"bad \x escape"`)
	var ee *EscapeError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, `\x`, ee.Seq)
}

func TestUnquoteShortUnicodeEscape(t *testing.T) {
	_, err := Unquote(`"bad \u12"`)
	var ee *EscapeError
	require.ErrorAs(t, err, &ee)
}

func TestUnquoteBadUnicodeHex(t *testing.T) {
	_, err := Unquote(`"bad \uZZZZ!"`)
	var ee *EscapeError
	require.ErrorAs(t, err, &ee)
}

func TestUnquoteUnterminated(t *testing.T) {
	_, err := Unquote(`"never ends`)
	var qe *UnbalancedQuoteError
	require.ErrorAs(t, err, &qe)
}

func TestUnquoteBareInteriorQuote(t *testing.T) {
	_, err := Unquote(`"he said "hi""`)
	var be *BareQuoteError
	require.ErrorAs(t, err, &be)
}
