package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformPlainKeyUnchanged(t *testing.T) {
	got, err := Transform("button")
	require.NoError(t, err)
	assert.Equal(t, "button", got)
}

func TestTransformSingleIndex(t *testing.T) {
	got, err := Transform("list[0]")
	require.NoError(t, err)
	assert.Equal(t, "list__i_0", got)
}

func TestTransformMultiIndex(t *testing.T) {
	got, err := Transform("grid[2,3]")
	require.NoError(t, err)
	assert.Equal(t, "grid__i_2_3", got)
}

func TestTransformAppend(t *testing.T) {
	got, err := Transform("queue[]")
	require.NoError(t, err)
	assert.Equal(t, "queue__i_APPEND", got)
}

func TestTransformNamedIndex(t *testing.T) {
	got, err := Transform("dict[name]")
	require.NoError(t, err)
	assert.Equal(t, "dict__i_name", got)
}

func TestTransformTrimsIndexWhitespace(t *testing.T) {
	got, err := Transform("grid[ 2 , 3 ]")
	require.NoError(t, err)
	assert.Equal(t, "grid__i_2_3", got)
}

func TestTransformMismatchedBrackets(t *testing.T) {
	for _, key := range []string{"list[0", "list0]", "]list["} {
		_, err := Transform(key)
		var te *TransformError
		require.ErrorAs(t, err, &te, "key %q", key)
		assert.Contains(t, te.Error(), "mismatched", "key %q", key)
	}
}

func TestTransformEmptyBase(t *testing.T) {
	_, err := Transform("[0]")
	var te *TransformError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "empty name")
}

func TestTransformNestedBrackets(t *testing.T) {
	_, err := Transform("a[b[0]]")
	var te *TransformError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "nested")
}

func TestTransformInvalidIndexCharacter(t *testing.T) {
	_, err := Transform("list[a.b]")
	var te *TransformError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), `'.'`)
	assert.Contains(t, te.Error(), "position 1")
}

func TestTransformEmptyIndexInList(t *testing.T) {
	_, err := Transform("grid[1,,2]")
	var te *TransformError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "empty index")
}

func TestReverseTransformNoSeparator(t *testing.T) {
	assert.Equal(t, "button", ReverseTransform("button"))
}

func TestReverseTransformAppend(t *testing.T) {
	assert.Equal(t, "queue[]", ReverseTransform("queue__i_APPEND"))
}

func TestReverseTransformNumeric(t *testing.T) {
	assert.Equal(t, "list[0]", ReverseTransform("list__i_0"))
	assert.Equal(t, "grid[2,3]", ReverseTransform("grid__i_2_3"))
}

func TestReverseTransformNamed(t *testing.T) {
	assert.Equal(t, "dict[name]", ReverseTransform("dict__i_name"))
}

func TestReverseTransformUnknownSuffix(t *testing.T) {
	// No index marker: the whole suffix becomes one named index.
	assert.Equal(t, "foo[bar]", ReverseTransform("foo__bar"))
}

func TestRoundTrip(t *testing.T) {
	// Exact round-trip for bracket-free, numeric, and empty brackets.
	for _, key := range []string{"plain", "list[0]", "grid[2,3]", "queue[]", "dict[name]"} {
		flat, err := Transform(key)
		require.NoError(t, err)
		assert.Equal(t, key, ReverseTransform(flat), "key %q", key)
	}
}

func TestRoundTripLossyNamedIndex(t *testing.T) {
	// Underscore in a named index is indistinguishable from the joiner.
	flat, err := Transform("dict[my_key]")
	require.NoError(t, err)
	assert.Equal(t, "dict__i_my_key", flat)
	assert.Equal(t, "dict[my,key]", ReverseTransform(flat))
}
