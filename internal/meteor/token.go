package meteor

// Token is an immutable (key, value) pair. The value is an opaque string and
// is never type-validated.
//
// A token parsed from the explicit grammar additionally claims the context
// and namespace it was addressed to; an unaddressed token inherits whatever
// record it is grouped into.
type Token struct {
	key       Key
	value     string
	addressed bool
	context   Context
	namespace Namespace
}

// NewToken creates an unaddressed token.
func NewToken(key Key, value string) Token {
	return Token{key: key, value: value}
}

// NewAddressedToken creates a token carrying an explicit context and
// namespace claim.
func NewAddressedToken(ctx Context, ns Namespace, key Key, value string) Token {
	return Token{key: key, value: value, addressed: true, context: ctx, namespace: ns}
}

// Key returns the token's key.
func (t Token) Key() Key { return t.key }

// Value returns the token's value.
func (t Token) Value() string { return t.value }

// Addressed reports whether the token claims an explicit context/namespace.
func (t Token) Addressed() bool { return t.addressed }

// Context returns the claimed context; meaningful only when Addressed.
func (t Token) Context() Context { return t.context }

// Namespace returns the claimed namespace; meaningful only when Addressed.
func (t Token) Namespace() Namespace { return t.namespace }

func (t Token) String() string {
	return t.key.Original() + "=" + t.value
}
