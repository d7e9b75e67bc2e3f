package meteor

import "fmt"

// Meteor is a validated record: one context, one namespace, and a non-empty
// ordered token sequence. The namespace-match invariant is enforced at
// construction and can never be violated later.
type Meteor struct {
	context   Context
	namespace Namespace
	tokens    []Token
}

// New creates a Meteor record. It fails on an empty token list, and on any
// token whose explicit namespace or context differs from the record's; a
// mismatch is never silently reassigned.
func New(ctx Context, ns Namespace, tokens []Token) (Meteor, error) {
	if ctx.IsZero() {
		return Meteor{}, &SemanticError{
			Code:    ErrCodeEmptyContext,
			Message: "record requires a context",
		}
	}
	if len(tokens) == 0 {
		return Meteor{}, &SemanticError{
			Code:    ErrCodeEmptyTokens,
			Message: fmt.Sprintf("record %s:%s requires at least one token", ctx, ns),
		}
	}
	for _, tok := range tokens {
		if !tok.Addressed() {
			continue
		}
		if tok.Namespace() != ns {
			return Meteor{}, &SemanticError{
				Code: ErrCodeNamespaceMismatch,
				Message: fmt.Sprintf("token %q claims namespace %q, record is in %q",
					tok.Key().Original(), tok.Namespace(), ns),
			}
		}
		if tok.Context() != ctx {
			return Meteor{}, &SemanticError{
				Code: ErrCodeNamespaceMismatch,
				Message: fmt.Sprintf("token %q claims context %q, record is in %q",
					tok.Key().Original(), tok.Context(), ctx),
			}
		}
	}

	// Copy to keep the record immutable against caller mutation.
	owned := make([]Token, len(tokens))
	copy(owned, tokens)
	return Meteor{context: ctx, namespace: ns, tokens: owned}, nil
}

// Context returns the record's context.
func (m Meteor) Context() Context { return m.context }

// Namespace returns the record's namespace.
func (m Meteor) Namespace() Namespace { return m.namespace }

// Tokens returns a copy of the token sequence in encounter order.
func (m Meteor) Tokens() []Token {
	out := make([]Token, len(m.tokens))
	copy(out, m.tokens)
	return out
}

// Len returns the token count. A constructed Meteor always has Len >= 1.
func (m Meteor) Len() int { return len(m.tokens) }

// First returns the first token. Calling First on a zero Meteor is a
// programming error and panics: construction guarantees a non-empty list.
func (m Meteor) First() Token {
	if len(m.tokens) == 0 {
		panic("meteor: First on empty record, construction was bypassed")
	}
	return m.tokens[0]
}

func (m Meteor) String() string {
	return fmt.Sprintf("%s:%s (%d tokens)", m.context, m.namespace, len(m.tokens))
}
