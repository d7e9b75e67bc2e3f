package meteor

// DefaultContextName is the context used when addressing omits one.
const DefaultContextName = "app"

// Context is a named isolation boundary for stored data. Contexts compare by
// name; two Context values with the same name are the same context.
type Context struct {
	name string
}

// NewContext creates a context. The name must be non-empty.
func NewContext(name string) (Context, error) {
	if name == "" {
		return Context{}, &SemanticError{
			Code:    ErrCodeEmptyContext,
			Message: "context name must not be empty",
		}
	}
	return Context{name: name}, nil
}

// DefaultContext returns the "app" context.
func DefaultContext() Context {
	return Context{name: DefaultContextName}
}

// Name returns the context name.
func (c Context) Name() string { return c.name }

func (c Context) String() string { return c.name }

// IsZero reports whether c is the uninitialized zero value, which is distinct
// from any valid context.
func (c Context) IsZero() bool { return c.name == "" }
