package engine

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/meteor/internal/config"
	"github.com/roach88/meteor/internal/meteor"
	"github.com/roach88/meteor/internal/storage"
)

// Cursor is the engine's current (context, namespace). The implicit grammar
// resolves unqualified tokens against it; the explicit grammar never reads
// or writes it.
type Cursor struct {
	Context   meteor.Context
	Namespace meteor.Namespace
}

// Engine owns one storage instance, the cursor, and the command audit trail.
// Long-lived and mutated in place for the session lifetime; reset only via
// control commands.
type Engine struct {
	storage *storage.Storage
	profile config.Profile
	cursor  Cursor
	history []Record
	session string
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithLogger sets the engine's logger. Nil selects slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithNow overrides the audit timestamp source. Tests use a fixed clock for
// deterministic history.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithSession fixes the session id instead of generating one.
func WithSession(id string) Option {
	return func(e *Engine) { e.session = id }
}

// New creates an engine bound to the given limit profile, with the cursor at
// the default context and namespace.
func New(profile config.Profile, opts ...Option) *Engine {
	e := &Engine{
		storage: storage.New(),
		profile: profile,
		cursor:  defaultCursor(),
		session: uuid.NewString(),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func defaultCursor() Cursor {
	return Cursor{
		Context:   meteor.DefaultContext(),
		Namespace: meteor.DefaultNamespace(),
	}
}

// Profile returns the limit profile the engine was constructed with.
func (e *Engine) Profile() config.Profile { return e.profile }

// Session returns the engine's session id, stamped onto audit records.
func (e *Engine) Session() string { return e.session }

// Cursor returns the current cursor.
func (e *Engine) Cursor() Cursor { return e.cursor }

// SwitchNamespace moves the cursor to the named namespace. The change
// persists until the next switch or a cursor reset.
func (e *Engine) SwitchNamespace(path string) {
	ns := meteor.NewNamespace(path)
	if ns.Depth() >= meteor.WarnDepth {
		e.logger.Warn("deep namespace on cursor", "namespace", path, "depth", ns.Depth())
	}
	e.cursor.Namespace = ns
	e.logger.Debug("cursor namespace switched", "namespace", path)
}

// SwitchContext moves the cursor to the named context. Fails on an empty
// name.
func (e *Engine) SwitchContext(name string) error {
	ctx, err := meteor.NewContext(name)
	if err != nil {
		return err
	}
	e.cursor.Context = ctx
	e.logger.Debug("cursor context switched", "context", name)
	return nil
}

// SetCursor replaces the cursor wholesale. The aggregation path uses it to
// commit a shadow cursor once a whole call has validated. A deep namespace
// warns here the same way a legacy switch does.
func (e *Engine) SetCursor(c Cursor) {
	if c.Namespace.Depth() >= meteor.WarnDepth {
		e.logger.Warn("deep namespace on cursor",
			"namespace", c.Namespace.String(), "depth", c.Namespace.Depth())
	}
	e.cursor = c
}

// Set stores value at a fully addressed "ctx:ns:key" path. The key may use
// bracket notation; it is flattened before storage.
func (e *Engine) Set(path, value string) error {
	ref, err := parseKeyPath(path)
	if err != nil {
		e.record("set", path, err)
		return err
	}
	e.storage.Set(ref.ctx, ref.ns, ref.key, value)
	e.record("set", path, nil)
	return nil
}

// StoreToken stores one validated token under ctx/ns. This is the parsers'
// write path; the path form Set re-derives the same call.
func (e *Engine) StoreToken(ctx meteor.Context, ns meteor.Namespace, tok meteor.Token) {
	e.storage.Set(ctx.Name(), ns.String(), tok.Key().Flat(), tok.Value())
	e.record("set", ctx.Name()+":"+ns.String()+":"+tok.Key().Original(), nil)
}

// StoreMeteor stores every token of a validated record.
func (e *Engine) StoreMeteor(m meteor.Meteor) {
	for _, tok := range m.Tokens() {
		e.StoreToken(m.Context(), m.Namespace(), tok)
	}
}

// Get returns the value at "ctx:ns:key". The found flag distinguishes a
// missing key from a format error; the two are never conflated.
func (e *Engine) Get(path string) (value string, found bool, err error) {
	ref, err := parseKeyPath(path)
	if err != nil {
		return "", false, err
	}
	v, ok := e.storage.Get(ref.ctx, ref.ns, ref.key)
	return v, ok, nil
}

// Exists reports whether "ctx:ns:key" holds a value.
func (e *Engine) Exists(path string) bool {
	_, found, err := e.Get(path)
	return err == nil && found
}

// Delete removes the addressed key, namespace, or context depending on path
// arity. A missing target reports (false, nil): not-found, not failure.
// Deleting the same missing path twice reports not-found both times.
func (e *Engine) Delete(path string) (bool, error) {
	deleted, err := e.deleteTarget(path)
	e.record("delete", path, err)
	return deleted, err
}

func (e *Engine) deleteTarget(path string) (bool, error) {
	parts, err := splitPath(path)
	if err != nil {
		return false, err
	}
	switch len(parts) {
	case 1:
		return e.storage.DeleteContext(parts[0]), nil
	case 2:
		return e.storage.DeleteNamespace(parts[0], parts[1]), nil
	default:
		if parts[2] == "" {
			// "ctx:ns:" addresses the whole namespace.
			return e.storage.DeleteNamespace(parts[0], parts[1]), nil
		}
		key, err := meteor.NewKey(parts[2])
		if err != nil {
			return false, &CommandError{Code: ErrCodeBadKey, Message: err.Error(), Path: path}
		}
		return e.storage.DeleteKey(parts[0], parts[1], key.Flat()), nil
	}
}

// Contexts lists stored context names, sorted.
func (e *Engine) Contexts() []string { return e.storage.Contexts() }

// Namespaces lists the namespaces present in a context, sorted.
func (e *Engine) Namespaces(ctx string) []string { return e.storage.Namespaces(ctx) }

// Entries lists the key/value pairs under "ctx:ns", sorted by key.
func (e *Engine) Entries(ctx, ns string) []storage.Entry { return e.storage.Entries(ctx, ns) }

// IsFile reports whether "ctx:ns:keypath" names a file node.
func (e *Engine) IsFile(path string) bool {
	ref, err := parseNodePath(path)
	return err == nil && e.storage.IsFile(ref.ctx, ref.ns, ref.key)
}

// IsDirectory reports whether "ctx:ns:keypath" names a directory node. An
// empty key path names the namespace root.
func (e *Engine) IsDirectory(path string) bool {
	ref, err := parseNodePath(path)
	return err == nil && e.storage.IsDirectory(ref.ctx, ref.ns, ref.key)
}

// HasDefault reports whether the addressed directory has an "index" child.
func (e *Engine) HasDefault(path string) bool {
	ref, err := parseNodePath(path)
	return err == nil && e.storage.HasDefault(ref.ctx, ref.ns, ref.key)
}

// GetDefault returns the addressed directory's "index" child value.
func (e *Engine) GetDefault(path string) (string, bool) {
	ref, err := parseNodePath(path)
	if err != nil {
		return "", false
	}
	return e.storage.GetDefault(ref.ctx, ref.ns, ref.key)
}
