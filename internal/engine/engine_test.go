package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/meteor/internal/config"
	"github.com/roach88/meteor/internal/meteor"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	return New(config.Default(), opts...)
}

func TestSetGet(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Set("app:ui:button", "click"))

	v, found, err := e.Get("app:ui:button")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "click", v)
}

func TestGetMissingIsNotAnError(t *testing.T) {
	e := newTestEngine(t)
	_, found, err := e.Get("app:ui:ghost")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetFormatError(t *testing.T) {
	e := newTestEngine(t)
	_, _, err := e.Get("a:b:c:d")
	assert.True(t, IsBadPath(err))

	_, _, err = e.Get("app:ui")
	assert.True(t, IsBadPath(err))
}

func TestSetRootNamespace(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Set("app::global", "v"))
	assert.True(t, e.Exists("app::global"))
}

func TestSetEmptyKeyOrContext(t *testing.T) {
	e := newTestEngine(t)
	assert.True(t, IsBadPath(e.Set("app:ui:", "v")))
	assert.True(t, IsBadPath(e.Set(":ui:key", "v")))
	assert.True(t, IsBadPath(e.Set("", "v")))
}

func TestSetFlattensBrackets(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Set("app:ui:list[0]", "item"))

	// Both bracket and flat addressing resolve to the same entry.
	v, found, err := e.Get("app:ui:list__i_0")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "item", v)
	assert.True(t, e.Exists("app:ui:list[0]"))
}

func TestSetBadBracketKey(t *testing.T) {
	e := newTestEngine(t)
	err := e.Set("app:ui:list[0", "v")
	var ce *CommandError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeBadKey, ce.Code)
}

func TestDeleteKey(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Set("app:ui:button", "click"))

	deleted, err := e.Delete("app:ui:button")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, e.Exists("app:ui:button"))
}

func TestDeleteMissingTwiceIsNotFoundBothTimes(t *testing.T) {
	e := newTestEngine(t)
	for range 2 {
		deleted, err := e.Delete("app:ui:ghost")
		require.NoError(t, err)
		assert.False(t, deleted)
	}
}

func TestDeleteNamespaceArity(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Set("app:ui:a", "1"))
	require.NoError(t, e.Set("app:ui:b", "2"))
	require.NoError(t, e.Set("app:other:c", "3"))

	deleted, err := e.Delete("app:ui")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, e.Exists("app:ui:a"))
	assert.True(t, e.Exists("app:other:c"))
}

func TestDeleteNamespaceTrailingColon(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Set("app:ui:a", "1"))

	deleted, err := e.Delete("app:ui:")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, e.Namespaces("app"))
}

func TestDeleteWholeContext(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Set("user:ui:a", "1"))
	require.NoError(t, e.Set("app:ui:b", "2"))

	deleted, err := e.Delete("user")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, []string{"app"}, e.Contexts())
}

func TestDeleteFormatError(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Delete("a:b:c:d")
	assert.True(t, IsBadPath(err))
}

func TestDeleteOnlyKeyRemovesDirectoryNode(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Set("app:ui:button", "click"))

	deleted, err := e.Delete("app:ui:button")
	require.NoError(t, err)
	require.True(t, deleted)
	assert.False(t, e.IsDirectory("app:ui:"))
}

func TestCursorDefaults(t *testing.T) {
	e := newTestEngine(t)
	cur := e.Cursor()
	assert.Equal(t, "app", cur.Context.Name())
	assert.Equal(t, "main", cur.Namespace.String())
}

func TestCursorSwitchPersists(t *testing.T) {
	e := newTestEngine(t)
	e.SwitchNamespace("ui")
	require.NoError(t, e.SwitchContext("user"))

	cur := e.Cursor()
	assert.Equal(t, "user", cur.Context.Name())
	assert.Equal(t, "ui", cur.Namespace.String())
}

func TestSwitchContextEmptyFails(t *testing.T) {
	e := newTestEngine(t)
	require.Error(t, e.SwitchContext(""))
	assert.Equal(t, "app", e.Cursor().Context.Name())
}

func TestControlResetCursor(t *testing.T) {
	e := newTestEngine(t)
	e.SwitchNamespace("ui")
	require.NoError(t, e.ExecuteControl("reset", "cursor"))
	assert.Equal(t, "main", e.Cursor().Namespace.String())
}

func TestControlResetStorageKeepsCursor(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Set("app:ui:a", "1"))
	e.SwitchNamespace("ui")

	require.NoError(t, e.ExecuteControl("reset", "storage"))
	assert.Empty(t, e.Contexts())
	assert.Equal(t, "ui", e.Cursor().Namespace.String())
}

func TestControlResetAll(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Set("app:ui:a", "1"))
	e.SwitchNamespace("ui")

	require.NoError(t, e.ExecuteControl("reset", "all"))
	assert.Empty(t, e.Contexts())
	assert.Equal(t, "main", e.Cursor().Namespace.String())
}

func TestControlDeleteDelegates(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Set("app:ui:button", "click"))
	require.NoError(t, e.ExecuteControl("delete", "app:ui:button"))
	assert.False(t, e.Exists("app:ui:button"))
}

func TestControlDeleteMissingIsNotError(t *testing.T) {
	e := newTestEngine(t)
	assert.NoError(t, e.ExecuteControl("delete", "app:ui:ghost"))
}

func TestControlUnknownCommand(t *testing.T) {
	e := newTestEngine(t)
	err := e.ExecuteControl("explode", "now")
	assert.True(t, IsUnknownCommand(err))
}

func TestControlUnknownResetTarget(t *testing.T) {
	e := newTestEngine(t)
	err := e.ExecuteControl("reset", "everything")
	assert.True(t, IsUnknownCommand(err))
}

func TestAuditTrail(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := newTestEngine(t, WithNow(func() time.Time { return fixed }), WithSession("s-1"))

	require.NoError(t, e.Set("app:ui:a", "1"))
	_, _ = e.Delete("app:ui:a")
	_ = e.ExecuteControl("reset", "bogus")

	hist := e.History()
	require.Len(t, hist, 3)

	assert.Equal(t, "set", hist[0].Command)
	assert.Equal(t, "app:ui:a", hist[0].Target)
	assert.True(t, hist[0].Success)
	assert.Equal(t, fixed, hist[0].Timestamp)
	assert.Equal(t, "s-1", hist[0].Session)

	assert.Equal(t, "delete", hist[1].Command)
	assert.True(t, hist[1].Success)

	assert.Equal(t, "reset", hist[2].Command)
	assert.False(t, hist[2].Success)
	assert.Contains(t, hist[2].Error, "unknown reset target")
}

func TestAuditCapturesFailureVerbatim(t *testing.T) {
	e := newTestEngine(t)
	err := e.Set("a:b:c:d", "v")
	require.Error(t, err)

	hist := e.History()
	require.Len(t, hist, 1)
	assert.False(t, hist[0].Success)
	assert.Equal(t, err.Error(), hist[0].Error)
}

func TestHistoryCap(t *testing.T) {
	p := config.Default()
	p.MaxHistory = 5
	e := New(p)

	for range 8 {
		require.NoError(t, e.Set("app:ui:k", "v"))
	}
	_, err := e.Delete("app:ui:k")
	require.NoError(t, err)

	hist := e.History()
	require.Len(t, hist, 5)
	// Oldest entries dropped; the delete is last.
	assert.Equal(t, "delete", hist[4].Command)
}

func TestStoreMeteor(t *testing.T) {
	e := newTestEngine(t)
	key, err := meteor.NewKey("theme")
	require.NoError(t, err)
	m, err := meteor.New(meteor.DefaultContext(), meteor.NewNamespace("ui"),
		[]meteor.Token{meteor.NewToken(key, "dark")})
	require.NoError(t, err)

	e.StoreMeteor(m)
	v, found, err := e.Get("app:ui:theme")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "dark", v)
}

func TestEntriesAndNamespaces(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Set("app:ui:b", "2"))
	require.NoError(t, e.Set("app:ui:a", "1"))

	assert.Equal(t, []string{"ui"}, e.Namespaces("app"))
	entries := e.Entries("app", "ui")
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Key)
}

func TestDefaultValueQueries(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Set("app:ui:widgets.index", "w0"))
	require.NoError(t, e.Set("app:ui:widgets.button", "b"))

	assert.True(t, e.IsDirectory("app:ui:widgets"))
	assert.True(t, e.IsFile("app:ui:widgets.button"))
	assert.True(t, e.HasDefault("app:ui:widgets"))
	v, ok := e.GetDefault("app:ui:widgets")
	require.True(t, ok)
	assert.Equal(t, "w0", v)
}
