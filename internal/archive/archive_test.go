package archive

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/meteor/internal/config"
	"github.com/roach88/meteor/internal/engine"
)

func writeEnvelope(t *testing.T, w io.Writer, env envelope) {
	t.Helper()
	zw := gzip.NewWriter(w)
	require.NoError(t, json.NewEncoder(zw).Encode(env))
	require.NoError(t, zw.Close())
}

func seededEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e := engine.New(config.Default(), engine.WithSession("test-session"))
	require.NoError(t, e.Set("app:ui:button", "click"))
	require.NoError(t, e.Set("app:ui:list[0]", "first"))
	require.NoError(t, e.Set("user:settings:theme", "dark"))
	return e
}

func flatten(e *engine.Engine) map[string]string {
	out := make(map[string]string)
	for _, ctx := range e.Contexts() {
		for _, ns := range e.Namespaces(ctx) {
			for _, entry := range e.Entries(ctx, ns) {
				out[ctx+":"+ns+":"+entry.Key] = entry.Value
			}
		}
	}
	return out
}

func TestContentType(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"button", HintText},
		{"list__i_0", HintArray},
		{"grid__i_2_3", HintArray},
		{"queue__i_APPEND", HintAppend},
		{"dict__i_name", HintMap},
		{"dict__i_2_name", HintMap},
		{"odd__suffix", HintMap},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContentType(tt.key), "key %q", tt.key)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	src := seededEngine(t)

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, src))

	dump, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, "test-session", dump.Session)
	assert.Equal(t, "default", dump.Profile)

	dst := engine.New(config.Default())
	require.NoError(t, Restore(dst, dump))
	assert.Equal(t, flatten(src), flatten(dst))
}

func TestSnapshotCarriesContentTypes(t *testing.T) {
	src := seededEngine(t)
	dump := BuildDump(src)

	assert.Equal(t, HintArray, dump.Contexts["app"]["ui"]["list__i_0"].ContentType)
	assert.Equal(t, HintText, dump.Contexts["app"]["ui"]["button"].ContentType)
}

func TestSnapshotDeterministicChecksum(t *testing.T) {
	src := seededEngine(t)
	a, err := BuildDump(src).Checksum()
	require.NoError(t, err)
	b, err := BuildDump(src).Checksum()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSnapshotIntegrityFailure(t *testing.T) {
	src := seededEngine(t)
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, src))

	dump, err := ReadSnapshot(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	// Tamper and re-frame with the stale checksum.
	dump.Contexts["app"]["ui"]["button"] = Entry{Value: "tampered", ContentType: HintText}
	staleSum, err := BuildDump(src).Checksum()
	require.NoError(t, err)

	var tampered bytes.Buffer
	writeEnvelope(t, &tampered, envelope{Checksum: staleSum, Dump: dump})

	_, err = ReadSnapshot(&tampered)
	var ie *IntegrityError
	require.ErrorAs(t, err, &ie)
}

func TestSQLiteExportImport(t *testing.T) {
	src := seededEngine(t)

	path := filepath.Join(t.TempDir(), "archive.db")
	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	snap, err := a.Export(context.Background(), src)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, "test-session", snap.Session)

	dst := engine.New(config.Default())
	require.NoError(t, a.Import(context.Background(), snap.ID, dst))
	assert.Equal(t, flatten(src), flatten(dst))
}

func TestSQLiteImportUnknownSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	dst := engine.New(config.Default())
	err = a.Import(context.Background(), "no-such-id", dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteSnapshotsListing(t *testing.T) {
	src := seededEngine(t)
	path := filepath.Join(t.TempDir(), "archive.db")
	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	first, err := a.Export(context.Background(), src)
	require.NoError(t, err)
	_, err = a.Export(context.Background(), src)
	require.NoError(t, err)

	snaps, err := a.Snapshots(context.Background())
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	ids := []string{snaps[0].ID, snaps[1].ID}
	assert.Contains(t, ids, first.ID)
}
