package archive

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/zeebo/xxh3"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/meteor/internal/engine"
)

// Dump is the portable snapshot document: context -> namespace -> flat key
// -> entry. JSON map keys serialize sorted, so two dumps of the same store
// are byte-identical.
type Dump struct {
	Session   string                                 `json:"session"`
	Profile   string                                 `json:"profile"`
	CreatedAt time.Time                              `json:"created_at"`
	Contexts  map[string]map[string]map[string]Entry `json:"contexts"`
}

// Entry is one exported key's value and content-type hint.
type Entry struct {
	Value       string `json:"value"`
	ContentType string `json:"content_type"`
}

// IntegrityError reports a snapshot whose payload does not match its
// recorded checksum.
type IntegrityError struct {
	Want, Got string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("snapshot integrity check failed: recorded checksum %s, computed %s", e.Want, e.Got)
}

// envelope is the on-wire snapshot frame: checksummed payload plus the
// checksum itself.
type envelope struct {
	Checksum string `json:"checksum"`
	Dump     Dump   `json:"dump"`
}

// BuildDump captures the engine's entire store.
func BuildDump(eng *engine.Engine) Dump {
	d := Dump{
		Session:   eng.Session(),
		Profile:   eng.Profile().Name,
		CreatedAt: time.Now().UTC(),
		Contexts:  make(map[string]map[string]map[string]Entry),
	}
	for _, ctx := range eng.Contexts() {
		namespaces := make(map[string]map[string]Entry)
		for _, ns := range eng.Namespaces(ctx) {
			keys := make(map[string]Entry)
			for _, e := range eng.Entries(ctx, ns) {
				keys[e.Key] = Entry{Value: e.Value, ContentType: ContentType(e.Key)}
			}
			namespaces[ns] = keys
		}
		d.Contexts[ctx] = namespaces
	}
	return d
}

// Checksum computes the dump's integrity digest: xxh3 over the canonical
// JSON of the data, NFC-normalized so byte-level Unicode representation
// differences do not change the digest.
func (d Dump) Checksum() (string, error) {
	payload, err := json.Marshal(d.Contexts)
	if err != nil {
		return "", fmt.Errorf("marshaling snapshot payload: %w", err)
	}
	canonical := norm.NFC.Bytes(payload)
	return fmt.Sprintf("%016x", xxh3.Hash(canonical)), nil
}

// WriteSnapshot exports the engine store as a gzip-compressed JSON envelope.
func WriteSnapshot(w io.Writer, eng *engine.Engine) error {
	d := BuildDump(eng)
	sum, err := d.Checksum()
	if err != nil {
		return err
	}

	zw := gzip.NewWriter(w)
	enc := json.NewEncoder(zw)
	if err := enc.Encode(envelope{Checksum: sum, Dump: d}); err != nil {
		zw.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flushing snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a snapshot and verifies its checksum.
func ReadSnapshot(r io.Reader) (Dump, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return Dump{}, fmt.Errorf("opening snapshot: %w", err)
	}
	defer zr.Close()

	var env envelope
	if err := json.NewDecoder(zr).Decode(&env); err != nil {
		return Dump{}, fmt.Errorf("decoding snapshot: %w", err)
	}

	sum, err := env.Dump.Checksum()
	if err != nil {
		return Dump{}, err
	}
	if sum != env.Checksum {
		return Dump{}, &IntegrityError{Want: env.Checksum, Got: sum}
	}
	return env.Dump, nil
}

// Restore replays a dump into the engine. Existing entries under the same
// addresses are overwritten; nothing else is touched.
func Restore(eng *engine.Engine, d Dump) error {
	for ctx, namespaces := range d.Contexts {
		for ns, keys := range namespaces {
			for key, entry := range keys {
				path := ctx + ":" + ns + ":" + key
				if err := eng.Set(path, entry.Value); err != nil {
					return fmt.Errorf("restoring %s: %w", path, err)
				}
			}
		}
	}
	return nil
}
