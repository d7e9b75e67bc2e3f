package parser

import (
	"github.com/roach88/meteor/internal/config"
	"github.com/roach88/meteor/internal/engine"
	"github.com/roach88/meteor/internal/meteor"
	"github.com/roach88/meteor/internal/splitter"
)

// Delimiter separates records in the explicit grammar. Three characters,
// matched greedily and only outside quotes.
const Delimiter = ":;:"

// MeteorStream parses the explicit grammar: records split on Delimiter, each
// token fully addressed as context:namespace:key=value. The cursor is never
// read or written.
type MeteorStream struct {
	eng *engine.Engine
}

// NewMeteorStream creates a parser bound to an engine.
func NewMeteorStream(eng *engine.Engine) *MeteorStream {
	return &MeteorStream{eng: eng}
}

// Split segments input on the record delimiter. Unbalanced quotes are an
// error.
func (s *MeteorStream) Split(input string) ([]string, error) {
	segs, err := splitter.SplitStrict(input, Delimiter, splitter.DefaultConfig())
	if err != nil {
		return nil, formatErr(ErrCodeBadQuoting, input, "%v", err)
	}
	return segs, nil
}

// Process is the legacy per-token path: every sub-token commits as soon as
// it parses, and the first error stops the call with earlier tokens written.
func (s *MeteorStream) Process(input string) error {
	records, err := s.Split(input)
	if err != nil {
		return err
	}
	for _, record := range records {
		subs, err := s.splitRecord(record)
		if err != nil {
			return err
		}
		for _, sub := range subs {
			if err := s.processSub(sub); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *MeteorStream) processSub(sub string) error {
	if isControl(sub) {
		cmd, target, err := parseControl(sub)
		if err != nil {
			return err
		}
		return s.eng.ExecuteControl(cmd, target)
	}
	ctx, ns, tok, err := s.parseToken(sub, config.Profile{}, false)
	if err != nil {
		return err
	}
	s.eng.StoreToken(ctx, ns, tok)
	return nil
}

// ProcessAggregated buffers all records, validates every group through the
// record constructor, and writes nothing on any failure.
func (s *MeteorStream) ProcessAggregated(input string) error {
	p, err := s.compile(input, false)
	if err != nil {
		return err
	}
	meteors, err := p.meteors()
	if err != nil {
		return err
	}
	return p.commit(s.eng, meteors)
}

// Validate performs the same checks as ProcessAggregated without mutating
// any state, plus the profile's key/value length limits.
func (s *MeteorStream) Validate(input string) error {
	p, err := s.compile(input, true)
	if err != nil {
		return err
	}
	_, err = p.meteors()
	return err
}

func (s *MeteorStream) compile(input string, checkLimits bool) (*plan, error) {
	records, err := s.Split(input)
	if err != nil {
		return nil, err
	}

	p := newPlan()
	limits := s.eng.Profile()

	for _, record := range records {
		subs, err := s.splitRecord(record)
		if err != nil {
			return nil, err
		}
		for _, sub := range subs {
			if isControl(sub) {
				cmd, target, err := parseControl(sub)
				if err != nil {
					return nil, err
				}
				if err := validateControl(sub, cmd, target); err != nil {
					return nil, err
				}
				p.addControl(cmd, target)
				continue
			}
			ctx, ns, tok, err := s.parseToken(sub, limits, checkLimits)
			if err != nil {
				return nil, err
			}
			p.addToken(ctx, ns, tok)
		}
	}
	return p, nil
}

func (s *MeteorStream) splitRecord(record string) ([]string, error) {
	subs, err := splitter.SplitStrict(record, ";", splitter.DefaultConfig())
	if err != nil {
		return nil, formatErr(ErrCodeBadQuoting, record, "%v", err)
	}
	return subs, nil
}

// parseToken parses one fully-addressed or legacy bare sub-token. The
// address must have exactly 2 colons before "="; zero colons is the legacy
// bare form under the default context and namespace; 1 or 3+ is an error.
func (s *MeteorStream) parseToken(sub string, limits config.Profile, checkLimits bool) (meteor.Context, meteor.Namespace, meteor.Token, error) {
	var zeroCtx meteor.Context
	var zeroNS meteor.Namespace
	var zeroTok meteor.Token

	addr, rawValue, err := splitAssignment(sub)
	if err != nil {
		return zeroCtx, zeroNS, zeroTok, err
	}
	value, err := decodeValue(sub, rawValue)
	if err != nil {
		return zeroCtx, zeroNS, zeroTok, err
	}

	parts := splitter.Split(addr, ":", splitter.Config{Escapes: splitter.EscapeInQuotes, KeepEmpty: true})
	switch len(parts) {
	case 1:
		// Legacy leniency: bare key=value.
		k, err := newKey(sub, parts[0])
		if err != nil {
			return zeroCtx, zeroNS, zeroTok, err
		}
		if checkLimits {
			if err := checkLengths(sub, limits, parts[0], value); err != nil {
				return zeroCtx, zeroNS, zeroTok, err
			}
		}
		return meteor.DefaultContext(), meteor.DefaultNamespace(), meteor.NewToken(k, value), nil

	case 3:
		ctx, err := meteor.NewContext(parts[0])
		if err != nil {
			return zeroCtx, zeroNS, zeroTok, formatErr(ErrCodeBadAddress, sub, "empty context in address %q", addr)
		}
		if parts[2] == "" {
			return zeroCtx, zeroNS, zeroTok, formatErr(ErrCodeBadAddress, sub, "empty key in address %q", addr)
		}
		ns := meteor.NewNamespace(parts[1])
		if checkLimits {
			if err := ns.Validate(limits.MaxNamespaceDepth); err != nil {
				return zeroCtx, zeroNS, zeroTok, err
			}
			if err := checkLengths(sub, limits, parts[2], value); err != nil {
				return zeroCtx, zeroNS, zeroTok, err
			}
		}
		k, err := newKey(sub, parts[2])
		if err != nil {
			return zeroCtx, zeroNS, zeroTok, err
		}
		return ctx, ns, meteor.NewAddressedToken(ctx, ns, k, value), nil

	default:
		return zeroCtx, zeroNS, zeroTok,
			formatErr(ErrCodeBadAddress, sub, "address %q has %d colons, want exactly 2 (context:namespace:key) or none", addr, len(parts)-1)
	}
}

func newKey(sub, raw string) (meteor.Key, error) {
	k, err := meteor.NewKey(raw)
	if err != nil {
		return meteor.Key{}, formatErr(ErrCodeBadKey, sub, "%v", err)
	}
	return k, nil
}

func checkLengths(seg string, limits config.Profile, key, value string) error {
	if limits.MaxKeyLength > 0 && len(key) > limits.MaxKeyLength {
		return formatErr(ErrCodeLimitExceeded, seg, "key length %d exceeds limit %d", len(key), limits.MaxKeyLength)
	}
	if limits.MaxValueLength > 0 && len(value) > limits.MaxValueLength {
		return formatErr(ErrCodeLimitExceeded, seg, "value length %d exceeds limit %d", len(value), limits.MaxValueLength)
	}
	return nil
}
