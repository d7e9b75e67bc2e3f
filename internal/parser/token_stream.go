package parser

import (
	"github.com/roach88/meteor/internal/engine"
	"github.com/roach88/meteor/internal/meteor"
	"github.com/roach88/meteor/internal/splitter"
)

// TokenStream parses the implicit grammar: ";"-separated segments resolved
// against the engine cursor.
type TokenStream struct {
	eng *engine.Engine
}

// NewTokenStream creates a parser bound to an engine.
func NewTokenStream(eng *engine.Engine) *TokenStream {
	return &TokenStream{eng: eng}
}

// Split segments input on ";" without interpreting anything. Unbalanced
// quotes are an error.
func (s *TokenStream) Split(input string) ([]string, error) {
	segs, err := splitter.SplitStrict(input, ";", splitter.DefaultConfig())
	if err != nil {
		return nil, formatErr(ErrCodeBadQuoting, input, "%v", err)
	}
	return segs, nil
}

// Process is the legacy per-token path. Segments apply strictly left to
// right: tokens store at the current cursor, "ns="/"ctx=" move the cursor
// for everything after them, and the cursor mutation persists on the engine
// after the call. Processing stops at the first error; tokens already
// processed stay committed.
func (s *TokenStream) Process(input string) error {
	segs, err := s.Split(input)
	if err != nil {
		return err
	}
	for _, seg := range segs {
		if err := s.processSegment(seg); err != nil {
			return err
		}
	}
	return nil
}

func (s *TokenStream) processSegment(seg string) error {
	if isControl(seg) {
		cmd, target, err := parseControl(seg)
		if err != nil {
			return err
		}
		return s.eng.ExecuteControl(cmd, target)
	}

	key, rawValue, err := splitAssignment(seg)
	if err != nil {
		return err
	}
	value, err := decodeValue(seg, rawValue)
	if err != nil {
		return err
	}

	switch key {
	case namespaceSwitchKey:
		s.eng.SwitchNamespace(value)
		return nil
	case contextSwitchKey:
		return s.eng.SwitchContext(value)
	}

	k, err := meteor.NewKey(key)
	if err != nil {
		return formatErr(ErrCodeBadKey, seg, "%v", err)
	}
	cur := s.eng.Cursor()
	s.eng.StoreToken(cur.Context, cur.Namespace, meteor.NewToken(k, value))
	return nil
}

// ProcessAggregated buffers the whole call, groups tokens by the cursor
// position they resolve to, and writes only validated records. The first
// error aborts the call with nothing written and the cursor unchanged.
func (s *TokenStream) ProcessAggregated(input string) error {
	p, cursor, err := s.compile(input, s.eng.Cursor(), false)
	if err != nil {
		return err
	}
	meteors, err := p.meteors()
	if err != nil {
		return err
	}
	if err := p.commit(s.eng, meteors); err != nil {
		return err
	}
	s.eng.SetCursor(cursor)
	return nil
}

// Validate performs the same grammar and record checks as ProcessAggregated
// without mutating engine state. It additionally enforces the profile's key
// and value length limits.
func (s *TokenStream) Validate(input string) error {
	p, _, err := s.compile(input, s.eng.Cursor(), true)
	if err != nil {
		return err
	}
	_, err = p.meteors()
	return err
}

// compile walks the segments against a shadow cursor, producing a plan. No
// engine state changes here.
func (s *TokenStream) compile(input string, cursor engine.Cursor, checkLimits bool) (*plan, engine.Cursor, error) {
	segs, err := s.Split(input)
	if err != nil {
		return nil, cursor, err
	}

	p := newPlan()
	limits := s.eng.Profile()

	for _, seg := range segs {
		if isControl(seg) {
			cmd, target, err := parseControl(seg)
			if err != nil {
				return nil, cursor, err
			}
			if err := validateControl(seg, cmd, target); err != nil {
				return nil, cursor, err
			}
			p.addControl(cmd, target)
			if cmd == engine.CommandReset && (target == engine.ResetCursor || target == engine.ResetAll) {
				cursor = engine.Cursor{
					Context:   meteor.DefaultContext(),
					Namespace: meteor.DefaultNamespace(),
				}
			}
			continue
		}

		key, rawValue, err := splitAssignment(seg)
		if err != nil {
			return nil, cursor, err
		}
		value, err := decodeValue(seg, rawValue)
		if err != nil {
			return nil, cursor, err
		}

		switch key {
		case namespaceSwitchKey:
			ns := meteor.NewNamespace(value)
			if err := ns.Validate(limits.MaxNamespaceDepth); err != nil {
				return nil, cursor, err
			}
			cursor.Namespace = ns
			continue
		case contextSwitchKey:
			ctx, err := meteor.NewContext(value)
			if err != nil {
				return nil, cursor, err
			}
			cursor.Context = ctx
			continue
		}

		k, err := meteor.NewKey(key)
		if err != nil {
			return nil, cursor, formatErr(ErrCodeBadKey, seg, "%v", err)
		}
		if checkLimits {
			if err := checkLengths(seg, limits, key, value); err != nil {
				return nil, cursor, err
			}
		}
		p.addToken(cursor.Context, cursor.Namespace, meteor.NewToken(k, value))
	}
	return p, cursor, nil
}
