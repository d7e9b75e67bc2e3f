package parser

import (
	"github.com/roach88/meteor/internal/engine"
	"github.com/roach88/meteor/internal/meteor"
	"github.com/roach88/meteor/internal/splitter"
)

// plan is one aggregated call's buffered work: control commands and tokens
// grouped by (context, namespace) in encounter order. Nothing in a plan has
// touched the engine yet.
type plan struct {
	controls []controlOp
	groups   []*tokenGroup
	index    map[string]*tokenGroup
}

type controlOp struct {
	cmd, target string
}

type tokenGroup struct {
	ctx    meteor.Context
	ns     meteor.Namespace
	tokens []meteor.Token
}

func newPlan() *plan {
	return &plan{index: make(map[string]*tokenGroup)}
}

func (p *plan) addControl(cmd, target string) {
	p.controls = append(p.controls, controlOp{cmd: cmd, target: target})
}

func (p *plan) addToken(ctx meteor.Context, ns meteor.Namespace, tok meteor.Token) {
	id := ctx.Name() + ":" + ns.String()
	g := p.index[id]
	if g == nil {
		g = &tokenGroup{ctx: ctx, ns: ns}
		p.index[id] = g
		p.groups = append(p.groups, g)
	}
	g.tokens = append(g.tokens, tok)
}

// meteors runs every group through the record constructor. The first
// violation fails the whole plan; nothing is written on failure.
func (p *plan) meteors() ([]meteor.Meteor, error) {
	out := make([]meteor.Meteor, 0, len(p.groups))
	for _, g := range p.groups {
		m, err := meteor.New(g.ctx, g.ns, g.tokens)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// commit executes the plan: control commands in encounter order, then the
// validated records. Callers must have run meteors() successfully first.
func (p *plan) commit(eng *engine.Engine, meteors []meteor.Meteor) error {
	for _, c := range p.controls {
		if err := eng.ExecuteControl(c.cmd, c.target); err != nil {
			return err
		}
	}
	for _, m := range meteors {
		eng.StoreMeteor(m)
	}
	return nil
}

// validateControl statically checks a control command so a plan cannot fail
// mid-commit on a malformed one. Not-found outcomes at commit time are fine;
// format errors are not.
func validateControl(seg, cmd, target string) error {
	switch cmd {
	case engine.CommandReset:
		switch target {
		case engine.ResetCursor, engine.ResetStorage, engine.ResetAll:
			return nil
		}
		return formatErr(ErrCodeBadControl, seg, "unknown reset target %q", target)

	case engine.CommandDelete:
		if target == "" {
			return formatErr(ErrCodeBadControl, seg, "delete needs a target path")
		}
		parts := splitter.Split(target, ":", splitter.Config{Escapes: splitter.EscapeInQuotes, KeepEmpty: true})
		if len(parts) > 3 {
			return formatErr(ErrCodeBadControl, seg, "delete target has %d segments, want at most 3", len(parts))
		}
		if parts[0] == "" {
			return formatErr(ErrCodeBadControl, seg, "delete target has an empty context")
		}
		if len(parts) == 3 && parts[2] != "" {
			if _, err := meteor.NewKey(parts[2]); err != nil {
				return formatErr(ErrCodeBadControl, seg, "delete target key: %v", err)
			}
		}
		return nil

	default:
		return formatErr(ErrCodeBadControl, seg, "unknown control command %q", cmd)
	}
}
